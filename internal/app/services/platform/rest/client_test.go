package rest

import (
	"context"
	"io"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type row struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "anon-key", 5*time.Second, zap.NewNop())
}

func TestSelectSendsFiltersAndUserToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/appointments_view", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		query := r.URL.Query()
		assert.Equal(t, "*", query.Get("select"))
		assert.Equal(t, "eq.confirmed", query.Get("status"))
		assert.Equal(t, "start_time.desc", query.Get("order"))
		assert.Equal(t, `(patient_first_name.ilike."*Du\"p*",patient_last_name.ilike."*Du\"p*")`, query.Get("or"))

		w.Write([]byte(`[{"id":"A1","status":"confirmed"}]`))
	})

	ctx := utils.WithPlatformAccessToken(context.Background(), "user-token")
	q := From("appointments_view").Select("*").Eq("status", "confirmed").
		Or(ILikeCondition("patient_first_name", `Du"p`), ILikeCondition("patient_last_name", `Du"p`)).
		Order("start_time", false)

	var rows []row
	require.NoError(t, client.Select(ctx, q, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].ID)
}

func TestSelectFallsBackToAnonKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	var rows []row
	require.NoError(t, client.Select(context.Background(), From("profiles"), &rows))
	assert.Empty(t, rows)
}

func TestSelectOne(t *testing.T) {
	t.Run("row found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			w.Write([]byte(`[{"id":"P1"}]`))
		})
		var got row
		found, err := client.SelectOne(context.Background(), From("profiles").Eq("id", "P1"), &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "P1", got.ID)
	})

	t.Run("no row", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		var got row
		found, err := client.SelectOne(context.Background(), From("profiles").Eq("id", "P1"), &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCountReadsContentRange(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-24/57")
		w.WriteHeader(http.StatusPartialContent)
	})

	count, err := client.Count(context.Background(), From("appointments_view").Eq("status", "scheduled"))
	require.NoError(t, err)
	assert.Equal(t, 57, count)
}

func TestParseContentRange(t *testing.T) {
	cases := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{header: "0-24/57", want: 57},
		{header: "*/0", want: 0},
		{header: "*/12", want: 12},
		{header: "0-24/*", wantErr: true},
		{header: "", wantErr: true},
		{header: "0-1/abc", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			got, err := ParseContentRange(tc.header)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUpdateReturnsAffectedRows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.A1", r.URL.Query().Get("id"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"confirmed"}`, string(body))
		w.Write([]byte(`[{"id":"A1","status":"confirmed"}]`))
	})

	var updated row
	n, err := client.Update(context.Background(), From("appointments").Eq("id", "A1"), map[string]string{"status": "confirmed"}, &updated)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "confirmed", updated.Status)
}

func TestDeleteReportsZeroRows(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`[]`))
	})

	n, err := client.Delete(context.Background(), From("appointments").Eq("id", "missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUpsertSetsConflictTarget(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "setting_key", r.URL.Query().Get("on_conflict"))
		assert.Equal(t, "resolution=merge-duplicates,return=minimal", r.Header.Get("Prefer"))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Upsert(context.Background(), "platform_settings", "setting_key", []map[string]interface{}{{"setting_key": "platform_name"}})
	assert.NoError(t, err)
}

func TestRPCDecodesScalar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/is_admin", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"uid":"U1"}`, string(body))
		w.Write([]byte(`true`))
	})

	var isAdmin bool
	require.NoError(t, client.RPC(context.Background(), "is_admin", map[string]string{"uid": "U1"}, &isAdmin))
	assert.True(t, isAdmin)
}

func TestPlatformErrorIsMapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"42501","message":"permission denied for table appointments"}`))
	})

	var rows []row
	err := client.Select(context.Background(), From("appointments"), &rows)
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, customErr.StatusCode)
	assert.Contains(t, customErr.DevMessage, "permission denied")
}

func TestInBuildsQuotedList(t *testing.T) {
	q := From("profiles").In("id", []string{"a", "b"})
	assert.Contains(t, q.Encode(), "id=in.%28%22a%22%2C%22b%22%29")
}

func TestNotNegatesOperator(t *testing.T) {
	q := From("profiles").Not("user_type", "eq", "admin")
	assert.Equal(t, "user_type=not.eq.admin", q.Encode())
}
