package rest

import (
	"context"
	"errors"
	"medisync-service/internal/app/services/platform"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client talks to the platform's table and RPC endpoints. Calls run as the
// user whose access token is in the context, else as the anonymous role.
type Client struct {
	transport *platform.Transport
	Log       *zap.Logger
}

func NewClient(platformBaseUrl, anonKey string, timeout time.Duration, logger *zap.Logger) *Client {
	baseUrl := strings.TrimRight(platformBaseUrl, "/") + constvars.PlatformRestPath
	return &Client{
		transport: platform.NewTransport("rest", baseUrl, anonKey, timeout, logger),
		Log:       logger,
	}
}

func (c *Client) request(ctx context.Context, method, path, rawQuery, prefer string, payload interface{}) platform.Request {
	return platform.Request{
		Method:      method,
		Path:        path,
		RawQuery:    rawQuery,
		AccessToken: utils.GetPlatformAccessToken(ctx),
		Prefer:      prefer,
		Payload:     payload,
	}
}

func (c *Client) Select(ctx context.Context, q *Query, dest interface{}) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Select called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, q.Table()),
		zap.String(constvars.LoggingQueryKey, q.Encode()),
	)

	resp, err := c.transport.Do(ctx, "rest.Client.Select", c.request(ctx, constvars.MethodGet, "/"+q.Table(), q.Encode(), "", nil))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, dest); err != nil {
		c.Log.Error("rest.Client.Select error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPlatformDecodeResponse(err, q.Table())
	}
	return nil
}

// SelectOne decodes the first matched row into dest and reports whether a row existed.
func (c *Client) SelectOne(ctx context.Context, q *Query, dest interface{}) (bool, error) {
	var rows []json.RawMessage
	if err := c.Select(ctx, q.Limit(1), &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return false, exceptions.ErrPlatformDecodeResponse(err, q.Table())
	}
	return true, nil
}

// Count asks for an exact count without transferring rows.
func (c *Client) Count(ctx context.Context, q *Query) (int, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Count called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, q.Table()),
		zap.String(constvars.LoggingQueryKey, q.Encode()),
	)

	resp, err := c.transport.Do(ctx, "rest.Client.Count", c.request(ctx, constvars.MethodHead, "/"+q.Table(), q.Encode(), constvars.PreferCountExact, nil))
	if err != nil {
		return 0, err
	}

	count, err := ParseContentRange(resp.Header.Get(constvars.HeaderContentRange))
	if err != nil {
		c.Log.Error("rest.Client.Count error parsing content range",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, err
	}
	return count, nil
}

// Insert creates one row. When dest is non-nil the created row is decoded into it.
func (c *Client) Insert(ctx context.Context, table string, payload, dest interface{}) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Insert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, table),
	)

	prefer := constvars.PreferReturnMinimal
	if dest != nil {
		prefer = constvars.PreferReturnRepresentation
	}
	resp, err := c.transport.Do(ctx, "rest.Client.Insert", c.request(ctx, constvars.MethodPost, "/"+table, "", prefer, payload))
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}

	_, err = decodeFirst(resp.Body, table, dest)
	return err
}

// Update patches every row matched by q and returns the number of rows changed.
func (c *Client) Update(ctx context.Context, q *Query, payload, dest interface{}) (int, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, q.Table()),
		zap.String(constvars.LoggingQueryKey, q.Encode()),
	)

	resp, err := c.transport.Do(ctx, "rest.Client.Update", c.request(ctx, constvars.MethodPatch, "/"+q.Table(), q.Encode(), constvars.PreferReturnRepresentation, payload))
	if err != nil {
		return 0, err
	}
	return decodeFirst(resp.Body, q.Table(), dest)
}

// Delete removes every row matched by q and returns the number of rows removed.
func (c *Client) Delete(ctx context.Context, q *Query) (int, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, q.Table()),
		zap.String(constvars.LoggingQueryKey, q.Encode()),
	)

	resp, err := c.transport.Do(ctx, "rest.Client.Delete", c.request(ctx, constvars.MethodDelete, "/"+q.Table(), q.Encode(), constvars.PreferReturnRepresentation, nil))
	if err != nil {
		return 0, err
	}
	return decodeFirst(resp.Body, q.Table(), nil)
}

// Upsert inserts rows, merging into existing ones that collide on onConflict.
func (c *Client) Upsert(ctx context.Context, table, onConflict string, rows interface{}) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, table),
	)

	q := From(table).OnConflict(onConflict)
	prefer := constvars.PreferMergeDuplicates + "," + constvars.PreferReturnMinimal
	_, err := c.transport.Do(ctx, "rest.Client.Upsert", c.request(ctx, constvars.MethodPost, "/"+table, q.Encode(), prefer, rows))
	return err
}

func (c *Client) RPC(ctx context.Context, function string, args, dest interface{}) error {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("rest.Client.RPC called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTableKey, function),
	)

	resp, err := c.transport.Do(ctx, "rest.Client.RPC", c.request(ctx, constvars.MethodPost, "/rpc/"+function, "", "", args))
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, dest); err != nil {
		return exceptions.ErrPlatformDecodeResponse(err, function)
	}
	return nil
}

func decodeFirst(body []byte, target string, dest interface{}) (int, error) {
	if len(body) == 0 {
		return 0, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, exceptions.ErrPlatformDecodeResponse(err, target)
	}
	if dest == nil || len(rows) == 0 {
		return len(rows), nil
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return 0, exceptions.ErrPlatformDecodeResponse(err, target)
	}
	return len(rows), nil
}

// ParseContentRange reads the total from "0-24/57" or "*/57".
func ParseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, exceptions.ErrPlatformContentRange(errors.New("missing total"), header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, exceptions.ErrPlatformContentRange(errors.New("total not computed"), header)
	}
	count, err := strconv.Atoi(total)
	if err != nil {
		return 0, exceptions.ErrPlatformContentRange(err, header)
	}
	return count, nil
}
