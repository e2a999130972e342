package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/metrics"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Transport sends JSON requests to one service of the hosted platform
// (auth or rest) with the project key attached.
type Transport struct {
	Service    string
	BaseUrl    string
	AnonKey    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewTransport(service, baseUrl, anonKey string, timeout time.Duration, logger *zap.Logger) *Transport {
	return &Transport{
		Service:    service,
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		AnonKey:    anonKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

type Request struct {
	Method   string
	Path     string
	RawQuery string
	// AccessToken is sent as the bearer token. The anon key is used when empty.
	AccessToken string
	Prefer      string
	Payload     interface{}
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (t *Transport) Do(ctx context.Context, caller string, request Request) (*Response, error) {
	requestID := utils.GetRequestID(ctx)
	target := t.Service + request.Path

	var body io.Reader
	if request.Payload != nil {
		payload, err := json.Marshal(request.Payload)
		if err != nil {
			t.Log.Error(caller+" error marshaling JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payload)
	}

	endpoint := t.BaseUrl + request.Path
	if request.RawQuery != "" {
		endpoint += "?" + request.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, endpoint, body)
	if err != nil {
		t.Log.Error(caller+" error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	token := request.AccessToken
	if token == "" {
		token = t.AnonKey
	}
	req.Header.Set(constvars.HeaderAPIKey, t.AnonKey)
	req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)
	req.Header.Set("Accept", constvars.MIMEApplicationJSON)
	if request.Payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if request.Prefer != "" {
		req.Header.Set(constvars.HeaderPrefer, request.Prefer)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	start := time.Now()
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		metrics.ObservePlatformRequest(t.Service, request.Method, 0, time.Since(start))
		t.Log.Error(caller+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, target),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrPlatformRequest(err, target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	metrics.ObservePlatformRequest(t.Service, request.Method, resp.StatusCode, time.Since(start))
	if err != nil {
		t.Log.Error(caller+" error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPlatformDecodeResponse(err, target)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ErrorMessage(data)
		customErr := exceptions.ErrPlatformUnexpectedStatus(errors.New(message), resp.StatusCode, target, message)
		t.Log.Error(caller+" platform returned an error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, target),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(customErr),
		)
		return nil, customErr
	}

	t.Log.Debug(caller+" platform responded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingURLKey, target),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Int(constvars.LoggingResponseLengthKey, len(data)),
	)
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

var errorMessageFields = []string{"message", "msg", "error_description", "error"}

// ErrorMessage extracts a readable message from either the rest or the auth
// error payload shape.
func ErrorMessage(body []byte) string {
	parsed := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !parsed.IsObject() {
		text := strings.TrimSpace(string(body))
		if text == "" {
			return "empty error body"
		}
		return text
	}

	code := parsed.Get("code")
	for _, field := range errorMessageFields {
		candidate := parsed.Get(field).String()
		if candidate == "" {
			continue
		}
		if code.Exists() && code.Type != gjson.Null {
			return fmt.Sprintf("%s (%s)", candidate, code.String())
		}
		return candidate
	}
	return "unknown platform error"
}

// StatusOf returns the HTTP status carried by a platform error, or 0.
func StatusOf(err error) int {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 0
}
