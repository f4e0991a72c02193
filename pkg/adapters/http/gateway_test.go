package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	gateway "github.com/aretw0/megaverse/pkg/adapters/http"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/aretw0/megaverse/pkg/observability"
	"github.com/aretw0/megaverse/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        map[string]any
}

// recorder is a fake remote API that stores every request and replies with a fixed status/body.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(data, &body)

	rec.mu.Lock()
	rec.requests = append(rec.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	status, respBody := rec.status, rec.body
	rec.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(respBody))
}

func (rec *recorder) count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.requests)
}

func noSleep(context.Context, time.Duration) error { return nil }

func newGateway(t *testing.T, rec *recorder, opts ...gateway.Option) *gateway.Gateway {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	opts = append([]gateway.Option{gateway.WithHTTPClient(srv.Client()), gateway.WithSleeper(noSleep)}, opts...)
	return gateway.New(gateway.Config{
		BaseURL:     srv.URL + "/api",
		CandidateID: "candidate-1",
		Delay:       750 * time.Millisecond,
	}, opts...)
}

func TestGateway_Contract(t *testing.T) {
	gw := newGateway(t, &recorder{body: `{}`})
	ports.RunGatewayContract(t, gw)
}

func TestGateway_RequestShape(t *testing.T) {
	tests := []struct {
		name   string
		call   func(gw *gateway.Gateway) (*domain.Response, error)
		method string
		path   string
		extra  map[string]any
	}{
		{
			name:   "Create Polyanet",
			call:   func(gw *gateway.Gateway) (*domain.Response, error) { return gw.CreatePolyanet(context.Background(), 2, 3) },
			method: http.MethodPost,
			path:   "/api/polyanets",
		},
		{
			name:   "Delete Polyanet",
			call:   func(gw *gateway.Gateway) (*domain.Response, error) { return gw.DeletePolyanet(context.Background(), 2, 3) },
			method: http.MethodDelete,
			path:   "/api/polyanets",
		},
		{
			name: "Create Soloon",
			call: func(gw *gateway.Gateway) (*domain.Response, error) {
				return gw.CreateSoloon(context.Background(), 2, 3, map[string]string{"color": "blue"})
			},
			method: http.MethodPost,
			path:   "/api/soloons",
			extra:  map[string]any{"color": "blue"},
		},
		{
			name:   "Delete Soloon",
			call:   func(gw *gateway.Gateway) (*domain.Response, error) { return gw.DeleteSoloon(context.Background(), 2, 3) },
			method: http.MethodDelete,
			path:   "/api/soloons",
		},
		{
			name: "Create Cometh",
			call: func(gw *gateway.Gateway) (*domain.Response, error) {
				return gw.CreateCometh(context.Background(), 2, 3, map[string]string{"direction": "up"})
			},
			method: http.MethodPost,
			path:   "/api/comeths",
			extra:  map[string]any{"direction": "up"},
		},
		{
			name:   "Delete Cometh",
			call:   func(gw *gateway.Gateway) (*domain.Response, error) { return gw.DeleteCometh(context.Background(), 2, 3) },
			method: http.MethodDelete,
			path:   "/api/comeths",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{body: `{"ok":true}`}
			gw := newGateway(t, rec)

			resp, err := tt.call(gw)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.Status)
			assert.Equal(t, map[string]any{"ok": true}, resp.Body)

			require.Equal(t, 1, rec.count())
			got := rec.requests[0]
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, "application/json", got.ContentType)

			want := map[string]any{"candidateId": "candidate-1", "row": 2.0, "column": 3.0}
			for k, v := range tt.extra {
				want[k] = v
			}
			assert.Equal(t, want, got.Body)
		})
	}
}

func TestGateway_CourtesyDelay(t *testing.T) {
	var waits []time.Duration
	sleeper := func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	gw := newGateway(t, &recorder{}, gateway.WithSleeper(sleeper))
	_, err := gw.CreatePolyanet(context.Background(), 0, 0)
	require.NoError(t, err)
	_, err = gw.DeletePolyanet(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{750 * time.Millisecond, 750 * time.Millisecond}, waits)
}

func TestGateway_NoDelayWhenZero(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	called := false
	gw := gateway.New(gateway.Config{BaseURL: srv.URL + "/", CandidateID: "c"},
		gateway.WithSleeper(func(context.Context, time.Duration) error {
			called = true
			return nil
		}))

	_, err := gw.CreatePolyanet(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestGateway_NonSuccessStatus(t *testing.T) {
	rec := &recorder{
		status: http.StatusInternalServerError,
		body:   `<html><head><style>body{}</style></head><body><h1>Something "broke"</h1><script>alert(1)</script></body></html>`,
	}
	gw := newGateway(t, rec)

	resp, err := gw.CreatePolyanet(context.Background(), 1, 1)
	assert.Nil(t, resp)

	var gwErr *domain.GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusInternalServerError, gwErr.Status)
	assert.Contains(t, gwErr.Payload, `Something "broke"`)
	assert.NotContains(t, gwErr.Payload, "<")
	assert.NotContains(t, gwErr.Payload, "alert")
	assert.Contains(t, gwErr.Message, "500")
}

func TestGateway_TooManyRequests(t *testing.T) {
	rec := &recorder{status: http.StatusTooManyRequests, body: `{"error":"Too Many Requests"}`}
	gw := newGateway(t, rec)

	_, err := gw.DeleteSoloon(context.Background(), 1, 1)

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusTooManyRequests, gwErr.Status)
	assert.Equal(t, `{"error":"Too Many Requests"}`, gwErr.Payload)
}

func TestGateway_TransportError(t *testing.T) {
	srv := httptest.NewServer(&recorder{})
	url := srv.URL
	srv.Close()

	gw := gateway.New(gateway.Config{BaseURL: url, CandidateID: "c", Timeout: time.Second})
	_, err := gw.CreatePolyanet(context.Background(), 0, 0)

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 0, gwErr.Status)
	assert.NotNil(t, gwErr.Err)
}

func TestGateway_InvalidAttributeMakesNoRequest(t *testing.T) {
	rec := &recorder{}
	gw := newGateway(t, rec)

	_, err := gw.CreateSoloon(context.Background(), 0, 0, map[string]string{"color": "green"})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)

	_, err = gw.CreateCometh(context.Background(), 0, 0, map[string]string{})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)

	assert.Equal(t, 0, rec.count())
}

func TestGateway_CancelledDuringDelay(t *testing.T) {
	rec := &recorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	gw := gateway.New(gateway.Config{BaseURL: srv.URL, CandidateID: "c", Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.CreatePolyanet(ctx, 0, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rec.count())
}

func TestGateway_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	gw := newGateway(t, &recorder{}, gateway.WithMetrics(observability.NewMetrics(reg)))

	_, err := gw.CreatePolyanet(context.Background(), 0, 0)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "megaverse_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
