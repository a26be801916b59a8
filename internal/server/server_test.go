package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anshumanformal/apirelay/internal/apiclient"
)

func newRelay(t *testing.T, endpoint string) *Server {
	t.Helper()
	api, err := apiclient.New(endpoint, apiclient.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return NewServer(api)
}

func doRequest(srv *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoute(t *testing.T) {
	calls := 0
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer downstream.Close()

	srv := newRelay(t, downstream.URL)
	rec := doRequest(srv, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message": "Node.js server is running"}`, rec.Body.String())
	assert.Zero(t, calls, "health check must not touch the downstream API")
}

func TestHealthRoute_UnknownPath(t *testing.T) {
	srv := NewServer(nil)
	rec := doRequest(srv, http.MethodGet, "/missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthRoute_MethodNotAllowed(t *testing.T) {
	srv := NewServer(nil)
	rec := doRequest(srv, http.MethodPost, "/")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStartRoute_ForwardsDownstream(t *testing.T) {
	var (
		calls     int
		gotMethod string
		gotPath   string
		gotCT     string
		gotBody   []byte
	)
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer downstream.Close()

	srv := newRelay(t, downstream.URL)
	rec := doRequest(srv, http.MethodGet, "/start")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting": "Hello from Node.js"}`, rec.Body.String())

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/process-all", gotPath)
	assert.Equal(t, "application/json", gotCT)
	assert.JSONEq(t, `{"name": "John"}`, string(gotBody))
}

func TestStartRoute_DownstreamErrorStillOK(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer downstream.Close()

	srv := newRelay(t, downstream.URL)
	rec := doRequest(srv, http.MethodGet, "/start")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting": "Hello from Node.js"}`, rec.Body.String())
}

func TestStartRoute_DownstreamUnreachableStillOK(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := downstream.URL
	downstream.Close()

	srv := newRelay(t, endpoint)
	rec := doRequest(srv, http.MethodGet, "/start")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"greeting": "Hello from Node.js"}`, rec.Body.String())
}

func TestStartRoute_MethodNotAllowed(t *testing.T) {
	srv := NewServer(nil)
	rec := doRequest(srv, http.MethodPost, "/start")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStartRoute_NoClient(t *testing.T) {
	srv := NewServer(nil)
	rec := doRequest(srv, http.MethodGet, "/start")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Something went wrong"}`, rec.Body.String())
}

// freeAddr reserves a localhost port and releases it for the server under
// test to bind.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// waitForHealth polls the health route until the server answers, failing
// fast if the listener exits first.
func waitForHealth(t *testing.T, addr string, errCh <-chan error) *http.Response {
	t.Helper()
	url := "http://" + addr + "/"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			return resp
		}
		select {
		case startErr := <-errCh:
			t.Fatalf("server exited before answering: %v", startErr)
		default:
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up at %s: %v", url, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServerStart_ServesHealth(t *testing.T) {
	addr := freeAddr(t)
	srv := NewServer(nil)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(addr) }()

	resp := waitForHealth(t, addr, errCh)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Node.js server is running"}`, string(body))
}

func TestServerStartWithContext_ShutsDownOnCancel(t *testing.T) {
	addr := freeAddr(t)
	srv := NewServer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.StartWithContext(ctx, addr) }()

	resp := waitForHealth(t, addr, errCh)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancel")
	}
}
