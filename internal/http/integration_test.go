package http

import (
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd_TCP(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	resp, err := NewRequest().
		Tcp(server.URL).
		Get("/status").
		End(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode())
	assert.Equal(t, `{"ok":true}`, resp.String())
	assert.Equal(t, "application/json", resp.Header("Content-Type"))

	var decoded struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, resp.JSON(&decoded))
	assert.True(t, decoded.OK)
}

func TestEndToEnd_UnixSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "svc.sock")
	ln, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	type observed struct {
		body        string
		contentType string
	}
	seen := make(chan observed, 1)
	server := &nethttp.Server{Handler: nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- observed{body: string(body), contentType: r.Header.Get("Content-Type")}
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte(`{"id":"a1"}`))
	})}
	go server.Serve(ln)
	defer server.Close()

	resp, err := NewRequest().
		UnixSocket(socketPath).
		Post("/items").
		Send(map[string]string{"name": "a"}).
		End(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode())
	got := <-seen
	assert.Equal(t, `{"name":"a"}`, got.body)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "a1", resp.JSONPassive().Get("id").String())
}

func TestEndToEnd_TLSSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("secure"))
	}))
	defer server.Close()

	// The test server's certificate is self-signed, so verification must
	// fail unless it is explicitly disabled.
	_, err := NewRequest().
		Tcp(server.URL).
		Get("/").
		WithLogger(NopLogger{}).
		End(context.Background())
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr), "expected ClientError, got %v", err)

	resp, err := NewRequest().
		Tcp(server.URL).
		Secure(false).
		Get("/").
		End(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secure", resp.String())
}

func TestEndToEnd_Timeout(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	start := time.Now()
	_, err := NewRequest().
		Tcp(server.URL).
		Get("/slow").
		WithTimeout(100 * time.Millisecond).
		WithLogger(NopLogger{}).
		End(context.Background())

	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected TimeoutError, got %v", err)
	assert.Less(t, time.Since(start), time.Second, "End should settle at the window, not the handler")
}

func TestEndToEnd_EchoRoundTrip(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer server.Close()

	payload := map[string]interface{}{
		"name":  "a",
		"count": float64(3),
		"tags":  []interface{}{"x", "y"},
	}
	resp, err := NewRequest().
		Tcp(server.URL).
		Put("/echo").
		Send(payload).
		End(context.Background())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, resp.JSON(&decoded))
	assert.Equal(t, payload, decoded)
}
