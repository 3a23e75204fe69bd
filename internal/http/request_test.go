package http

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRequest_Tcp(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
		wantTLS  bool
		wantErr  bool
	}{
		{
			name:     "http with port",
			url:      "http://127.0.0.1:9700",
			wantHost: "127.0.0.1",
			wantPort: 9700,
		},
		{
			name:     "https with port",
			url:      "https://ctl.example.com:8443",
			wantHost: "ctl.example.com",
			wantPort: 8443,
			wantTLS:  true,
		},
		{
			name:     "http defaults to port 80",
			url:      "http://ctl.example.com",
			wantHost: "ctl.example.com",
			wantPort: 80,
		},
		{
			name:     "https defaults to port 443",
			url:      "https://ctl.example.com",
			wantHost: "ctl.example.com",
			wantPort: 443,
			wantTLS:  true,
		},
		{
			name:     "ipv6 literal with port",
			url:      "http://[::1]:8080",
			wantHost: "::1",
			wantPort: 8080,
		},
		{
			name:     "ipv6 literal without port",
			url:      "http://[::1]",
			wantHost: "::1",
			wantPort: 80,
		},
		{
			name:    "missing scheme separator",
			url:     "127.0.0.1:9700",
			wantErr: true,
		},
		{
			name:    "empty scheme",
			url:     "://host",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://host",
			wantErr: true,
		},
		{
			name:    "empty host",
			url:     "http://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest().Tcp(tt.url)

			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(req.Err(), &cfgErr) {
					t.Fatalf("expected ConfigError for %q, got %v", tt.url, req.Err())
				}
				return
			}

			if req.Err() != nil {
				t.Fatalf("unexpected error for %q: %v", tt.url, req.Err())
			}
			tcp, ok := req.transport.(*TCPTransport)
			if !ok {
				t.Fatalf("expected TCPTransport, got %T", req.transport)
			}
			if tcp.Host != tt.wantHost {
				t.Errorf("expected host %q, got %q", tt.wantHost, tcp.Host)
			}
			if tcp.Port != tt.wantPort {
				t.Errorf("expected port %d, got %d", tt.wantPort, tcp.Port)
			}
			if tcp.TLS != tt.wantTLS {
				t.Errorf("expected TLS %v, got %v", tt.wantTLS, tcp.TLS)
			}
		})
	}
}

func TestRequest_TransportLastCallWins(t *testing.T) {
	req := NewRequest().Tcp("http://127.0.0.1:9700").UnixSocket("/tmp/svc.sock")
	if _, ok := req.transport.(*UnixTransport); !ok {
		t.Fatalf("expected UnixTransport after last call, got %T", req.transport)
	}

	req = NewRequest().UnixSocket("/tmp/svc.sock").Tcp("http://127.0.0.1:9700")
	if _, ok := req.transport.(*TCPTransport); !ok {
		t.Fatalf("expected TCPTransport after last call, got %T", req.transport)
	}
}

func TestRequest_SetHeader(t *testing.T) {
	req := NewRequest().
		SetHeader("X-Token", "one").
		SetHeader("Accept", "application/json").
		SetHeader("X-Token", "two")

	if len(req.headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(req.headers))
	}
	// Last write wins, original position kept.
	if req.headers[0].key != "X-Token" || req.headers[0].value != "two" {
		t.Errorf("expected X-Token: two first, got %s: %s", req.headers[0].key, req.headers[0].value)
	}
	if req.headers[1].key != "Accept" {
		t.Errorf("expected Accept second, got %s", req.headers[1].key)
	}
}

func TestRequest_Send(t *testing.T) {
	t.Run("string body leaves headers alone", func(t *testing.T) {
		req := NewRequest().Send("raw payload")
		if string(req.body) != "raw payload" {
			t.Errorf("expected verbatim body, got %q", req.body)
		}
		if len(req.headers) != 0 {
			t.Errorf("expected no headers, got %v", req.headers)
		}
	})

	t.Run("object body is JSON with content type", func(t *testing.T) {
		req := NewRequest().Send(map[string]string{"name": "a"})
		if string(req.body) != `{"name":"a"}` {
			t.Errorf("expected JSON body, got %q", req.body)
		}
		found := false
		for _, h := range req.headers {
			if h.key == "Content-Type" && h.value == "application/json" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected Content-Type: application/json, got %v", req.headers)
		}
	})

	t.Run("unencodable body surfaces at End", func(t *testing.T) {
		req := NewRequest().
			Tcp("http://127.0.0.1:9700").
			Post("/items").
			Send(make(chan int)).
			WithLogger(NopLogger{})

		_, err := req.End(context.Background())
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			t.Fatalf("expected RequestError, got %v", err)
		}
	})
}

func TestRequest_SecureAndTimeout(t *testing.T) {
	req := NewRequest().Secure(false).WithTimeout(3 * time.Second)
	if !req.skipVerify {
		t.Error("Secure(false) should disable verification")
	}
	if req.timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", req.timeout)
	}

	req = NewRequest()
	if req.skipVerify {
		t.Error("verification should be on by default")
	}
}

func TestDefaultTimeout(t *testing.T) {
	orig := DefaultTimeout()
	defer SetDefaultTimeout(orig)

	if orig != 20*time.Second {
		t.Errorf("expected 20s default, got %v", orig)
	}
	SetDefaultTimeout(5 * time.Second)
	if DefaultTimeout() != 5*time.Second {
		t.Errorf("expected 5s after override, got %v", DefaultTimeout())
	}
	SetDefaultTimeout(0) // ignored
	if DefaultTimeout() != 5*time.Second {
		t.Errorf("zero override should be ignored, got %v", DefaultTimeout())
	}
}
