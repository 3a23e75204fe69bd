// Package http is a minimal outbound HTTP(S) client for talking to a
// local or remote control-plane service over TCP, TLS or a Unix domain
// socket.
//
// It deliberately does less than net/http: no pooling or reuse, no
// redirects, no cookies, no HTTP/2. Each Request performs exactly one
// exchange over a fresh connection and buffers the whole response, which
// keeps the raw header sequence available verbatim.
//
// Basic usage:
//
//	resp, err := http.NewRequest().
//	    Tcp("https://127.0.0.1:9700").
//	    Get("/status").
//	    End(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.StatusCode(), resp.String())
//
// Against a local service socket:
//
//	resp, err := http.NewRequest().
//	    UnixSocket("/var/run/svc.sock").
//	    Post("/profile").
//	    Send(map[string]string{"id": "a1"}).
//	    End(ctx)
//
// Failures settle the End call with one of the typed errors in this
// package; see End for the taxonomy.
package http
