package http

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

// TCPTransport connects to host:port, optionally wrapping the connection
// in TLS. SkipVerify disables certificate validation for this transport
// only; it never touches process-wide TLS state.
type TCPTransport struct {
	Host       string
	Port       int
	TLS        bool
	SkipVerify bool
}

func (t *TCPTransport) Connect(timeout time.Duration) (net.Conn, error) {
	addr := net.JoinHostPort(t.Host, fmt.Sprintf("%d", t.Port))

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}

	if !t.TLS {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         t.Host,
		InsecureSkipVerify: t.SkipVerify,
	})

	// Bound the handshake by the same window as the dial so a stalled
	// peer cannot hold the exchange open past its timeout.
	if err := tlsConn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return nil, err
	}
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	if err := tlsConn.SetDeadline(time.Time{}); err != nil {
		conn.Close()
		return nil, err
	}

	return tlsConn, nil
}

func (t *TCPTransport) String() string {
	scheme := "http"
	if t.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, t.Host, t.Port)
}
