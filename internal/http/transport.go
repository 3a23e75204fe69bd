package http

import (
	"net"
	"time"
)

// Transport is the connection mechanism for a single exchange: TCP
// (optionally TLS) or a local Unix domain socket. Connect must return a
// connection that is ready for the request bytes, which for TLS means
// the handshake has completed.
type Transport interface {
	Connect(timeout time.Duration) (net.Conn, error)

	// String describes the target for log lines.
	String() string
}
