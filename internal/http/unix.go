package http

import (
	"fmt"
	"net"
	"time"
)

// UnixTransport connects to a Unix domain socket. Used for local
// control-plane services that expose their API on a socket file.
type UnixTransport struct {
	Path string
}

func (t *UnixTransport) Connect(timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", t.Path, timeout)
}

func (t *UnixTransport) String() string {
	return fmt.Sprintf("unix://%s", t.Path)
}
