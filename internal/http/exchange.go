package http

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// outcome is the single settlement of an exchange.
type outcome struct {
	resp *Response
	err  error
}

// End executes the exchange and blocks until it settles. Exactly one
// outcome is ever produced, even when the timeout, a transport error and
// end-of-stream race each other: the first settlement wins and the losers
// are discarded. The connection is torn down on every path.
//
// Network-layer failures are never returned from anywhere but here, each
// logged once at detection: *RequestError for assembly failures,
// *ClientError for dial/TLS/socket failures (and context cancellation),
// *TimeoutError when the window elapses. A *ConfigError recorded by a
// setter short-circuits End before any network activity.
//
// End consumes the Request; calling it a second time fails.
func (r *Request) End(ctx context.Context) (*Response, error) {
	if r.executed {
		err := &RequestError{Msg: "request already executed"}
		r.log().Logf(LevelError, "exchange failed: %v", err)
		return nil, err
	}
	r.executed = true

	if r.configErr != nil {
		return nil, r.configErr
	}
	if r.assembleErr != nil {
		r.log().Logf(LevelError, "exchange failed: %v", r.assembleErr)
		return nil, r.assembleErr
	}
	if r.transport == nil {
		err := &RequestError{Msg: "no transport configured"}
		r.log().Logf(LevelError, "exchange failed: %v", err)
		return nil, err
	}
	if r.method == "" || r.path == "" {
		err := &RequestError{Msg: "method and path required"}
		r.log().Logf(LevelError, "exchange failed: %v", err)
		return nil, err
	}

	if tcp, ok := r.transport.(*TCPTransport); ok {
		tcp.SkipVerify = r.skipVerify
	}

	timeout := r.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout()
	}

	ex := &exchange{}
	done := make(chan outcome, 1)
	settle := func(o outcome) {
		ex.once.Do(func() {
			if o.err != nil {
				r.log().Logf(LevelError, "exchange failed: %v", o.err)
			}
			done <- o
		})
	}

	// The window covers the whole exchange, dial included. Killing the
	// connection unblocks the round-trip goroutine, whose late result
	// then loses the settlement race.
	timer := time.AfterFunc(timeout, func() {
		settle(outcome{err: &TimeoutError{
			Msg: fmt.Sprintf("no response from %s within %s", r.transport, timeout),
		}})
		ex.kill()
	})
	defer timer.Stop()

	watch := make(chan struct{})
	defer close(watch)
	go func() {
		select {
		case <-ctx.Done():
			settle(outcome{err: &ClientError{Msg: "exchange aborted", Err: ctx.Err()}})
			ex.kill()
		case <-watch:
		}
	}()

	go r.roundTrip(ex, timeout, settle)

	o := <-done
	ex.kill()
	return o.resp, o.err
}

// exchange tracks the live connection of one End call so the timeout and
// cancellation paths can terminate it from another goroutine.
type exchange struct {
	once sync.Once

	mu     sync.Mutex
	conn   net.Conn
	killed bool
}

// adopt registers the freshly dialed connection. It reports false when the
// exchange was already killed, in which case the connection is closed and
// must not be used.
func (ex *exchange) adopt(c net.Conn) bool {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	if ex.killed {
		c.Close()
		return false
	}
	ex.conn = c
	return true
}

func (ex *exchange) kill() {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.killed = true
	if ex.conn != nil {
		ex.conn.Close()
		ex.conn = nil
	}
}

// roundTrip performs the blocking connect/write/read sequence and offers
// its result to the settlement guard.
func (r *Request) roundTrip(ex *exchange, timeout time.Duration, settle func(outcome)) {
	conn, err := r.transport.Connect(timeout)
	if err != nil {
		settle(outcome{err: &ClientError{Msg: "connect " + r.transport.String(), Err: err}})
		return
	}
	if !ex.adopt(conn) {
		return
	}

	if err := writeRequest(conn, r.method, r.path, r.hostHeader(), r.headers, r.body); err != nil {
		settle(outcome{err: &ClientError{Msg: "write request", Err: err}})
		return
	}

	br := bufio.NewReader(conn)
	head, err := readResponseHead(br)
	if err != nil {
		settle(outcome{err: &ClientError{Msg: "read response head", Err: err}})
		return
	}

	resp := newResponse(head)
	if err := readBody(br, head, resp.appendBody); err != nil {
		settle(outcome{err: &ClientError{Msg: "read response body", Err: err}})
		return
	}

	settle(outcome{resp: resp})
}
