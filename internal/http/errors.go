package http

import "fmt"

// ConfigError indicates a malformed connection target, detected at
// configuration time (before End is ever called).
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parley: config: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parley: config: %s", e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// RequestError indicates a failure while assembling the request, before
// anything was sent on the wire.
type RequestError struct {
	Msg string
	Err error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parley: request: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parley: request: %s", e.Msg)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ClientError indicates a transport-level failure: DNS, connect, TLS
// handshake, or a socket error mid-exchange.
type ClientError struct {
	Msg string
	Err error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parley: client: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parley: client: %s", e.Msg)
}

func (e *ClientError) Unwrap() error { return e.Err }

// TimeoutError indicates the exchange did not complete within the
// configured window.
type TimeoutError struct {
	Msg string
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parley: timeout: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parley: timeout: %s", e.Msg)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ReadError indicates the response body could not be decoded as requested.
type ReadError struct {
	Msg string
	Err error
}

func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parley: read: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parley: read: %s", e.Msg)
}

func (e *ReadError) Unwrap() error { return e.Err }
