package http

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Request builds and executes a single outbound exchange against a
// control-plane service, reached over TCP (optionally TLS) or a Unix
// domain socket. Every setter returns the same instance for chaining.
//
// A Request is single-owner and single-shot: configure it, call End once,
// then discard it. It must not be shared across goroutines.
type Request struct {
	transport  Transport
	skipVerify bool
	timeout    time.Duration

	method string
	path   string

	headers   []headerPair
	headerIdx map[string]int

	body []byte

	logger Logger

	// configErr and assembleErr are recorded at the setter that detected
	// them and surfaced by End, which never touches the network once one
	// is set.
	configErr   error
	assembleErr error

	executed bool
}

// NewRequest returns an empty builder. A transport (Tcp or UnixSocket),
// a method and a path must be set before End.
func NewRequest() *Request {
	return &Request{
		headerIdx: make(map[string]int),
	}
}

// Tcp targets scheme://host[:port]. The scheme must be http or https;
// https enables TLS. When no port is given, 443 (https) or 80 (http) is
// assumed. Only the segment after the last colon is treated as a port, so
// IPv6 literals survive. Calling Tcp after UnixSocket replaces the
// transport: the last call wins.
func (r *Request) Tcp(rawurl string) *Request {
	sep := strings.Index(rawurl, "://")
	if sep <= 0 {
		return r.fail(&ConfigError{Msg: fmt.Sprintf("missing or empty scheme in %q", rawurl)})
	}

	scheme := rawurl[:sep]
	rest := rawurl[sep+3:]

	var useTLS bool
	var port int
	switch scheme {
	case "http":
		useTLS, port = false, 80
	case "https":
		useTLS, port = true, 443
	default:
		return r.fail(&ConfigError{Msg: fmt.Sprintf("unsupported scheme %q", scheme)})
	}

	host := rest
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		if p, err := strconv.Atoi(rest[i+1:]); err == nil {
			host = rest[:i]
			port = p
		}
	}
	host = strings.TrimPrefix(strings.TrimSuffix(host, "]"), "[")
	if host == "" {
		return r.fail(&ConfigError{Msg: fmt.Sprintf("empty host in %q", rawurl)})
	}

	r.transport = &TCPTransport{Host: host, Port: port, TLS: useTLS}
	return r
}

// UnixSocket targets the service socket at path. Calling UnixSocket after
// Tcp replaces the transport: the last call wins.
func (r *Request) UnixSocket(path string) *Request {
	if path == "" {
		return r.fail(&ConfigError{Msg: "empty socket path"})
	}
	r.transport = &UnixTransport{Path: path}
	return r
}

// WithTimeout bounds the whole exchange. Zero or unset means the process
// default (see DefaultTimeout).
func (r *Request) WithTimeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Secure controls TLS certificate verification. Secure(false) disables
// peer validation for this request only; the default is verification on.
func (r *Request) Secure(enabled bool) *Request {
	r.skipVerify = !enabled
	return r
}

// Get sets the method to GET and the request path.
func (r *Request) Get(path string) *Request { return r.setMethod("GET", path) }

// Put sets the method to PUT and the request path.
func (r *Request) Put(path string) *Request { return r.setMethod("PUT", path) }

// Post sets the method to POST and the request path.
func (r *Request) Post(path string) *Request { return r.setMethod("POST", path) }

// Delete sets the method to DELETE and the request path.
func (r *Request) Delete(path string) *Request { return r.setMethod("DELETE", path) }

func (r *Request) setMethod(method, path string) *Request {
	r.method = method
	r.path = path
	return r
}

// SetHeader inserts or overwrites a header. Keys are case-sensitive and
// kept in first-insertion order; setting the same key again replaces the
// value in place.
func (r *Request) SetHeader(key, value string) *Request {
	if i, ok := r.headerIdx[key]; ok {
		r.headers[i].value = value
		return r
	}
	r.headerIdx[key] = len(r.headers)
	r.headers = append(r.headers, headerPair{key: key, value: value})
	return r
}

// Send sets the request body. Strings and byte slices are sent verbatim;
// any other value is JSON-encoded and Content-Type is forced to
// application/json. An encoding failure is surfaced by End as a
// *RequestError.
func (r *Request) Send(v interface{}) *Request {
	switch body := v.(type) {
	case string:
		r.body = []byte(body)
	case []byte:
		r.body = body
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			if r.assembleErr == nil {
				r.assembleErr = &RequestError{Msg: "encode request body", Err: err}
			}
			return r
		}
		r.body = encoded
		r.SetHeader("Content-Type", "application/json")
	}
	return r
}

// WithLogger overrides the failure log sink for this request.
func (r *Request) WithLogger(l Logger) *Request {
	r.logger = l
	return r
}

// Err returns the configuration error recorded so far, if any. End
// surfaces the same error; this accessor exists for callers that want to
// stop before executing.
func (r *Request) Err() error {
	return r.configErr
}

func (r *Request) fail(err error) *Request {
	if r.configErr == nil {
		r.configErr = err
	}
	return r
}

func (r *Request) log() Logger {
	if r.logger != nil {
		return r.logger
	}
	return defaultLogger
}

// hostHeader derives the Host header value from the transport target.
func (r *Request) hostHeader() string {
	switch t := r.transport.(type) {
	case *TCPTransport:
		if (t.TLS && t.Port == 443) || (!t.TLS && t.Port == 80) {
			return t.Host
		}
		return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
	case *UnixTransport:
		return "localhost"
	default:
		return "localhost"
	}
}
