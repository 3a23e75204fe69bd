package http

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// Response is one completed exchange. It is immutable once End returns it;
// the only internal mutation afterwards is the lazily built header index.
type Response struct {
	statusCode    int
	statusMessage string

	// rawHeaders alternates name/value exactly as received: order
	// preserved, duplicates kept, no case folding.
	rawHeaders []string

	body strings.Builder

	indexOnce   sync.Once
	headerIndex map[string]string
}

func newResponse(head *responseHead) *Response {
	return &Response{
		statusCode:    head.statusCode,
		statusMessage: head.statusMessage,
		rawHeaders:    head.rawHeaders,
	}
}

func (r *Response) appendBody(chunk []byte) {
	r.body.Write(chunk)
}

// StatusCode returns the numeric status of the response.
func (r *Response) StatusCode() int { return r.statusCode }

// StatusMessage returns the reason phrase from the status line.
func (r *Response) StatusMessage() string { return r.statusMessage }

// RawHeaders returns the header sequence as received: alternating
// name/value, order preserved, duplicates included. Callers that need
// multi-value headers (Set-Cookie and friends) walk this directly.
func (r *Response) RawHeaders() []string {
	out := make([]string, len(r.rawHeaders))
	copy(out, r.rawHeaders)
	return out
}

// Header returns the value for name, or "" if absent. Lookup is
// case-sensitive; when a name repeats the last occurrence wins. The index
// is built once, on first call.
func (r *Response) Header(name string) string {
	r.indexOnce.Do(func() {
		r.headerIndex = make(map[string]string, len(r.rawHeaders)/2)
		for i := 0; i+1 < len(r.rawHeaders); i += 2 {
			r.headerIndex[r.rawHeaders[i]] = r.rawHeaders[i+1]
		}
	})
	return r.headerIndex[name]
}

// String returns the body text verbatim.
func (r *Response) String() string {
	return r.body.String()
}

// JSON decodes the body into v. A body that is not valid JSON yields a
// *ReadError wrapping the decode failure.
func (r *Response) JSON(v interface{}) error {
	if err := json.Unmarshal([]byte(r.body.String()), v); err != nil {
		return &ReadError{Msg: "parse response body", Err: err}
	}
	return nil
}

// JSONPassive parses the body as JSON, returning the Null result when the
// body is empty or not valid JSON. It never fails; callers that tolerate
// non-JSON bodies use this instead of JSON.
func (r *Response) JSONPassive() gjson.Result {
	s := r.body.String()
	if !gjson.Valid(s) {
		return gjson.Result{}
	}
	return gjson.Parse(s)
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}
