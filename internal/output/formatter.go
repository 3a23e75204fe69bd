// Package output renders requests and responses for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/parley/internal/http"
)

// Formatter renders exchanges in text form.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. With noColor set, all output is plain.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

// FormatRequest renders the outgoing request line and headers.
func (f *Formatter) FormatRequest(method, target, path string, headers [][2]string, body string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "▶ %s %s%s\n", f.scheme.Method.Sprint(method), f.scheme.URL.Sprint(target), path)

	if f.Verbose {
		for _, h := range headers {
			fmt.Fprintf(&buf, "  %s: %s\n", f.scheme.HeaderKey.Sprint(h[0]), f.scheme.HeaderValue.Sprint(h[1]))
		}
	}
	if body != "" {
		fmt.Fprintf(&buf, "  %s\n", prettyJSON(body))
	}
	return buf.String()
}

// FormatResponse renders the status line, headers (verbose only) and body.
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	status := f.scheme.StatusError
	switch {
	case resp.IsSuccess():
		status = f.scheme.StatusOK
	case resp.StatusCode() >= 300 && resp.StatusCode() < 400:
		status = f.scheme.StatusWarn
	}
	fmt.Fprintf(&buf, "◀ %s\n", status.Sprintf("%d %s", resp.StatusCode(), resp.StatusMessage()))

	if f.Verbose {
		raw := resp.RawHeaders()
		for i := 0; i+1 < len(raw); i += 2 {
			fmt.Fprintf(&buf, "  %s: %s\n", f.scheme.HeaderKey.Sprint(raw[i]), f.scheme.HeaderValue.Sprint(raw[i+1]))
		}
	}
	if body := resp.String(); body != "" {
		buf.WriteString(prettyJSON(body))
		buf.WriteString("\n")
	}
	return buf.String()
}

// FormatError renders a failed exchange.
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("✗ %s\n", f.scheme.Error.Sprint(err.Error()))
}

// prettyJSON indents a JSON body; anything else passes through verbatim.
func prettyJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}
