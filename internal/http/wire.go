package http

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single status or header line.
const maxLineBytes = 1 << 20

// headerPair is one name/value pair in insertion order.
type headerPair struct {
	key   string
	value string
}

// writeRequest serializes one HTTP/1.1 request: request line, headers in
// insertion order, then the body. Host, Content-Length and Connection are
// filled in unless the caller set them; Connection is always close since a
// Request performs exactly one exchange.
func writeRequest(w io.Writer, method, path, host string, headers []headerPair, body []byte) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s %s HTTP/1.1\r\n", method, path); err != nil {
		return err
	}

	hasHost := false
	hasLength := false
	hasConnection := false
	for _, h := range headers {
		switch {
		case strings.EqualFold(h.key, "Host"):
			hasHost = true
		case strings.EqualFold(h.key, "Content-Length"):
			hasLength = true
		case strings.EqualFold(h.key, "Connection"):
			hasConnection = true
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", h.key, h.value); err != nil {
			return err
		}
	}

	if !hasHost {
		if _, err := fmt.Fprintf(bw, "Host: %s\r\n", host); err != nil {
			return err
		}
	}
	if !hasLength && len(body) > 0 {
		if _, err := fmt.Fprintf(bw, "Content-Length: %d\r\n", len(body)); err != nil {
			return err
		}
	}
	if !hasConnection {
		if _, err := io.WriteString(bw, "Connection: close\r\n"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(bw, "\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// responseHead is the status line plus the raw header sequence exactly as
// received: alternating name/value, order preserved, duplicates kept.
type responseHead struct {
	proto         string
	statusCode    int
	statusMessage string
	rawHeaders    []string
}

func readResponseHead(br *bufio.Reader) (*responseHead, error) {
	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/1.") {
		return nil, fmt.Errorf("malformed status line %q", line)
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed status code in %q", line)
	}
	head := &responseHead{
		proto:      parts[0],
		statusCode: code,
	}
	if len(parts) == 3 {
		head.statusMessage = parts[2]
	}

	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, fmt.Errorf("malformed header line %q", line)
		}
		name := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		head.rawHeaders = append(head.rawHeaders, name, value)
	}
	return head, nil
}

// rawHeaderValue scans the raw pairs for the last occurrence of name,
// case-insensitively. The wire layer needs this for framing headers only;
// the caller-facing lookup on Response stays case-sensitive.
func rawHeaderValue(rawHeaders []string, name string) string {
	value := ""
	for i := 0; i+1 < len(rawHeaders); i += 2 {
		if strings.EqualFold(rawHeaders[i], name) {
			value = rawHeaders[i+1]
		}
	}
	return value
}

// readBody streams the response body, delivering each chunk to onData in
// arrival order. onData is never called after readBody returns. Framing is
// chosen from the head: chunked transfer coding, Content-Length, or
// read-to-EOF (the server closes the connection).
func readBody(br *bufio.Reader, head *responseHead, onData func([]byte)) error {
	if head.statusCode < 200 || head.statusCode == 204 || head.statusCode == 304 {
		return nil
	}

	if te := rawHeaderValue(head.rawHeaders, "Transfer-Encoding"); strings.Contains(strings.ToLower(te), "chunked") {
		return readChunked(br, onData)
	}

	if cl := rawHeaderValue(head.rawHeaders, "Content-Length"); cl != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("malformed Content-Length %q", cl)
		}
		return copyExactly(br, n, onData)
	}

	// No framing information: body runs until the peer closes.
	return copyChunks(br, onData)
}

// copyExactly reads exactly n bytes, forwarding every read to onData. A
// connection that closes early yields io.ErrUnexpectedEOF so a truncated
// body is never mistaken for a complete one.
func copyExactly(r io.Reader, n int64, onData func([]byte)) error {
	buf := make([]byte, 4096)
	remain := n
	for remain > 0 {
		toRead := int64(len(buf))
		if toRead > remain {
			toRead = remain
		}
		m, err := r.Read(buf[:toRead])
		if m > 0 {
			onData(buf[:m])
			remain -= int64(m)
		}
		if err == io.EOF {
			if remain > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// copyChunks reads r to completion, forwarding every read to onData.
func copyChunks(r io.Reader, onData func([]byte)) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			onData(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// readChunked decodes Transfer-Encoding: chunked, discarding trailers.
func readChunked(br *bufio.Reader, onData func([]byte)) error {
	buf := make([]byte, 4096)
	for {
		size, err := readChunkSize(br)
		if err != nil {
			return err
		}
		if size == 0 {
			return discardTrailers(br)
		}
		remain := size
		for remain > 0 {
			toRead := int64(len(buf))
			if toRead > remain {
				toRead = remain
			}
			n, err := io.ReadFull(br, buf[:toRead])
			if n > 0 {
				onData(buf[:n])
				remain -= int64(n)
			}
			if err != nil {
				return err
			}
		}
		if err := expectCRLF(br); err != nil {
			return err
		}
	}
}

func readChunkSize(br *bufio.Reader) (int64, error) {
	line, err := readLine(br)
	if err != nil {
		return 0, err
	}
	// Strip chunk extensions: "<hex>;<ext>".
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, fmt.Errorf("missing chunk size")
	}
	n, err := strconv.ParseInt(line, 16, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed chunk size %q", line)
	}
	return n, nil
}

func discardTrailers(br *bufio.Reader) error {
	for {
		line, err := readLine(br)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}

func expectCRLF(br *bufio.Reader) error {
	b1, err := br.ReadByte()
	if err != nil {
		return err
	}
	b2, err := br.ReadByte()
	if err != nil {
		return err
	}
	if b1 != '\r' || b2 != '\n' {
		return fmt.Errorf("missing CRLF after chunk")
	}
	return nil
}

func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if sb.Len() > maxLineBytes {
			return "", fmt.Errorf("header line exceeds %d bytes", maxLineBytes)
		}
	}
}
