package http

import (
	"sync/atomic"
	"time"
)

// defaultTimeoutMillis is the process-wide exchange timeout, read at
// execute time by every Request that was not given its own timeout.
// It changes rarely (typically once at startup), hence a bare atomic.
var defaultTimeoutMillis atomic.Int64

func init() {
	defaultTimeoutMillis.Store(20000)
}

// DefaultTimeout returns the process-wide exchange timeout.
func DefaultTimeout() time.Duration {
	return time.Duration(defaultTimeoutMillis.Load()) * time.Millisecond
}

// SetDefaultTimeout overrides the process-wide exchange timeout. Values
// below one millisecond are ignored.
func SetDefaultTimeout(d time.Duration) {
	if d < time.Millisecond {
		return
	}
	defaultTimeoutMillis.Store(d.Milliseconds())
}
