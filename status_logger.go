package push

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// StatusLogger is an [http.RoundTripper] that records unsuccessful responses.
// For every response outside the 2xx range it writes one line holding the
// request URL, the status code and the response Date header, separated by
// tabs. Requests and responses pass through unchanged.
//
// Install it with [WithTransport]. It is safe for concurrent use.
type StatusLogger struct {
	next   http.RoundTripper
	out    io.Writer
	mu     sync.Mutex
	writer *bufio.Writer
}

var _ http.RoundTripper = (*StatusLogger)(nil)

// NewStatusLogger returns a StatusLogger writing to w and delegating requests
// to next, or to [http.DefaultTransport] when next is nil.
func NewStatusLogger(w io.Writer, next http.RoundTripper) *StatusLogger {
	if next == nil {
		next = http.DefaultTransport
	}

	return &StatusLogger{
		next:   next,
		out:    w,
		writer: bufio.NewWriter(w),
	}
}

func (l *StatusLogger) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.record(req, resp)
	}

	return resp, nil
}

func (l *StatusLogger) record(req *http.Request, resp *http.Response) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.writer, "%s\t%d\t%s\n", req.URL, resp.StatusCode, resp.Header.Get("Date"))
	_ = l.writer.Flush()
}

// Close flushes pending output and closes the underlying writer if it is an
// [io.Closer].
func (l *StatusLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush status log: %w", err)
	}

	if c, ok := l.out.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
