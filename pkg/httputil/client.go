package httputil

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/protoboard/protoboard/pkg/buildinfo"
	"github.com/protoboard/protoboard/pkg/observability"
)

// DefaultTimeout bounds a single outgoing request.
const DefaultTimeout = 15 * time.Second

// NewClient returns a resty client that reports every request and response
// to the registered observability HTTP hooks. A zero timeout uses
// DefaultTimeout.
func NewClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", buildinfo.UserAgent())

	c.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		observability.HTTP().OnRequest(r.Context(), r.Method, hostOf(r), pathOf(r))
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		r := resp.Request
		observability.HTTP().OnResponse(r.Context(), r.Method, hostOf(r), pathOf(r), resp.StatusCode(), resp.Time())
		return nil
	})
	c.OnError(func(r *resty.Request, err error) {
		observability.HTTP().OnError(r.Context(), r.Method, hostOf(r), pathOf(r), err)
	})
	return c
}

func hostOf(r *resty.Request) string {
	if u, err := url.Parse(r.URL); err == nil {
		return u.Host
	}
	return ""
}

func pathOf(r *resty.Request) string {
	if u, err := url.Parse(r.URL); err == nil {
		return u.Path
	}
	return r.URL
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
}

// CheckResponse returns nil for 2xx responses. 5xx and 429 responses yield
// a StatusError wrapped in RetryableError, carrying the Retry-After hint
// when the server sent one; other statuses yield a bare StatusError.
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	err := &StatusError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
		return &RetryableError{Err: err, After: RetryAfter(resp.Header(), time.Now())}
	}
	return err
}
