// Package httputil provides the HTTP plumbing shared by the importer's
// outgoing requests.
//
// # Overview
//
//   - [NewClient]: a resty client with timeout, user agent and
//     observability hooks wired in
//   - [Retry]: automatic retry with exponential backoff
//   - [CheckResponse]: turns a response into nil, a retryable error, or a
//     permanent one
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// When a 429 or 5xx response carries Retry-After, the next wait is at least
// that long, capped at [MaxRetryAfter].
//
// Other errors (4xx, decode failures) are returned immediately:
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    resp, err := client.R().SetContext(ctx).Get(url)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return httputil.CheckResponse(resp)
//	})
package httputil
