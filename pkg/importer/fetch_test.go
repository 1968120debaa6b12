package importer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	perrors "github.com/protoboard/protoboard/pkg/errors"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want perrors.Code
	}{
		{"deadline", context.DeadlineExceeded, perrors.ErrCodeTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), perrors.ErrCodeTimeout},
		{"net timeout", &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}, perrors.ErrCodeTimeout},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, perrors.ErrCodeNetwork},
		{"cancelled", context.Canceled, perrors.ErrCodeNetwork},
		{"status", errors.New("unexpected status 404"), perrors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyFetchError(tt.err, "https://r.jina.ai/https://example.com")
			if got := perrors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("classified error should wrap the cause")
			}
			if got := perrors.UserMessage(err); got != "fetch https://r.jina.ai/https://example.com" {
				t.Errorf("UserMessage = %q", got)
			}
		})
	}
}
