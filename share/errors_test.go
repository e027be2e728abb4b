package share

import (
	"context"
	"net/url"
	"testing"

	"github.com/pkg/errors"
)

func TestIsContextClosedError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil", nil, false},
		{"Canceled", context.Canceled, true},
		{"DeadlineExceeded", context.DeadlineExceeded, true},
		{"WrappedCanceled", errors.Wrap(context.Canceled, "query failed"), true},
		{"URLError", &url.Error{Op: "Post", URL: "https://example.com", Err: context.Canceled}, true},
		{"Plain", errors.New("boom"), false},
		{"WrappedPlain", errors.Wrap(errors.New("boom"), "outer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContextClosedError(tt.err); got != tt.expected {
				t.Errorf("IsContextClosedError() = %v, want %v", got, tt.expected)
			}
		})
	}
}
