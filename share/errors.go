package share

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// IsContextClosedError reports whether err is a cancellation or deadline,
// possibly wrapped by net/url or pkg/errors.
func IsContextClosedError(err error) bool {
	if err == nil {
		return false
	}

	err = errors.Cause(err)
	switch e := err.(type) {
	case *url.Error:
		err = e.Err
	}

	switch err {
	case context.Canceled:
	case context.DeadlineExceeded:
	default:
		return false
	}

	return true
}
