package analysis

import "github.com/pkg/errors"

var (
	// ErrNotFound marks expected absence: a missing report, an empty fight
	// list, an empty roster, a table without rows. The enclosing unit of
	// work is skipped with a warning, never failed.
	ErrNotFound = errors.New("not found")

	// ErrBadConfig marks a broken metric configuration. It is never
	// swallowed; the whole run stops.
	ErrBadConfig = errors.New("bad metric config")
)
