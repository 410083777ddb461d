package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidKey = errors.New("invalid key")
	ErrNotText    = errors.New("not a text file")
)

// ResolveError reports a reference that could not be resolved against the
// vault.
type ResolveError struct {
	Ref     string
	FromKey string
}

func (e *ResolveError) Error() string {
	if e.FromKey != "" {
		return fmt.Sprintf("cannot resolve %q from %s", e.Ref, e.FromKey)
	}
	return fmt.Sprintf("cannot resolve %q", e.Ref)
}

func (e *ResolveError) Is(target error) bool {
	return target == ErrNotFound
}
