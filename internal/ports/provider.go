package ports

import "context"

// ContentProvider supplies raw note content by key. Implementations should
// return an empty string (or an error the caller may ignore) for missing
// keys; compilation treats both the same way.
type ContentProvider interface {
	Read(ctx context.Context, key string) (string, error)
}

// LinkResolver maps wiki-link text, relative to the note containing it, to
// a vault key. ok is false when the link points at nothing in the vault.
type LinkResolver interface {
	Resolve(linkText, fromKey string) (resolvedKey string, ok bool)
}

// ItemSource enumerates and stats vault entries for building item sets.
// Expand resolves a file or folder reference to concrete note keys; folder
// references expand recursively, subject to ignore patterns and a
// text-file check.
type ItemSource interface {
	Expand(ref string, ignore []string) ([]string, error)
	Stat(key string) (mtime, size int64, err error)
}
