package ports

// GraphSource exposes the link graph traversal walks over. Keys passed in
// may carry fragments; implementations resolve them to their base note.
type GraphSource interface {
	// Outlinks returns the resolved targets referenced from a note.
	Outlinks(key string) ([]string, error)

	// Inlinks returns the notes referencing a note.
	Inlinks(key string) ([]string, error)

	// Embeds returns the subset of a note's outbound references written
	// with embed syntax.
	Embeds(key string) (map[string]bool, error)

	// Stat returns provenance metadata for a note.
	Stat(key string) (mtime, size int64, err error)
}
