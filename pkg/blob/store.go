package blob

import "context"

// Store is the object-storage contract the scope engine depends on.
// Scope JSON, generated diagrams and questionnaire JSON are persisted here
// under a per-project path prefix.
type Store interface {
	Upload(ctx context.Context, data []byte, path string, overwrite bool) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
	// Rename moves a blob, replacing any blob already at newPath. Generated
	// artifacts are staged under a temporary name and swapped in with Rename
	// so the previous version survives until its replacement is fully stored.
	Rename(ctx context.Context, oldPath, newPath string) error
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	DeletePrefix(ctx context.Context, prefix string) error
	URL(path string) string
}
