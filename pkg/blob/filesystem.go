package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore keeps blobs on local disk under a root directory. It is the
// development default; the production deployment swaps in a cloud-backed Store
// behind the same interface.
type FilesystemStore struct {
	rootDir string
	baseURL string
}

var _ Store = &FilesystemStore{}

func NewFilesystemStore(rootDir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FilesystemStore{
		rootDir: rootDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// resolve keeps every path inside rootDir. Traversal segments are rejected
// rather than cleaned silently.
func (s *FilesystemStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + path)
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.rootDir, cleaned), nil
}

func (s *FilesystemStore) Upload(ctx context.Context, data []byte, path string, overwrite bool) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(full); err == nil {
			return "", fmt.Errorf("blob %q already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}

	// Write to a sibling temp file and rename it into place, so a failed or
	// interrupted write can never leave a truncated blob at the final path.
	tmp, err := os.CreateTemp(filepath.Dir(full), filepath.Base(full)+".*")
	if err != nil {
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	return path, nil
}

func (s *FilesystemStore) Rename(ctx context.Context, oldPath, newPath string) error {
	oldFull, err := s.resolve(oldPath)
	if err != nil {
		return err
	}
	newFull, err := s.resolve(newPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(newFull), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		return fmt.Errorf("rename blob %q to %q: %w", oldPath, newPath, err)
	}
	return nil
}

func (s *FilesystemStore) Download(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", path, err)
	}
	return data, nil
}

func (s *FilesystemStore) Exists(ctx context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %q: %w", path, err)
	}
	return nil
}

func (s *FilesystemStore) DeletePrefix(ctx context.Context, prefix string) error {
	full, err := s.resolve(prefix)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(full); err != nil {
		return fmt.Errorf("delete blob prefix %q: %w", prefix, err)
	}
	return nil
}

func (s *FilesystemStore) URL(path string) string {
	return s.baseURL + "/" + strings.TrimPrefix(path, "/")
}
