package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FilesystemStore {
	t.Helper()
	store, err := NewFilesystemStore(t.TempDir(), "http://localhost:3000/uploads/")
	require.NoError(t, err)
	return store
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	path, err := store.Upload(ctx, []byte("hello"), "projects/p1/rfp.txt", false)
	require.NoError(t, err)
	assert.Equal(t, "projects/p1/rfp.txt", path)

	data, err := store.Download(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestUploadOverwriteFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("v1"), "a/b.txt", false)
	require.NoError(t, err)

	_, err = store.Upload(ctx, []byte("v2"), "a/b.txt", false)
	assert.Error(t, err)

	_, err = store.Upload(ctx, []byte("v2"), "a/b.txt", true)
	require.NoError(t, err)

	data, err := store.Download(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestUploadLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("v1"), "projects/p1/scope.json", true)
	require.NoError(t, err)
	_, err = store.Upload(ctx, []byte("v2"), "projects/p1/scope.json", true)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(store.rootDir, "projects", "p1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scope.json", entries[0].Name())
}

func TestRenameReplacesDestination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("old"), "projects/p1/architecture.png", false)
	require.NoError(t, err)
	_, err = store.Upload(ctx, []byte("new"), "projects/p1/architecture.png.staging", false)
	require.NoError(t, err)

	require.NoError(t, store.Rename(ctx, "projects/p1/architecture.png.staging", "projects/p1/architecture.png"))

	data, err := store.Download(ctx, "projects/p1/architecture.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)

	exists, err := store.Exists(ctx, "projects/p1/architecture.png.staging")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRenameMissingSource(t *testing.T) {
	store := newTestStore(t)

	err := store.Rename(context.Background(), "projects/p1/nope.png", "projects/p1/architecture.png")
	assert.Error(t, err)
}

func TestExistsAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Upload(ctx, []byte("x"), "present.txt", false)
	require.NoError(t, err)

	exists, err = store.Exists(ctx, "present.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "present.txt"))
	exists, err = store.Exists(ctx, "present.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting a missing blob is not an error
	assert.NoError(t, store.Delete(ctx, "present.txt"))
}

func TestDeletePrefixRemovesFolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("1"), "projects/p1/a.txt", false)
	require.NoError(t, err)
	_, err = store.Upload(ctx, []byte("2"), "projects/p1/b.txt", false)
	require.NoError(t, err)
	_, err = store.Upload(ctx, []byte("3"), "projects/p2/c.txt", false)
	require.NoError(t, err)

	require.NoError(t, store.DeletePrefix(ctx, "projects/p1"))

	exists, _ := store.Exists(ctx, "projects/p1/a.txt")
	assert.False(t, exists)
	exists, _ = store.Exists(ctx, "projects/p2/c.txt")
	assert.True(t, exists)
}

func TestRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("x"), "../escape.txt", true)
	assert.Error(t, err)

	_, err = store.Download(ctx, "a/../../escape.txt")
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "http://localhost:3000/uploads/projects/p1/scope.json", store.URL("projects/p1/scope.json"))
}
