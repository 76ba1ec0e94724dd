package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "database.json"))

	_, err := store.Read(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}

func TestFileStore_WriteReplacesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "database.json")
	store := NewFileStore(path)

	require.NoError(t, store.Write(ctx, []byte(`{"users":[],"passes":[{"id":"1"}]}`)))
	require.NoError(t, store.Write(ctx, []byte(`{"users":[],"passes":[]}`)))

	data, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[],"passes":[]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_WriteKeepsReadableMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	store := NewFileStore(path)

	require.NoError(t, store.Write(context.Background(), []byte("{}")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestFileStore_WriteFailsForMissingDir(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope", "database.json"))

	assert.Error(t, store.Write(context.Background(), []byte("{}")))
	assert.Error(t, store.Ping(context.Background()))
}

func TestFileStore_WithRepositoryCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	repo := NewSnapshotRepository(NewFileStore(path), testSeed, WithDiagnostic(func(string, error) {}))

	snap := repo.Load(ctx)
	assert.Equal(t, "student1", snap.Users[0].Username)

	require.NoError(t, repo.Save(ctx, snap))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"users\": [")
}
