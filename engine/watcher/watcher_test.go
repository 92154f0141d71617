package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garment.glb")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	var reloads atomic.Int32
	w, err := NewWatcher(path, func() { reloads.Add(1) }, WithDebounce(100*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
	}

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garment.glb")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	var reloads atomic.Int32
	w, err := NewWatcher(path, func() { reloads.Add(1) }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())
}

func TestWatcherPostsReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garment.glb")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	posted := make(chan func(), 4)
	w, err := NewWatcher(path, func() {}, WithDebounce(20*time.Millisecond), WithPoster(func(fn func()) { posted <- fn }))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, path, w.Path())

	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))
	select {
	case fn := <-posted:
		assert.NotNil(t, fn)
	case <-time.After(3 * time.Second):
		t.Fatal("reload was not posted")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garment.glb")
	w, err := NewWatcher(path, func() {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "garment.glb"), func() {})
	assert.Error(t, err)
}
