package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lit.frag"), []byte("x"), 0o644))

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, w.Changed()...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, changed, "lit.frag")
}

func TestWatcherChangedDrainsSorted(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	w.mark("post.frag")
	w.mark("lit.frag")
	w.mark("post.frag")
	assert.Equal(t, []string{"lit.frag", "post.frag"}, w.Changed())
	assert.Nil(t, w.Changed())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
