package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/internal/adapters/cache"
	"go.trai.ch/haul/internal/core/domain"
)

func writeScratch(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStore_StoreTarball(t *testing.T) {
	t.Parallel()

	t.Run("installs under globals and removes the scratch copy", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		scratch := t.TempDir()
		store := cache.NewStore(root)

		src := writeScratch(t, scratch, "libwidget.tar", "tarball-bytes")
		require.NoError(t, store.StoreTarball("libwidget", 3, "x", src))

		assert.True(t, store.IsCached("libwidget", 3, "x"))
		assert.NoFileExists(t, src)

		want := filepath.Join(root, "globals", "x", "libwidget", "3", "libwidget.tar")
		assert.Equal(t, want, store.PathOf("libwidget", 3, "x"))
		data, err := os.ReadFile(want)
		require.NoError(t, err)
		assert.Equal(t, "tarball-bytes", string(data))
	})

	t.Run("globals region is append-only", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		scratch := t.TempDir()
		store := cache.NewStore(root)

		first := writeScratch(t, scratch, "libwidget.tar", "first")
		require.NoError(t, store.StoreTarball("libwidget", 3, "x", first))

		second := writeScratch(t, scratch, "libwidget.tar", "second")
		require.NoError(t, store.StoreTarball("libwidget", 3, "x", second))

		data, err := os.ReadFile(store.PathOf("libwidget", 3, "x"))
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("missing scratch tarball is reported", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		err := store.StoreTarball("libwidget", 3, "x", filepath.Join(t.TempDir(), "absent.tar"))
		require.ErrorIs(t, err, domain.ErrMissingTarball)
	})

	t.Run("no temporary files remain after install", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		store := cache.NewStore(root)
		src := writeScratch(t, t.TempDir(), "libwidget.tar", "bytes")
		require.NoError(t, store.StoreTarball("libwidget", 1, "global", src))

		destDir := filepath.Dir(store.PathOf("libwidget", 1, "global"))
		entries, err := os.ReadDir(destDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "libwidget.tar", entries[0].Name())
	})
}

func TestStore_IsCached(t *testing.T) {
	t.Parallel()

	t.Run("miss on empty cache", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		assert.False(t, store.IsCached("libwidget", 3, "x"))
	})

	t.Run("environments are separate buckets", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		store := cache.NewStore(root)
		src := writeScratch(t, t.TempDir(), "libwidget.tar", "bytes")
		require.NoError(t, store.StoreTarball("libwidget", 3, "x", src))

		assert.True(t, store.IsCached("libwidget", 3, "x"))
		assert.False(t, store.IsCached("libwidget", 3, "y"))
		assert.False(t, store.IsCached("libwidget", 3, domain.GlobalEnvironment))
	})

	t.Run("a directory at the tarball path is not a hit", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		store := cache.NewStore(root)
		require.NoError(t, os.MkdirAll(store.PathOf("libwidget", 3, "x"), 0o750))
		assert.False(t, store.IsCached("libwidget", 3, "x"))
	})
}

func TestStore_Stash(t *testing.T) {
	t.Parallel()

	newOutput := func(t *testing.T) string {
		t.Helper()
		out := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(out, "lib"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(out, "lib", "libwidget.a"), []byte("obj"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(out, "lockfile.json"), []byte("{}"), 0o600))
		return out
	}

	t.Run("copies the output tree", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		require.NoError(t, store.StashOutput("app", "wip", newOutput(t)))

		dir, err := store.StashPath("app", "wip")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "lib", "libwidget.a"))
		assert.FileExists(t, filepath.Join(dir, "lockfile.json"))
	})

	t.Run("restash replaces the previous tree", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		require.NoError(t, store.StashOutput("app", "wip", newOutput(t)))

		out := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(out, "only.txt"), []byte("x"), 0o600))
		require.NoError(t, store.StashOutput("app", "wip", out))

		dir, err := store.StashPath("app", "wip")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "only.txt"))
		assert.NoFileExists(t, filepath.Join(dir, "lockfile.json"))
	})

	t.Run("integer labels are rejected", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		err := store.StashOutput("app", "0", newOutput(t))
		require.ErrorIs(t, err, domain.ErrInvalidStashName)

		err = store.StashOutput("app", "42", newOutput(t))
		require.ErrorIs(t, err, domain.ErrInvalidStashName)
	})

	t.Run("missing output directory is reported", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		err := store.StashOutput("app", "wip", filepath.Join(t.TempDir(), "OUTPUT"))
		require.ErrorIs(t, err, domain.ErrMissingBuild)
	})

	t.Run("unknown label is reported", func(t *testing.T) {
		t.Parallel()
		store := cache.NewStore(t.TempDir())
		_, err := store.StashPath("app", "nope")
		require.ErrorIs(t, err, domain.ErrMissingStashArtifact)
	})
}
