package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/internal/core/domain"
)

func TestManifest_UpdateEntry(t *testing.T) {
	t.Parallel()

	t.Run("adds to dependencies", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		mf.UpdateEntry("libwidget", 3, false)
		assert.Equal(t, uint32(3), mf.Dependencies["libwidget"])
		assert.NotContains(t, mf.DevDependencies, "libwidget")
	})

	t.Run("moving to devDependencies keeps the maps disjoint", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		mf.UpdateEntry("libwidget", 3, false)
		mf.UpdateEntry("libwidget", 4, true)

		assert.NotContains(t, mf.Dependencies, "libwidget")
		assert.Equal(t, uint32(4), mf.DevDependencies["libwidget"])
		require.NoError(t, mf.Validate())
	})

	t.Run("version zero is stored", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		mf.UpdateEntry("libwidget", 0, false)
		v, ok := mf.Dependencies["libwidget"]
		require.True(t, ok)
		assert.Equal(t, uint32(0), v)
	})
}

func TestManifest_RemoveEntry(t *testing.T) {
	t.Parallel()

	t.Run("removes existing entry", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		mf.UpdateEntry("libwidget", 3, false)
		require.NoError(t, mf.RemoveEntry("libwidget", false))
		assert.Empty(t, mf.Dependencies)
	})

	t.Run("missing entry returns ErrMissingComponent", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		err := mf.RemoveEntry("libwidget", false)
		require.ErrorIs(t, err, domain.ErrMissingComponent)
	})

	t.Run("dev flag selects the dev map only", func(t *testing.T) {
		t.Parallel()
		mf := domain.NewManifest("app")
		mf.UpdateEntry("libwidget", 3, false)
		err := mf.RemoveEntry("libwidget", true)
		require.ErrorIs(t, err, domain.ErrMissingComponent)
		assert.Contains(t, mf.Dependencies, "libwidget")
	})
}

func TestManifest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("overlapping maps rejected", func(t *testing.T) {
		t.Parallel()
		mf := &domain.Manifest{
			Name:            "app",
			Dependencies:    map[string]uint32{"libwidget": 1},
			DevDependencies: map[string]uint32{"libwidget": 2},
		}
		require.Error(t, mf.Validate())
	})

	t.Run("self dependency rejected", func(t *testing.T) {
		t.Parallel()
		mf := &domain.Manifest{
			Name:         "app",
			Dependencies: map[string]uint32{"app": 1},
		}
		require.Error(t, mf.Validate())
	})
}

func TestManifest_TargetSet(t *testing.T) {
	t.Parallel()

	mf := domain.NewManifest("app")
	mf.UpdateEntry("core", 1, false)
	mf.UpdateEntry("tooling", 2, true)

	t.Run("core only excludes devDependencies", func(t *testing.T) {
		t.Parallel()
		targets := mf.TargetSet(true)
		assert.Equal(t, map[string]uint32{"core": 1}, targets)
	})

	t.Run("full set joins both maps", func(t *testing.T) {
		t.Parallel()
		targets := mf.TargetSet(false)
		assert.Equal(t, map[string]uint32{"core": 1, "tooling": 2}, targets)
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		t.Parallel()
		targets := mf.TargetSet(true)
		delete(targets, "core")
		assert.Contains(t, mf.Dependencies, "core")
	})
}
