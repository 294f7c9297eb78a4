package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   uint32
		wantOK bool
	}{
		{name: "positive", in: "3", want: 3, wantOK: true},
		{name: "zero", in: "0", want: 0, wantOK: true},
		{name: "large", in: "4294967295", want: 4294967295, wantOK: true},
		{name: "overflow", in: "4294967296", wantOK: false},
		{name: "negative", in: "-1", wantOK: false},
		{name: "label", in: "wip", wantOK: false},
		{name: "experimental", in: "EXPERIMENTAL+deadbeef", wantOK: false},
		{name: "empty", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := domain.ParseVersion(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseSpecifier(t *testing.T) {
	t.Parallel()

	t.Run("bare name requests latest", func(t *testing.T) {
		t.Parallel()
		spec, err := domain.ParseSpecifier("libwidget")
		require.NoError(t, err)
		assert.Equal(t, "libwidget", spec.Name)
		assert.Nil(t, spec.Version)
		assert.False(t, spec.IsStash())
	})

	t.Run("integer version", func(t *testing.T) {
		t.Parallel()
		spec, err := domain.ParseSpecifier("libwidget=42")
		require.NoError(t, err)
		require.NotNil(t, spec.Version)
		assert.Equal(t, uint32(42), *spec.Version)
		assert.False(t, spec.IsStash())
	})

	t.Run("version zero is an integer", func(t *testing.T) {
		t.Parallel()
		spec, err := domain.ParseSpecifier("libwidget=0")
		require.NoError(t, err)
		require.NotNil(t, spec.Version)
		assert.Equal(t, uint32(0), *spec.Version)
		assert.False(t, spec.IsStash())
	})

	t.Run("stash label", func(t *testing.T) {
		t.Parallel()
		spec, err := domain.ParseSpecifier("libwidget=wip")
		require.NoError(t, err)
		assert.Nil(t, spec.Version)
		assert.Equal(t, "wip", spec.Label)
		assert.True(t, spec.IsStash())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		_, err := domain.ParseSpecifier("=3")
		require.Error(t, err)
	})

	t.Run("empty version rejected", func(t *testing.T) {
		t.Parallel()
		_, err := domain.ParseSpecifier("libwidget=")
		require.Error(t, err)
	})
}
