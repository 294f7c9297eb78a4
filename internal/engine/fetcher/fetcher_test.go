package fetcher_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/internal/adapters/logger"
	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports/mocks"
	"go.trai.ch/haul/internal/engine/fetcher"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(io.Discard)
	return lg
}

func version(v uint32) *uint32 { return &v }

func TestFetcher_Fetch(t *testing.T) {
	libwidget := domain.Component{
		Name:        "libwidget",
		Version:     3,
		Environment: "x",
		TarballURL:  "https://repo.example.com/x/libwidget/3/libwidget.tar.gz",
	}

	t.Run("cold fetch downloads and installs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		cache := mocks.NewMockCache(ctrl)

		workdir := t.TempDir()
		scratch := domain.ScratchTarballPath(workdir, "libwidget")

		backend.EXPECT().
			Resolve(gomock.Any(), "libwidget", version(3), "x").
			Return(libwidget, nil)
		gomock.InOrder(
			cache.EXPECT().IsCached("libwidget", uint32(3), "x").Return(false),
			backend.EXPECT().
				Download(gomock.Any(), libwidget.TarballURL, scratch).
				DoAndReturn(func(_ context.Context, _, dest string) error {
					return writeFile(t, dest, "tarball-bytes")
				}),
			cache.EXPECT().StoreTarball("libwidget", uint32(3), "x", scratch).Return(nil),
			cache.EXPECT().IsCached("libwidget", uint32(3), "x").Return(true),
			cache.EXPECT().PathOf("libwidget", uint32(3), "x").Return("/cache/globals/x/libwidget/3/libwidget.tar"),
		)

		f := fetcher.NewFetcher(backend, cache, newTestLogger(t), workdir)
		path, got, err := f.Fetch(context.Background(), "libwidget", version(3), "x")
		require.NoError(t, err)
		assert.Equal(t, "/cache/globals/x/libwidget/3/libwidget.tar", path)
		assert.Equal(t, libwidget, got)
	})

	t.Run("warm cache never touches the network", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		cache := mocks.NewMockCache(ctrl)

		backend.EXPECT().
			Resolve(gomock.Any(), "libwidget", version(3), "x").
			Return(libwidget, nil)
		cache.EXPECT().IsCached("libwidget", uint32(3), "x").Return(true)
		cache.EXPECT().PathOf("libwidget", uint32(3), "x").Return("/cache/globals/x/libwidget/3/libwidget.tar")

		f := fetcher.NewFetcher(backend, cache, newTestLogger(t), t.TempDir())
		path, got, err := f.Fetch(context.Background(), "libwidget", version(3), "x")
		require.NoError(t, err)
		assert.Equal(t, "/cache/globals/x/libwidget/3/libwidget.tar", path)
		assert.Equal(t, uint32(3), got.Version)
	})

	t.Run("resolve failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		cache := mocks.NewMockCache(ctrl)

		backend.EXPECT().
			Resolve(gomock.Any(), "ghost", nil, "x").
			Return(domain.Component{}, domain.ErrMissingComponent)

		f := fetcher.NewFetcher(backend, cache, newTestLogger(t), t.TempDir())
		_, _, err := f.Fetch(context.Background(), "ghost", nil, "x")
		require.ErrorIs(t, err, domain.ErrMissingComponent)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockBackend(ctrl)
		cache := mocks.NewMockCache(ctrl)

		workdir := t.TempDir()
		scratch := domain.ScratchTarballPath(workdir, "libwidget")

		backend.EXPECT().
			Resolve(gomock.Any(), "libwidget", nil, "x").
			Return(libwidget, nil)
		cache.EXPECT().IsCached("libwidget", uint32(3), "x").Return(false)
		backend.EXPECT().
			Download(gomock.Any(), libwidget.TarballURL, scratch).
			DoAndReturn(func(_ context.Context, _, dest string) error {
				return writeFile(t, dest, "tarball-bytes")
			})
		storeErr := zerr.New("disk full")
		cache.EXPECT().StoreTarball("libwidget", uint32(3), "x", scratch).Return(storeErr)

		f := fetcher.NewFetcher(backend, cache, newTestLogger(t), workdir)
		_, _, err := f.Fetch(context.Background(), "libwidget", nil, "x")
		require.ErrorIs(t, err, storeErr)
	})
}

func writeFile(t *testing.T, path, content string) error {
	t.Helper()
	return os.WriteFile(path, []byte(content), 0o600)
}
