package artifactory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/internal/adapters/logger"
	"go.trai.ch/haul/internal/core/domain"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(io.Discard)
	return lg
}

func version(v uint32) *uint32 { return &v }

func TestBackend_Resolve(t *testing.T) {
	t.Run("latest queries the repository", func(t *testing.T) {
		var requested string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = r.URL.Path
			fmt.Fprint(w, `{"version":42}`)
		}))
		defer srv.Close()

		b := NewBackend(srv.URL, newTestLogger(t))
		got, err := b.Resolve(context.Background(), "libwidget", nil, "x")
		require.NoError(t, err)

		assert.Equal(t, "/x/libwidget/latest", requested)
		assert.Equal(t, domain.Component{
			Name:        "libwidget",
			Version:     42,
			Environment: "x",
			TarballURL:  srv.URL + "/x/libwidget/42/libwidget.tar.gz",
		}, got)
	})

	t.Run("pinned version resolves without a round trip", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Error("unexpected request")
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		b := NewBackend(srv.URL, newTestLogger(t))
		got, err := b.Resolve(context.Background(), "libwidget", version(7), "x")
		require.NoError(t, err)

		assert.Equal(t, uint32(7), got.Version)
		assert.Equal(t, srv.URL+"/x/libwidget/7/libwidget.tar.gz", got.TarballURL)
	})

	t.Run("empty environment selects the global bucket", func(t *testing.T) {
		b := NewBackend("https://repo.example.com", newTestLogger(t))
		got, err := b.Resolve(context.Background(), "libwidget", version(1), "")
		require.NoError(t, err)

		assert.Equal(t, domain.GlobalEnvironment, got.Environment)
		assert.Equal(t, "https://repo.example.com/global/libwidget/1/libwidget.tar.gz", got.TarballURL)
	})

	t.Run("unknown component", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		b := NewBackend(srv.URL, newTestLogger(t))
		_, err := b.Resolve(context.Background(), "ghost", nil, "x")
		require.ErrorIs(t, err, domain.ErrMissingComponent)
	})

	t.Run("repository failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		b := newBackendWithClient(srv.URL, newTestLogger(t), srv.Client())
		_, err := b.Resolve(context.Background(), "libwidget", nil, "x")
		require.ErrorIs(t, err, domain.ErrArtifactoryFailure)
	})
}

func TestBackend_Download(t *testing.T) {
	t.Run("writes the response body to dest", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "tarball-bytes")
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "libwidget.tar")
		b := NewBackend(srv.URL, newTestLogger(t))
		require.NoError(t, b.Download(context.Background(), srv.URL+"/x/libwidget/1/libwidget.tar.gz", dest))

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "tarball-bytes", string(data))
	})

	t.Run("missing tarball", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "libwidget.tar")
		b := NewBackend(srv.URL, newTestLogger(t))
		err := b.Download(context.Background(), srv.URL+"/x/ghost/1/ghost.tar.gz", dest)
		require.ErrorIs(t, err, domain.ErrMissingComponent)
		assert.NoFileExists(t, dest)
	})
}
