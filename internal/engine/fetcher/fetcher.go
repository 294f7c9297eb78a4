// Package fetcher implements the download-once pipeline: resolve, download
// on cache miss, install into the cache.
package fetcher

import (
	"context"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.Fetcher.
type Fetcher struct {
	backend ports.Backend
	cache   ports.Cache
	logger  ports.Logger
	workdir string
}

// NewFetcher creates a Fetcher downloading scratch tarballs into workdir.
func NewFetcher(backend ports.Backend, cache ports.Cache, logger ports.Logger, workdir string) *Fetcher {
	return &Fetcher{
		backend: backend,
		cache:   cache,
		logger:  logger,
		workdir: workdir,
	}
}

// Fetch returns the cache path of the tarball for the requested component.
// The network is only touched when the cache misses, so repeat fetches of
// pinned versions are fully offline.
func (f *Fetcher) Fetch(ctx context.Context, name string, version *uint32, environment string) (string, domain.Component, error) {
	component, err := f.backend.Resolve(ctx, name, version, environment)
	if err != nil {
		return "", domain.Component{}, err
	}

	if f.cache.IsCached(component.Name, component.Version, component.Environment) {
		f.logger.Debug("cache hit",
			"component", component.Name,
			"version", component.Version,
			"env", component.Environment,
		)
		return f.cache.PathOf(component.Name, component.Version, component.Environment), component, nil
	}

	scratch := domain.ScratchTarballPath(f.workdir, component.Name)
	f.logger.Info("downloading tarball",
		"component", component.Name,
		"version", component.Version,
		"env", component.Environment,
	)
	if err := f.backend.Download(ctx, component.TarballURL, scratch); err != nil {
		return "", domain.Component{}, err
	}

	if digest, err := digestFile(scratch); err == nil {
		f.logger.Debug("tarball downloaded", "component", component.Name, "xxh64", digest)
	}

	if err := f.cache.StoreTarball(component.Name, component.Version, component.Environment, scratch); err != nil {
		return "", domain.Component{}, err
	}

	if !f.cache.IsCached(component.Name, component.Version, component.Environment) {
		return "", domain.Component{}, zerr.With(
			zerr.New("tarball missing from cache after store"),
			"component", component.Name,
		)
	}

	return f.cache.PathOf(component.Name, component.Version, component.Environment), component, nil
}

func digestFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
