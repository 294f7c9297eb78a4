package ports

import (
	"context"

	"go.trai.ch/haul/internal/core/domain"
)

// Fetcher defines the download-once pipeline: resolve against the backend,
// download on cache miss, and install into the cache.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch returns the cache path of the tarball for the requested component
	// along with its resolved identity. On success the artifact is guaranteed
	// to be in the cache.
	Fetch(ctx context.Context, name string, version *uint32, environment string) (string, domain.Component, error)
}
