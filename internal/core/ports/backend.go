package ports

import (
	"context"

	"go.trai.ch/haul/internal/core/domain"
)

// Backend defines the interface to the remote artifact repository.
//
//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type Backend interface {
	// Resolve maps a component name, optional version and environment to a
	// remote tarball URL and a resolved integer version. A nil version selects
	// the latest published version for (name, environment); an empty
	// environment selects the global bucket.
	Resolve(ctx context.Context, name string, version *uint32, environment string) (domain.Component, error)

	// Download performs an HTTP GET of url into the file at dest.
	// A non-success status is an error; no retries are attempted.
	Download(ctx context.Context, url, dest string) error
}
