package ports

import "go.trai.ch/haul/internal/core/domain"

// ManifestStore defines the interface for reading and writing manifest.json.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read loads and validates the manifest from the working directory.
	Read() (*domain.Manifest, error)

	// Write persists the manifest atomically. Without force, writing over an
	// existing manifest fails with ErrManifestExists.
	Write(mf *domain.Manifest, force bool) error
}
