package ports

import "go.trai.ch/haul/internal/core/domain"

// LockfileStore defines the interface for reading and writing lockfile trees.
//
//go:generate mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Load reads a single lockfile from path.
	Load(path string) (*domain.Lockfile, error)

	// Populate scans INPUT under workdir and installs each component's
	// lockfile as a child of root. An absent INPUT directory is not an error;
	// a component directory without a lockfile is ErrMissingLockfile.
	Populate(root *domain.Lockfile, workdir string) error

	// Write persists the tree to path as pretty-printed JSON with a trailing newline.
	Write(path string, lf *domain.Lockfile) error
}
