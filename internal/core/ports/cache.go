package ports

// Cache defines the interface for the content-addressed artifact cache.
// The globals region is append-only; the stash region is mutable.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type Cache interface {
	// IsCached reports whether the tarball for (name, version, environment)
	// exists in the globals region as a regular file.
	IsCached(name string, version uint32, environment string) bool

	// PathOf returns the structural cache path for (name, version, environment)
	// without checking existence.
	PathOf(name string, version uint32, environment string) string

	// StoreTarball moves the tarball at src into the globals region.
	// The install is atomic at the destination: a sibling temporary file is
	// written first and renamed into place. Storing over an existing entry is
	// a no-op success.
	StoreTarball(name string, version uint32, environment, src string) error

	// StashOutput recursively copies the build output directory into the stash
	// region under the owner's name and the given label. Labels that parse as
	// non-negative integers are rejected.
	StashOutput(owner, label, sourceDir string) error

	// StashPath returns the stashed directory for (name, label), or
	// ErrMissingStashArtifact if nothing is stashed under that label.
	StashPath(name, label string) (string, error)
}
