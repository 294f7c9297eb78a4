package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingManifest is returned when manifest.json cannot be found in the working directory.
	ErrMissingManifest = zerr.New("no manifest.json found")

	// ErrMissingConfig is returned when the user configuration file is absent or no
	// writable config location can be determined.
	ErrMissingConfig = zerr.New("no config found, run 'haul configure' first")

	// ErrManifestExists is returned when writing a manifest would overwrite an existing one.
	ErrManifestExists = zerr.New("manifest already exists (use --force to overwrite)")

	// ErrManifestParseFailed is returned when manifest.json cannot be decoded.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrConfigParseFailed is returned when the config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config")

	// ErrLockfileParseFailed is returned when a lockfile.json cannot be decoded.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrMissingComponent is returned when a component is not present in the manifest
	// or unknown to the remote backend.
	ErrMissingComponent = zerr.New("component not found")

	// ErrMissingLockfile is returned when an INPUT subdirectory lacks a lockfile.json.
	ErrMissingLockfile = zerr.New("no lockfile found in INPUT component")

	// ErrMissingTarball is returned when the expected scratch tarball is absent after a download.
	ErrMissingTarball = zerr.New("tarball missing after download")

	// ErrMissingBuild is returned when OUTPUT is absent at stash time.
	ErrMissingBuild = zerr.New("no build found in OUTPUT")

	// ErrMissingStashArtifact is returned when a stash lookup for a label fails.
	ErrMissingStashArtifact = zerr.New("no stashed artifact found in cache")

	// ErrInvalidStashName is returned when a stash label parses as an integer.
	ErrInvalidStashName = zerr.New("stash label must not be an integer")

	// ErrMissingDependencies is returned when a manifest dependency is absent from INPUT.
	ErrMissingDependencies = zerr.New("dependencies missing in INPUT")

	// ErrExtraneousDependencies is returned when INPUT holds a component the manifest does not name.
	ErrExtraneousDependencies = zerr.New("extraneous dependencies in INPUT")

	// ErrInvalidVersion is returned when an installed version does not match the manifest.
	ErrInvalidVersion = zerr.New("dependency installed at wrong version")

	// ErrMultipleVersions is returned when a component appears at more than one version
	// in the transitive closure.
	ErrMultipleVersions = zerr.New("depending on multiple versions of a component")

	// ErrMultipleEnvironments is returned when a component was built in more than one
	// environment across the transitive closure.
	ErrMultipleEnvironments = zerr.New("depending on multiple environments for a component")

	// ErrEnvironmentMismatch is returned when a top-level dependency was built in a
	// different environment than the one requested.
	ErrEnvironmentMismatch = zerr.New("environment mismatch for dependency")

	// ErrNonGlobalDependencies is returned when the closure contains a stashed
	// (non-integer) version, which cannot participate in a publishable build.
	ErrNonGlobalDependencies = zerr.New("depending on a stashed version of a component")

	// ErrArtifactoryFailure is returned when the remote responds with a non-success status.
	ErrArtifactoryFailure = zerr.New("artifactory request failed")

	// ErrInstallFailure is returned when one or more fetches failed during a bulk fetch.
	ErrInstallFailure = zerr.New("install failed")

	// ErrDepthExceeded is returned when lockfile traversal exceeds the maximum depth.
	// The tree cannot represent cycles, but a pathological file synthesized externally can.
	ErrDepthExceeded = zerr.New("lockfile tree exceeds maximum depth")
)
