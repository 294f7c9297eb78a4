package domain

import "path/filepath"

const (
	// InputDirName is the staging directory artifacts are extracted into.
	InputDirName = "INPUT"

	// OutputDirName is the directory a build writes its artifacts to; consumed by stash.
	OutputDirName = "OUTPUT"

	// ManifestFileName is the name of the build manifest in the working directory.
	ManifestFileName = "manifest.json"

	// LockfileFileName is the name of the lockfile, both at the working directory
	// root and inside each extracted INPUT component.
	LockfileFileName = "lockfile.json"

	// GlobalsDirName is the immutable, append-only cache region for published artifacts.
	GlobalsDirName = "globals"

	// StashDirName is the mutable cache region for locally stashed outputs.
	StashDirName = "stash"

	// HaulDirName is the per-user metadata directory under the home directory.
	HaulDirName = ".haul"

	// ConfigFileName is the name of the user configuration file inside HaulDirName.
	ConfigFileName = "config.json"

	// CacheDirName is the default cache directory inside HaulDirName.
	CacheDirName = "cache"

	// GlobalEnvironment is the environment bucket for environment-independent artifacts.
	GlobalEnvironment = "global"

	// DefaultBuildConfig is the build configuration stamped on fresh lock nodes.
	DefaultBuildConfig = "release"

	// MaxLockfileDepth bounds recursion over lockfile trees.
	MaxLockfileDepth = 64

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// InputDir returns the staging directory under the given working directory.
func InputDir(workdir string) string {
	return filepath.Join(workdir, InputDirName)
}

// ComponentInputDir returns the staging directory for a single component.
func ComponentInputDir(workdir, name string) string {
	return filepath.Join(workdir, InputDirName, name)
}

// OutputDir returns the build output directory under the given working directory.
func OutputDir(workdir string) string {
	return filepath.Join(workdir, OutputDirName)
}

// ManifestPath returns the manifest location under the given working directory.
func ManifestPath(workdir string) string {
	return filepath.Join(workdir, ManifestFileName)
}

// RootLockfilePath returns the working directory's own lockfile location.
func RootLockfilePath(workdir string) string {
	return filepath.Join(workdir, LockfileFileName)
}

// ComponentLockfilePath returns the lockfile location inside an extracted component.
func ComponentLockfilePath(workdir, name string) string {
	return filepath.Join(workdir, InputDirName, name, LockfileFileName)
}

// ScratchTarballPath returns the temporary download location for a component tarball.
// Downloads land here before being moved into the cache.
func ScratchTarballPath(workdir, name string) string {
	return filepath.Join(workdir, name+".tar")
}
