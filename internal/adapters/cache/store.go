// Package cache implements the content-addressed artifact cache.
//
// The cache root holds two disjoint regions: globals/<env>/<name>/<version>/
// for published tarballs, which is append-only, and stash/<name>/<label>/ for
// locally built outputs, which may be overwritten.
package cache

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.Cache on a local filesystem root.
type Store struct {
	root string
}

// NewStore creates a cache store rooted at the given directory.
// The directory is created on first write, not here.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// PathOf returns the structural tarball path for (name, version, environment).
// It does not check existence.
func (s *Store) PathOf(name string, version uint32, environment string) string {
	return filepath.Join(s.globalsDir(name, version, environment), name+".tar")
}

// IsCached reports whether the tarball exists as a regular file.
func (s *Store) IsCached(name string, version uint32, environment string) bool {
	info, err := os.Stat(s.PathOf(name, version, environment))
	return err == nil && info.Mode().IsRegular()
}

// StoreTarball moves the tarball at src into the globals region.
//
// The copy lands in a sibling temporary file which is renamed over the final
// name, so a concurrent reader observes either the complete tarball or
// nothing. Storing over an existing entry succeeds without touching it; the
// globals region is append-only.
func (s *Store) StoreTarball(name string, version uint32, environment, src string) error {
	dest := s.PathOf(name, version, environment)
	if _, err := os.Stat(dest); err == nil {
		// Already present. Drop the scratch copy.
		_ = os.Remove(src)
		return nil
	}

	destDir := filepath.Dir(dest)
	if err := os.MkdirAll(destDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	in, err := os.Open(src) //nolint:gosec // scratch path is produced by the fetcher
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrMissingTarball, "store tarball"), "path", src)
		}
		return zerr.Wrap(err, "failed to open tarball")
	}
	defer func() {
		_ = in.Close()
	}()

	tmp, err := os.CreateTemp(destDir, name+"-*.tar.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary tarball")
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to copy tarball into cache")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush tarball")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to set tarball permissions")
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return zerr.Wrap(err, "failed to install tarball into cache")
	}

	// The scratch copy has served its purpose.
	if err := os.Remove(src); err != nil {
		return zerr.Wrap(err, "failed to remove scratch tarball")
	}
	return nil
}

// StashOutput recursively copies a build output directory into the stash
// region. Labels that parse as non-negative integers are rejected because they
// would shadow published versions.
func (s *Store) StashOutput(owner, label, sourceDir string) error {
	if v, isInt := domain.ParseVersion(label); isInt {
		return zerr.With(zerr.Wrap(domain.ErrInvalidStashName, "stash build"), "label", strconv.FormatUint(uint64(v), 10))
	}

	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrMissingBuild, "stash build"), "path", sourceDir)
	}

	dest := s.stashDir(owner, label)
	// The stash region is mutable: replace whatever was there before.
	if err := os.RemoveAll(dest); err != nil {
		return zerr.Wrap(err, "failed to clear previous stash")
	}
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create stash directory")
	}
	if err := copyTree(sourceDir, dest); err != nil {
		return zerr.Wrap(err, "failed to copy build output into stash")
	}
	return nil
}

// StashPath returns the stashed directory for (name, label).
func (s *Store) StashPath(name, label string) (string, error) {
	dir := s.stashDir(name, label)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		err := zerr.With(zerr.Wrap(domain.ErrMissingStashArtifact, "resolve stash"), "component", name)
		return "", zerr.With(err, "label", label)
	}
	return dir, nil
}

func (s *Store) globalsDir(name string, version uint32, environment string) string {
	return filepath.Join(s.root, domain.GlobalsDirName, environment, name, strconv.FormatUint(uint64(version), 10))
}

func (s *Store) stashDir(name, label string) string {
	return filepath.Join(s.root, domain.StashDirName, name, label)
}

// copyTree mirrors src into dest. Regular files, directories and symlinks are
// copied; modes are preserved for files and directories.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		default:
			return copyFile(path, target)
		}
	})
}

func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src) //nolint:gosec // path comes from walking the source tree
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // mirrored path
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
