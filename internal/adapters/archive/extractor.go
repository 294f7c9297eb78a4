// Package archive materializes cached artifacts into the INPUT tree.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/zerr"
)

// Extractor unpacks gzip-compressed tarballs and copies stashed trees
// into INPUT/<name>/ under the working directory.
type Extractor struct {
	workdir string
}

// NewExtractor creates an Extractor rooted at workdir.
func NewExtractor(workdir string) *Extractor {
	return &Extractor{workdir: workdir}
}

// Extract unpacks the tarball into INPUT/<name>/, replacing any previous
// contents of that directory.
func (e *Extractor) Extract(tarball, name string) error {
	f, err := os.Open(tarball)
	if err != nil {
		if os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(domain.ErrMissingTarball, "open tarball"), "path", tarball)
		}
		return zerr.Wrap(err, "open tarball")
	}
	defer f.Close()

	dest := domain.ComponentInputDir(e.workdir, name)
	if err := os.RemoveAll(dest); err != nil {
		return zerr.Wrap(err, "clear component dir")
	}
	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create component dir")
	}

	if err := unpack(f, dest); err != nil {
		// Do not leave a half-unpacked component behind.
		_ = os.RemoveAll(dest)
		return zerr.With(zerr.Wrap(err, "unpack tarball"), "component", name)
	}
	return nil
}

// ExtractStash replaces INPUT/<name>/ with a copy of the stashed tree at dir.
func (e *Extractor) ExtractStash(dir, name string) error {
	if _, err := os.Stat(dir); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMissingStashArtifact, "install stashed build"), "component", name)
	}

	dest := domain.ComponentInputDir(e.workdir, name)
	if err := os.RemoveAll(dest); err != nil {
		return zerr.Wrap(err, "clear component dir")
	}
	if err := copyTree(dir, dest); err != nil {
		_ = os.RemoveAll(dest)
		return zerr.With(zerr.Wrap(err, "copy stashed tree"), "component", name)
	}
	return nil
}

func unpack(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return zerr.Wrap(err, "gzip reader")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.Wrap(err, "tar entry")
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		if target == dest {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, domain.DirPerm); err != nil {
				return zerr.Wrap(err, "create dir")
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
				return zerr.Wrap(err, "create dir")
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return zerr.Wrap(err, "create symlink")
			}
		default:
			// Hard links, devices and the like do not occur in build artifacts.
		}
	}
}

func writeEntry(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create dir")
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return zerr.Wrap(err, "create file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return zerr.Wrap(err, "write file")
	}
	return f.Close()
}

// safeJoin resolves a tar entry name under dest, rejecting entries that
// would escape it.
func safeJoin(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." {
		return dest, nil
	}
	if !filepath.IsLocal(clean) {
		return "", zerr.With(zerr.New("tar entry escapes destination"), "entry", name)
	}
	return filepath.Join(dest, clean), nil
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			return os.MkdirAll(target, domain.DirPerm)
		default:
			return copyFile(path, target, info.Mode())
		}
	})
}

func copyFile(src, dest string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
