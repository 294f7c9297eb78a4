// Package manifest persists manifest.json in the working directory.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store reads and writes the manifest of the component rooted at workdir.
type Store struct {
	workdir string
}

// NewStore creates a Store rooted at workdir.
func NewStore(workdir string) *Store {
	return &Store{workdir: workdir}
}

// Read loads and validates the manifest.
func (s *Store) Read() (*domain.Manifest, error) {
	path := domain.ManifestPath(s.workdir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMissingManifest
		}
		return nil, zerr.Wrap(err, "read manifest")
	}

	var mf domain.Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&mf); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrManifestParseFailed, err), "decode manifest"), "path", path)
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return &mf, nil
}

// Write persists the manifest atomically. Without force, writing over an
// existing manifest fails with ErrManifestExists.
func (s *Store) Write(mf *domain.Manifest, force bool) error {
	if err := mf.Validate(); err != nil {
		return err
	}

	path := domain.ManifestPath(s.workdir)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return zerr.With(zerr.Wrap(domain.ErrManifestExists, "write manifest"), "path", path)
		}
	}

	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "marshal manifest")
	}
	data = append(data, '\n')

	return atomicWrite(path, data)
}

// atomicWrite writes data to a sibling temporary file and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.Wrap(err, "rename temp file")
	}
	return nil
}
