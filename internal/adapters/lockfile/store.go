// Package lockfile persists lockfile.json trees and assembles the root
// lockfile from what is installed under INPUT.
package lockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store reads and writes lockfiles.
type Store struct{}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads a single lockfile from path.
func (s *Store) Load(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingLockfile, "load lockfile"), "path", path)
		}
		return nil, zerr.Wrap(err, "read lockfile")
	}

	var lf domain.Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrLockfileParseFailed, err), "decode lockfile"), "path", path)
	}
	if lf.Dependencies == nil {
		lf.Dependencies = make(map[string]*domain.Lockfile)
	}
	return &lf, nil
}

// Populate scans INPUT under workdir and installs each component's lockfile
// as a child of root. An absent INPUT directory leaves root untouched.
func (s *Store) Populate(root *domain.Lockfile, workdir string) error {
	entries, err := os.ReadDir(domain.InputDir(workdir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return zerr.Wrap(err, "scan INPUT")
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		child, err := s.Load(domain.ComponentLockfilePath(workdir, name))
		if err != nil {
			return zerr.With(err, "component", name)
		}
		root.Dependencies[name] = child
	}
	return nil
}

// Write persists the tree to path as pretty-printed JSON.
func (s *Store) Write(path string, lf *domain.Lockfile) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lf); err != nil {
		return zerr.Wrap(err, "marshal lockfile")
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create lockfile dir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
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
