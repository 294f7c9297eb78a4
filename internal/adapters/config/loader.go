// Package config provides the per-user configuration loader for haul.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultArtifactory is the artifact repository used when none is configured.
const DefaultArtifactory = "https://artifacts.trai.ch/components"

// DefaultContainer is the build container used when none is configured.
const DefaultContainer = "trai/build:latest"

// Loader implements ports.ConfigLoader on top of a JSON file in the
// user's home directory.
type Loader struct {
	dir string
}

// NewLoader creates a Loader storing its config under dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// NewHomeLoader creates a Loader rooted at ~/.haul.
func NewHomeLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrMissingConfig, err), "resolve home directory")
	}
	return NewLoader(filepath.Join(home, domain.HaulDirName)), nil
}

// Path returns the location of the config file.
func (l *Loader) Path() string {
	return filepath.Join(l.dir, domain.ConfigFileName)
}

// Load reads the config. Returns ErrMissingConfig when no config exists.
func (l *Loader) Load() (*domain.Config, error) {
	data, err := os.ReadFile(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingConfig, "load config"), "path", l.Path())
		}
		return nil, zerr.Wrap(err, "read config")
	}

	var cfg domain.Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "decode config"), "path", l.Path())
	}
	return &cfg, nil
}

// Write persists the config atomically, creating the config directory if needed.
func (l *Loader) Write(cfg *domain.Config) error {
	if err := os.MkdirAll(l.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create config dir")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "marshal config")
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(l.dir, domain.ConfigFileName+".tmp-*")
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
	if err := os.Rename(tmp.Name(), l.Path()); err != nil {
		return zerr.Wrap(err, "rename temp file")
	}
	return nil
}

// Default returns a config populated with defaults for this machine.
// The upgrade check timestamp is backdated so a freshly written config
// performs one on first use.
func (l *Loader) Default() (*domain.Config, error) {
	return &domain.Config{
		Artifactory:  DefaultArtifactory,
		Cache:        filepath.Join(l.dir, domain.CacheDirName),
		Container:    DefaultContainer,
		UpgradeCheck: time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339),
	}, nil
}
