// Package artifactory talks to the remote component repository over HTTP.
package artifactory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports"
	"go.trai.ch/zerr"
)

// requestTimeout bounds every round trip to the repository.
const requestTimeout = 30 * time.Second

// Backend implements ports.Backend against an artifactory-style HTTP layout:
// tarballs live at {root}/{env}/{name}/{version}/{name}.tar.gz and the latest
// published version is served at {root}/{env}/{name}/latest.
type Backend struct {
	root   string
	client *http.Client
	logger ports.Logger
}

// NewBackend creates a Backend for the repository at root.
func NewBackend(root string, logger ports.Logger) *Backend {
	return newBackendWithClient(root, logger, &http.Client{Timeout: requestTimeout})
}

func newBackendWithClient(root string, logger ports.Logger, client *http.Client) *Backend {
	return &Backend{
		root:   strings.TrimRight(root, "/"),
		client: client,
		logger: logger,
	}
}

// Resolve maps (name, version, environment) to a concrete component.
// A nil version asks the repository for the latest published one.
func (b *Backend) Resolve(ctx context.Context, name string, version *uint32, environment string) (domain.Component, error) {
	env := environment
	if env == "" {
		env = domain.GlobalEnvironment
	}

	resolved, err := b.resolveVersion(ctx, name, version, env)
	if err != nil {
		return domain.Component{}, err
	}

	return domain.Component{
		Name:        name,
		Version:     resolved,
		Environment: env,
		TarballURL:  fmt.Sprintf("%s/%s/%s/%d/%s.tar.gz", b.root, env, name, resolved, name),
	}, nil
}

func (b *Backend) resolveVersion(ctx context.Context, name string, version *uint32, env string) (uint32, error) {
	if version != nil {
		return *version, nil
	}

	url := fmt.Sprintf("%s/%s/%s/latest", b.root, env, name)
	b.logger.Debug("resolving latest version", "component", name, "env", env)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, zerr.Wrap(err, "build request")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return 0, zerr.Wrap(errors.Join(domain.ErrArtifactoryFailure, err), "resolve latest version")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		err := zerr.With(zerr.Wrap(domain.ErrMissingComponent, "resolve latest version"), "component", name)
		return 0, zerr.With(err, "env", env)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		err := zerr.With(zerr.Wrap(domain.ErrArtifactoryFailure, "resolve latest version"), "status", resp.Status)
		return 0, zerr.With(err, "url", url)
	}

	var payload struct {
		Version uint32 `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, zerr.Wrap(errors.Join(domain.ErrArtifactoryFailure, err), "decode version payload")
	}
	return payload.Version, nil
}

// Download fetches url into the file at dest.
func (b *Backend) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, "build request")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrArtifactoryFailure, err), "download tarball")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return zerr.With(zerr.Wrap(domain.ErrMissingComponent, "download tarball"), "url", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		err := zerr.With(zerr.Wrap(domain.ErrArtifactoryFailure, "download tarball"), "status", resp.Status)
		return zerr.With(err, "url", url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create download dir")
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return zerr.Wrap(err, "create download file")
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return zerr.Wrap(err, "write download")
	}
	return f.Close()
}
