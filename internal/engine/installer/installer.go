// Package installer orchestrates dependency installation into INPUT.
package installer

import (
	"context"
	"errors"
	"os"
	"sync"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Installer implements the update and fetch-all operations.
type Installer struct {
	fetcher   ports.Fetcher
	extractor ports.Extractor
	cache     ports.Cache
	manifests ports.ManifestStore
	lockfiles ports.LockfileStore
	logger    ports.Logger
	workdir   string
}

// NewInstaller creates an Installer operating on the component at workdir.
func NewInstaller(
	fetcher ports.Fetcher,
	extractor ports.Extractor,
	cache ports.Cache,
	manifests ports.ManifestStore,
	lockfiles ports.LockfileStore,
	logger ports.Logger,
	workdir string,
) *Installer {
	return &Installer{
		fetcher:   fetcher,
		extractor: extractor,
		cache:     cache,
		manifests: manifests,
		lockfiles: lockfiles,
		logger:    logger,
		workdir:   workdir,
	}
}

// UpdateOptions configures the Update operation.
type UpdateOptions struct {
	// Save records successful integer installs in dependencies.
	Save bool

	// SaveDev records successful integer installs in devDependencies.
	SaveDev bool

	// Environment selects the artifact environment bucket.
	Environment string
}

// Update installs each requested specifier into INPUT. Specifiers are
// processed independently: one failure does not stop the rest, and the first
// error is returned after all have been attempted. Stashed artifacts are
// installed from the local cache and never recorded in the manifest.
func (i *Installer) Update(ctx context.Context, specs []domain.Specifier, opts UpdateOptions) error {
	var firstErr error
	installed := make(map[string]uint32)

	for _, spec := range specs {
		version, err := i.installOne(ctx, spec, opts.Environment)
		if err != nil {
			i.logger.Error(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if version != nil {
			installed[spec.Name] = *version
		}
	}

	if (opts.Save || opts.SaveDev) && len(installed) > 0 {
		if err := i.saveEntries(installed, opts.SaveDev); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// installOne returns the installed integer version, or nil for stash installs.
func (i *Installer) installOne(ctx context.Context, spec domain.Specifier, environment string) (*uint32, error) {
	if spec.IsStash() {
		dir, err := i.cache.StashPath(spec.Name, spec.Label)
		if err != nil {
			return nil, err
		}
		if err := i.extractor.ExtractStash(dir, spec.Name); err != nil {
			return nil, err
		}
		i.logger.Info("installed stashed build", "component", spec.Name, "label", spec.Label)
		return nil, nil
	}

	tarball, component, err := i.fetcher.Fetch(ctx, spec.Name, spec.Version, environment)
	if err != nil {
		return nil, err
	}
	if err := i.extractor.Extract(tarball, component.Name); err != nil {
		return nil, err
	}
	i.logger.Info("installed component",
		"component", component.Name,
		"version", component.Version,
		"env", component.Environment,
	)
	return &component.Version, nil
}

func (i *Installer) saveEntries(installed map[string]uint32, dev bool) error {
	mf, err := i.manifests.Read()
	if err != nil {
		return err
	}
	for name, version := range installed {
		mf.UpdateEntry(name, version, dev)
	}
	return i.manifests.Write(mf, true)
}

// FetchAll installs every manifest dependency into INPUT. Components already
// present with a matching published version and environment are reused
// without touching the cache or the network. Targets are fetched
// concurrently; if any of them fails, INPUT is wiped so a partial install is
// never left behind.
func (i *Installer) FetchAll(ctx context.Context, coreOnly bool, environment string) error {
	mf, err := i.manifests.Read()
	if err != nil {
		return err
	}
	targets := mf.TargetSet(coreOnly)

	var (
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for name, version := range targets {
		g.Go(func() error {
			if i.reusable(name, version, environment) {
				i.logger.Debug("reusing installed component", "component", name, "version", version)
				return nil
			}

			spec := domain.Specifier{Name: name, Version: &version}
			if _, err := i.installOne(ctx, spec, environment); err != nil {
				i.logger.Error(err)
				record(err)
			}
			// Errors are recorded, not returned, so one failure does not
			// cancel the sibling fetches.
			return nil
		})
	}
	_ = g.Wait()

	if firstErr != nil {
		if err := os.RemoveAll(domain.InputDir(i.workdir)); err != nil {
			i.logger.Warn("failed to clean INPUT after install failure", "error", err.Error())
		}
		return errors.Join(domain.ErrInstallFailure, firstErr)
	}
	return nil
}

// reusable reports whether INPUT/<name> already holds version for environment.
func (i *Installer) reusable(name string, version uint32, environment string) bool {
	lf, err := i.lockfiles.Load(domain.ComponentLockfilePath(i.workdir, name))
	if err != nil {
		return false
	}
	v, ok := domain.ParseVersion(lf.Version)
	return ok && v == version && lf.Environment == environment
}

// Remove deletes INPUT entries and optionally drops the manifest records.
func (i *Installer) Remove(names []string, save, saveDev bool) error {
	var mf *domain.Manifest
	if save || saveDev {
		var err error
		mf, err = i.manifests.Read()
		if err != nil {
			return err
		}
	}

	var firstErr error
	for _, name := range names {
		if mf != nil {
			if err := mf.RemoveEntry(name, saveDev); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		if err := os.RemoveAll(domain.ComponentInputDir(i.workdir, name)); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		i.logger.Info("removed component", "component", name)
	}

	if mf != nil {
		if err := i.manifests.Write(mf, true); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
