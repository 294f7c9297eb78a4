// Package app implements the application layer for haul.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/haul/internal/adapters/artifactory"
	"go.trai.ch/haul/internal/adapters/cache"
	"go.trai.ch/haul/internal/adapters/detector"
	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports"
	"go.trai.ch/haul/internal/engine/fetcher"
	"go.trai.ch/haul/internal/engine/installer"
	"go.trai.ch/haul/internal/engine/verify"
	"go.trai.ch/zerr"
)

// App represents the main application logic. Components that depend on the
// user configuration (cache, backend, fetcher, installer) are built per
// operation, so commands like init and configure work before any
// configuration exists.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestStore
	lockfiles    ports.LockfileStore
	extractor    ports.Extractor
	logger       ports.Logger
	tracer       ports.Tracer
	workdir      string
	stdin        io.Reader
	stdout       io.Writer

	newBackend func(root string) ports.Backend
	newCache   func(root string) ports.Cache
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestStore,
	lockfiles ports.LockfileStore,
	extractor ports.Extractor,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	a := &App{
		configLoader: loader,
		manifests:    manifests,
		lockfiles:    lockfiles,
		extractor:    extractor,
		logger:       log,
		tracer:       tracer,
		workdir:      ".",
		stdin:        os.Stdin,
		stdout:       os.Stdout,
	}
	a.newBackend = func(root string) ports.Backend {
		return artifactory.NewBackend(root, log)
	}
	a.newCache = func(root string) ports.Cache {
		return cache.NewStore(root)
	}
	return a
}

// WithWorkdir changes the working directory the App operates on.
// This is primarily used for testing.
func (a *App) WithWorkdir(dir string) *App {
	a.workdir = dir
	return a
}

// WithStdio redirects the App's interactive input and report output.
// This is primarily used for testing.
func (a *App) WithStdio(in io.Reader, out io.Writer) *App {
	if in != nil {
		a.stdin = in
	}
	if out != nil {
		a.stdout = out
	}
	return a
}

// WithBackendFactory replaces the backend constructor.
// This is primarily used for testing.
func (a *App) WithBackendFactory(f func(root string) ports.Backend) *App {
	a.newBackend = f
	return a
}

// WithCacheFactory replaces the cache constructor.
// This is primarily used for testing.
func (a *App) WithCacheFactory(f func(root string) ports.Cache) *App {
	a.newCache = f
	return a
}

func (a *App) newInstaller(cfg *domain.Config) *installer.Installer {
	c := a.newCache(cfg.Cache)
	f := fetcher.NewFetcher(a.newBackend(cfg.Artifactory), c, a.logger, a.workdir)
	return installer.NewInstaller(f, a.extractor, c, a.manifests, a.lockfiles, a.logger, a.workdir)
}

// FetchOptions configures the Fetch operation.
type FetchOptions struct {
	// CoreOnly skips devDependencies.
	CoreOnly bool

	// Environment selects the artifact environment bucket.
	Environment string
}

// Fetch installs every manifest dependency into INPUT.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) error {
	ctx, span := a.tracer.Start(ctx, "fetch")
	defer span.End()

	cfg, err := a.configLoader.Load()
	if err != nil {
		span.RecordError(err)
		return err
	}
	a.maybeUpgradeCheck(cfg)

	span.SetAttribute("env", opts.Environment)
	if err := a.newInstaller(cfg).FetchAll(ctx, opts.CoreOnly, opts.Environment); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// UpdateOptions configures the Update operation.
type UpdateOptions struct {
	Save        bool
	SaveDev     bool
	Environment string
}

// Update installs the requested components into INPUT, optionally recording
// them in the manifest.
func (a *App) Update(ctx context.Context, rawSpecs []string, opts UpdateOptions) error {
	ctx, span := a.tracer.Start(ctx, "update")
	defer span.End()

	specs := make([]domain.Specifier, 0, len(rawSpecs))
	for _, raw := range rawSpecs {
		spec, err := domain.ParseSpecifier(raw)
		if err != nil {
			span.RecordError(err)
			return err
		}
		specs = append(specs, spec)
	}

	cfg, err := a.configLoader.Load()
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = a.newInstaller(cfg).Update(ctx, specs, installer.UpdateOptions{
		Save:        opts.Save,
		SaveDev:     opts.SaveDev,
		Environment: opts.Environment,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Remove deletes components from INPUT and optionally from the manifest.
func (a *App) Remove(ctx context.Context, names []string, save, saveDev bool) error {
	_, span := a.tracer.Start(ctx, "remove")
	defer span.End()

	cfg, err := a.configLoader.Load()
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := a.newInstaller(cfg).Remove(names, save, saveDev); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Stash snapshots the current OUTPUT build into the cache under a label.
func (a *App) Stash(ctx context.Context, label string) error {
	_, span := a.tracer.Start(ctx, "stash")
	defer span.End()

	cfg, err := a.configLoader.Load()
	if err != nil {
		span.RecordError(err)
		return err
	}
	mf, err := a.manifests.Read()
	if err != nil {
		span.RecordError(err)
		return err
	}

	c := a.newCache(cfg.Cache)
	if err := c.StashOutput(mf.Name, label, domain.OutputDir(a.workdir)); err != nil {
		span.RecordError(err)
		return err
	}
	a.logger.Info("stashed build", "component", mf.Name, "label", label)
	return nil
}

// Export copies a cached artifact out to a directory without touching INPUT.
// Published versions are exported as their cache tarball; stashed builds are
// exported as a directory tree.
func (a *App) Export(ctx context.Context, rawSpec, outDir, environment string) error {
	ctx, span := a.tracer.Start(ctx, "export")
	defer span.End()

	spec, err := domain.ParseSpecifier(rawSpec)
	if err != nil {
		span.RecordError(err)
		return err
	}
	cfg, err := a.configLoader.Load()
	if err != nil {
		span.RecordError(err)
		return err
	}

	if outDir == "" {
		outDir = a.workdir
	}
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create export dir")
	}

	c := a.newCache(cfg.Cache)
	if spec.IsStash() {
		dir, err := c.StashPath(spec.Name, spec.Label)
		if err != nil {
			span.RecordError(err)
			return err
		}
		dest := filepath.Join(outDir, spec.Name)
		if err := copyTree(dir, dest); err != nil {
			span.RecordError(err)
			return zerr.Wrap(err, "export stashed build")
		}
		a.logger.Info("exported stashed build", "component", spec.Name, "label", spec.Label, "dest", dest)
		return nil
	}

	f := fetcher.NewFetcher(a.newBackend(cfg.Artifactory), c, a.logger, a.workdir)
	tarball, component, err := f.Fetch(ctx, spec.Name, spec.Version, environment)
	if err != nil {
		span.RecordError(err)
		return err
	}
	dest := filepath.Join(outDir, filepath.Base(tarball))
	if err := copyFile(tarball, dest); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "export tarball")
	}
	a.logger.Info("exported component", "component", component.Name, "version", component.Version, "dest", dest)
	return nil
}

// Verify checks the installed dependency tree against the manifest.
func (a *App) Verify(ctx context.Context, environment string) error {
	_, span := a.tracer.Start(ctx, "verify")
	defer span.End()

	v := verify.NewVerifier(a.manifests, a.lockfiles, a.logger, a.workdir)
	if err := v.Verify(environment); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Status prints the installed dependency tree. The output argument overrides
// terminal detection; one of "color", "plain" or empty for auto.
func (a *App) Status(ctx context.Context, environment, output string) error {
	_, span := a.tracer.Start(ctx, "status")
	defer span.End()

	mf, err := a.manifests.Read()
	if err != nil {
		span.RecordError(err)
		return err
	}

	container := ""
	if cfg, err := a.configLoader.Load(); err == nil {
		container = cfg.Container
	}

	root := domain.NewLockfile(mf.Name, container, "", "", environment, "haul")
	if err := a.lockfiles.Populate(root, a.workdir); err != nil {
		span.RecordError(err)
		return err
	}

	plain := detector.ResolveMode(detector.DetectEnvironment(), output) == detector.ModePlain
	if _, err := io.WriteString(a.stdout, renderTree(root, plain)); err != nil {
		return zerr.Wrap(err, "write status")
	}
	return nil
}

// Init creates a fresh manifest named after the working directory.
func (a *App) Init(ctx context.Context, force bool) error {
	_, span := a.tracer.Start(ctx, "init")
	defer span.End()

	abs, err := filepath.Abs(a.workdir)
	if err != nil {
		return zerr.Wrap(err, "resolve workdir")
	}
	mf := domain.NewManifest(filepath.Base(abs))

	if err := a.manifests.Write(mf, force); err != nil {
		span.RecordError(err)
		return err
	}
	a.logger.Info("created manifest", "component", mf.Name)
	return nil
}

// Configure writes the user configuration. Unless yes is set, the artifactory
// location is prompted for interactively, with the default on empty input.
func (a *App) Configure(ctx context.Context, yes bool) error {
	_, span := a.tracer.Start(ctx, "configure")
	defer span.End()

	cfg, err := a.configLoader.Default()
	if err != nil {
		span.RecordError(err)
		return err
	}

	if !yes {
		fmt.Fprintf(a.stdout, "artifactory [%s]: ", cfg.Artifactory)
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && err != io.EOF {
			return zerr.Wrap(err, "read input")
		}
		if line = strings.TrimSpace(line); line != "" {
			cfg.Artifactory = line
		}
	}

	if err := a.configLoader.Write(cfg); err != nil {
		span.RecordError(err)
		return err
	}
	a.logger.Info("wrote config", "path", a.configLoader.Path())
	return nil
}

// maybeUpgradeCheck stamps the config when the daily upgrade check is due.
// The check itself is only advisory.
func (a *App) maybeUpgradeCheck(cfg *domain.Config) {
	now := time.Now()
	if !cfg.UpgradeCheckDue(now) {
		return
	}
	a.logger.Debug("upgrade check due", "last", cfg.UpgradeCheck)
	cfg.MarkUpgradeChecked(now)
	if err := a.configLoader.Write(cfg); err != nil {
		a.logger.Warn("failed to stamp upgrade check", "error", err.Error())
	}
}
