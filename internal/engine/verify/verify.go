// Package verify enforces the transitive dependency invariants over the
// lockfile tree assembled from INPUT.
package verify

import (
	"slices"
	"strings"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/core/ports"
	"go.trai.ch/zerr"
)

// Verifier implements the dependency integrity checks.
type Verifier struct {
	manifests ports.ManifestStore
	lockfiles ports.LockfileStore
	logger    ports.Logger
	workdir   string
}

// NewVerifier creates a Verifier for the component at workdir.
func NewVerifier(manifests ports.ManifestStore, lockfiles ports.LockfileStore, logger ports.Logger, workdir string) *Verifier {
	return &Verifier{
		manifests: manifests,
		lockfiles: lockfiles,
		logger:    logger,
		workdir:   workdir,
	}
}

// closure accumulates versions and environments per component name across
// the whole lockfile tree.
type closure struct {
	versions     map[string]map[string]struct{}
	environments map[string]map[string]struct{}
}

// Verify checks the installed dependency tree against the manifest for the
// requested environment. The first violation is returned; a clean tree
// returns nil.
func (v *Verifier) Verify(environment string) error {
	mf, err := v.manifests.Read()
	if err != nil {
		return err
	}

	root := domain.NewLockfile(mf.Name, "", "", "", environment, "haul")
	if err := v.lockfiles.Populate(root, v.workdir); err != nil {
		return err
	}

	expected := mf.TargetSet(false)

	// 1. Every manifest key is installed.
	var missing []string
	for name := range expected {
		if _, ok := root.Dependencies[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fail(domain.ErrMissingDependencies, "components", strings.Join(missing, ", "))
	}

	// 2. Nothing installed that the manifest does not name.
	for _, name := range sortedKeys(root.Dependencies) {
		if _, ok := expected[name]; !ok {
			return fail(domain.ErrExtraneousDependencies, "component", name)
		}
	}

	// 3. Installed versions match the manifest pins.
	for _, name := range sortedKeys(root.Dependencies) {
		got, ok := domain.ParseVersion(root.Dependencies[name].Version)
		if !ok || got != expected[name] {
			return zerr.With(
				fail(domain.ErrInvalidVersion, "component", name),
				"installed", root.Dependencies[name].Version,
			)
		}
	}

	cl := &closure{
		versions:     make(map[string]map[string]struct{}),
		environments: make(map[string]map[string]struct{}),
	}
	for _, name := range sortedKeys(root.Dependencies) {
		if err := collect(cl, root.Dependencies[name], 0); err != nil {
			return err
		}
	}

	// 4. A single version per name across the closure.
	for _, name := range sortedKeys(cl.versions) {
		if len(cl.versions[name]) > 1 {
			return fail(domain.ErrMultipleVersions, "component", name)
		}
	}

	// 5. A single environment per name across the closure.
	for _, name := range sortedKeys(cl.environments) {
		if len(cl.environments[name]) > 1 {
			return fail(domain.ErrMultipleEnvironments, "component", name)
		}
	}

	// 6. Top-level dependencies come from the requested environment.
	for _, name := range sortedKeys(root.Dependencies) {
		if env := root.Dependencies[name].Environment; env != environment {
			return zerr.With(fail(domain.ErrEnvironmentMismatch, "component", name), "env", env)
		}
	}

	// 7. No stash or experimental versions anywhere in the closure.
	for _, name := range sortedKeys(cl.versions) {
		for version := range cl.versions[name] {
			if _, ok := domain.ParseVersion(version); !ok {
				return zerr.With(fail(domain.ErrNonGlobalDependencies, "component", name), "version", version)
			}
		}
	}

	v.logger.Info("dependencies verified", "components", len(root.Dependencies), "env", environment)
	return nil
}

// collect walks the tree depth-first. The data model cannot represent cycles,
// but externally synthesized lockfiles still have to terminate.
func collect(cl *closure, lf *domain.Lockfile, depth int) error {
	if depth > domain.MaxLockfileDepth {
		return fail(domain.ErrDepthExceeded, "component", lf.Name)
	}

	if cl.versions[lf.Name] == nil {
		cl.versions[lf.Name] = make(map[string]struct{})
	}
	cl.versions[lf.Name][lf.Version] = struct{}{}

	if cl.environments[lf.Name] == nil {
		cl.environments[lf.Name] = make(map[string]struct{})
	}
	cl.environments[lf.Name][lf.Environment] = struct{}{}

	for _, name := range sortedKeys(lf.Dependencies) {
		if err := collect(cl, lf.Dependencies[name], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// fail decorates a violated invariant with context while keeping the
// sentinel reachable for errors.Is.
func fail(sentinel error, key, value string) error {
	return zerr.With(zerr.Wrap(sentinel, "dependency verification failed"), key, value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
