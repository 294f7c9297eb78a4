package domain

import "go.trai.ch/zerr"

// Manifest is the source of truth for what the current component depends on.
// Dependencies and DevDependencies bind component names to published integer
// versions; the two key sets are disjoint and never contain Name itself.
type Manifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]uint32 `json:"dependencies"`
	DevDependencies map[string]uint32 `json:"devDependencies"`
}

// NewManifest returns an empty manifest for the named component.
func NewManifest(name string) *Manifest {
	return &Manifest{
		Name:            name,
		Dependencies:    make(map[string]uint32),
		DevDependencies: make(map[string]uint32),
	}
}

// Validate checks the manifest invariants: maps allocated, key sets disjoint,
// and the component not depending on itself.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return zerr.New("manifest has no component name")
	}
	for name := range m.Dependencies {
		if _, dup := m.DevDependencies[name]; dup {
			return zerr.With(zerr.New("component listed in both dependencies and devDependencies"), "component", name)
		}
	}
	if _, self := m.Dependencies[m.Name]; self {
		return zerr.With(zerr.New("component depends on itself"), "component", m.Name)
	}
	if _, self := m.DevDependencies[m.Name]; self {
		return zerr.With(zerr.New("component depends on itself"), "component", m.Name)
	}
	return nil
}

// UpdateEntry sets name to version in the dependency map selected by dev,
// removing any entry for name from the other map to preserve disjointness.
func (m *Manifest) UpdateEntry(name string, version uint32, dev bool) {
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]uint32)
	}
	if m.DevDependencies == nil {
		m.DevDependencies = make(map[string]uint32)
	}
	if dev {
		delete(m.Dependencies, name)
		m.DevDependencies[name] = version
		return
	}
	delete(m.DevDependencies, name)
	m.Dependencies[name] = version
}

// RemoveEntry deletes name from the dependency map selected by dev.
// Returns ErrMissingComponent if the selected map has no such entry.
func (m *Manifest) RemoveEntry(name string, dev bool) error {
	target := m.Dependencies
	if dev {
		target = m.DevDependencies
	}
	if _, ok := target[name]; !ok {
		return zerr.With(zerr.Wrap(ErrMissingComponent, "remove dependency entry"), "component", name)
	}
	delete(target, name)
	return nil
}

// HasDependency reports whether name appears in either dependency map.
func (m *Manifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// TargetSet returns a fresh map of the dependencies to install.
// DevDependencies are included unless coreOnly is set.
func (m *Manifest) TargetSet(coreOnly bool) map[string]uint32 {
	targets := make(map[string]uint32, len(m.Dependencies)+len(m.DevDependencies))
	for name, v := range m.Dependencies {
		targets[name] = v
	}
	if !coreOnly {
		for name, v := range m.DevDependencies {
			targets[name] = v
		}
	}
	return targets
}
