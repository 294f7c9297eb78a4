package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Container identifies the container image a component was built in.
type Container struct {
	Image string `json:"image"`
	Tag   string `json:"tag"`
}

// ParseContainer splits an "image:tag" reference, defaulting the tag to
// "latest" when none is given.
func ParseContainer(ref string) Container {
	image, tag, found := strings.Cut(ref, ":")
	if !found || tag == "" {
		tag = "latest"
	}
	if image == "" {
		image = ref
	}
	return Container{Image: image, Tag: tag}
}

// String returns the "image:tag" form of the reference.
func (c Container) String() string {
	return c.Image + ":" + c.Tag
}

// Lockfile is the recursive record of what was actually installed.
// Each child is stored in Dependencies under its own name; the map key always
// equals the child's Name field.
type Lockfile struct {
	Name         string               `json:"name"`
	Version      string               `json:"version"`
	Config       string               `json:"config"`
	Environment  string               `json:"environment"`
	Container    Container            `json:"container"`
	Tool         string               `json:"tool"`
	Dependencies map[string]*Lockfile `json:"dependencies"`
}

// NewLockfile creates a fresh lock node for the named component.
// An empty version is stamped with a recognizable experimental marker that can
// never be mistaken for a published integer version. An empty buildConfig
// defaults to "release".
func NewLockfile(name, container, version, buildConfig, environment, tool string) *Lockfile {
	if version == "" {
		version = fmt.Sprintf("EXPERIMENTAL+%016x", rand.Uint64())
	}
	if buildConfig == "" {
		buildConfig = DefaultBuildConfig
	}
	return &Lockfile{
		Name:         name,
		Version:      version,
		Config:       buildConfig,
		Environment:  environment,
		Container:    ParseContainer(container),
		Tool:         tool,
		Dependencies: make(map[string]*Lockfile),
	}
}

// IsPublished reports whether the node records a published integer version.
func (l *Lockfile) IsPublished() bool {
	_, ok := ParseVersion(l.Version)
	return ok
}
