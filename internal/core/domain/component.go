package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Component is a resolved artifact identity returned by the remote backend.
type Component struct {
	// Name is the component name.
	Name string

	// Version is the resolved integer version of the published artifact.
	Version uint32

	// Environment is the environment bucket the artifact was published under.
	Environment string

	// TarballURL is the remote location of the artifact. It is opaque to
	// everything outside the backend.
	TarballURL string
}

// ParseVersion reports whether s is an integer artifact version.
// Stash labels and experimental markers do not parse.
func ParseVersion(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Specifier is a parsed dependency request of the form "name", "name=<version>"
// or "name=<label>".
type Specifier struct {
	Name string

	// Version is the requested integer version, nil when latest or a label is requested.
	Version *uint32

	// Label is the stash label, empty unless the version part is non-integer.
	Label string
}

// IsStash reports whether the specifier addresses a stashed artifact.
func (s Specifier) IsStash() bool {
	return s.Label != ""
}

// ParseSpecifier parses a dependency request string.
// A bare name requests the latest published version. An "=" suffix requests
// either a pinned integer version or, for non-integer values, a stash label.
func ParseSpecifier(raw string) (Specifier, error) {
	name, rest, found := strings.Cut(raw, "=")
	if name == "" {
		return Specifier{}, zerr.With(zerr.New("empty component name in specifier"), "specifier", raw)
	}
	if !found {
		return Specifier{Name: name}, nil
	}
	if rest == "" {
		return Specifier{}, zerr.With(zerr.New("empty version in specifier"), "specifier", raw)
	}
	if v, ok := ParseVersion(rest); ok {
		return Specifier{Name: name, Version: &v}, nil
	}
	return Specifier{Name: name, Label: rest}, nil
}
