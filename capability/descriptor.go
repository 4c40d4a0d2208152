package capability

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Ecosystem names the package ecosystem a dependency comes from.
type Ecosystem string

// Common ecosystems. Any non-empty value is accepted.
const (
	EcosystemGo  Ecosystem = "go"
	EcosystemPip Ecosystem = "pip"
	EcosystemNPM Ecosystem = "npm"
)

// Dependency is an external package a capability relies on.
type Dependency struct {
	Name      string    `json:"name" yaml:"name"`
	Version   string    `json:"version" yaml:"version"`
	Ecosystem Ecosystem `json:"ecosystem,omitempty" yaml:"ecosystem,omitempty"`
}

// String returns "name@version (ecosystem)".
func (d Dependency) String() string {
	if d.Ecosystem == "" {
		return d.Name + "@" + d.Version
	}
	return fmt.Sprintf("%s@%s (%s)", d.Name, d.Version, d.Ecosystem)
}

// ConfigRequirement is a configuration key a capability reads at invocation time.
type ConfigRequirement struct {
	Key         string `json:"key" yaml:"key"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
}

// Descriptor is the static metadata describing one capability.
type Descriptor struct {
	Name         string              `json:"name" yaml:"name"`
	Description  string              `json:"description,omitempty" yaml:"description,omitempty"`
	Dependencies []Dependency        `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Config       []ConfigRequirement `json:"config,omitempty" yaml:"config,omitempty"`
}

// Validate checks the descriptor's metadata.
//
// The name must be non-empty, every required config entry must name a key and
// every dependency must carry a name and a version that parses either as a
// semantic version or a version constraint.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &InvalidDescriptorError{Reason: "name is required"}
	}

	for i, req := range d.Config {
		if req.Required && strings.TrimSpace(req.Key) == "" {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Reason: fmt.Sprintf("config requirement %d is required but has no key", i),
			}
		}
	}

	for i, dep := range d.Dependencies {
		if strings.TrimSpace(dep.Name) == "" {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Reason: fmt.Sprintf("dependency %d has no name", i),
			}
		}
		if strings.TrimSpace(dep.Version) == "" {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Reason: fmt.Sprintf("dependency %s has no version", dep.Name),
			}
		}
		if !validVersion(dep.Version) {
			return &InvalidDescriptorError{
				Name:   d.Name,
				Reason: fmt.Sprintf("dependency %s has unparseable version %q", dep.Name, dep.Version),
			}
		}
	}

	return nil
}

// RequiredKeys returns the keys of every required config entry, in order.
func (d Descriptor) RequiredKeys() []string {
	var keys []string
	for _, req := range d.Config {
		if req.Required {
			keys = append(keys, req.Key)
		}
	}
	return keys
}

// clone returns a deep copy so callers cannot mutate registered metadata.
func (d Descriptor) clone() Descriptor {
	d.Dependencies = slices.Clone(d.Dependencies)
	d.Config = slices.Clone(d.Config)
	return d
}

func validVersion(v string) bool {
	if _, err := semver.NewVersion(v); err == nil {
		return true
	}
	_, err := semver.NewConstraint(v)
	return err == nil
}
