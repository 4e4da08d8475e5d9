// Package project describes the Maven identity of the published library and
// where its artifacts live inside a repository.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzegebbe/publish-target/internal/registry"
)

var ErrEmptyVersion = errors.New("project: version must not be empty")

// Identity is the group/artifact/version triple of a publication.
type Identity struct {
	Group      string `json:"group"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

// WithDefaults fills ArtifactID from the project directory name when unset.
func (i Identity) WithDefaults(projectDir string) Identity {
	if strings.TrimSpace(i.ArtifactID) == "" && projectDir != "" {
		if abs, err := filepath.Abs(projectDir); err == nil {
			projectDir = abs
		}
		base := filepath.Base(projectDir)
		if base != "." && base != string(filepath.Separator) {
			i.ArtifactID = base
		}
	}
	return i
}

func (i Identity) Validate() error {
	if i.Version == "" {
		return ErrEmptyVersion
	}
	fields := []struct{ name, value string }{
		{"group", i.Group},
		{"artifactId", i.ArtifactID},
		{"version", i.Version},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("project: %s must not be empty", f.name)
		}
		if strings.ContainsAny(f.value, " \t\r\n/\\:") {
			return fmt.Errorf("project: %s %q contains invalid characters", f.name, f.value)
		}
	}
	return nil
}

// Coordinates returns group:artifactId:version.
func (i Identity) Coordinates() string {
	return i.Group + ":" + i.ArtifactID + ":" + i.Version
}

func (i Identity) IsSnapshot() bool {
	return registry.IsSnapshot(i.Version)
}

// SemVer parses the version leniently. Selection never depends on it.
func (i Identity) SemVer() (*semver.Version, error) {
	return semver.NewVersion(i.Version)
}

func (i Identity) String() string {
	return i.Coordinates()
}
