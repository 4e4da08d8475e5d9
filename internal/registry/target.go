package registry

import (
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
)

// SnapshotSuffix marks a non-final, mutable version.
const SnapshotSuffix = "SNAPSHOT"

// Target is the destination repository and credentials for a publish.
// Empty Username/Password mean the credential is unset.
type Target struct {
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Password string `json:"-"`
}

// IsSnapshot reports whether version ends with the literal, case-sensitive
// SNAPSHOT suffix.
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, SnapshotSuffix)
}

// SelectTarget picks snapshotURL for snapshot versions and releaseURL for
// everything else. Credentials are passed through untouched.
func SelectTarget(version, releaseURL, snapshotURL, username, password string) Target {
	url := releaseURL
	if IsSnapshot(version) {
		url = snapshotURL
	}
	return Target{URL: url, Username: username, Password: password}
}

// HasCredentials reports whether either credential field is set.
func (t Target) HasCredentials() bool {
	return t.Username != "" || t.Password != ""
}

// Kind returns "snapshot" or "release" depending on which URL was selected.
func Kind(version string) string {
	if IsSnapshot(version) {
		return "snapshot"
	}
	return "release"
}

// Authenticator adapts the target credentials for registry clients.
func (t Target) Authenticator() authn.Authenticator {
	if !t.HasCredentials() {
		return authn.Anonymous
	}
	return &authn.Basic{Username: t.Username, Password: t.Password}
}
