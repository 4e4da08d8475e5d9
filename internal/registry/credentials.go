package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
)

const (
	// DefaultUsernameEnv holds the repository user name.
	DefaultUsernameEnv = "MAVEN_USERNAME"
	// DefaultPasswordEnv holds the repository password or token.
	DefaultPasswordEnv = "MAVEN_SECRET"
)

// CredentialSource supplies basic auth for a repository. Sources return empty
// strings when no credential is configured.
type CredentialSource interface {
	BasicAuth(ctx context.Context) (username, password string, err error)
}

// EnvCredentials reads credentials from process environment variables.
type EnvCredentials struct {
	UsernameVar string
	PasswordVar string
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// NewEnvCredentials returns a source reading the given variables, falling back
// to MAVEN_USERNAME and MAVEN_SECRET when a name is empty.
func NewEnvCredentials(usernameVar, passwordVar string) *EnvCredentials {
	if usernameVar == "" {
		usernameVar = DefaultUsernameEnv
	}
	if passwordVar == "" {
		passwordVar = DefaultPasswordEnv
	}
	return &EnvCredentials{UsernameVar: usernameVar, PasswordVar: passwordVar, Lookup: os.LookupEnv}
}

func (e *EnvCredentials) BasicAuth(ctx context.Context) (string, string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	log := logr.FromContextOrDiscard(ctx)
	user, userOK := lookup(e.UsernameVar)
	pass, passOK := lookup(e.PasswordVar)
	logMissing(log, e.UsernameVar, user, userOK)
	logMissing(log, e.PasswordVar, pass, passOK)
	return user, pass, nil
}

func logMissing(log logr.Logger, variable, value string, ok bool) {
	switch {
	case !ok:
		log.V(1).Info("credential variable not set", "variable", variable)
	case value == "":
		log.V(1).Info("credential variable is empty", "variable", variable)
	}
}

// Resolve fetches credentials from source and selects the target for version.
// A nil source yields an unauthenticated target.
func Resolve(ctx context.Context, version, releaseURL, snapshotURL string, source CredentialSource) (Target, error) {
	var user, pass string
	if source != nil {
		var err error
		user, pass, err = source.BasicAuth(ctx)
		if err != nil {
			return Target{}, fmt.Errorf("resolve credentials: %w", err)
		}
	}
	return SelectTarget(version, releaseURL, snapshotURL, user, pass), nil
}
