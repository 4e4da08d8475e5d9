package registry

import (
	"net/url"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
)

// NewStaticKeychain builds a keychain for repository hosts. Hosts are matched
// case-insensitively in their canonical registry form, so "docker.io" and
// "index.docker.io" are the same entry. A "*.example.com" entry matches any
// subdomain.
func NewStaticKeychain(creds map[string]authn.Authenticator) authn.Keychain {
	normalized := make(map[string]authn.Authenticator, len(creds))
	for host, authenticator := range creds {
		if authenticator == nil {
			continue
		}
		key := canonicalHost(host)
		if key == "" {
			continue
		}
		normalized[key] = authenticator
	}
	return &staticKeychain{creds: normalized}
}

// KeychainFor maps the host of each target URL to its credentials. Targets
// without credentials or with unparsable URLs are skipped.
func KeychainFor(targets ...Target) authn.Keychain {
	creds := make(map[string]authn.Authenticator, len(targets))
	for _, t := range targets {
		if !t.HasCredentials() {
			continue
		}
		u, err := url.Parse(t.URL)
		if err != nil || u.Host == "" {
			continue
		}
		creds[u.Host] = t.Authenticator()
	}
	return NewStaticKeychain(creds)
}

// canonicalHost lowercases host and applies the registry name rewrites
// go-containerregistry uses for lookups. Wildcard patterns are only lowercased.
func canonicalHost(host string) string {
	trimmed := strings.ToLower(strings.TrimSpace(host))
	if trimmed == "" || strings.HasPrefix(trimmed, "*.") {
		return trimmed
	}
	reg, err := name.NewRegistry(trimmed, name.WeakValidation)
	if err != nil {
		return trimmed
	}
	return strings.ToLower(reg.RegistryStr())
}

type staticKeychain struct {
	creds map[string]authn.Authenticator
}

func (s *staticKeychain) Resolve(resource authn.Resource) (authn.Authenticator, error) {
	if s == nil || len(s.creds) == 0 {
		return authn.Anonymous, nil
	}
	host := canonicalHost(resource.RegistryStr())
	if auth, ok := s.creds[host]; ok {
		return auth, nil
	}
	for pattern, auth := range s.creds {
		suffix, ok := strings.CutPrefix(pattern, "*.")
		if !ok {
			continue
		}
		if strings.HasSuffix(host, "."+suffix) {
			return auth, nil
		}
	}
	return authn.Anonymous, nil
}
