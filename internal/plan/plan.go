package plan

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-logr/logr"
	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"

	"github.com/matzegebbe/publish-target/internal/project"
	"github.com/matzegebbe/publish-target/internal/registry"
	"github.com/matzegebbe/publish-target/pkg/metrics"
	"github.com/matzegebbe/publish-target/pkg/util"
)

// Input is everything needed to plan a publish.
type Input struct {
	Identity    project.Identity
	ReleaseURL  string
	SnapshotURL string
	Credentials registry.CredentialSource
	// SourceName labels the credential source in logs and metrics.
	SourceName string
	// Rewrite is applied to the selected URL; nil leaves it unchanged.
	Rewrite   func(string) string
	Artifacts []project.Artifact
}

// Upload is one artifact and the URL it would be uploaded to.
type Upload struct {
	Artifact string `json:"artifact"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// Plan describes where a publish goes. It never carries a password.
type Plan struct {
	Project           project.Identity `json:"project"`
	Coordinates       string           `json:"coordinates"`
	Kind              string           `json:"kind"`
	SemVer            bool             `json:"semver"`
	URL               string           `json:"url"`
	Username          string           `json:"username,omitempty"`
	Authenticated     bool             `json:"authenticated"`
	Auth              string           `json:"auth"`
	CredentialsSource string           `json:"credentialsSource,omitempty"`
	Uploads           []Upload         `json:"uploads"`
}

// Build validates the identity, resolves credentials, selects the target and
// lays out the upload URLs.
func Build(ctx context.Context, in Input) (Plan, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("project", in.Identity.Coordinates())

	if err := in.Identity.Validate(); err != nil {
		return Plan{}, err
	}
	if in.ReleaseURL == "" || in.SnapshotURL == "" {
		return Plan{}, fmt.Errorf("both release and snapshot repository URLs are required")
	}

	target, err := registry.Resolve(ctx, in.Identity.Version, in.ReleaseURL, in.SnapshotURL, in.Credentials)
	if err != nil {
		metrics.RecordCredentials(in.SourceName, metrics.ResultError)
		return Plan{}, err
	}
	kind := registry.Kind(in.Identity.Version)
	metrics.RecordSelection(kind)

	if target.HasCredentials() {
		metrics.RecordCredentials(in.SourceName, metrics.ResultAuthenticated)
	} else {
		metrics.RecordCredentials(in.SourceName, metrics.ResultUnauthenticated)
		log.Info("no repository credentials configured, target is unauthenticated", "source", in.SourceName)
	}

	repoURL := target.URL
	if in.Rewrite != nil {
		repoURL = in.Rewrite(repoURL)
		if repoURL != target.URL {
			log.V(1).Info("rewrote repository url", "from", target.URL, "to", repoURL)
		}
	}
	scheme, err := authScheme(registry.Target{URL: repoURL, Username: target.Username, Password: target.Password})
	if err != nil {
		return Plan{}, err
	}
	if target.HasCredentials() && scheme == "anonymous" {
		return Plan{}, fmt.Errorf("credentials for %s did not resolve for host lookup", repoURL)
	}

	_, semErr := in.Identity.SemVer()
	if semErr != nil {
		log.V(1).Info("version is not semantic", "version", in.Identity.Version)
	}

	artifacts := in.Artifacts
	if len(artifacts) == 0 {
		artifacts = project.StandardArtifacts()
	}
	uploads := make([]Upload, 0, len(artifacts))
	for _, a := range artifacts {
		p := in.Identity.Path(a)
		u, err := util.JoinURL(repoURL, p)
		if err != nil {
			return Plan{}, fmt.Errorf("build upload url for %s: %w", a, err)
		}
		uploads = append(uploads, Upload{Artifact: a.String(), Path: p, URL: u})
	}

	log.Info("selected publish target", "kind", kind, "url", repoURL, "auth", scheme)

	return Plan{
		Project:           in.Identity,
		Coordinates:       in.Identity.Coordinates(),
		Kind:              kind,
		SemVer:            semErr == nil,
		URL:               repoURL,
		Username:          target.Username,
		Authenticated:     target.HasCredentials(),
		Auth:              scheme,
		CredentialsSource: in.SourceName,
		Uploads:           uploads,
	}, nil
}

// authScheme resolves the repository host through a keychain built from t and
// names the scheme an upload would use.
func authScheme(t registry.Target) (string, error) {
	u, err := url.Parse(t.URL)
	if err != nil {
		return "", fmt.Errorf("parse repository url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("repository url %q has no host", t.URL)
	}
	reg, err := name.NewRegistry(u.Host, name.WeakValidation)
	if err != nil {
		return "", fmt.Errorf("parse repository host: %w", err)
	}
	auth, err := registry.KeychainFor(t).Resolve(reg)
	if err != nil {
		return "", err
	}
	if auth == authn.Anonymous {
		return "anonymous", nil
	}
	return "basic", nil
}
