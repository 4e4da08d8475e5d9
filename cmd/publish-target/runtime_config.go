package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"k8s.io/client-go/kubernetes"

	"github.com/matzegebbe/publish-target/internal/buildscript"
	"github.com/matzegebbe/publish-target/internal/config"
	"github.com/matzegebbe/publish-target/internal/project"
	"github.com/matzegebbe/publish-target/internal/registry"
	"github.com/matzegebbe/publish-target/pkg/util"
)

// Credential sources selectable through CREDENTIALS_SOURCE or the config file.
const (
	sourceEnv          = "env"
	sourceKubernetes   = "kubernetes"
	sourceCodeArtifact = "codeartifact"
)

// flagOptions holds the command line values that feed runtime resolution.
type flagOptions struct {
	ConfigPath  string
	ProjectDir  string
	BuildScript string
	Output      string
	MetricsFile string
}

// runtimeConfig holds all runtime configuration derived from flags, env vars,
// the config file and the build script.
type runtimeConfig struct {
	Identity    project.Identity
	ReleaseURL  string
	SnapshotURL string
	Credentials registry.CredentialSource
	SourceName  string
	URLMap      []util.PathMapping
	Output      string
	MetricsFile string
}

type runtimeLoader struct {
	// lookupEnv has os.LookupEnv semantics: a variable set to "" is present.
	lookupEnv func(string) (string, bool)
	// kube is used for the kubernetes credential source; nil builds a
	// clientset from the ambient config.
	kube kubernetes.Interface
}

func (l runtimeLoader) getenv(key string) string {
	if l.lookupEnv == nil {
		return ""
	}
	v, _ := l.lookupEnv(key)
	return v
}

// load resolves configuration. Env vars win over the config file, which wins
// over values read from the build script.
func (l runtimeLoader) load(ctx context.Context, opts flagOptions) (runtimeConfig, error) {
	log := logr.FromContextOrDiscard(ctx)

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}

	cfgPath := firstNonEmpty(opts.ConfigPath, l.getenv("CONFIG_PATH"))
	if cfgPath == "" {
		cfgPath = filepath.Join(projectDir, config.FilePath)
	}
	fileCfg, ok, err := config.Load(cfgPath)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load config file: %w", err)
	}
	if ok {
		log.V(1).Info("loaded config file", "path", cfgPath)
	}

	var script buildscript.Script
	scriptPath := firstNonEmpty(opts.BuildScript, fileCfg.BuildScript)
	if scriptPath == "" {
		found, exists, err := buildscript.Find(projectDir)
		if err != nil {
			return runtimeConfig{}, fmt.Errorf("look up build script: %w", err)
		}
		if exists {
			scriptPath = found
		}
	}
	if scriptPath != "" {
		script, err = buildscript.ReadFile(scriptPath)
		if err != nil {
			return runtimeConfig{}, err
		}
		log.V(1).Info("read build script", "path", scriptPath)
	}

	id := project.Identity{
		Group:      firstNonEmpty(l.getenv("PROJECT_GROUP"), fileCfg.Project.Group, script.Group),
		ArtifactID: firstNonEmpty(l.getenv("PROJECT_ARTIFACT_ID"), fileCfg.Project.ArtifactID),
		Version:    firstNonEmpty(l.getenv("PROJECT_VERSION"), fileCfg.Project.Version, script.Version),
	}.WithDefaults(projectDir)
	if id.Version == "" {
		return runtimeConfig{}, fmt.Errorf("set PROJECT_VERSION, project.version in %s, or version in the build script: %w", cfgPath, project.ErrEmptyVersion)
	}

	releaseURL := firstNonEmpty(l.getenv("RELEASE_REPO_URL"), fileCfg.Repositories.Release, script.ReleaseURL)
	snapshotURL := firstNonEmpty(l.getenv("SNAPSHOT_REPO_URL"), fileCfg.Repositories.Snapshot, script.SnapshotURL)
	if releaseURL == "" || snapshotURL == "" {
		return runtimeConfig{}, fmt.Errorf("set RELEASE_REPO_URL and SNAPSHOT_REPO_URL (via config file, build script or env)")
	}

	sourceName := strings.ToLower(firstNonEmpty(l.getenv("CREDENTIALS_SOURCE"), fileCfg.Credentials.Source, sourceEnv))
	creds, err := l.credentialSource(ctx, sourceName, fileCfg.Credentials, script)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("init credential source failed: %w", err)
	}

	return runtimeConfig{
		Identity:    id,
		ReleaseURL:  releaseURL,
		SnapshotURL: snapshotURL,
		Credentials: creds,
		SourceName:  sourceName,
		URLMap:      fileCfg.URLMap,
		Output:      firstNonEmpty(opts.Output, fileCfg.Output),
		MetricsFile: firstNonEmpty(opts.MetricsFile, fileCfg.MetricsFile),
	}, nil
}

func (l runtimeLoader) credentialSource(ctx context.Context, name string, c config.Credentials, script buildscript.Script) (registry.CredentialSource, error) {
	switch name {
	case sourceEnv:
		src := registry.NewEnvCredentials(
			firstNonEmpty(c.Env.UsernameVar, script.UsernameEnv),
			firstNonEmpty(c.Env.PasswordVar, script.PasswordEnv),
		)
		src.Lookup = l.lookupEnv
		return src, nil
	case sourceKubernetes:
		return registry.NewSecretCredentials(registry.SecretConfig{
			Namespace:   firstNonEmpty(l.getenv("CREDENTIALS_SECRET_NAMESPACE"), c.Kubernetes.Namespace),
			Name:        firstNonEmpty(l.getenv("CREDENTIALS_SECRET"), c.Kubernetes.Secret),
			UsernameKey: c.Kubernetes.UsernameKey,
			PasswordKey: c.Kubernetes.PasswordKey,
		}, l.kube)
	case sourceCodeArtifact:
		return registry.NewCodeArtifact(ctx, registry.CodeArtifactConfig{
			Domain:          firstNonEmpty(l.getenv("CODEARTIFACT_DOMAIN"), c.CodeArtifact.Domain),
			DomainOwner:     firstNonEmpty(l.getenv("CODEARTIFACT_DOMAIN_OWNER"), c.CodeArtifact.DomainOwner),
			Region:          firstNonEmpty(l.getenv("AWS_REGION"), c.CodeArtifact.Region),
			DurationSeconds: c.CodeArtifact.DurationSeconds,
		})
	default:
		return nil, fmt.Errorf("unknown CREDENTIALS_SOURCE %s", name)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
