package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/matzegebbe/publish-target/internal/project"
	"github.com/matzegebbe/publish-target/internal/registry"
	"github.com/matzegebbe/publish-target/pkg/metrics"
)

const buildScript = `group = "com.oskarmc"
version = "1.0.0-SNAPSHOT"

publishing {
    repositories {
        maven {
            val releasesRepoUrl = uri("https://repository.oskarsmc.com/releases")
            val snapshotsRepoUrl = uri("https://repository.oskarsmc.com/snapshots")
            url = if (version.toString().endsWith("SNAPSHOT")) snapshotsRepoUrl else releasesRepoUrl
            credentials {
                username = System.getenv("MAVEN_USERNAME")
                password = System.getenv("MAVEN_SECRET")
            }
        }
    }
}
`

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func projectDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "primary")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadFromBuildScript(t *testing.T) {
	dir := projectDir(t, map[string]string{"build.gradle.kts": buildScript})
	env := envFrom(map[string]string{"MAVEN_USERNAME": "ci", "MAVEN_SECRET": "token"})

	cfg, err := runtimeLoader{lookupEnv: env}.load(context.Background(), flagOptions{ProjectDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := project.Identity{Group: "com.oskarmc", ArtifactID: "primary", Version: "1.0.0-SNAPSHOT"}
	if cfg.Identity != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Identity)
	}
	if cfg.ReleaseURL != "https://repository.oskarsmc.com/releases" || cfg.SnapshotURL != "https://repository.oskarsmc.com/snapshots" {
		t.Fatalf("unexpected urls %s %s", cfg.ReleaseURL, cfg.SnapshotURL)
	}
	if cfg.SourceName != sourceEnv {
		t.Fatalf("expected env source, got %s", cfg.SourceName)
	}
	user, pass, err := cfg.Credentials.BasicAuth(context.Background())
	if err != nil || user != "ci" || pass != "token" {
		t.Fatalf("unexpected credentials %q/%q (%v)", user, pass, err)
	}
}

func TestLoadEnvOverridesConfigAndScript(t *testing.T) {
	dir := projectDir(t, map[string]string{
		"build.gradle.kts": buildScript,
		"publish-target.yaml": `
project:
  version: 2.0.0
  artifactId: lib
repositories:
  release: https://config.example.com/releases
credentials:
  env:
    usernameVar: DEPLOY_USER
    passwordVar: DEPLOY_TOKEN
output: json
`,
	})
	env := envFrom(map[string]string{
		"PROJECT_VERSION": "3.0.0",
		"DEPLOY_USER":     "deployer",
	})

	cfg, err := runtimeLoader{lookupEnv: env}.load(context.Background(), flagOptions{ProjectDir: dir, Output: "yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Identity.Version != "3.0.0" || cfg.Identity.ArtifactID != "lib" || cfg.Identity.Group != "com.oskarmc" {
		t.Fatalf("unexpected identity %+v", cfg.Identity)
	}
	if cfg.ReleaseURL != "https://config.example.com/releases" {
		t.Fatalf("config file should override script url, got %s", cfg.ReleaseURL)
	}
	if cfg.SnapshotURL != "https://repository.oskarsmc.com/snapshots" {
		t.Fatalf("expected snapshot url from script, got %s", cfg.SnapshotURL)
	}
	if cfg.Output != "yaml" {
		t.Fatalf("flag should override config output, got %s", cfg.Output)
	}
	user, pass, _ := cfg.Credentials.BasicAuth(context.Background())
	if user != "deployer" || pass != "" {
		t.Fatalf("unexpected credentials %q/%q", user, pass)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing version", func(t *testing.T) {
		dir := projectDir(t, nil)
		_, err := runtimeLoader{lookupEnv: envFrom(nil)}.load(context.Background(), flagOptions{ProjectDir: dir})
		if !errors.Is(err, project.ErrEmptyVersion) {
			t.Fatalf("expected ErrEmptyVersion, got %v", err)
		}
	})

	t.Run("missing urls", func(t *testing.T) {
		dir := projectDir(t, nil)
		env := envFrom(map[string]string{"PROJECT_VERSION": "1.0", "RELEASE_REPO_URL": "https://r"})
		if _, err := (runtimeLoader{lookupEnv: env}).load(context.Background(), flagOptions{ProjectDir: dir}); err == nil {
			t.Fatalf("expected error for missing snapshot url")
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		dir := projectDir(t, map[string]string{"build.gradle.kts": buildScript})
		env := envFrom(map[string]string{"CREDENTIALS_SOURCE": "vault"})
		if _, err := (runtimeLoader{lookupEnv: env}).load(context.Background(), flagOptions{ProjectDir: dir}); err == nil {
			t.Fatalf("expected error for unknown credential source")
		}
	})

	t.Run("broken config", func(t *testing.T) {
		dir := projectDir(t, map[string]string{"publish-target.yaml": "project: [\n"})
		if _, err := (runtimeLoader{lookupEnv: envFrom(nil)}).load(context.Background(), flagOptions{ProjectDir: dir}); err == nil {
			t.Fatalf("expected error for invalid config file")
		}
	})
}

func TestLoadKubernetesSource(t *testing.T) {
	dir := projectDir(t, map[string]string{"build.gradle.kts": buildScript})
	client := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "maven", Namespace: "ci"},
		Data:       map[string][]byte{"username": []byte("k8s-user"), "password": []byte("k8s-pass")},
	})
	env := envFrom(map[string]string{
		"CREDENTIALS_SOURCE":           "Kubernetes",
		"CREDENTIALS_SECRET":           "maven",
		"CREDENTIALS_SECRET_NAMESPACE": "ci",
	})

	cfg, err := runtimeLoader{lookupEnv: env, kube: client}.load(context.Background(), flagOptions{ProjectDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg.Credentials.(*registry.SecretCredentials); !ok {
		t.Fatalf("expected secret credentials, got %T", cfg.Credentials)
	}
	user, pass, err := cfg.Credentials.BasicAuth(context.Background())
	if err != nil || user != "k8s-user" || pass != "k8s-pass" {
		t.Fatalf("unexpected credentials %q/%q (%v)", user, pass, err)
	}
}

func TestLoadEnvCredentialsSetButEmpty(t *testing.T) {
	dir := projectDir(t, map[string]string{"build.gradle.kts": buildScript})
	env := envFrom(map[string]string{
		"MAVEN_USERNAME": "ci",
		"MAVEN_SECRET":   "",
	})

	cfg, err := runtimeLoader{lookupEnv: env}.load(context.Background(), flagOptions{ProjectDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src, ok := cfg.Credentials.(*registry.EnvCredentials)
	if !ok {
		t.Fatalf("expected env credentials, got %T", cfg.Credentials)
	}
	if v, present := src.Lookup("MAVEN_SECRET"); !present || v != "" {
		t.Fatalf("expected MAVEN_SECRET present and empty, got %q present=%v", v, present)
	}
	if _, present := src.Lookup("UNSET_VARIABLE"); present {
		t.Fatalf("expected unset variable to be absent")
	}
	user, pass, err := src.BasicAuth(context.Background())
	if err != nil || user != "ci" || pass != "" {
		t.Fatalf("unexpected credentials %q/%q (%v)", user, pass, err)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", " b ", "c"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestRun(t *testing.T) {
	t.Cleanup(metrics.Reset)
	metrics.Reset()

	dir := projectDir(t, map[string]string{"build.gradle.kts": buildScript})
	metricsFile := filepath.Join(t.TempDir(), "publish.prom")
	t.Setenv("MAVEN_USERNAME", "")
	t.Setenv("MAVEN_SECRET", "")
	t.Setenv("CONFIG_PATH", "")

	var out bytes.Buffer
	err := run(context.Background(), testr.New(t), flagOptions{ProjectDir: dir, MetricsFile: metricsFile}, time.Second, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "https://repository.oskarsmc.com/snapshots/com/oskarmc/primary/1.0.0-SNAPSHOT/primary-1.0.0-SNAPSHOT-sources.jar") {
		t.Fatalf("unexpected plan output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "anonymous") {
		t.Fatalf("expected unauthenticated plan:\n%s", out.String())
	}
	b, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	if !strings.Contains(string(b), `kind="snapshot"`) {
		t.Fatalf("metrics file missing selection:\n%s", b)
	}
}
