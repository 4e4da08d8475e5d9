package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publish-target.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
project:
  group: com.oskarmc
  version: 1.0.0-SNAPSHOT
repositories:
  release: https://repository.oskarsmc.com/releases
  snapshot: https://repository.oskarsmc.com/snapshots
credentials:
  source: kubernetes
  kubernetes:
    namespace: ci
    secret: maven
urlMap:
  - from: https://repository.oskarsmc.com/
    to: https://mirror.internal/oskarsmc/
`)

	cfg, ok, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true when file exists")
	}
	if cfg.Project.Group != "com.oskarmc" || cfg.Project.Version != "1.0.0-SNAPSHOT" {
		t.Fatalf("unexpected project: %+v", cfg.Project)
	}
	if cfg.Repositories.Snapshot != "https://repository.oskarsmc.com/snapshots" {
		t.Fatalf("unexpected repositories: %+v", cfg.Repositories)
	}
	if cfg.Credentials.Source != "kubernetes" || cfg.Credentials.Kubernetes.Secret != "maven" {
		t.Fatalf("unexpected credentials: %+v", cfg.Credentials)
	}
	if len(cfg.URLMap) != 1 || cfg.URLMap[0].To != "https://mirror.internal/oskarsmc/" {
		t.Fatalf("unexpected url map: %+v", cfg.URLMap)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, ok, err := Load("/non/existent/path.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false when file missing")
	}
	if cfg.Project.Version != "" {
		t.Fatalf("expected zero config for missing file")
	}
}

func TestLoadUnknownField(t *testing.T) {
	path := writeConfig(t, "targetKind: ecr\n")
	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
