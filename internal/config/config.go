package config

import (
	"errors"
	"io/fs"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/matzegebbe/publish-target/pkg/util"
)

// FilePath is the config file looked up in the working directory.
const FilePath = "publish-target.yaml"

type Project struct {
	Group      string `json:"group"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

type Repositories struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

type Env struct {
	UsernameVar string `json:"usernameVar"`
	PasswordVar string `json:"passwordVar"`
}

type Kubernetes struct {
	Namespace   string `json:"namespace"`
	Secret      string `json:"secret"`
	UsernameKey string `json:"usernameKey"`
	PasswordKey string `json:"passwordKey"`
}

type CodeArtifact struct {
	Domain          string `json:"domain"`
	DomainOwner     string `json:"domainOwner"`
	Region          string `json:"region"`
	DurationSeconds int64  `json:"durationSeconds"`
}

type Credentials struct {
	Source       string       `json:"source"` // env | kubernetes | codeartifact
	Env          Env          `json:"env"`
	Kubernetes   Kubernetes   `json:"kubernetes"`
	CodeArtifact CodeArtifact `json:"codeartifact"`
}

type Config struct {
	Project      Project            `json:"project"`
	Repositories Repositories       `json:"repositories"`
	Credentials  Credentials        `json:"credentials"`
	BuildScript  string             `json:"buildScript"`
	URLMap       []util.PathMapping `json:"urlMap"`
	Output       string             `json:"output"`
	MetricsFile  string             `json:"metricsFile"`
}

// Load reads path. A missing file is not an error; ok reports whether a file
// was read.
func Load(path string) (Config, bool, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, false, nil
		}
		return c, false, err
	}
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, false, err
	}
	return c, true, nil
}
