package project

import (
	"path"
	"strings"
)

// Artifact is one file of a publication, identified by classifier and
// extension.
type Artifact struct {
	Classifier string `json:"classifier,omitempty"`
	Extension  string `json:"extension"`
}

var (
	POM     = Artifact{Extension: "pom"}
	Jar     = Artifact{Extension: "jar"}
	Sources = Artifact{Classifier: "sources", Extension: "jar"}
	Javadoc = Artifact{Classifier: "javadoc", Extension: "jar"}
)

// StandardArtifacts lists what a java library publication with sources and
// javadoc archives uploads.
func StandardArtifacts() []Artifact {
	return []Artifact{POM, Jar, Sources, Javadoc}
}

func (a Artifact) String() string {
	if a.Classifier == "" {
		return a.Extension
	}
	return a.Classifier + "." + a.Extension
}

// FileName is artifactId-version[-classifier].ext.
func (i Identity) FileName(a Artifact) string {
	var b strings.Builder
	b.WriteString(i.ArtifactID)
	b.WriteString("-")
	b.WriteString(i.Version)
	if a.Classifier != "" {
		b.WriteString("-")
		b.WriteString(a.Classifier)
	}
	b.WriteString(".")
	b.WriteString(a.Extension)
	return b.String()
}

// Dir is the repository directory holding every file of this version.
func (i Identity) Dir() string {
	return path.Join(GroupPath(i.Group), i.ArtifactID, i.Version)
}

// Path is the repository-relative location of a.
func (i Identity) Path(a Artifact) string {
	return path.Join(i.Dir(), i.FileName(a))
}

// GroupPath turns a dotted group into slash separated directories.
func GroupPath(group string) string {
	return strings.ReplaceAll(strings.Trim(group, "."), ".", "/")
}
