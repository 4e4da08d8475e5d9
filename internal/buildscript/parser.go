/*
Package buildscript reads the publication settings out of a Gradle build
script, in either the Kotlin (.gradle.kts) or Groovy (.gradle) DSL.

It is a text scanner, not an evaluator: only literal strings are recognised.
*/
package buildscript

import (
	"regexp"
	"strings"
)

const (
	blockPublishing   = "publishing"
	blockRepositories = "repositories"
	blockCredentials  = "credentials"

	keywordSnapshot = "snapshot"
	keywordRelease  = "release"
)

var (
	// group = "com.example", or Groovy's group 'com.example'
	groupRe = regexp.MustCompile(`(?m)^\s*group\s*=?\s*['"]([^'"]+)['"]`)

	versionRe = regexp.MustCompile(`(?m)^\s*version\s*=?\s*['"]([^'"]+)['"]`)

	// A URL bound to a local, e.g. val releasesRepoUrl = uri("..."). The
	// variable name tells release from snapshot.
	namedURLRe = regexp.MustCompile(`(?m)\b(?:val|var|def)\s+(\w+)\s*=\s*(?:uri\s*\(\s*)?['"]([^'"]+)['"]`)

	// A literal repository url in either DSL:
	//   url "x"   url = "x"   url: "x"   url = uri("x")   url("x")   url.set(uri("x"))
	repoURLRe = regexp.MustCompile(`(?m)\burl(?:\.set)?\s*(?:[:=]\s*|\(\s*|\s+)(?:uri\s*\(\s*)?['"]([^'"]+)['"]`)

	// username = System.getenv("NAME") and password System.getenv('NAME')
	getenvRe = regexp.MustCompile(`(?m)\b(username|password)\s*=?\s*\(?\s*System\.getenv\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

// Script holds what could be read from a build script. Empty fields were not
// found.
type Script struct {
	Group       string
	Version     string
	ReleaseURL  string
	SnapshotURL string
	UsernameEnv string
	PasswordEnv string
}

// Parse scans a build script written in either DSL.
func Parse(content []byte) Script {
	var s Script
	text := stripComments(string(content))

	top := topLevel(text)
	if m := groupRe.FindStringSubmatch(top); m != nil {
		s.Group = m[1]
	}
	if m := versionRe.FindStringSubmatch(top); m != nil {
		s.Version = m[1]
	}

	var repos strings.Builder
	for _, pub := range namedBlocks(text, blockPublishing) {
		for _, repo := range namedBlocks(pub, blockRepositories) {
			repos.WriteString(repo)
			repos.WriteString("\n")
		}
	}
	if repos.Len() == 0 {
		return s
	}
	repoText := repos.String()

	for _, m := range namedURLRe.FindAllStringSubmatch(repoText, -1) {
		name := strings.ToLower(m[1])
		switch {
		case strings.Contains(name, keywordSnapshot) && s.SnapshotURL == "":
			s.SnapshotURL = m[2]
		case strings.Contains(name, keywordRelease) && s.ReleaseURL == "":
			s.ReleaseURL = m[2]
		}
	}

	if s.ReleaseURL == "" || s.SnapshotURL == "" {
		for _, m := range repoURLRe.FindAllStringSubmatch(repoText, -1) {
			u := m[1]
			if strings.Contains(strings.ToLower(u), keywordSnapshot) {
				if s.SnapshotURL == "" {
					s.SnapshotURL = u
				}
				continue
			}
			if s.ReleaseURL == "" {
				s.ReleaseURL = u
			}
		}
	}

	for _, creds := range namedBlocks(repoText, blockCredentials) {
		for _, m := range getenvRe.FindAllStringSubmatch(creds, -1) {
			switch m[1] {
			case "username":
				if s.UsernameEnv == "" {
					s.UsernameEnv = m[2]
				}
			case "password":
				if s.PasswordEnv == "" {
					s.PasswordEnv = m[2]
				}
			}
		}
	}
	return s
}
