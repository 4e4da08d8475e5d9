package util

import (
	"net/url"
	"regexp"
	"strings"
)

// PathMapping defines a rewrite rule for repository URLs. When Regex is set
// the From field is treated as a regular expression and replacement uses
// regexp.ReplaceAllString, otherwise a simple prefix substitution is applied.
type PathMapping struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Regex bool   `json:"regex"`
}

type compiledMapping struct {
	PathMapping
	re *regexp.Regexp
}

// NewURLRewriter returns a function that applies the given mappings to a
// repository URL. The first matching rule wins; unmatched URLs are returned
// with trailing slashes removed.
func NewURLRewriter(mappings []PathMapping) func(string) string {
	compiled := make([]compiledMapping, 0, len(mappings))
	for _, m := range mappings {
		if m.From == "" {
			continue
		}
		cm := compiledMapping{PathMapping: m}
		if m.Regex {
			r, err := regexp.Compile(m.From)
			if err != nil {
				// skip invalid regex rules
				continue
			}
			cm.re = r
		}
		compiled = append(compiled, cm)
	}
	return func(u string) string {
		for _, m := range compiled {
			if m.Regex {
				if m.re.MatchString(u) {
					u = m.re.ReplaceAllString(u, m.To)
					break
				}
				continue
			}
			if strings.HasPrefix(u, m.From) {
				u = m.To + strings.TrimPrefix(u, m.From)
				break
			}
		}
		return strings.TrimRight(u, "/")
	}
}

// JoinURL appends a slash separated path to base, escaping each segment.
func JoinURL(base, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	segments := strings.Split(strings.Trim(p, "/"), "/")
	return u.JoinPath(segments...).String(), nil
}
