package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sigs.k8s.io/yaml"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write renders p in format. An empty format means text.
func (p Plan) Write(w io.Writer, format string) error {
	switch format {
	case "", FormatText:
		return p.writeText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		b, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (p Plan) writeText(w io.Writer) error {
	auth := p.Auth
	if p.Username != "" {
		auth += " (" + p.Username + ")"
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "project:\t%s\n", p.Coordinates)
	fmt.Fprintf(tw, "kind:\t%s\n", p.Kind)
	fmt.Fprintf(tw, "repository:\t%s\n", p.URL)
	fmt.Fprintf(tw, "auth:\t%s\n", auth)
	for _, u := range p.Uploads {
		fmt.Fprintf(tw, "%s:\t%s\n", u.Artifact, u.URL)
	}
	return tw.Flush()
}
