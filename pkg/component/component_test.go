package component

import (
	"encoding/json"
	"testing"
)

func TestPlainTextDepthFirst(t *testing.T) {
	c := Text("a").Append(
		Text("b").Append(Text("c")),
		Text("d"),
	)
	if got := PlainText(c); got != "abcd" {
		t.Fatalf("expected abcd, got %q", got)
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := Text("root").Append(Text("x"))
	first := base.Append(Text("y"))
	second := base.Append(Text("z"))
	if PlainText(first) != "rootxy" || PlainText(second) != "rootxz" {
		t.Fatalf("appends interfered: %q %q", PlainText(first), PlainText(second))
	}
}

func TestWalkInheritsBold(t *testing.T) {
	c := Text("A").WithBold(true).Append(
		Text("B"),
		Text("C").WithBold(false).Append(Text("D")),
	)

	got := map[string]bool{}
	Walk(c, func(node Component, bold bool) {
		got[node.Text] = bold
	})
	want := map[string]bool{"A": true, "B": true, "C": false, "D": false}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("node %s: expected bold=%v, got %v", k, v, got[k])
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := Text("Welcome ").Append(Text("home").WithBold(true))

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"text":"Welcome ","extra":[{"text":"home","bold":true}]}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}

	parsed, err := ParseJSON(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if PlainText(parsed) != "Welcome home" {
		t.Fatalf("unexpected text %q", PlainText(parsed))
	}
	if parsed.Children[0].Bold == nil || !*parsed.Children[0].Bold {
		t.Fatalf("bold lost in round trip")
	}
}

func TestParseJSONShapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "string", input: `"plain"`, want: "plain"},
		{name: "array", input: `["a", {"text": "b"}, "c"]`, want: "abc"},
		{name: "nested extra", input: `{"text": "x", "extra": ["y", {"text": "z", "extra": ["!"]}]}`, want: "xyz!"},
		{name: "missing text", input: `{"extra": [{"text": "only"}]}`, want: "only"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseJSON([]byte(tc.input))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := PlainText(c); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	for _, input := range []string{`[]`, `42`, `{"text": 1}`} {
		if _, err := ParseJSON([]byte(input)); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}
