package jpath_test

import (
	"testing"

	"github.com/lattice-run/jsonstream/jpath"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"$.store.book"},
		{"$.store.*"},
		{"$.store.book.author"},
		{"$.items[*]"},
		{"$['apple sauce'].pearPlum"},
		{"$[a][1][b]['c d e']"},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}

		want := test.input
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
	}
}

// TestParseUnsupported checks that expressions whose steps have no
// jsonstream.Schema equivalent (slices, recursive descent, scripts,
// filters) fail to parse rather than silently succeeding with a step this
// package no longer models.
func TestParseUnsupported(t *testing.T) {
	tests := []string{
		"$..author",
		"$.items[0:2]",
		"$.items[?(@.id)]",
		"$.items[(@.length-1)]",
	}
	for _, in := range tests {
		if _, err := jpath.Parse(in); err == nil {
			t.Errorf("Parse(%q): got nil error, want non-nil", in)
		}
	}
}

// A purely numeric bracket step, e.g. "[0]", is not rejected: this grammar
// has no array-index concept distinct from an object key, so it parses the
// same as any other bracket name.
func TestParseNumericBracketIsAName(t *testing.T) {
	e, err := jpath.Parse("$.items[0]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(e) != 2 || e[1].Op != jpath.Name || e[1].Arg1 != "0" {
		t.Errorf("Parse(%q) = %+v, want a Name step with Arg1 %q", "$.items[0]", e, "0")
	}
}
