package jsonpath_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lattice-run/jsonstream/jsonpath"
)

func TestSelect(t *testing.T) {
	data := map[string]any{
		"items": []any{
			map[string]any{"id": 1.0, "tag": "a"},
			map[string]any{"id": 2.0, "tag": "b"},
			map[string]any{"id": 3.0, "tag": "a"},
		},
	}

	tests := []struct {
		name string
		expr string
		want []any
	}{
		{"wildcard-field", "$.items[*].tag", []any{"a", "b", "a"}},
		{"index", "$.items[1].id", []any{2.0}},
		{"filter", "$.items[?@.tag=='a'].id", []any{1.0, 3.0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := jsonpath.Select(data, test.expr)
			if err != nil {
				t.Fatalf("Select(%q): unexpected error: %v", test.expr, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Select(%q): diff (-want +got):\n%s", test.expr, diff)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	if _, err := jsonpath.Compile("not a path"); err == nil {
		t.Error("Compile: expected an error for a malformed expression")
	}
}

func TestCompileReuse(t *testing.T) {
	p, err := jsonpath.Compile("$.items[*].id")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	data := map[string]any{"items": []any{
		map[string]any{"id": 10.0},
		map[string]any{"id": 20.0},
	}}
	got := p.Select(data)
	want := []any{10.0, 20.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select: diff (-want +got):\n%s", diff)
	}
}
