package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lattice-run/jsonstream/ast"
)

const testJSON = `{
  "list": [
    {"x": 1},
    {"x": 2}
  ],
  "y": {"hello": "there"},
  "o": ["hi", "yourself"],
  "xyz": {"p": true, "d": true, "q": false}
}`

func parseOne(t *testing.T, src string) ast.Value {
	t.Helper()
	vs, err := ast.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("Parse: got %d values, want 1", len(vs))
	}
	return vs[0]
}

func TestParseAndFind(t *testing.T) {
	v := parseOne(t, testJSON)
	obj, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("top-level value is %T, want *ast.Object", v)
	}

	list := obj.Find("list")
	if list == nil {
		t.Fatal(`Find("list") = nil`)
	}
	arr, ok := list.Value.(*ast.Array)
	if !ok {
		t.Fatalf(`"list" value is %T, want *ast.Array`, list.Value)
	}
	if len(arr.Values) != 2 {
		t.Fatalf("len(arr.Values) = %d, want 2", len(arr.Values))
	}

	xyz := obj.Find("xyz").Value.(*ast.Object)
	if m := xyz.Find("d"); m == nil || m.Value.(*ast.Bool).Value() != true {
		t.Errorf(`xyz.d = %v, want true`, m)
	}
	if obj.Find("nonesuch") != nil {
		t.Error(`Find("nonesuch") = non-nil, want nil`)
	}
}

func TestNative(t *testing.T) {
	v := parseOne(t, testJSON)
	got := ast.Native(v)

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Native result is %T, want map[string]any", got)
	}
	o, ok := m["o"].([]any)
	if !ok || len(o) != 2 {
		t.Fatalf(`m["o"] = %v, want a 2-element []any`, m["o"])
	}
	want := []any{"hi", "yourself"}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("o mismatch (-want +got):\n%s", diff)
	}

	xyz, ok := m["xyz"].(map[string]any)
	if !ok {
		t.Fatalf(`m["xyz"] = %v, want map[string]any`, m["xyz"])
	}
	if xyz["p"] != true || xyz["q"] != false {
		t.Errorf("xyz = %v, want p=true q=false", xyz)
	}
}

func TestParseValue(t *testing.T) {
	v, err := ast.ParseValue([]byte(`{"a": [1, 2, 3]}`))
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	obj := v.(*ast.Object)
	a := obj.Find("a").Value.(*ast.Array)
	if len(a.Values) != 3 {
		t.Fatalf("len(a.Values) = %d, want 3", len(a.Values))
	}
	if got := a.Values[2].(*ast.Integer).Int64(); got != 3 {
		t.Errorf("a.Values[2] = %d, want 3", got)
	}
}

func TestLookup(t *testing.T) {
	v := parseOne(t, testJSON)

	got, err := ast.Lookup(v, "y", "hello")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s, ok := got.(*ast.String); !ok || s.Unescape() != "there" {
		t.Errorf("Lookup(y,hello) = %v, want string %q", got, "there")
	}

	if _, err := ast.Lookup(v, "y", "nonesuch"); err == nil {
		t.Error("Lookup(y,nonesuch): expected an error, got nil")
	}
	if _, err := ast.Lookup(v, "o", "hi"); err == nil {
		t.Error("Lookup(o,hi): expected an error descending into a non-object, got nil")
	}
}

func TestNumberAndString(t *testing.T) {
	v, err := ast.ParseValue([]byte(`3.5`))
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if got, want := v.(*ast.Number).Float64(), 3.5; got != want {
		t.Errorf("Float64() = %v, want %v", got, want)
	}

	v, err = ast.ParseValue([]byte(`"a\tb"`))
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if got, want := v.(*ast.String).Unescape(), "a\tb"; got != want {
		t.Errorf("Unescape() = %q, want %q", got, want)
	}
}
