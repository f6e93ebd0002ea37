package jsonstream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scan feeds chunks to a fresh Scanner in order, then calls End, mimicking
// an exhausted Source. It is the test helper the design notes' worked
// examples assume: a trailing End call is always implied after the given
// chunks run out.
func scan(chunks []string) []Token {
	s := NewScanner()
	var got []Token
	for _, c := range chunks {
		got = append(got, s.Feed([]byte(c))...)
	}
	got = append(got, s.End()...)
	return got
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []Token
	}{
		{"empty", []string{""}, nil},
		{"whitespace-only", []string{"  \n\t "}, nil},

		{"structural", []string{"{}[],:"}, []Token{
			{Kind: BeginObject, End: 1},
			{Kind: EndObject, End: 2},
			{Kind: BeginArray, End: 3},
			{Kind: EndArray, End: 4},
			{Kind: ValueSeparator, End: 5},
			{Kind: NameSeparator, End: 6},
		}},

		{"atoms-delimited-by-structure", []string{"[10,20,30]"}, []Token{
			{Kind: BeginArray, End: 1},
			{Kind: Atom, End: 3},
			{Kind: ValueSeparator, End: 4},
			{Kind: Atom, End: 6},
			{Kind: ValueSeparator, End: 7},
			{Kind: Atom, End: 9},
			{Kind: EndArray, End: 10},
		}},

		{"atoms-delimited-by-whitespace-and-eof", []string{"1 2"}, []Token{
			{Kind: Atom, End: 1},
			{Kind: Atom, End: 3},
		}},

		{"string-atom", []string{`"hello"`}, []Token{
			{Kind: Atom, End: 7},
		}},

		{"string-split-across-chunks", []string{`{"key":`, ` "value"}`}, []Token{
			{Kind: BeginObject, End: 1},
			{Kind: Atom, End: 6},
			{Kind: NameSeparator, End: 7},
			{Kind: Atom, End: 8},
			{Kind: EndObject, End: 9},
		}},

		{"escape-straddling-chunk-boundary", []string{`"\`, `"`}, []Token{
			{Kind: Atom, End: 1},
		}},

		{"atom-straddling-chunk-boundary", []string{"tr", "ue false"}, []Token{
			{Kind: Atom, End: 2},
			{Kind: Atom, End: 8},
		}},

		{"nested-containers", []string{`{"a":[1,{"b":2}]}`}, []Token{
			{Kind: BeginObject, End: 1},
			{Kind: Atom, End: 4},
			{Kind: NameSeparator, End: 5},
			{Kind: BeginArray, End: 6},
			{Kind: Atom, End: 7},
			{Kind: ValueSeparator, End: 8},
			{Kind: BeginObject, End: 9},
			{Kind: Atom, End: 12},
			{Kind: NameSeparator, End: 13},
			{Kind: Atom, End: 14},
			{Kind: EndObject, End: 15},
			{Kind: EndArray, End: 16},
			{Kind: EndObject, End: 17},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := scan(test.chunks)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("scan(%q): diff (-want +got):\n%s", test.chunks, diff)
			}
		})
	}
}

func TestScannerEndIsIdempotent(t *testing.T) {
	s := NewScanner()
	if toks := s.Feed([]byte("tru")); toks != nil {
		t.Fatalf("Feed: got %v, want nil (atom still pending)", toks)
	}
	first := s.End()
	if len(first) != 1 || first[0].Kind != Atom {
		t.Fatalf("End (first call): got %v, want one pending atom", first)
	}
	if second := s.End(); second != nil {
		t.Errorf("End (second call): got %v, want nil", second)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{BeginObject, `"{"`},
		{EndArray, `"]"`},
		{Atom, "atom"},
		{Invalid, "invalid"},
		{Kind(255), "invalid"},
	}
	for _, test := range tests {
		if got := test.k.String(); got != test.want {
			t.Errorf("Kind(%d).String() = %q, want %q", test.k, got, test.want)
		}
	}
}
