// Package jsonpath lets a leaf callback drill into a value that
// jsonstream has already materialized, using a full RFC 9535 JSONPath
// expression rather than hand-written traversal code. It is a thin
// wrapper over github.com/theory/jsonpath; the module's own jpath
// mini-parser, which the root package's FromPath uses to build schemas
// ahead of time, only understands member and wildcard steps, while this
// package runs after the fact against an
// already-decoded any and supports everything RFC 9535 does (indices,
// slices, filters, recursive descent).
package jsonpath

import (
	"fmt"

	"github.com/theory/jsonpath"
)

// Select evaluates expr against data — typically the any a jsonstream.Leaf
// callback received — and returns every matching value, in the order
// RFC 9535 defines for expr's result. It compiles expr on every call; for
// repeated use against many values, use Compile instead.
func Select(data any, expr string) ([]any, error) {
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Select(data), nil
}

// Path is a compiled JSONPath expression, ready to be evaluated against
// any number of decoded values.
type Path struct {
	p *jsonpath.Path
}

// Compile parses expr once so it can be evaluated repeatedly with Select.
func Compile(expr string) (*Path, error) {
	p, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("jsonpath: parse %q: %w", expr, err)
	}
	return &Path{p: p}, nil
}

// Select evaluates the compiled path against data.
func (p *Path) Select(data any) []any {
	return p.p.Select(data)
}

// String renders the path back to its canonical textual form.
func (p *Path) String() string {
	return p.p.String()
}
