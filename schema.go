package jsonstream

import (
	"context"
	"fmt"

	"github.com/lattice-run/jsonstream/jpath"
)

// LeafFunc materializes a fully-parsed value reachable at some point in a
// schema. Its return corresponds to the "promise-like" return of the
// original design: in Go, blocking until it returns is the await, so no
// asynchronous callback type is needed. An error aborts the visit.
type LeafFunc func(ctx context.Context, v any) error

// A Schema is a recursive description of which parts of an incoming
// document to materialize. It is a closed sum type with three shapes —
// leaf callback, array descent, object descent — represented as an
// unexported marker interface so callers construct schemas only through
// Leaf, Array, and Object, and Visit can distinguish them by concrete type
// rather than by any structural guesswork.
type Schema interface {
	schemaTag()
}

type leafSchema struct{ cb LeafFunc }

func (leafSchema) schemaTag() {}

// Leaf constructs a schema node that materializes the value found at this
// position and hands it to cb as a plain Go value (map[string]any, []any,
// string, float64, bool, or nil — see ast.Native).
func Leaf(cb LeafFunc) Schema { return leafSchema{cb: cb} }

type arraySchema struct{ inner Schema }

func (arraySchema) schemaTag() {}

// Array constructs a schema node that descends into every element of a
// JSON array, applying inner to each one in turn.
func Array(inner Schema) Schema { return arraySchema{inner: inner} }

type objectSchema struct{ fields map[string]Schema }

func (objectSchema) schemaTag() {}

// Object constructs a schema node that descends into a JSON object.
// Members whose key is not present in fields are skipped without being
// buffered or parsed; there is no strict mode.
func Object(fields map[string]Schema) Schema { return objectSchema{fields: fields} }

// FromPath builds the nested Array/Object schema tree equivalent to
// following the JSONPath-like expression expr down to a leaf that receives
// cb. Member steps (".key", "[key]" or "['key']") become Object nodes and
// wildcard steps (".*" or "[*]") become Array nodes. A bracketed number such
// as "[0]" is an object key spelled with digits, not an array index. Any
// other step (slice, recursive descent, filter, or script) fails to parse,
// and FromPath returns that parse error together with expr.
func FromPath(expr string, cb LeafFunc) (Schema, error) {
	steps, err := jpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("jsonstream: parse path %q: %w", expr, err)
	}

	schema := Schema(Leaf(cb))
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		switch {
		case step.Op == jpath.Member && step.Arg2 == "*":
			schema = Array(schema)
		case step.Op == jpath.Member:
			schema = Object(map[string]Schema{step.Arg1: schema})
		case step.Op == jpath.Wildcard:
			schema = Array(schema)
		case step.Op == jpath.Name || step.Op == jpath.QName:
			schema = Object(map[string]Schema{step.Arg1: schema})
		default:
			return nil, fmt.Errorf("jsonstream: unsupported path step %v in %q", step.Op, expr)
		}
	}
	return schema, nil
}
