// Package ast defines an abstract syntax tree for decoded JSON values, and a
// parser that constructs syntax trees from JSON source. It is the bridge
// between the jsonstream engine's buffered leaf text and a materialized Go
// value: the visitor decodes each buffered leaf value with ParseValue and
// converts it with Native, so a leaf callback receives a plain
// map[string]any/[]any/etc.
package ast

import (
	"fmt"
	"strconv"

	"github.com/lattice-run/jsonstream/decode"
)

// A Value is an arbitrary JSON value.
type Value interface{ Span() decode.Span }

// A Datum is a Value with a text representation.
type Datum interface {
	Value
	Text() string
}

func newSpan(pos, end int) decode.Span { return decode.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members.
type Object struct {
	pos, end int
	Members  []*Member
}

// Span satisfies the Value interface.
func (o Object) Span() decode.Span { return newSpan(o.pos, o.end) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos, end int

	Key   string
	Value Value
}

// Span satisfies the Value interface.
func (m Member) Span() decode.Span { return newSpan(m.pos, m.end) }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a Array) Span() decode.Span { return newSpan(a.pos, a.end) }

type datum struct {
	pos, end int
	text     []byte
}

// Span satisfies the Value interface.
func (d datum) Span() decode.Span { return newSpan(d.pos, d.end) }

// Text satisfies the Datum interface.
func (d datum) Text() string { return string(d.text) }

// An Integer is an integer value.
type Integer struct{ datum }

func (z Integer) Int64() int64 {
	v, err := strconv.ParseInt(string(z.text), 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Number is a floating-point value.
type Number struct{ datum }

func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(string(n.text), 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

func (b Bool) Value() bool { return b.value }

// A String is a string value.
type String struct{ datum }

func (s String) Unescape() string {
	dec, err := decode.Unquote(string(s.text))
	if err != nil {
		panic(err)
	}
	return string(dec)
}

// Null represents the null constant.
type Null struct{ datum }

// Lookup resolves a sequence of object keys against v, descending one
// member at a time, and returns the value of the last key's member. It is
// a narrow convenience over repeated Find calls for the common case of a
// known, all-string key path; callers who also need array indices or
// want to recover a partial path on failure should use the ast/cursor
// package's Cursor and Path instead.
func Lookup(v Value, keys ...string) (Value, error) {
	cur := v
	for _, key := range keys {
		obj, ok := asObject(cur)
		if !ok {
			return nil, fmt.Errorf("ast: key %q: %T is not an object", key, cur)
		}
		m := obj.Find(key)
		if m == nil {
			return nil, fmt.Errorf("ast: key %q not found", key)
		}
		cur = m.Value
	}
	return cur, nil
}

func asObject(v Value) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, true
	case Object:
		return &t, true
	default:
		return nil, false
	}
}

// Native converts v into a plain Go value using the same shapes
// encoding/json's Unmarshal would produce into an any: map[string]any for
// objects, []any for arrays, string, float64, bool, or nil. Integer values
// that do not fit cleanly are still rendered through Float64, matching
// encoding/json's behavior for the "any" target; callers who need exact
// integer precision should use v.(*Integer).Int64 directly instead of Native.
func Native(v Value) any {
	switch t := v.(type) {
	case Object:
		out := make(map[string]any, len(t.Members))
		for _, m := range t.Members {
			out[m.Key] = Native(m.Value)
		}
		return out
	case *Object:
		return Native(*t)
	case Array:
		out := make([]any, len(t.Values))
		for i, e := range t.Values {
			out[i] = Native(e)
		}
		return out
	case *Array:
		return Native(*t)
	case Integer:
		return Number{datum: t.datum}.Float64()
	case *Integer:
		return Native(*t)
	case Number:
		return t.Float64()
	case *Number:
		return Native(*t)
	case Bool:
		return t.Value()
	case *Bool:
		return Native(*t)
	case String:
		return t.Unescape()
	case *String:
		return Native(*t)
	case Null, *Null:
		return nil
	default:
		panic("ast.Native: unhandled value type")
	}
}
