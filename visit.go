package jsonstream

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lattice-run/jsonstream/ast"
	"github.com/lattice-run/jsonstream/decode"
)

// Visit drives schema over the chunks produced by src, invoking leaf
// callbacks in document order as their values complete, and returns once
// the top-level value has been fully processed or the source is exhausted.
// It returns a *SyntaxError if the input does not match schema's expected
// shape, a wrapped *decode.SyntaxError if a buffered value fails to decode,
// or whatever error a leaf callback or src returns, unmodified.
func Visit(ctx context.Context, src Source, schema Schema, opts ...Option) error {
	cfg := newConfig(opts)
	v := &visitor{ts: newTokenStream(src), cfg: cfg}
	v.push(startFrame(schema))

	for len(v.stack) > 0 {
		kind, err := v.ts.Next(ctx)
		if err == io.EOF {
			return v.errorf(Invalid, "more input (stream ended with open frames)")
		} else if err != nil {
			return err
		}
		if err := v.step(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// VisitTyped is Visit constrained, at the type level only, to documents
// that decode into T. The schema and the driving logic are identical to
// Visit's; T exists purely so callers can annotate intent at a call site,
// exactly as the original design's "optional typed variant" is
// indistinguishable from the untyped form at runtime.
func VisitTyped[T any](ctx context.Context, src Source, schema Schema, opts ...Option) error {
	return Visit(ctx, src, schema, opts...)
}

// frameKind is the tag of one push-down automaton frame.
type frameKind int

const (
	fValueBuffering frameKind = iota
	fValueSkipping
	fArrayPreBegin
	fArrayPostBegin
	fArrayPostValue
	fArrayPreEnd
	fObjectPreBegin
	fObjectPostBegin
	fObjectPreKey
	fObjectPostKey
	fObjectPostValue
)

// frame is one element of the visitor's stack. Its fields are a union over
// what each frameKind needs; only the fields relevant to the current kind
// are meaningful. elemTemplate and nextOnColon point at read-only frame
// templates (born from a Schema and never mutated in place); pushing a copy
// of *elemTemplate or *nextOnColon is what "copied on push" means for the
// otherwise-immutable start-states the design notes call for.
type frame struct {
	kind frameKind

	cb          LeafFunc          // fValueBuffering
	fields      map[string]Schema // fObject*
	innerSchema Schema            // fArrayPreBegin, before a template exists

	elemTemplate *frame // fArrayPostBegin, fArrayPostValue
	nextOnColon  *frame // fObjectPostKey
}

// startFrame builds a fresh initial frame for schema — the "start-state"
// the design notes describe as an immutable template to be copied on push.
func startFrame(schema Schema) frame {
	switch s := schema.(type) {
	case leafSchema:
		return frame{kind: fValueBuffering, cb: s.cb}
	case arraySchema:
		return frame{kind: fArrayPreBegin, innerSchema: s.inner}
	case objectSchema:
		return frame{kind: fObjectPreBegin, fields: s.fields}
	default:
		panic("jsonstream: unknown schema type")
	}
}

type visitor struct {
	ts    *tokenStream
	stack []frame
	depth int
	cfg   *config
}

func (v *visitor) push(f frame) {
	if f.kind == fValueBuffering || f.kind == fValueSkipping {
		v.depth = 0
	}
	v.stack = append(v.stack, f)
}

func (v *visitor) pop() { v.stack = v.stack[:len(v.stack)-1] }

func (v *visitor) top() *frame { return &v.stack[len(v.stack)-1] }

// step dispatches one token against the current top frame, applying the
// transition table. ArrayPostBegin is pre-processed and then falls through
// by looping rather than recursing, matching the design's "re-dispatch the
// same token against the newly pushed frame" rule.
func (v *visitor) step(ctx context.Context, kind Kind) error {
	for {
		top := v.top()

		if top.kind == fArrayPostBegin {
			if kind == EndArray {
				top.kind = fArrayPreEnd
				continue
			}
			top.kind = fArrayPostValue
			v.push(*top.elemTemplate)
			continue
		}

		switch top.kind {
		case fValueBuffering:
			return v.stepBuffering(ctx, top, kind)

		case fValueSkipping:
			return v.stepSkipping(top, kind)

		case fArrayPreBegin:
			if kind != BeginArray {
				return v.errorf(kind, "begin-array")
			}
			tmpl := startFrame(top.innerSchema)
			top.kind = fArrayPostBegin
			top.elemTemplate = &tmpl
			return nil

		case fArrayPostValue:
			switch kind {
			case EndArray:
				v.pop()
				return nil
			case ValueSeparator:
				v.push(*top.elemTemplate)
				return nil
			default:
				return v.errorf(kind, "end-array or value-separator")
			}

		case fArrayPreEnd:
			v.pop()
			return nil

		case fObjectPreBegin:
			if kind != BeginObject {
				return v.errorf(kind, "begin-object")
			}
			top.kind = fObjectPostBegin
			return nil

		case fObjectPostBegin, fObjectPreKey:
			if kind == EndObject && top.kind == fObjectPostBegin {
				v.pop()
				return nil
			}
			if kind != Atom {
				return v.errorf(kind, "object key or end-object")
			}
			key, err := v.readKey()
			if err != nil {
				return err
			}
			var next frame
			if s, ok := top.fields[key]; ok {
				next = startFrame(s)
			} else {
				next = frame{kind: fValueSkipping}
			}
			top.kind = fObjectPostValue
			v.push(frame{kind: fObjectPostKey, nextOnColon: &next})
			return nil

		case fObjectPostKey:
			if kind != NameSeparator {
				return v.errorf(kind, "name-separator")
			}
			tmpl := *top.nextOnColon
			v.pop()
			v.push(tmpl)
			return nil

		case fObjectPostValue:
			switch kind {
			case EndObject:
				v.pop()
				return nil
			case ValueSeparator:
				top.kind = fObjectPreKey
				return nil
			default:
				return v.errorf(kind, "end-object or value-separator")
			}

		default:
			panic("jsonstream: unhandled frame kind")
		}
	}
}

func (v *visitor) stepBuffering(ctx context.Context, top *frame, kind Kind) error {
	if v.depth == 0 {
		v.ts.Buffer()
		v.cfg.logger.Debug("jsonstream: entering buffered value", "offset", v.ts.Offset())
	}
	if err := v.applyDelta(kind); err != nil {
		return err
	}
	if v.depth != 0 {
		return nil
	}

	raw := v.ts.Flush()
	val, err := ast.ParseValue([]byte(raw))
	if err != nil {
		var se *decode.SyntaxError
		if errors.As(err, &se) {
			return &SyntaxError{Offset: v.ts.Offset(), err: se}
		}
		return err
	}
	v.cfg.logger.Debug("jsonstream: leaving buffered value", "offset", v.ts.Offset())
	cb := top.cb
	v.pop()
	if err := cb(ctx, ast.Native(val)); err != nil {
		return err
	}
	return nil
}

func (v *visitor) stepSkipping(top *frame, kind Kind) error {
	if err := v.applyDelta(kind); err != nil {
		return err
	}
	if v.depth == 0 {
		v.pop()
	}
	return nil
}

// applyDelta updates the depth counter for a token seen while buffering or
// skipping a value, and enforces the configured maximum nesting depth.
func (v *visitor) applyDelta(kind Kind) error {
	switch {
	case kind.isBegin():
		v.depth++
	case kind.isEnd():
		v.depth--
	}
	if v.depth < 0 {
		return v.errorf(kind, "balanced delimiters")
	}
	if v.cfg.maxDepth > 0 && v.depth > v.cfg.maxDepth {
		return v.errorf(kind, "nesting within configured max depth")
	}
	return nil
}

// readKey buffers and decodes a single object-key atom. Depth never leaves
// 0 for a key: it is a single self-delimiting token processed through the
// same buffer/flush path as a leaf value. The flushed text starts right after
// the previous token, so whitespace before the key is trimmed first.
func (v *visitor) readKey() (string, error) {
	v.ts.Buffer()
	raw := v.ts.Flush()
	key, err := decode.Unquote(strings.TrimLeft(raw, " \t\r\n"))
	if err != nil {
		return "", &SyntaxError{Offset: v.ts.Offset(), err: err}
	}
	return string(key), nil
}

func (v *visitor) errorf(got Kind, want string) error {
	v.cfg.logger.Debug("jsonstream: syntax error", "got", got, "want", want, "offset", v.ts.Offset())
	return &SyntaxError{Got: got, Want: want, Offset: v.ts.Offset()}
}
