package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/lattice-run/jsonstream/decode"
)

// Parse reads r to completion and returns the JSON values found in it. In
// case of error, any complete values already parsed are returned along
// with the error.
//
// decode.Stream works directly against an in-memory buffer rather than
// incrementally off an io.Reader, so Parse reads its whole argument up
// front; that is the same whole-value-at-a-time role this package plays
// for the engine's leaf callbacks, just entered from a reader instead of
// an already-buffered slice.
func Parse(r io.Reader) ([]Value, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseAll(buf)
}

// ParseValue parses buf as a single JSON value and returns the resulting
// tree. The jsonstream visitor calls it on the raw text it buffered for a
// leaf value (an atom or a whole subtree) and converts the result with
// Native before handing it to the leaf callback.
func ParseValue(buf []byte) (Value, error) {
	h := new(parseHandler)
	st := decode.NewStream(buf)
	if err := st.ParseOne(h); err != nil {
		return nil, err
	}
	if len(h.stk) != 1 {
		return nil, errors.New("incomplete value")
	}
	return h.stk[0], nil
}

func parseAll(buf []byte) ([]Value, error) {
	h := new(parseHandler)
	st := decode.NewStream(buf)
	var vs []Value
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		if len(h.stk) != 1 {
			return vs, errors.New("incomplete value")
		}
		vs = append(vs, h.stk[0])
		h.stk = h.stk[:0]
	}
}

// A parseHandler implements the decode.Handler interface to construct
// abstract syntax trees for JSON values.
type parseHandler struct {
	stk  []Value
	tbuf [][]byte
}

// intern interns a copy of text and returns a slice of the copy. Allocations
// are batched to reduce allocation overhead.
func (h *parseHandler) intern(text []byte) []byte {
	const bufBlockBytes = 8192

	if len(text) >= bufBlockBytes {
		return append([]byte(nil), text...)
	}

	i := 0
	for i < len(h.tbuf) {
		if len(h.tbuf[i])+len(text) < cap(h.tbuf[i]) {
			break
		}
		i++
	}
	if i == len(h.tbuf) {
		h.tbuf = append(h.tbuf, make([]byte, 0, bufBlockBytes))
	}
	s := len(h.tbuf[i])
	h.tbuf[i] = append(h.tbuf[i], text...)
	return h.tbuf[i][s : s+len(text)]
}

func (h *parseHandler) reduce() error {
	if len(h.stk) > 1 {
		v := h.pop()
		return h.reduceValue(v)
	}
	return nil
}

func (h *parseHandler) reduceValue(v Value) error {
	if len(h.stk) == 0 {
		// A value outside any object or array is a complete result by itself.
		h.push(v)
		return nil
	}
	if len(h.stk) > 0 {
		switch prev := h.stk[len(h.stk)-1].(type) {
		case *Member:
			prev.Value = v
		case *Object:
			// already in the object
		case *Array:
			prev.Values = append(prev.Values, v)
		}
	}
	return nil
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc decode.Anchor) error {
	h.push(new(Object))
	return nil
}

func (h *parseHandler) EndObject(loc decode.Anchor) error {
	return h.reduce()
}

func (h *parseHandler) BeginArray(loc decode.Anchor) error {
	h.push(new(Array))
	return nil
}

func (h *parseHandler) EndArray(loc decode.Anchor) error {
	return h.reduce()
}

func (h *parseHandler) BeginMember(loc decode.Anchor) error {
	// The object this member belongs to is atop the stack. Add a pointer to
	// the new member into its collection eagerly, so that when reducing the
	// stack after the value is known, we don't have to reduce multiple times.
	key, err := decode.Unquote(string(loc.Text()))
	if err != nil {
		return fmt.Errorf("invalid member key: %w", err)
	}
	mem := &Member{Key: string(key)}
	obj := h.top().(*Object)
	obj.Members = append(obj.Members, mem)
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(loc decode.Anchor) error { return h.reduce() }

func (h *parseHandler) Value(loc decode.Anchor) error {
	d := datum{text: h.intern(loc.Text())}
	switch loc.Token() {
	case decode.String:
		return h.reduceValue(&String{datum: d})
	case decode.Integer:
		return h.reduceValue(&Integer{datum: d})
	case decode.Number:
		return h.reduceValue(&Number{datum: d})
	case decode.True, decode.False:
		ok := loc.Token() == decode.True
		return h.reduceValue(&Bool{datum: d, value: ok})
	case decode.Null:
		return h.reduceValue(&Null{datum: d})
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
}

func (h *parseHandler) EndOfInput(loc decode.Anchor) {}
