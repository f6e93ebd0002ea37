// Package jsonstream implements a selective, chunk-spanning JSON visitor.
//
// Unlike encoding/json or the decode package, jsonstream never requires the
// whole document to be resident at once: input arrives as a sequence of
// byte chunks from a Source, and the caller declares, via a Schema, which
// parts of the document it actually wants materialized. Everything else —
// whole subtrees the schema doesn't mention — is scanned just enough to
// skip past correctly, without ever being buffered or parsed.
//
// The engine is two layers. A Scanner turns chunk bytes into a flat token
// stream, remembering at most one partially-scanned token across chunk
// boundaries. Visit drives a small stack machine over that token stream: at
// each point the top of the stack says whether the current position is
// being buffered for a leaf callback, skipped outright, or mid-traversal of
// an array or object, and Visit advances the stack in response to the next
// token, materializing a value only when it crosses a position the schema
// marked as a leaf.
//
//	err := jsonstream.Visit(ctx, src, jsonstream.Object(map[string]jsonstream.Schema{
//		"results": jsonstream.Array(jsonstream.Leaf(func(ctx context.Context, v any) error {
//			// v is a map[string]any, []any, string, float64, bool, or nil.
//			return handle(v)
//		})),
//	}))
//
// See the chunksource subpackage for concrete Source implementations, the
// ast package for the whole-value AST that a leaf's raw text is parsed
// into before Native converts it, and FromPath for building a Schema from
// a JSONPath-like expression instead of nesting constructors by hand.
package jsonstream
