package jsonstream

import "context"

// A Source is an asynchronous producer of text chunks — the external
// collaborator the core engine consumes and never constructs itself (per
// spec, converting platform-specific byte streams into a chunk stream is
// out of scope for this package; see the chunksource subpackage for
// concrete producers). Next returns the next chunk of input, or io.EOF once
// the stream is exhausted. A Source is not required to be safe for
// concurrent use; a single Visit call has exclusive ownership of it.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
}
