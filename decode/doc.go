// Package decode implements a conventional, non-chunked JSON scanner and
// parser. It is the whole-value decoder that the jsonstream engine delegates
// to once a leaf value or an object key has been fully buffered from the
// input; skipped values are never buffered or handed to it.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from a []byte holding the complete input and call its Next method to
// iterate over the tokens it contains. Next advances to the next token and
// reports whether one was found:
//
//	s := decode.NewScanner(buf)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// Next returns false both at the end of the input and on a lexical error;
// Err distinguishes the two, returning nil in the former case.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *decode.SyntaxError is returned.
//
// Construct a Stream from a []byte holding the complete input, and call its
// Parse method. Parse returns nil if the input was fully processed without
// error. If a Handler method reports an error, parsing stops and that error
// is returned.
//
//	s := decode.NewStream(buf)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available:
//
//	if err := s.ParseOne(handle); err == io.EOF {
//	   log.Print("No more input")
//	} else if err != nil {
//	   log.Printf("ParseOne failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. See the comments on the Handler type for the meaning
// of each method's anchor value. The Anchor passed to a handler method is only
// valid for the duration of that method call; the handler must copy any data
// it needs to retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported.
package decode
