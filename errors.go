package jsonstream

import (
	"context"
	"fmt"
	"log/slog"
)

// SyntaxError reports that a token did not match what the schema expected
// at the current frame — an object where an array was expected, a missing
// colon, unbalanced delimiters, and so on. It wraps a *decode.SyntaxError
// when the underlying failure came from decoding a buffered value instead
// of from the visitor's own frame transitions.
type SyntaxError struct {
	Got    Kind   // the token kind that was received
	Want   string // human-readable description of what was expected
	Offset int    // approximate byte offset into the input

	err error // wrapped decode/lexical error, if any
}

func (e *SyntaxError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("jsonstream: syntax error near offset %d: %v", e.Offset, e.err)
	}
	return fmt.Sprintf("jsonstream: syntax error near offset %d: got %s, want %s", e.Offset, e.Got, e.Want)
}

// Unwrap supports errors.Is/errors.As against the underlying decode error.
func (e *SyntaxError) Unwrap() error { return e.err }

// config holds the options threaded through Visit.
type config struct {
	logger   *slog.Logger
	maxDepth int
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.New(discardHandler{}), maxDepth: 10000}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a call to Visit.
type Option func(*config)

// WithLogger directs Visit to emit debug-level structured log events at
// state transitions worth observing in a stuck or misbehaving stream:
// entering and leaving a buffered value, and syntax errors about to be
// raised. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxDepth bounds the nesting depth the visitor will track inside a
// single buffered or skipped value, guarding against unbounded recursion on
// adversarial input. The default is 10000; a non-positive value disables
// the check.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// discardHandler is a slog.Handler that drops every record; it backs the
// default logger so WithLogger is opt-in rather than mandatory plumbing.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
