// Package chunksource provides concrete jsonstream.Source implementations.
// The core engine treats a Source as an abstract, externally-supplied
// collaborator and never constructs one itself; this package is where
// platform-specific byte streams (an in-memory buffer, an io.Reader, a
// goroutine-fed channel, a rate-limited wrapper around another Source) get
// turned into that abstraction.
package chunksource

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lattice-run/jsonstream"
)

// FromBytes returns a Source that yields data in chunks of at most size
// bytes, in order, then io.EOF. A size of zero or less yields the whole of
// data as a single chunk.
func FromBytes(data []byte, size int) jsonstream.Source {
	if size <= 0 {
		size = len(data)
		if size == 0 {
			size = 1
		}
	}
	return &byteSource{data: data, size: size}
}

type byteSource struct {
	data []byte
	size int
	pos  int
}

func (s *byteSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.data) {
		return nil, io.EOF
	}
	end := s.pos + s.size
	if end > len(s.data) {
		end = len(s.data)
	}
	chunk := s.data[s.pos:end]
	s.pos = end
	return chunk, nil
}

// FromReader returns a Source that pulls chunks of at most size bytes from
// r, buffered through a bufio.Reader. It does not close r.
func FromReader(r io.Reader, size int) jsonstream.Source {
	if size <= 0 {
		size = 4096
	}
	return &readerSource{br: bufio.NewReaderSize(r, size), size: size}
}

type readerSource struct {
	br   *bufio.Reader
	size int
	err  error // error held back from a read that also returned data
}

func (s *readerSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	buf := make([]byte, s.size)
	n, err := s.br.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	// A short read with a non-EOF error still returns its partial chunk;
	// the error surfaces on the following call.
	s.err = err
	return buf[:n], nil
}

// Async wraps a blocking producer function as a Source, running it on its
// own goroutine and feeding chunks back over a channel. It exists to
// demonstrate that a Source is genuinely asynchronous: produce can block on
// a socket read, a file read, or anything else, while Next just waits on
// the channel. An errgroup.Group supplies cancellation and error
// propagation: if produce returns an error, or the consumer's context is
// canceled, the goroutine is told to stop and that error (or ctx.Err()) is
// what subsequent Next calls return.
type Async struct {
	ch     chan []byte
	g      *errgroup.Group
	cancel context.CancelFunc
	err    error
	done   bool
}

// NewAsync starts produce on a background goroutine. produce must call
// emit once per chunk, in order, and return nil on success or an error to
// abort the stream; it must respect ctx.Done().
func NewAsync(ctx context.Context, produce func(ctx context.Context, emit func([]byte) error) error) *Async {
	cctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(cctx)
	a := &Async{ch: make(chan []byte), g: g, cancel: cancel}

	g.Go(func() error {
		defer close(a.ch)
		return produce(gctx, func(chunk []byte) error {
			select {
			case a.ch <- chunk:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	return a
}

// Next implements jsonstream.Source.
func (a *Async) Next(ctx context.Context) ([]byte, error) {
	if a.done {
		return nil, a.err
	}
	select {
	case chunk, ok := <-a.ch:
		if ok {
			return chunk, nil
		}
		a.done = true
		a.err = a.g.Wait()
		if a.err == nil {
			a.err = io.EOF
		}
		return nil, a.err
	case <-ctx.Done():
		a.cancel()
		return nil, ctx.Err()
	}
}

// Close cancels the background producer, if it is still running, and waits
// for it to exit.
func (a *Async) Close() error {
	a.cancel()
	if !a.done {
		a.done = true
		a.err = a.g.Wait()
	}
	if a.err == io.EOF {
		return nil
	}
	return a.err
}

// Throttled wraps another Source so that each chunk it yields is preceded
// by a wait on a token-bucket rate limiter, weighted by the chunk's size.
// It exists to exercise the engine's tokenStream against slow or irregular
// chunk arrival without needing a real slow network.
type Throttled struct {
	src     jsonstream.Source
	limiter *rate.Limiter
}

// NewThrottled wraps src so that chunk delivery is limited to bytesPerSec
// bytes per second, with a burst allowance of burst bytes. A non-positive
// bytesPerSec disables throttling.
func NewThrottled(src jsonstream.Source, bytesPerSec, burst int) *Throttled {
	lim := rate.Inf
	if bytesPerSec > 0 {
		lim = rate.Limit(bytesPerSec)
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttled{src: src, limiter: rate.NewLimiter(lim, burst)}
}

// Next implements jsonstream.Source.
func (t *Throttled) Next(ctx context.Context) ([]byte, error) {
	chunk, err := t.src.Next(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.limiter.WaitN(ctx, max(1, len(chunk))); err != nil {
		return nil, err
	}
	return chunk, nil
}
