// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package parsekit

import (
	"io"

	"github.com/db47h/parsekit/internal/pool"
	"github.com/db47h/parsekit/token"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxEmptyReads is the number of consecutive empty reads tolerated before a
// Reader is considered broken.
//
const maxEmptyReads = 100

// State is a buffered cursor over a stream of tokens. It provides the
// one-token current view, bounded lookahead and lookbehind, and a stack of
// bookmarks that pins buffered tokens so that the cursor can be rewound.
//
// Tokens are addressed by their location: the absolute, 0-based index of the
// token in the input. Locations only ever grow, except through Rewind.
//
// A State is not safe for concurrent use.
//
type State[T comparable] struct {
	src   Reader[T] // nil for in-memory spans
	pool  *pool.Pool[T]
	log   *zap.Logger
	pos   token.PosFunc[T]
	chunk int
	buf   []T
	offs  int            // location of buf[0]
	r     int            // read index
	n     int            // number of valid tokens in buf
	start token.Position // position of buf[0]
	marks []int          // bookmarked locations, in non-decreasing order
	done  bool           // src exhausted
	err   error          // I/O error other than io.EOF
}

// NewState returns a new State that reads tokens from r. pos computes token
// positions; if nil, each token counts as one column.
//
// The State must be initialized with Init before use, and closed with Close
// when done.
//
func NewState[T comparable](r Reader[T], pos token.PosFunc[T], opts ...Option) *State[T] {
	o := newOptions(opts)
	chunk := o.chunkSize
	if chunk <= 0 {
		chunk = r.ChunkSize()
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	p := pool.For[T]()
	return &State[T]{
		src:   r,
		pool:  p,
		log:   o.logger,
		pos:   posFunc(pos),
		chunk: chunk,
		buf:   p.Get(chunk),
		start: token.Start,
	}
}

// NewSliceState returns a State over an in-memory span of tokens. The span is
// used in place, without copying, and must not be modified while in use.
//
func NewSliceState[T comparable](tokens []T, pos token.PosFunc[T], opts ...Option) *State[T] {
	o := newOptions(opts)
	return &State[T]{
		log:   o.logger,
		pos:   posFunc(pos),
		buf:   tokens,
		n:     len(tokens),
		start: token.Start,
		done:  true,
	}
}

func posFunc[T any](pos token.PosFunc[T]) token.PosFunc[T] {
	if pos == nil {
		return token.Columns[T]
	}
	return pos
}

// Init buffers the first chunk of input.
//
func (s *State[T]) Init() {
	s.fill(1)
}

// HasCurrent returns true if there is a token at the current location, i.e.
// the end of input has not been reached.
//
func (s *State[T]) HasCurrent() bool {
	return s.r < s.n
}

// Current returns the token at the current location. It panics if
// HasCurrent is false.
//
func (s *State[T]) Current() T {
	if s.r >= s.n {
		panic(invariant(ErrNoCurrent, "at location %d", s.Location()))
	}
	return s.buf[s.r]
}

// Location returns the absolute location of the current token.
//
func (s *State[T]) Location() int {
	return s.offs + s.r
}

// Advance moves the cursor count tokens forward, stopping at the end of
// input. Negative counts are ignored.
//
func (s *State[T]) Advance(count int) {
	if count <= 0 {
		return
	}
	if s.src == nil {
		s.r = min(s.r+count, s.n)
		return
	}
	k := min(count, s.n-s.r)
	s.r += k
	count -= k
	// make the next current token available as well
	s.fill(count + 1)
	s.r += min(count, s.n-s.r)
}

// LookAhead returns up to count tokens starting at the current one. The
// result is shorter only when the end of input is reached. It aliases the
// internal buffer and is only valid until the next call to a State method
// that moves the cursor.
//
func (s *State[T]) LookAhead(count int) []T {
	if count <= 0 {
		return nil
	}
	s.fill(count)
	e := s.r + min(count, s.n-s.r)
	return s.buf[s.r:e:e]
}

// LookBehind returns up to count of the most recently consumed tokens that
// are still buffered. Tokens are only guaranteed to be retained when they
// were consumed after the oldest active bookmark was pushed.
//
func (s *State[T]) LookBehind(count int) []T {
	if count <= 0 {
		return nil
	}
	return s.buf[max(0, s.r-count):s.r:s.r]
}

// PushBookmark saves the current location. Until the bookmark is popped, no
// token at or after that location will be discarded.
//
func (s *State[T]) PushBookmark() {
	s.marks = append(s.marks, s.Location())
}

// PopBookmark discards the most recent bookmark.
//
func (s *State[T]) PopBookmark() {
	s.popMark()
}

// Rewind pops the most recent bookmark and moves the cursor back to it.
//
func (s *State[T]) Rewind() {
	m := s.popMark()
	d := s.Location() - m
	if d < 0 || d > s.r {
		panic(invariant(ErrRewind, "location %d, buffered [%d, %d)", m, s.offs, s.offs+s.n))
	}
	s.r -= d
}

func (s *State[T]) popMark() int {
	l := len(s.marks)
	if l == 0 {
		panic(invariant(ErrNoBookmark, "at location %d", s.Location()))
	}
	m := s.marks[l-1]
	s.marks = s.marks[:l-1]
	return m
}

// CurrentPos returns the source position of the current token.
//
func (s *State[T]) CurrentPos() token.Position {
	return s.PosAt(s.Location())
}

// PosAt returns the source position of the token at the given location. The
// location must still be buffered, or be the location right after the last
// buffered token.
//
func (s *State[T]) PosAt(loc int) token.Position {
	i := loc - s.offs
	if i < 0 || i > s.n {
		panic(invariant(ErrLocation, "location %d, buffered [%d, %d)", loc, s.offs, s.offs+s.n))
	}
	p := s.start
	for _, t := range s.buf[:i] {
		p = s.pos(t, p)
	}
	return p
}

// Err returns the I/O error reported by the Reader, if any. io.EOF is not an
// error.
//
func (s *State[T]) Err() error {
	return s.err
}

// Close releases the buffer and closes the Reader if it implements
// io.Closer. The State must not be used afterwards.
//
func (s *State[T]) Close() error {
	s.marks = nil
	src := s.src
	if src != nil && s.buf != nil {
		s.pool.Put(s.buf)
	}
	s.src, s.done = nil, true
	s.buf, s.r, s.n = nil, 0, 0
	if c, ok := src.(io.Closer); ok {
		return errors.WithStack(c.Close())
	}
	return nil
}

// fill makes sure that at least k tokens are buffered from the read index on,
// unless the end of input is reached first. Tokens consumed before the oldest
// bookmark are dropped from the buffer and their positions folded into
// s.start.
//
func (s *State[T]) fill(k int) {
	if s.r+k <= s.n || s.done {
		return
	}

	keep := 0 // consumed tokens pinned by bookmarks
	if len(s.marks) > 0 {
		keep = s.Location() - s.marks[0]
	}
	from := s.r - keep
	kept := s.n - from
	need := kept + max(s.chunk, keep+k-kept)

	for _, t := range s.buf[:from] {
		s.start = s.pos(t, s.start)
	}
	if need > len(s.buf) {
		buf := s.pool.Get(max(need, 2*len(s.buf)))
		s.log.Debug("grow token buffer",
			zap.Int("from", len(s.buf)),
			zap.Int("to", len(buf)),
			zap.Int("location", s.Location()),
			zap.Int("pinned", keep))
		copy(buf, s.buf[from:s.n])
		s.pool.Put(s.buf)
		s.buf = buf
	} else if from > 0 {
		copy(s.buf, s.buf[from:s.n])
	}
	s.offs += from
	s.r = keep
	s.n = kept

	for empty := 0; s.n < s.r+k; {
		n, err := s.src.ReadInto(s.buf[s.n:])
		s.n += n
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = errors.Wrap(err, "read tokens")
				s.log.Debug("read error", zap.Error(err), zap.Int("location", s.offs+s.n))
			}
			return
		}
		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			s.done = true
			s.err = errors.WithStack(io.ErrNoProgress)
			return
		}
	}
}
