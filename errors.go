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
	"fmt"
	"strings"

	"github.com/db47h/parsekit/token"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Invariant violations. They are never returned: combinators and the State
// panic with an *InvariantError wrapping one of these.
//
var (
	ErrZeroProgress = errors.New("repeated parser succeeded without consuming input")
	ErrRewind       = errors.New("rewind location is no longer buffered")
	ErrNoBookmark   = errors.New("bookmark stack is empty")
	ErrLocation     = errors.New("location is no longer buffered")
	ErrNoCurrent    = errors.New("no current token")
)

// An InvariantError is the panic value used when a grammar or a caller breaks
// one of the parsing invariants (e.g. a repetition of a parser that does not
// consume input). It always denotes a programming error.
//
type InvariantError struct {
	Err    error  // one of the Err* invariant violations
	Detail string // context
}

func invariant(err error, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return "parsekit: " + e.Err.Error()
	}
	return "parsekit: " + e.Err.Error() + ": " + e.Detail
}

// Unwrap returns the underlying Err* value.
//
func (e *InvariantError) Unwrap() error {
	return e.Err
}

func zeroProgress(combinator string) *InvariantError {
	return invariant(ErrZeroProgress, "%s", combinator)
}

// A ParseError describes why a parse failed: the token found at the deepest
// failure location, what was expected there, and where it happened.
//
type ParseError[T comparable] struct {
	Unexpected    T             // the unexpected token, if HasUnexpected
	HasUnexpected bool          // whether Unexpected is set
	EOF           bool          // the end of input was reached unexpectedly
	Expected      []Expected[T] // what was expected, unordered
	Message       string        // custom failure message, overrides Expected
	Pos           token.Position
}

func (e *ParseError[T]) Error() string {
	var b strings.Builder
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.EOF:
		b.WriteString("unexpected end of input")
	case e.HasUnexpected:
		b.WriteString("unexpected ")
		b.WriteString(renderToken(e.Unexpected))
	default:
		b.WriteString("parse error")
	}
	if e.Message == "" {
		if exp := renderExpected(e.Expected); exp != "" {
			b.WriteString(", expected ")
			b.WriteString(exp)
		}
	}
	fmt.Fprintf(&b, " at line %d, column %d", e.Pos.Line, e.Pos.Column)
	return b.String()
}

// Error builds a ParseError from the failure recorded in c. If c is empty,
// or if the recorded location is no longer buffered (which only happens with
// parsers that fail without recording anything), the error describes the
// current location of s.
//
func (s *State[T]) Error(c *Collector[T]) *ParseError[T] {
	if c.Empty() || c.loc < s.offs {
		var f Collector[T]
		f.Expect(s)
		c = &f
	}
	return &ParseError[T]{
		Unexpected:    c.unexpected,
		HasUnexpected: c.hasTok,
		EOF:           c.eof,
		Expected:      slices.Clone(c.expected),
		Message:       c.msg,
		Pos:           s.PosAt(c.loc),
	}
}
