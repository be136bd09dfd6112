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

import "golang.org/x/exp/slices"

// An Equaler reports whether two tokens are equal.
//
type Equaler[T any] interface {
	Equal(a, b T) bool
}

// EqualFunc adapts a function to the Equaler interface.
//
type EqualFunc[T any] func(a, b T) bool

// Equal calls f(a, b).
//
func (f EqualFunc[T]) Equal(a, b T) bool { return f(a, b) }

type eqComparable[T comparable] struct{}

func (eqComparable[T]) Equal(a, b T) bool { return a == b }

// Sequence returns a parser that matches the given tokens in order and
// returns them.
//
// On mismatch at index i, the cursor is left on the mismatching token (or at
// the end of input) and the failure is reported as consuming input if i > 0.
// The whole sequence is reported as expected.
//
func Sequence[T comparable](tokens ...T) Parser[T, []T] {
	return sequence[T](eqComparable[T]{}, tokens)
}

// SequenceFunc is like Sequence but compares tokens with eq. The parser
// returns the tokens given to SequenceFunc, not the ones matched.
//
func SequenceFunc[T comparable](eq func(a, b T) bool, tokens ...T) Parser[T, []T] {
	return sequence[T](EqualFunc[T](eq), tokens)
}

func sequence[T comparable, E Equaler[T]](eq E, tokens []T) Parser[T, []T] {
	want := slices.Clone(tokens)
	exp := []Expected[T]{Literal(want...)}
	return func(s *State[T], c *Collector[T]) Result[[]T] {
		la := s.LookAhead(len(want))
		for i, t := range la {
			if !eq.Equal(t, want[i]) {
				s.Advance(i)
				c.Expect(s, exp...)
				return Failure[[]T](i > 0)
			}
		}
		if n := len(la); n < len(want) {
			s.Advance(n)
			c.Expect(s, exp...)
			return Failure[[]T](n > 0)
		}
		s.Advance(len(want))
		return Success(slices.Clone(want), len(want) > 0)
	}
}
