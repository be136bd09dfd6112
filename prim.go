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

import "github.com/db47h/parsekit/token"

// Token returns a parser that matches the single token t.
//
func Token[T comparable](t T) Parser[T, T] {
	exp := []Expected[T]{Literal(t)}
	return func(s *State[T], c *Collector[T]) Result[T] {
		if s.HasCurrent() && s.Current() == t {
			s.Advance(1)
			return Success(t, true)
		}
		c.Expect(s, exp...)
		return Failure[T](false)
	}
}

// Satisfy returns a parser that matches any token for which pred returns true.
// On failure, only the unexpected token is recorded; use Labelled to name what
// was expected.
//
func Satisfy[T comparable](pred func(T) bool) Parser[T, T] {
	return func(s *State[T], c *Collector[T]) Result[T] {
		if s.HasCurrent() {
			if t := s.Current(); pred(t) {
				s.Advance(1)
				return Success(t, true)
			}
		}
		c.Expect(s)
		return Failure[T](false)
	}
}

// Any returns a parser that matches any single token.
//
func Any[T comparable]() Parser[T, T] {
	exp := []Expected[T]{Label[T]("any token")}
	return func(s *State[T], c *Collector[T]) Result[T] {
		if !s.HasCurrent() {
			c.Expect(s, exp...)
			return Failure[T](false)
		}
		t := s.Current()
		s.Advance(1)
		return Success(t, true)
	}
}

// End returns a parser that only succeeds at the end of input.
//
func End[T comparable]() Parser[T, struct{}] {
	exp := []Expected[T]{EndOfInput[T]()}
	return func(s *State[T], c *Collector[T]) Result[struct{}] {
		if s.HasCurrent() {
			c.Expect(s, exp...)
			return Failure[struct{}](false)
		}
		return Success(struct{}{}, false)
	}
}

// CurrentPos returns a parser that yields the source position of the current
// token without consuming it.
//
func CurrentPos[T comparable]() Parser[T, token.Position] {
	return func(s *State[T], _ *Collector[T]) Result[token.Position] {
		return Success(s.CurrentPos(), false)
	}
}

// CurrentOffset returns a parser that yields the location of the current
// token without consuming it.
//
func CurrentOffset[T comparable]() Parser[T, int] {
	return func(s *State[T], _ *Collector[T]) Result[int] {
		return Success(s.Location(), false)
	}
}
