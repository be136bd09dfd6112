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

// Or returns a parser that tries each of ps in order and returns the result
// of the first one that succeeds.
//
// As soon as an alternative fails after consuming input, Or fails without
// trying the remaining ones. Wrap alternatives with Try to allow
// backtracking. When all alternatives fail without consuming input, the
// expectations of all of them are reported.
//
func Or[T comparable, V any](ps ...Parser[T, V]) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		var acc, child Collector[T]
		for _, p := range ps {
			child.Reset()
			r := p(s, &child)
			if r.Ok {
				// discard the expectations of failed alternatives
				c.Merge(&child)
				return r
			}
			acc.Merge(&child)
			if r.Consumed {
				c.Merge(&acc)
				return r
			}
		}
		c.Merge(&acc)
		return Failure[V](false)
	}
}

// Try returns a parser that runs p and, if p fails, rewinds the input to where
// p started. The failure is then reported as not having consumed input.
//
func Try[T comparable, V any](p Parser[T, V]) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		s.PushBookmark()
		r := p(s, c)
		if !r.Ok {
			s.Rewind()
			return Failure[V](false)
		}
		s.PopBookmark()
		return r
	}
}

// Not returns a parser that succeeds, without consuming input, when p fails.
// When p succeeds, Not fails at the location where p started, reporting the
// token found there as unexpected. Input is never consumed either way.
//
func Not[T comparable, V any](p Parser[T, V]) Parser[T, struct{}] {
	return func(s *State[T], c *Collector[T]) Result[struct{}] {
		var child Collector[T]
		s.PushBookmark()
		r := p(s, &child)
		s.Rewind()
		if r.Ok {
			c.Expect(s)
			return Failure[struct{}](false)
		}
		return Success(struct{}{}, false)
	}
}

// Lookahead returns a parser that runs p and, if it succeeds, rewinds the
// input to where p started. Failures are reported as is.
//
func Lookahead[T comparable, V any](p Parser[T, V]) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		s.PushBookmark()
		r := p(s, c)
		if r.Ok {
			s.Rewind()
			return Success(r.Value, false)
		}
		s.PopBookmark()
		return r
	}
}

// Optional returns a parser that returns def when p fails without consuming
// input. The expectations of p are kept in that case, like those of the last
// attempt of Many, so that a failure right after an empty match also lists
// what p would have matched.
//
func Optional[T comparable, V any](p Parser[T, V], def V) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		r := p(s, c)
		if !r.Ok && !r.Consumed {
			return Success(def, false)
		}
		return r
	}
}
