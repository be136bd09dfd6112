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

// Until returns a parser that applies p zero or more times until term
// succeeds, and returns the values of p. The value of term is discarded.
//
// term is tried before each application of p. If term fails after consuming
// input, Until fails. Until panics with an *InvariantError if p succeeds
// without consuming input.
//
func Until[T comparable, V, U any](p Parser[T, V], term Parser[T, U]) Parser[T, []V] {
	return Or(
		Then(term, Return[T, []V](nil)),
		AtLeastOnceUntil(p, term))
}

// AtLeastOnceUntil is like Until but requires at least one application of p
// before term.
//
func AtLeastOnceUntil[T comparable, V, U any](p Parser[T, V], term Parser[T, U]) Parser[T, []V] {
	return until(p, term, "AtLeastOnceUntil", func(vs []V, v V) []V { return append(vs, v) })
}

// SkipUntil is like Until but discards the values of p.
//
func SkipUntil[T comparable, V, U any](p Parser[T, V], term Parser[T, U]) Parser[T, struct{}] {
	return Or(
		Then(term, Return[T](struct{}{})),
		SkipAtLeastOnceUntil(p, term))
}

// SkipAtLeastOnceUntil is like AtLeastOnceUntil but discards the values of
// p.
//
func SkipAtLeastOnceUntil[T comparable, V, U any](p Parser[T, V], term Parser[T, U]) Parser[T, struct{}] {
	return until(p, term, "SkipAtLeastOnceUntil", func(u struct{}, _ V) struct{} { return u })
}

func until[T comparable, V, U, A any](p Parser[T, V], term Parser[T, U], name string, step func(A, V) A) Parser[T, A] {
	return func(s *State[T], c *Collector[T]) Result[A] {
		var acc A
		r := p(s, c)
		if !r.Ok {
			return Failure[A](r.Consumed)
		}
		if !r.Consumed {
			panic(zeroProgress(name))
		}
		acc = step(acc, r.Value)

		var tc, pc Collector[T]
		for {
			tc.Reset()
			tr := term(s, &tc)
			if tr.Ok {
				return Success(acc, true)
			}
			if tr.Consumed {
				c.Merge(&tc)
				return Failure[A](true)
			}
			pc.Reset()
			r = p(s, &pc)
			if !r.Ok {
				if !r.Consumed {
					c.Merge(&tc)
				}
				c.Merge(&pc)
				return Failure[A](true)
			}
			if !r.Consumed {
				panic(zeroProgress(name))
			}
			acc = step(acc, r.Value)
		}
	}
}
