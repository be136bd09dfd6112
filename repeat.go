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

// Many returns a parser that applies p zero or more times and returns the
// values in order.
//
// Many stops at the first failure of p that did not consume input, and fails
// if p fails after consuming input. It panics with an *InvariantError if p
// succeeds without consuming input, since it would loop forever.
//
func Many[T comparable, V any](p Parser[T, V]) Parser[T, []V] {
	return many(p, "Many", func(vs []V, v V) []V { return append(vs, v) })
}

// SkipMany is like Many but discards the values of p.
//
func SkipMany[T comparable, V any](p Parser[T, V]) Parser[T, struct{}] {
	return many(p, "SkipMany", func(u struct{}, _ V) struct{} { return u })
}

func many[T comparable, V, A any](p Parser[T, V], name string, step func(A, V) A) Parser[T, A] {
	return func(s *State[T], c *Collector[T]) Result[A] {
		var (
			acc      A
			child    Collector[T]
			consumed bool
		)
		for {
			child.Reset()
			r := p(s, &child)
			if !r.Ok {
				// what would have extended the repetition
				c.Merge(&child)
				if r.Consumed {
					return Failure[A](true)
				}
				return Success(acc, consumed)
			}
			if !r.Consumed {
				panic(zeroProgress(name))
			}
			consumed = true
			acc = step(acc, r.Value)
		}
	}
}

// ChainL returns a parser that applies p one or more times and folds the
// values from left to right: the first value is passed to seed, and each
// following one to step along with the accumulated result.
//
// The first application of p must succeed. The repetition then ends at the
// first failure of p that did not consume input. It panics with an
// *InvariantError if a repeated application of p succeeds without consuming
// input.
//
func ChainL[T comparable, V, A any](p Parser[T, V], seed func(V) A, step func(A, V) A) Parser[T, A] {
	return func(s *State[T], c *Collector[T]) Result[A] {
		r := p(s, c)
		if !r.Ok {
			return Failure[A](r.Consumed)
		}
		acc := seed(r.Value)
		consumed := r.Consumed
		var child Collector[T]
		for {
			child.Reset()
			r = p(s, &child)
			if !r.Ok {
				c.Merge(&child)
				if r.Consumed {
					return Failure[A](true)
				}
				return Success(acc, consumed)
			}
			if !r.Consumed {
				panic(zeroProgress("ChainL"))
			}
			consumed = true
			acc = step(acc, r.Value)
		}
	}
}

// AtLeastOnce is like Many but requires at least one match.
//
func AtLeastOnce[T comparable, V any](p Parser[T, V]) Parser[T, []V] {
	return ChainL(p,
		func(v V) []V { return []V{v} },
		func(vs []V, v V) []V { return append(vs, v) })
}

// SkipAtLeastOnce is like AtLeastOnce but discards the values of p.
//
func SkipAtLeastOnce[T comparable, V any](p Parser[T, V]) Parser[T, struct{}] {
	return ChainL(p,
		func(V) struct{} { return struct{}{} },
		func(u struct{}, _ V) struct{} { return u })
}

// SepBy1 returns a parser that applies p one or more times, separated by
// sep, and returns the values of p.
//
func SepBy1[T comparable, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	rest := Many(Then(sep, p))
	return Bind(p, func(v V) Parser[T, []V] {
		return Map(rest, func(vs []V) []V {
			return append([]V{v}, vs...)
		})
	})
}

// SepBy is like SepBy1 but also matches zero occurrences of p.
//
func SepBy[T comparable, V, S any](p Parser[T, V], sep Parser[T, S]) Parser[T, []V] {
	return Optional(SepBy1(p, sep), []V(nil))
}
