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
	"sync"

	"github.com/db47h/parsekit/token"
	"github.com/pkg/errors"
)

// Result is the outcome of running a Parser.
//
// Consumed reports whether the parser moved the cursor forward. A failure
// that consumed input is final: no alternative is tried after it unless the
// parser was wrapped with Try.
//
type Result[V any] struct {
	Value    V
	Ok       bool
	Consumed bool
}

// Success returns a successful Result.
//
func Success[V any](v V, consumed bool) Result[V] {
	return Result[V]{Value: v, Ok: true, Consumed: consumed}
}

// Failure returns a failed Result.
//
func Failure[V any](consumed bool) Result[V] {
	return Result[V]{Consumed: consumed}
}

// A Parser parses a value of type V from tokens of type T.
//
// On failure, a Parser records what it expected in c, at the deepest location
// it reached. It must never record anything in c on success, except for
// expectations of optional input it did not find at the end position (so that
// a subsequent failure at that same position reports them).
//
// Parsers are plain functions; they are safe for concurrent use as long as
// they do not close over mutable state.
//
type Parser[T comparable, V any] func(s *State[T], c *Collector[T]) Result[V]

// Parse runs p over the tokens read from r. pos computes token positions; if
// nil, each token counts as one column.
//
// If r fails with an error other than io.EOF, that error is returned, whatever
// the outcome of p. If p fails, the returned error is a *ParseError[T].
//
// The State and r are closed before Parse returns, even if p panics.
//
func Parse[T comparable, V any](p Parser[T, V], r Reader[T], pos token.PosFunc[T], opts ...Option) (Result[V], error) {
	return run(p, NewState(r, pos, opts...))
}

// ParseSlice runs p over an in-memory span of tokens.
//
func ParseSlice[T comparable, V any](p Parser[T, V], tokens []T, pos token.PosFunc[T], opts ...Option) (Result[V], error) {
	return run(p, NewSliceState(tokens, pos, opts...))
}

func run[T comparable, V any](p Parser[T, V], s *State[T]) (res Result[V], err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close token source")
		}
	}()
	s.Init()
	var c Collector[T]
	res = p(s, &c)
	if s.err != nil {
		return res, s.err
	}
	if !res.Ok {
		return res, s.Error(&c)
	}
	return res, nil
}

// Return returns a parser that always succeeds with v, without consuming input.
//
func Return[T comparable, V any](v V) Parser[T, V] {
	return func(*State[T], *Collector[T]) Result[V] {
		return Success(v, false)
	}
}

// Fail returns a parser that always fails with the given message, without
// consuming input.
//
func Fail[T comparable, V any](msg string) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		c.Fail(s, msg)
		return Failure[V](false)
	}
}

// Map returns a parser that applies f to the value of p.
//
func Map[T comparable, V, W any](p Parser[T, V], f func(V) W) Parser[T, W] {
	return func(s *State[T], c *Collector[T]) Result[W] {
		r := p(s, c)
		if !r.Ok {
			return Failure[W](r.Consumed)
		}
		return Success(f(r.Value), r.Consumed)
	}
}

// Bind returns a parser that runs p, then the parser returned by f for the
// value of p.
//
func Bind[T comparable, V, W any](p Parser[T, V], f func(V) Parser[T, W]) Parser[T, W] {
	return func(s *State[T], c *Collector[T]) Result[W] {
		r := p(s, c)
		if !r.Ok {
			return Failure[W](r.Consumed)
		}
		r2 := f(r.Value)(s, c)
		r2.Consumed = r2.Consumed || r.Consumed
		return r2
	}
}

// Then runs p then q and returns the value of q.
//
func Then[T comparable, V, W any](p Parser[T, V], q Parser[T, W]) Parser[T, W] {
	return func(s *State[T], c *Collector[T]) Result[W] {
		r := p(s, c)
		if !r.Ok {
			return Failure[W](r.Consumed)
		}
		r2 := q(s, c)
		r2.Consumed = r2.Consumed || r.Consumed
		return r2
	}
}

// Before runs p then q and returns the value of p.
//
func Before[T comparable, V, W any](p Parser[T, V], q Parser[T, W]) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		r := p(s, c)
		if !r.Ok {
			return r
		}
		r2 := q(s, c)
		if !r2.Ok {
			return Failure[V](r.Consumed || r2.Consumed)
		}
		r.Consumed = r.Consumed || r2.Consumed
		return r
	}
}

// Between runs open, p and close in sequence and returns the value of p.
//
func Between[T comparable, L, V, R any](open Parser[T, L], p Parser[T, V], close Parser[T, R]) Parser[T, V] {
	return Then(open, Before(p, close))
}

// Seq runs the given parsers in sequence and returns their values.
//
func Seq[T comparable, V any](ps ...Parser[T, V]) Parser[T, []V] {
	return func(s *State[T], c *Collector[T]) Result[[]V] {
		vs := make([]V, 0, len(ps))
		consumed := false
		for _, p := range ps {
			r := p(s, c)
			consumed = consumed || r.Consumed
			if !r.Ok {
				return Failure[[]V](consumed)
			}
			vs = append(vs, r.Value)
		}
		return Success(vs, consumed)
	}
}

// Lazy returns a parser that calls f to build the actual parser the first
// time it runs. It is used to define recursive grammars.
//
func Lazy[T comparable, V any](f func() Parser[T, V]) Parser[T, V] {
	get := sync.OnceValue(f)
	return func(s *State[T], c *Collector[T]) Result[V] {
		return get()(s, c)
	}
}

// Assert returns a parser that fails with msg when the value of p does not
// satisfy pred. The failure is reported at the location where p stopped.
//
func Assert[T comparable, V any](p Parser[T, V], pred func(V) bool, msg string) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		r := p(s, c)
		if !r.Ok || pred(r.Value) {
			return r
		}
		c.Fail(s, msg)
		return Failure[V](r.Consumed)
	}
}
