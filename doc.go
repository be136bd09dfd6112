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

/*
Package parsekit provides the core of a parser combinator library: a buffered
token cursor with bookmarks, a backtracking protocol based on input
consumption, the collection of expected tokens for error reporting, and a set
of core combinators.

Parsers

A Parser[T, V] is a function that reads tokens of type T from a *State and
produces a value of type V:

	type Parser[T comparable, V any] func(s *State[T], c *Collector[T]) Result[V]

Parsers are combined with ordinary functions: Then, Before, Map, Bind, Or,
Many, and so on. Grammars are plain Go values; recursive rules are built with
Lazy.

The Result of a parser reports whether it succeeded and whether it consumed
input. These are orthogonal: a parser may fail after consuming some tokens.
Such a failure is final: Or does not try the next alternative after an
alternative that failed after consuming input. Wrap the alternative with Try
to rewind the input on failure and allow backtracking:

	p := parsekit.Or(
		parsekit.Try(text.String("foo")),
		text.String("foul"))

Repetitions (Many, ChainL, Until, ...) panic with an *InvariantError when
their body succeeds without consuming input, since they would otherwise loop
forever.

Input

A State buffers tokens read from a Reader. The buffer only retains the tokens
needed by active bookmarks plus the current lookahead, so that arbitrarily
large inputs can be parsed with a small memory footprint. Buffers are
recycled through a pool when the State is closed. ParseSlice parses an
in-memory span in place.

The source sub-package provides Reader implementations for slices, strings,
io.Readers, iterators and decoded byte streams.

Error reporting

Failed parsers record what they expected in a Collector. Only the failure at
the deepest location matters: alternatives that failed at the same location
are united, shallower ones are discarded. Parse turns the deepest failure into
a *ParseError:

	unexpected 'b', expected "foo" at line 1, column 1

Token positions are computed lazily from token locations by folding a
token.PosFunc over the input. They are never stored per token.

Text parsers

The text sub-package provides parsers for rune input: strings, case
insensitive strings, whitespace, numbers, quoted strings and symbol sets.

*/
package parsekit
