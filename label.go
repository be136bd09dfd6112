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

// Labelled returns a parser that reports name as the only expectation when p
// fails. The failure location and unexpected token recorded by p are kept.
//
func Labelled[T comparable, V any](p Parser[T, V], name string) Parser[T, V] {
	exp := Label[T](name)
	return func(s *State[T], c *Collector[T]) Result[V] {
		var child Collector[T]
		r := p(s, &child)
		if r.Ok {
			return r
		}
		if child.Empty() {
			child.Expect(s, exp)
		} else {
			child.relabel(exp)
		}
		c.Merge(&child)
		return r
	}
}

// RecoverWith returns a parser that, when p fails, builds the ParseError
// describing the failure and continues with the parser returned by handler.
// The failure of p is not reported to the enclosing scope.
//
func RecoverWith[T comparable, V any](p Parser[T, V], handler func(err *ParseError[T]) Parser[T, V]) Parser[T, V] {
	return func(s *State[T], c *Collector[T]) Result[V] {
		var child Collector[T]
		r := p(s, &child)
		if r.Ok {
			c.Merge(&child)
			return r
		}
		r2 := handler(s.Error(&child))(s, c)
		r2.Consumed = r2.Consumed || r.Consumed
		return r2
	}
}
