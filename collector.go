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

// A Collector records what was expected at the deepest failure seen within
// one parsing scope, together with the token found there.
//
// Combinators that must not leak the expectations of a failed attempt run it
// against a child Collector, then Merge the child into their own collector
// only when the attempt is to be reported. The zero value is an empty scope.
//
type Collector[T comparable] struct {
	set        bool
	loc        int
	unexpected T
	hasTok     bool
	eof        bool
	msg        string
	expected   []Expected[T]
}

// Empty returns true if nothing was recorded.
//
func (c *Collector[T]) Empty() bool {
	return !c.set
}

// Location returns the location of the recorded failure, or -1 if c is empty.
//
func (c *Collector[T]) Location() int {
	if !c.set {
		return -1
	}
	return c.loc
}

// Expected returns the recorded expectations. The slice must not be
// modified.
//
func (c *Collector[T]) Expected() []Expected[T] {
	return c.expected
}

// Reset empties c, keeping its allocated storage.
//
func (c *Collector[T]) Reset() {
	*c = Collector[T]{expected: c.expected[:0]}
}

// Expect records a failure at the current location of s, where one of exp
// was expected. The unexpected token is the current token of s, or the end of
// input. Called with no exp, it records the unexpected token alone.
//
func (c *Collector[T]) Expect(s *State[T], exp ...Expected[T]) {
	c.record(s, s.Location(), "", exp)
}

// Fail records a failure with a custom message at the current location of s.
// A message takes precedence over expectations when the error is rendered.
//
func (c *Collector[T]) Fail(s *State[T], msg string) {
	c.record(s, s.Location(), msg, nil)
}

func (c *Collector[T]) record(s *State[T], loc int, msg string, exp []Expected[T]) {
	f := Collector[T]{set: true, loc: loc, msg: msg, expected: exp}
	if msg == "" {
		if s.HasCurrent() {
			f.unexpected, f.hasTok = s.Current(), true
		} else {
			f.eof = true
		}
	}
	c.Merge(&f)
}

// Merge folds o into c: the deepest failure wins, and the expectations of
// failures at the same location are united. For failures at the same
// location, the latest unexpected token and message win over earlier ones, but
// a record without them does not erase them.
//
func (c *Collector[T]) Merge(o *Collector[T]) {
	if !o.set {
		return
	}
	switch {
	case !c.set || o.loc > c.loc:
		c.set, c.loc, c.msg = true, o.loc, o.msg
		c.unexpected, c.hasTok, c.eof = o.unexpected, o.hasTok, o.eof
		c.expected = append(c.expected[:0], o.expected...)
	case o.loc == c.loc:
		if o.msg != "" {
			c.msg = o.msg
		}
		if o.hasTok || o.eof {
			c.unexpected, c.hasTok, c.eof = o.unexpected, o.hasTok, o.eof
		}
	next:
		for _, e := range o.expected {
			for _, x := range c.expected {
				if x.Equal(e) {
					continue next
				}
			}
			c.expected = append(c.expected, e)
		}
	}
}

// relabel replaces the expectations of c with exp.
//
func (c *Collector[T]) relabel(exp Expected[T]) {
	c.expected = append(c.expected[:0], exp)
}
