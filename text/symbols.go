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

package text

import (
	"unicode/utf8"

	"github.com/db47h/parsekit"
)

type nodeList map[rune]*node

type node struct {
	c    nodeList
	word string
	end  bool
}

func (n *node) insert(word string) {
	for _, r := range word {
		i, ok := n.c[r]
		if !ok {
			i = &node{c: make(nodeList)}
			n.c[r] = i
		}
		n = i
	}
	if n.end {
		panic("symbol " + word + " registered twice")
	}
	n.word, n.end = word, true
}

// Symbols returns a parser that matches the longest of the given words
// present in the input, and returns it. This is typically used for operators
// and keywords.
//
// Symbols panics if the same word is given twice.
//
func Symbols(words ...string) parsekit.Parser[rune, string] {
	var (
		root   = &node{c: make(nodeList)}
		maxLen int
		exp    = make([]parsekit.Expected[rune], 0, len(words))
	)
	for _, w := range words {
		root.insert(w)
		maxLen = max(maxLen, utf8.RuneCountInString(w))
		exp = append(exp, parsekit.Literal([]rune(w)...))
	}
	return func(s *state, c *collector) parsekit.Result[string] {
		var (
			n     = root
			match string
			size  = -1
		)
		if n.end {
			match, size = n.word, 0
		}
		for i, r := range s.LookAhead(maxLen) {
			if n = n.c[r]; n == nil {
				break
			}
			if n.end {
				match, size = n.word, i+1
			}
		}
		if size < 0 {
			c.Expect(s, exp...)
			return parsekit.Failure[string](false)
		}
		s.Advance(size)
		return parsekit.Success(match, size > 0)
	}
}
