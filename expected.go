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
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

type expectedKind uint8

const (
	expTokens expectedKind = iota
	expLabel
	expEOF
)

// Expected describes one thing a parser expected to find: a literal sequence
// of tokens, a named construct (label) or the end of input.
//
type Expected[T comparable] struct {
	Label  string // set for labels
	Tokens []T    // set for literal sequences
	kind   expectedKind
}

// Literal returns an Expected for the given token sequence.
//
func Literal[T comparable](tokens ...T) Expected[T] {
	return Expected[T]{Tokens: tokens, kind: expTokens}
}

// Label returns an Expected for a named construct.
//
func Label[T comparable](name string) Expected[T] {
	return Expected[T]{Label: name, kind: expLabel}
}

// EndOfInput returns an Expected for the end of input.
//
func EndOfInput[T comparable]() Expected[T] {
	return Expected[T]{kind: expEOF}
}

// IsLabel returns true if e is a label.
//
func (e Expected[T]) IsLabel() bool { return e.kind == expLabel }

// IsEOF returns true if e expects the end of input.
//
func (e Expected[T]) IsEOF() bool { return e.kind == expEOF }

// Equal reports whether e and o describe the same expectation.
//
func (e Expected[T]) Equal(o Expected[T]) bool {
	if e.kind != o.kind {
		return false
	}
	switch e.kind {
	case expLabel:
		return e.Label == o.Label
	case expTokens:
		return slices.Equal(e.Tokens, o.Tokens)
	}
	return true
}

func (e Expected[T]) String() string {
	switch e.kind {
	case expLabel:
		return e.Label
	case expEOF:
		return "end of input"
	}
	return renderTokens(e.Tokens)
}

// renderExpected renders a set of expectations as a sorted, human readable
// enumeration: "a", "a or b", "a, b, or c".
//
func renderExpected[T comparable](exps []Expected[T]) string {
	ss := make([]string, 0, len(exps))
	for _, e := range exps {
		if e.kind == expTokens && len(e.Tokens) == 0 {
			continue
		}
		ss = append(ss, e.String())
	}
	slices.Sort(ss)
	ss = slices.Compact(ss)
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	case 2:
		return ss[0] + " or " + ss[1]
	}
	return strings.Join(ss[:len(ss)-1], ", ") + ", or " + ss[len(ss)-1]
}

func renderToken(t interface{}) string {
	switch v := t.(type) {
	case rune:
		return strconv.QuoteRune(v)
	case byte:
		if v < utf8.RuneSelf {
			return strconv.QuoteRune(rune(v))
		}
		return fmt.Sprintf("0x%02x", v)
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(t)
}

func renderTokens[T comparable](ts []T) string {
	switch v := interface{}(ts).(type) {
	case []rune:
		return strconv.Quote(string(v))
	case []byte:
		return strconv.Quote(string(v))
	}
	if len(ts) == 1 {
		return renderToken(ts[0])
	}
	ss := make([]string, len(ts))
	for i, t := range ts {
		ss[i] = renderToken(t)
	}
	return "[" + strings.Join(ss, " ") + "]"
}
