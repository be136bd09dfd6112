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

// Package text provides parsers for rune input: literal and case insensitive
// strings, character classes, whitespace, numbers, quoted strings and symbol
// sets.
//
// All parsers in this package are safe for concurrent use.
//
package text

import (
	"io"
	"strings"
	"unicode"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/source"
	"github.com/db47h/parsekit/token"
	"golang.org/x/text/cases"
)

type (
	state     = parsekit.State[rune]
	collector = parsekit.Collector[rune]
)

const eof rune = -1

func current(s *state) rune {
	if s.HasCurrent() {
		return s.Current()
	}
	return eof
}

// Character classes.
//
var (
	Digit         = parsekit.Labelled(parsekit.Satisfy(unicode.IsDigit), "digit")
	Letter        = parsekit.Labelled(parsekit.Satisfy(unicode.IsLetter), "letter")
	LetterOrDigit = parsekit.Labelled(parsekit.Satisfy(isLetterOrDigit), "letter or digit")
	Upper         = parsekit.Labelled(parsekit.Satisfy(unicode.IsUpper), "uppercase letter")
	Lower         = parsekit.Labelled(parsekit.Satisfy(unicode.IsLower), "lowercase letter")
	Punctuation   = parsekit.Labelled(parsekit.Satisfy(unicode.IsPunct), "punctuation")
)

func isLetterOrDigit(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// Whitespace parsers.
//
var (
	// Whitespace matches a single white space character, as defined by
	// unicode.IsSpace.
	Whitespace = parsekit.Labelled(parsekit.Satisfy(unicode.IsSpace), "whitespace")
	// Whitespaces matches zero or more white space characters.
	Whitespaces = parsekit.Labelled(parsekit.Many(Whitespace), "whitespace")
	// WhitespaceString is like Whitespaces but returns a string.
	WhitespaceString = parsekit.Labelled(parsekit.Map(parsekit.Many(Whitespace), runesToString), "whitespace")
	// SkipWhitespaces skips zero or more white space characters. It is
	// faster than Whitespaces.
	SkipWhitespaces parsekit.Parser[rune, struct{}] = skipWhitespaces
)

func runesToString(rs []rune) string { return string(rs) }

func skipWhitespaces(s *state, _ *collector) parsekit.Result[struct{}] {
	start := s.Location()
	for chunk := s.LookAhead(32); len(chunk) > 0; chunk = s.LookAhead(32) {
		for i, r := range chunk {
			if !unicode.IsSpace(r) {
				s.Advance(i)
				return parsekit.Success(struct{}{}, s.Location() > start)
			}
		}
		s.Advance(len(chunk))
	}
	return parsekit.Success(struct{}{}, s.Location() > start)
}

// Rune returns a parser that matches r.
//
func Rune(r rune) parsekit.Parser[rune, rune] {
	return parsekit.Token(r)
}

// AnyOf returns a parser that matches any of the runes in chars.
//
func AnyOf(chars string) parsekit.Parser[rune, rune] {
	var exp []parsekit.Expected[rune]
	for _, r := range chars {
		exp = append(exp, parsekit.Literal(r))
	}
	return func(s *state, c *collector) parsekit.Result[rune] {
		if r := current(s); r != eof && strings.ContainsRune(chars, r) {
			s.Advance(1)
			return parsekit.Success(r, true)
		}
		c.Expect(s, exp...)
		return parsekit.Failure[rune](false)
	}
}

// NoneOf returns a parser that matches any rune not in chars.
//
func NoneOf(chars string) parsekit.Parser[rune, rune] {
	return parsekit.Satisfy(func(r rune) bool { return !strings.ContainsRune(chars, r) })
}

// String returns a parser that matches str.
//
func String(str string) parsekit.Parser[rune, string] {
	return parsekit.Map(parsekit.Sequence([]rune(str)...), func([]rune) string { return str })
}

// CIString returns a parser that matches str, ignoring case. Runes are
// compared after Unicode case folding. The parser returns the matched input.
//
func CIString(str string) parsekit.Parser[rune, string] {
	want := []rune(str)
	exp := parsekit.Literal(want...)
	return func(s *state, c *collector) parsekit.Result[string] {
		fold := cases.Fold()
		la := s.LookAhead(len(want))
		for i, r := range la {
			if !equalFold(fold, r, want[i]) {
				s.Advance(i)
				c.Expect(s, exp)
				return parsekit.Failure[string](i > 0)
			}
		}
		if n := len(la); n < len(want) {
			s.Advance(n)
			c.Expect(s, exp)
			return parsekit.Failure[string](n > 0)
		}
		v := string(la)
		s.Advance(len(want))
		return parsekit.Success(v, len(want) > 0)
	}
}

func equalFold(fold cases.Caser, a, b rune) bool {
	if a == b {
		return true
	}
	return fold.String(string(a)) == fold.String(string(b))
}

// Parse runs p over input.
//
func Parse[V any](p parsekit.Parser[rune, V], input string, opts ...parsekit.Option) (V, error) {
	res, err := parsekit.ParseSlice(p, []rune(input), token.RunePos, opts...)
	return res.Value, err
}

// ParseReader runs p over the UTF-8 encoded runes read from r.
//
func ParseReader[V any](p parsekit.Parser[rune, V], r io.Reader, opts ...parsekit.Option) (V, error) {
	res, err := parsekit.Parse(p, source.Runes(r), token.RunePos, opts...)
	return res.Value, err
}
