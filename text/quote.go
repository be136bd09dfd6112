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
	"fmt"
	"unicode/utf8"

	"github.com/db47h/parsekit"
)

type charErr int

const (
	errEnd charErr = iota - 2
	errRawByte
	errNone
	errEOL
	errInvalidEscape
	errInvalidRune
	errInvalidHex
	errInvalidOctal
	errSize
	errEmpty
)

var msg = [...]string{
	errNone:          "",
	errEOL:           "unterminated %s",
	errInvalidEscape: "unknown escape sequence",
	errInvalidRune:   "escape sequence is invalid Unicode code point",
	errInvalidHex:    "non-hex character in escape sequence: %#U",
	errInvalidOctal:  "non-octal character in escape sequence: %#U",
	errSize:          "invalid character literal (more than 1 character)",
	errEmpty:         "empty character literal or unescaped %c in character literal",
}

// QuotedString returns a parser for a string delimited by quote on both ends.
// It supports the same escape sequences as double-quoted Go string literals,
// where \" is replaced by an escaped quote. Strings cannot span multiple
// lines.
//
// The returned value is the unescaped string.
//
func QuotedString(quote rune) parsekit.Parser[rune, string] {
	exp := parsekit.Label[rune]("string")
	return func(s *state, c *collector) parsekit.Result[string] {
		if current(s) != quote {
			c.Expect(s, exp)
			return parsekit.Failure[string](false)
		}
		s.Advance(1)
		var b []byte
		for {
			r, err := readChar(s, quote)
			switch err {
			case errNone:
				b = utf8.AppendRune(b, r)
			case errRawByte:
				b = append(b, byte(r))
			case errEnd:
				return parsekit.Success(string(b), true)
			default:
				charError(s, c, err, "string")
				return parsekit.Failure[string](true)
			}
		}
	}
}

// QuotedChar returns a parser for a single, possibly escaped, character
// delimited by quote on both ends, like Go rune literals.
//
func QuotedChar(quote rune) parsekit.Parser[rune, rune] {
	exp := parsekit.Label[rune]("character literal")
	return func(s *state, c *collector) parsekit.Result[rune] {
		if current(s) != quote {
			c.Expect(s, exp)
			return parsekit.Failure[rune](false)
		}
		s.Advance(1)
		r, err := readChar(s, quote)
		switch err {
		case errNone, errRawByte:
			if current(s) != quote {
				err = errSize
				break
			}
			s.Advance(1)
			return parsekit.Success(r, true)
		case errEnd:
			c.Fail(s, fmt.Sprintf(msg[errEmpty], quote))
			return parsekit.Failure[rune](true)
		}
		charError(s, c, err, "character literal")
		return parsekit.Failure[rune](true)
	}
}

func charError(s *state, c *collector, err charErr, what string) {
	switch err {
	case errEOL:
		c.Fail(s, fmt.Sprintf(msg[err], what))
	case errInvalidHex, errInvalidOctal:
		c.Fail(s, fmt.Sprintf(msg[err], current(s)))
	default:
		c.Fail(s, msg[err])
	}
}

// readChar reads a single character or escape sequence. On error, the cursor
// is left on the offending rune.
//
func readChar(s *state, quote rune) (rune, charErr) {
	r := current(s)
	switch r {
	case quote:
		s.Advance(1)
		return r, errEnd
	case '\n', eof:
		return r, errEOL
	case '\\':
	default:
		s.Advance(1)
		return r, errNone
	}

	s.Advance(1)
	r = current(s)
	switch r {
	case 'a':
		r = '\a'
	case 'b':
		r = '\b'
	case 'f':
		r = '\f'
	case 'n':
		r = '\n'
	case 'r':
		r = '\r'
	case 't':
		r = '\t'
	case 'v':
		r = '\v'
	case '\\', quote:
	case 'U', 'u':
		n := 4
		if r == 'U' {
			n = 8
		}
		s.Advance(1)
		v, err := readDigits(s, n, 16)
		if err == errNone && !utf8.ValidRune(v) {
			return utf8.RuneError, errInvalidRune
		}
		return v, err
	case 'x':
		s.Advance(1)
		return rawByte(readDigits(s, 2, 16))
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return rawByte(readDigits(s, 3, 8))
	case '\n', eof:
		return r, errEOL
	default:
		return r, errInvalidEscape
	}
	s.Advance(1)
	return r, errNone
}

func rawByte(v rune, err charErr) (rune, charErr) {
	if err == errNone {
		return v, errRawByte
	}
	return v, err
}

func readDigits(s *state, n int, base int) (v rune, err charErr) {
	for i := 0; i < n; i++ {
		r := current(s)
		if r == '\n' || r == eof {
			return v, errEOL
		}
		d := digitVal(r)
		if d >= base {
			if base == 8 {
				return v, errInvalidOctal
			}
			return v, errInvalidHex
		}
		v = v*rune(base) + rune(d)
		s.Advance(1)
	}
	return v, errNone
}
