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
	"bytes"
	"fmt"
	"math/big"

	"github.com/db47h/parsekit"
)

// Error messages reported by number parsers.
//
const (
	errMalformedInt      = "malformed base %d literal"
	errInvalidNumChar    = "invalid character %#U in base %d literal"
	errMalformedFloat    = "malformed floating-point literal"
	errMalformedExponent = "malformed floating-point literal exponent"
)

// Numeric is the value returned by Number: either a *big.Int or a *big.Float.
//
type Numeric interface {
	Sign() int
	String() string
}

// Number returns a parser for Go-like number literals: decimal, octal (with a
// leading 0), hexadecimal (0x prefix) and binary (0b prefix) integers, and
// decimal floating point numbers with an optional exponent. decimalSep is the
// decimal separator.
//
// Integers are returned as *big.Int and floats as *big.Float. Signs are not
// part of the literal.
//
// Once the parser has consumed the first digit, malformed literals are
// reported as a consumed failure with a custom message.
//
func Number(decimalSep rune) parsekit.Parser[rune, Numeric] {
	exp := parsekit.Label[rune]("number")
	return func(s *state, c *collector) parsekit.Result[Numeric] {
		la := s.LookAhead(2)
		if len(la) == 0 ||
			!(isDecimal(la[0]) || la[0] == decimalSep && len(la) > 1 && isDecimal(la[1])) {
			c.Expect(s, exp)
			return parsekit.Failure[Numeric](false)
		}
		l := numberLexer{base: 10, sep: decimalSep, buf: make([]byte, 0, 32)}
		return l.number(s, c)
	}
}

// Integer returns a parser for unsigned integers in the given base, without
// any prefix. Digits above 9 are the letters a to z, in either case.
//
func Integer(base int) parsekit.Parser[rune, *big.Int] {
	if base < 2 || base > 36 {
		panic(fmt.Sprintf("invalid base %d", base))
	}
	exp := parsekit.Label[rune](fmt.Sprintf("base %d integer", base))
	return func(s *state, c *collector) parsekit.Result[*big.Int] {
		l := numberLexer{base: base}
		l.scanDigits(s, base)
		if len(l.buf) == 0 {
			c.Expect(s, exp)
			return parsekit.Failure[*big.Int](false)
		}
		i, _ := new(big.Int).SetString(string(l.buf), base)
		return parsekit.Success(i, true)
	}
}

type numberLexer struct {
	buf  []byte
	base int
	sep  rune
}

func (l *numberLexer) number(s *state, c *collector) parsekit.Result[Numeric] {
	if s.Current() == '0' {
		if la := s.LookAhead(2); len(la) == 2 {
			switch la[1] {
			case 'x', 'X':
				l.base = 16
			case 'b', 'B':
				l.base = 2
			}
			if l.base != 10 {
				s.Advance(2)
				return l.integer(s, c)
			}
		}
	}
	return l.integerOrFloat(s, c)
}

func (l *numberLexer) integer(s *state, c *collector) parsekit.Result[Numeric] {
	l.scanDigits(s, l.base)
	if r := current(s); r != eof && digitVal(r) < 36 {
		c.Fail(s, fmt.Sprintf(errInvalidNumChar, r, l.base))
		return parsekit.Failure[Numeric](true)
	}
	return l.emitInt(s, c)
}

func (l *numberLexer) integerOrFloat(s *state, c *collector) parsekit.Result[Numeric] {
	l.scanDigits(s, 10)
	switch current(s) {
	case l.sep:
		return l.fractional(s, c)
	case 'e', 'E':
		return l.exponent(s, c)
	}
	if len(l.buf) > 1 && l.buf[0] == '0' {
		l.base = 8
		if i := bytes.IndexFunc(l.buf, func(r rune) bool { return r > '7' }); i >= 0 {
			c.Fail(s, fmt.Sprintf(errInvalidNumChar, rune(l.buf[i]), 8))
			return parsekit.Failure[Numeric](true)
		}
	}
	return l.emitInt(s, c)
}

func (l *numberLexer) fractional(s *state, c *collector) parsekit.Result[Numeric] {
	l.buf = append(l.buf, '.')
	s.Advance(1)
	l.scanDigits(s, 10)
	if len(l.buf) == 1 {
		c.Fail(s, errMalformedFloat)
		return parsekit.Failure[Numeric](true)
	}
	if r := current(s); r == 'e' || r == 'E' {
		return l.exponent(s, c)
	}
	return l.emitFloat(s, c)
}

func (l *numberLexer) exponent(s *state, c *collector) parsekit.Result[Numeric] {
	l.buf = append(l.buf, 'e')
	s.Advance(1)
	if r := current(s); r == '+' || r == '-' {
		l.buf = append(l.buf, byte(r))
		s.Advance(1)
	}
	n := len(l.buf)
	l.scanDigits(s, 10)
	if len(l.buf) == n {
		c.Fail(s, errMalformedExponent)
		return parsekit.Failure[Numeric](true)
	}
	return l.emitFloat(s, c)
}

func (l *numberLexer) emitInt(s *state, c *collector) parsekit.Result[Numeric] {
	if len(l.buf) == 0 {
		c.Fail(s, fmt.Sprintf(errMalformedInt, l.base))
		return parsekit.Failure[Numeric](true)
	}
	i, ok := new(big.Int).SetString(string(l.buf), l.base)
	if !ok {
		c.Fail(s, fmt.Sprintf(errMalformedInt, l.base))
		return parsekit.Failure[Numeric](true)
	}
	return parsekit.Success[Numeric](i, true)
}

func (l *numberLexer) emitFloat(s *state, c *collector) parsekit.Result[Numeric] {
	f, ok := new(big.Float).SetString(string(l.buf))
	if !ok {
		c.Fail(s, errMalformedFloat)
		return parsekit.Failure[Numeric](true)
	}
	return parsekit.Success[Numeric](f, true)
}

// scanDigits appends to l.buf all the digits in the given base.
//
func (l *numberLexer) scanDigits(s *state, base int) {
	for s.HasCurrent() {
		r := s.Current()
		if digitVal(r) >= base {
			return
		}
		l.buf = append(l.buf, byte(r))
		s.Advance(1)
	}
}

func isDecimal(r rune) bool { return '0' <= r && r <= '9' }

func digitVal(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'z':
		return int(r - 'a' + 10)
	case 'A' <= r && r <= 'Z':
		return int(r - 'A' + 10)
	}
	return 99
}
