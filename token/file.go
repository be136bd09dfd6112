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

package token

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/width"
)

// Common errors.
var (
	ErrSeek = errors.New("wrong file position after seek")
	ErrLine = errors.New("invalid line number")
)

// Line returns the contents of the given 1-based line of rs, without the line
// terminator. The current offset of rs is restored before Line returns.
//
func Line(rs io.ReadSeeker, line int) (l []byte, err error) {
	if line < 1 {
		return nil, ErrLine
	}
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "get current offset")
	}
	defer func() {
		p, err := rs.Seek(cur, io.SeekStart)
		if err != nil {
			// cannot resume normal operation, panic
			panic(err)
		}
		if p != cur {
			panic(ErrSeek)
		}
	}()
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rewind")
	}

	r := bufio.NewReader(rs)
	for n := 1; ; {
		buf, pref, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil, ErrLine
			}
			return nil, errors.WithStack(err)
		}
		if n == line {
			l = append(l, buf...)
		}
		if pref {
			continue
		}
		if n == line {
			return l, nil
		}
		n++
	}
}

// Caret returns a line of blanks terminated by a caret that points at the
// given 1-based column of line when both are printed with a monospaced font.
// Columns are counted the way RunePosTab(tabWidth) counts them, and wide East
// Asian runes take two cells.
//
func Caret(line []byte, column int, tabWidth int) string {
	var (
		p     = Start
		cells = 0
		next  = RunePosTab(tabWidth)
	)
	for len(line) > 0 && p.Column < column {
		r, sz := utf8.DecodeRune(line)
		line = line[sz:]
		q := next(r, p)
		switch {
		case r == '\t':
			cells += q.Column - p.Column
		case !unicode.IsGraphic(r):
		default:
			cells += cellWidth(r)
		}
		p = q
	}
	// past the end of line
	if p.Column < column {
		cells += column - p.Column
	}
	return strings.Repeat(" ", cells) + "^"
}

func cellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	return 1
}
