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

// DefaultTabWidth is the tab width used by RunePos and BytePos.
//
const DefaultTabWidth = 4

// Columns is the default PosFunc for opaque tokens: every token advances the
// column by one and lines never change.
//
func Columns[T any](_ T, p Position) Position {
	return p.Advance(1)
}

// RunePos is the PosFunc for text input: '\n' starts a new line, '\t' moves to
// the next tab stop and any other rune advances the column by one.
//
func RunePos(r rune, p Position) Position {
	switch r {
	case '\n':
		return p.NewLine()
	case '\t':
		return p.Tab(DefaultTabWidth)
	}
	return p.Advance(1)
}

// BytePos is like RunePos but for byte input. Every byte counts as a column,
// including the individual bytes of multi-byte UTF-8 sequences.
//
func BytePos(b byte, p Position) Position {
	return RunePos(rune(b), p)
}

// RunePosTab returns a variant of RunePos with a custom tab width. A width of
// 0 or less makes tabs count as a single column.
//
func RunePosTab(width int) PosFunc[rune] {
	return func(r rune, p Position) Position {
		switch r {
		case '\n':
			return p.NewLine()
		case '\t':
			return p.Tab(width)
		}
		return p.Advance(1)
	}
}

// BytePosTab is the byte counterpart of RunePosTab.
//
func BytePosTab(width int) PosFunc[byte] {
	f := RunePosTab(width)
	return func(b byte, p Position) Position {
		return f(rune(b), p)
	}
}
