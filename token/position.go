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

// Package token defines source positions and the position calculators that
// turn a sequence of tokens into line and column information.
//
package token

import "fmt"

// Position describes a source position as a line and column pair.
//
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Start is the position of the first token in any input.
//
var Start = Position{Line: 1, Column: 1}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if p is a valid position (i.e. both line and column are
// 1-based).
//
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// NewLine returns the position of the first column of the line following p.
//
func (p Position) NewLine() Position {
	return Position{Line: p.Line + 1, Column: 1}
}

// Advance returns p moved cols columns to the right.
//
func (p Position) Advance(cols int) Position {
	return Position{Line: p.Line, Column: p.Column + cols}
}

// Tab returns the position of the next tab stop after p. Tab stops are placed
// every width columns, starting at column 1.
//
func (p Position) Tab(width int) Position {
	if width <= 0 {
		return p.Advance(1)
	}
	return Position{Line: p.Line, Column: ((p.Column-1)/width+1)*width + 1}
}

// Before returns true if p comes before q.
//
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || p.Line == q.Line && p.Column < q.Column
}

// A PosFunc computes the position that follows tok, given the position of
// tok itself.
//
// Implementations must be pure: the parsing state folds them over consumed
// tokens lazily, possibly long after the tokens have been read.
//
type PosFunc[T any] func(tok T, p Position) Position
