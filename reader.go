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

// A Reader is a source of tokens for a State.
//
// ReadInto reads up to len(p) tokens into p and returns the number of tokens
// read. At the end of input, it returns 0, io.EOF. Like io.Reader, it may
// return n > 0 together with a non-nil error; such tokens are still used. Any
// error other than io.EOF is reported by Parse in place of the parse result.
//
// ChunkSize returns the preferred number of tokens to read at a time.
//
// If a Reader also implements io.Closer, Close is called once parsing is done.
//
type Reader[T any] interface {
	ChunkSize() int
	ReadInto(p []T) (n int, err error)
}
