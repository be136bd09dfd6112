// Package source provides parsekit.Reader implementations over common token
// sources: slices, strings, io.Readers, iterators and decoded byte streams.
//
// Readers that wrap an io.Reader close it when the parse is done if it
// implements io.Closer.
//
package source

import (
	"bufio"
	"io"
	"iter"
	"unicode/utf8"
)

// Chunk size hints.
//
const (
	MemoryChunkSize = 16   // in-memory sources
	IOChunkSize     = 4096 // I/O backed sources
)

// A SliceReader reads tokens from a slice.
//
type SliceReader[T any] struct {
	s []T
}

// Slice returns a Reader for the tokens in s. Unlike parsekit.ParseSlice, the
// tokens are copied to the parser's buffer as they are needed.
//
func Slice[T any](s []T) *SliceReader[T] {
	return &SliceReader[T]{s: s}
}

func (r *SliceReader[T]) ChunkSize() int { return MemoryChunkSize }

func (r *SliceReader[T]) ReadInto(p []T) (int, error) {
	if len(r.s) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.s)
	r.s = r.s[n:]
	return n, nil
}

// A StringReader reads the runes of a string. Invalid UTF-8 sequences are
// read as utf8.RuneError, one byte at a time.
//
type StringReader struct {
	s string
}

// String returns a Reader for the runes in s.
//
func String(s string) *StringReader {
	return &StringReader{s: s}
}

func (r *StringReader) ChunkSize() int { return MemoryChunkSize }

func (r *StringReader) ReadInto(p []rune) (int, error) {
	if len(r.s) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && len(r.s) > 0 {
		c, sz := utf8.DecodeRuneInString(r.s)
		r.s = r.s[sz:]
		p[n] = c
		n++
	}
	return n, nil
}

// A ByteReader reads bytes from an io.Reader.
//
type ByteReader struct {
	r io.Reader
}

// Bytes returns a Reader for the bytes read from r.
//
func Bytes(r io.Reader) *ByteReader {
	return &ByteReader{r: r}
}

func (r *ByteReader) ChunkSize() int { return IOChunkSize }

func (r *ByteReader) ReadInto(p []byte) (int, error) {
	return r.r.Read(p)
}

// Close closes the underlying io.Reader if it implements io.Closer.
//
func (r *ByteReader) Close() error {
	return closeReader(r.r)
}

// A RuneReader reads UTF-8 encoded runes from an io.Reader. Invalid UTF-8
// sequences are read as utf8.RuneError, one byte at a time.
//
type RuneReader struct {
	br *bufio.Reader
	c  io.Reader
}

// Runes returns a Reader for the UTF-8 encoded runes read from r.
//
func Runes(r io.Reader) *RuneReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, IOChunkSize)
	}
	return &RuneReader{br: br, c: r}
}

func (r *RuneReader) ChunkSize() int { return IOChunkSize }

// ReadInto reads runes until p is full, or until reading more would require
// reading from the underlying io.Reader after at least one rune was read.
//
func (r *RuneReader) ReadInto(p []rune) (int, error) {
	n := 0
	for n < len(p) {
		c, _, err := r.br.ReadRune()
		if err != nil {
			if err == io.EOF && n > 0 {
				err = nil
			}
			return n, err
		}
		p[n] = c
		n++
		if r.br.Buffered() == 0 {
			break
		}
	}
	return n, nil
}

// Close closes the underlying io.Reader if it implements io.Closer.
//
func (r *RuneReader) Close() error {
	return closeReader(r.c)
}

// A SeqReader reads tokens from an iterator.
//
type SeqReader[T any] struct {
	next func() (T, bool)
	stop func()
}

// Seq returns a Reader for the values produced by seq. The iterator is
// stopped when the Reader is closed.
//
func Seq[T any](seq iter.Seq[T]) *SeqReader[T] {
	next, stop := iter.Pull(seq)
	return &SeqReader[T]{next: next, stop: stop}
}

func (r *SeqReader[T]) ChunkSize() int { return MemoryChunkSize }

func (r *SeqReader[T]) ReadInto(p []T) (int, error) {
	n := 0
	for n < len(p) {
		v, ok := r.next()
		if !ok {
			if n == 0 {
				return 0, io.EOF
			}
			break
		}
		p[n] = v
		n++
	}
	return n, nil
}

// Close stops the iterator.
//
func (r *SeqReader[T]) Close() error {
	r.stop()
	return nil
}

func closeReader(r io.Reader) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
