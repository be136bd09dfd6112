package parsekit_test

import (
	"io"
	"strings"
	"testing"

	"github.com/db47h/parsekit"
	"github.com/db47h/parsekit/token"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// chunkReader serves data at most chunk tokens at a time. Once exhausted, it
// returns err, or io.EOF if err is nil.
type chunkReader[T any] struct {
	data   []T
	chunk  int
	err    error
	reads  int
	closed bool
}

func newReader[T any](data []T, chunk int) *chunkReader[T] {
	return &chunkReader[T]{data: data, chunk: chunk}
}

func (r *chunkReader[T]) ChunkSize() int { return r.chunk }

func (r *chunkReader[T]) ReadInto(p []T) (int, error) {
	r.reads++
	if len(r.data) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), r.chunk)], r.data)
	r.data = r.data[n:]
	return n, nil
}

func (r *chunkReader[T]) Close() error {
	r.closed = true
	return nil
}

type stuckReader struct{}

func (stuckReader) ChunkSize() int               { return 8 }
func (stuckReader) ReadInto([]rune) (int, error) { return 0, nil }

func runeState(input string, chunk int) *parsekit.State[rune] {
	s := parsekit.NewState[rune](newReader([]rune(input), chunk), token.RunePos)
	s.Init()
	return s
}

func requireInvariant(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "no panic")
		err, ok := r.(*parsekit.InvariantError)
		require.True(t, ok, "unexpected panic value %v", r)
		assert.ErrorIs(t, err, target)
	}()
	f()
}

func TestState_ChunkBoundaries(t *testing.T) {
	for _, chunk := range []int{1, 2, 3, 15, 16, 17} {
		for _, n := range []int{chunk - 1, chunk, chunk + 1} {
			input := "f" + strings.Repeat("o", n)
			want := token.Position{Line: 1, Column: n + 2}

			s := runeState(input, chunk)
			var got []rune
			for s.HasCurrent() {
				got = append(got, s.Current())
				s.Advance(1)
			}
			assert.Equal(t, input, string(got), "chunk %d, n %d", chunk, n)
			assert.Equal(t, want, s.CurrentPos(), "chunk %d, n %d", chunk, n)
			assert.Equal(t, len(input), s.Location())
			require.NoError(t, s.Close())

			span := parsekit.NewSliceState([]rune(input), token.RunePos)
			span.Init()
			span.Advance(len(input))
			assert.Equal(t, want, span.CurrentPos())
			assert.False(t, span.HasCurrent())
		}
	}
}

func TestState_Advance(t *testing.T) {
	s := runeState("hello, world", 3)
	defer s.Close()

	s.Advance(0)
	assert.Equal(t, 'h', s.Current())
	s.Advance(-2)
	assert.Equal(t, 0, s.Location())
	s.Advance(7)
	assert.Equal(t, 'w', s.Current())
	assert.Equal(t, 7, s.Location())
	// advancing past the end clamps
	s.Advance(100)
	assert.False(t, s.HasCurrent())
	assert.Equal(t, 12, s.Location())
	requireInvariant(t, parsekit.ErrNoCurrent, func() { s.Current() })
}

func TestState_LookAhead(t *testing.T) {
	s := runeState("abcdefghij", 2)
	defer s.Close()

	assert.Equal(t, "abcde", string(s.LookAhead(5)))
	assert.Equal(t, 0, s.Location())
	assert.Nil(t, s.LookAhead(0))
	s.Advance(7)
	assert.Equal(t, "hij", string(s.LookAhead(5)))
	assert.Equal(t, 'h', s.Current())
	s.Advance(3)
	assert.Empty(t, s.LookAhead(5))
}

func TestState_LookBehind(t *testing.T) {
	s := runeState("abcdefghij", 4)
	defer s.Close()

	assert.Empty(t, s.LookBehind(3))
	s.PushBookmark()
	s.Advance(6)
	assert.Equal(t, "def", string(s.LookBehind(3)))
	assert.Equal(t, "abcdef", string(s.LookBehind(10)))
	s.PopBookmark()
}

func TestState_Rewind(t *testing.T) {
	input := "line one\nline two\n\tline three\nfour"
	for _, chunk := range []int{1, 3, 7, 64} {
		for start := 0; start <= len(input); start += 5 {
			for k := 0; k <= len(input)-start+2; k += 3 {
				s := runeState(input, chunk)
				s.Advance(start)
				loc, pos := s.Location(), s.CurrentPos()
				hasCur := s.HasCurrent()

				s.PushBookmark()
				s.Advance(k)
				s.Rewind()

				assert.Equal(t, loc, s.Location(), "chunk %d, start %d, k %d", chunk, start, k)
				assert.Equal(t, pos, s.CurrentPos(), "chunk %d, start %d, k %d", chunk, start, k)
				require.Equal(t, hasCur, s.HasCurrent())
				if hasCur {
					assert.Equal(t, rune(input[start]), s.Current())
				}
				require.NoError(t, s.Close())
			}
		}
	}
}

func TestState_NestedBookmarks(t *testing.T) {
	s := runeState(strings.Repeat("0123456789", 10), 4)
	defer s.Close()

	s.Advance(3)
	s.PushBookmark()
	s.Advance(20)
	s.PushBookmark()
	s.Advance(40)
	s.Rewind()
	assert.Equal(t, 23, s.Location())
	assert.Equal(t, '3', s.Current())
	s.Advance(50)
	s.Rewind()
	assert.Equal(t, 3, s.Location())
	assert.Equal(t, token.Position{Line: 1, Column: 4}, s.CurrentPos())

	requireInvariant(t, parsekit.ErrNoBookmark, s.Rewind)
	requireInvariant(t, parsekit.ErrNoBookmark, s.PopBookmark)
}

func TestState_PosAt(t *testing.T) {
	s := runeState("ab\ncd\nef\ngh", 2)
	defer s.Close()

	s.PushBookmark()
	s.Advance(7)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, s.PosAt(0))
	assert.Equal(t, token.Position{Line: 2, Column: 2}, s.PosAt(4))
	assert.Equal(t, token.Position{Line: 3, Column: 2}, s.CurrentPos())
	s.PopBookmark()

	// without bookmarks, consumed tokens are eventually dropped
	s.Advance(4)
	requireInvariant(t, parsekit.ErrLocation, func() { s.PosAt(0) })
	assert.Equal(t, token.Position{Line: 4, Column: 3}, s.CurrentPos())
}

func TestState_BufferGrowth(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	input := []rune(strings.Repeat("x", 1000))
	s := parsekit.NewState[rune](newReader(input, 10), nil,
		parsekit.WithLogger(zap.New(core)))
	s.Init()
	defer s.Close()

	s.PushBookmark()
	s.Advance(999)
	assert.Equal(t, 'x', s.Current())
	assert.Equal(t, token.Position{Line: 1, Column: 1000}, s.CurrentPos())
	s.Rewind()
	assert.Equal(t, 0, s.Location())
	assert.NotZero(t, logs.FilterMessage("grow token buffer").Len())
}

func TestState_ChunkSizeOption(t *testing.T) {
	r := newReader([]rune(strings.Repeat("y", 100)), 1000)
	s := parsekit.NewState[rune](r, nil, parsekit.WithChunkSize(5))
	s.Init()
	s.Advance(100)
	assert.False(t, s.HasCurrent())
	require.NoError(t, s.Close())
	assert.True(t, r.closed)
	assert.GreaterOrEqual(t, r.reads, 2)
}

func TestState_IOError(t *testing.T) {
	errBoom := errors.New("boom")
	r := newReader([]rune("abc"), 2)
	r.err = errBoom

	res, err := parsekit.Parse(parsekit.Many(parsekit.Any[rune]()), r, nil)
	assert.True(t, res.Ok)
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, r.closed)

	_, err = parsekit.Parse(parsekit.Any[rune](), stuckReader{}, nil)
	assert.ErrorIs(t, err, io.ErrNoProgress)
}
