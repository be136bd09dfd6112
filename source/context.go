package source

import (
	"context"

	"github.com/db47h/parsekit"
)

// A ContextReader stops reading from its underlying Reader once its context
// is done.
//
type ContextReader[T any] struct {
	ctx context.Context
	r   parsekit.Reader[T]
}

// WithContext returns a Reader that reads from r until ctx is done. The
// context error is then reported as an I/O error, which aborts the parse.
//
func WithContext[T any](ctx context.Context, r parsekit.Reader[T]) *ContextReader[T] {
	return &ContextReader[T]{ctx: ctx, r: r}
}

func (r *ContextReader[T]) ChunkSize() int { return r.r.ChunkSize() }

func (r *ContextReader[T]) ReadInto(p []T) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.ReadInto(p)
}

// Close closes the underlying Reader if it implements io.Closer.
//
func (r *ContextReader[T]) Close() error {
	if c, ok := r.r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
