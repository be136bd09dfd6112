// Package pool provides size-classed pools of slices, used to recycle the
// token buffers of parsing states.
package pool

import (
	"math/bits"
	"reflect"
	"sync"
)

const (
	minShift = 4 // smallest class holds 16 elements
	classes  = 27
)

// A Pool recycles slices of T. Slices are grouped by capacity in power of two
// classes. The zero value is ready to use.
type Pool[T any] struct {
	p [classes]sync.Pool
}

// class returns the index of the smallest class able to hold n elements.
func class(n int) int {
	if n <= 1<<minShift {
		return 0
	}
	return bits.Len(uint(n-1)) - minShift
}

// Get returns a slice with len(b) >= n. The returned slice is zeroed.
func (p *Pool[T]) Get(n int) []T {
	c := class(n)
	if c >= classes {
		return make([]T, n)
	}
	if v := p.p[c].Get(); v != nil {
		b := *v.(*[]T)
		return b[:cap(b)]
	}
	return make([]T, 1<<(c+minShift))
}

// Put returns b to the pool. Slices whose capacity is not one of the pool's
// classes are dropped.
func (p *Pool[T]) Put(b []T) {
	n := cap(b)
	if n < 1<<minShift || n&(n-1) != 0 {
		return
	}
	c := class(n)
	if c >= classes {
		return
	}
	b = b[:n]
	clear(b)
	p.p[c].Put(&b)
}

var pools sync.Map // reflect.Type -> *Pool[T]

// For returns the process-wide pool for slices of T.
func For[T any]() *Pool[T] {
	t := reflect.TypeFor[T]()
	if v, ok := pools.Load(t); ok {
		return v.(*Pool[T])
	}
	v, _ := pools.LoadOrStore(t, new(Pool[T]))
	return v.(*Pool[T])
}
