// Package pool provides object pooling for the parsing and rendering
// hot paths, reusing expensive allocations to reduce GC pressure.
package pool

import (
	"strings"
	"sync"
)

// Pool is a generic, type safe object pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// NewPool creates a pool with the given factory function.
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before
// reuse.
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one.
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	p.pool.Put(obj)
}

// Builders that grew past this are not worth keeping around.
const maxPooledBuilderCap = 64 << 10

var builders = NewPoolWithReset(
	func() *strings.Builder {
		return &strings.Builder{}
	},
	func(b *strings.Builder) {
		b.Reset()
	},
)

// GetBuilder retrieves a scratch string builder.
func GetBuilder() *strings.Builder {
	return builders.Get()
}

// PutBuilder returns a scratch builder to the pool. Oversized builders
// are dropped.
func PutBuilder(b *strings.Builder) {
	if b == nil || b.Cap() > maxPooledBuilderCap {
		return
	}
	builders.Put(b)
}
