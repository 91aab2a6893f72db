package main

import (
	"fmt"

	"github.com/alnah/go-qtf2html"
)

// poolAdapter adapts *qtf2html.ConverterPool to the Pool interface.
type poolAdapter struct {
	pool *qtf2html.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newPoolAdapter is the production Environment.NewPool.
func newPoolAdapter(size int, opts ...qtf2html.Option) Pool {
	return &poolAdapter{pool: qtf2html.NewConverterPool(size, opts...)}
}

// Acquire returns nil, not a typed nil, when converter creation fails.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release panics on a converter not obtained from this pool type.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*qtf2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int        { return a.pool.Size() }
func (a *poolAdapter) InitError() error { return a.pool.InitError() }
func (a *poolAdapter) Close() error     { return a.pool.Close() }
