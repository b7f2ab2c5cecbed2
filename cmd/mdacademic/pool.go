package main

import (
	"context"
	"io"
	"runtime"
	"sync"
)

// Converter turns one discovered file into its output.
type Converter interface {
	Convert(ctx context.Context, f FileToConvert) error
}

// Pool hands converters to batch workers.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// ConverterPool creates up to size converters lazily, on first Acquire, and
// recycles them. Converters owning a browser are closed with the pool.
type ConverterPool struct {
	size       int
	newConv    func() Converter
	converters []Converter
	sem        chan Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// Compile-time check that ConverterPool implements Pool.
var _ Pool = (*ConverterPool)(nil)

// NewConverterPool returns a pool of at most n converters built by newConv.
func NewConverterPool(n int, newConv func() Converter) *ConverterPool {
	if n < 1 {
		n = 1
	}
	return &ConverterPool{
		size:       n,
		newConv:    newConv,
		converters: make([]Converter, 0, n),
		sem:        make(chan Converter, n),
	}
}

// Acquire returns an idle converter, creates one if the pool is not full,
// or blocks until one is released.
func (p *ConverterPool) Acquire() Converter {
	select {
	case c := <-p.sem:
		return c
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		c := p.newConv()

		p.mu.Lock()
		p.converters = append(p.converters, c)
		p.mu.Unlock()
		return c
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns c to the pool.
func (p *ConverterPool) Release(c Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- c
	}
}

// Close closes every converter that holds resources.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var lastErr error
	for _, c := range converters {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// resolvePoolSize picks the worker count: the explicit value, else GOMAXPROCS
// (set for the container by automaxprocs) clamped to [1, 8]. Browser-backed
// pools use half of GOMAXPROCS before clamping, since each slot is a Chrome.
func resolvePoolSize(workers int, browser bool) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0)
	if browser {
		n /= 2
	}
	return max(1, min(n, 8))
}
