package noscrypt

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool hands out Contexts to concurrent callers. A Context is never shared:
// Get removes it from the pool and Put returns it. Contexts that were
// destroyed while checked out (for example after a failed reseed) are
// replaced on Put.
type Pool struct {
	cfg  Config
	opts []Option

	mu     sync.Mutex
	closed bool
	idle   chan *Context
}

// NewPool creates size Contexts up front. If any of them fails to
// initialize, the ones already created are closed and the error is returned.
func NewPool(size int, cfg Config, opts ...Option) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("noscrypt: pool size must be positive, got %d", size)
	}
	p := &Pool{
		cfg:  cfg,
		opts: opts,
		idle: make(chan *Context, size),
	}
	for i := 0; i < size; i++ {
		c, err := New(cfg, opts...)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.idle <- c
	}
	return p, nil
}

// Get waits for an idle Context or for ctx to be done.
func (p *Pool) Get(ctx context.Context) (*Context, error) {
	select {
	case c, ok := <-p.idle:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns c to the pool. A destroyed Context is replaced by a fresh one;
// if that fails the pool shrinks by one and the error is returned. Putting
// into a closed pool closes c.
func (p *Pool) Put(c *Context) error {
	if c == nil {
		return nil
	}
	if c.Closed() {
		fresh, err := New(p.cfg, p.opts...)
		if err != nil {
			return err
		}
		c = fresh
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return c.Close()
	}
	select {
	case p.idle <- c:
		return nil
	default:
		return c.Close()
	}
}

// Do runs fn with a Context from the pool and returns the Context afterwards.
func (p *Pool) Do(ctx context.Context, fn func(*Context) error) error {
	c, err := p.Get(ctx)
	if err != nil {
		return err
	}
	fnErr := fn(c)
	return errors.Join(fnErr, p.Put(c))
}

// Close closes every idle Context. Contexts still checked out are closed when
// they are Put back. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	p.mu.Unlock()

	var errs []error
	for c := range p.idle {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
