package noscrypt

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/logging"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/metrics"
)

type phase int

const (
	phaseUninitialized phase = iota
	phaseInitialized
	phaseDestroyed
)

func (p phase) String() string {
	switch p {
	case phaseUninitialized:
		return "uninitialized"
	case phaseInitialized:
		return "initialized"
	case phaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Context owns one engine state block for its whole lifetime. The block is
// never exposed; every operation reaches it through the Context methods,
// which hold c.mu while the engine runs.
//
// Close must be called once the Context is no longer needed. A finalizer
// releases forgotten contexts, but relying on it keeps the state block alive
// for an unbounded time.
type Context struct {
	mu      sync.Mutex
	engine  Engine
	entropy io.Reader
	logger  logging.Logger
	metrics *metrics.Collector
	state   []byte
	phase   phase
}

// New creates a Context: it queries the engine for the state size, allocates
// a zeroed block and initializes it with 32 bytes of fresh entropy. Any
// failure is reported as ErrContextInitFailed and nothing is leaked.
func New(cfg Config, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng := o.engine
	if eng == nil {
		var err error
		if eng, err = cfg.engine(); err != nil {
			return nil, opError("New", err)
		}
	}

	c := &Context{
		engine:  eng,
		entropy: o.entropy,
		logger:  o.logger.With("engine", engineName(eng)),
		metrics: o.metrics,
	}
	if err := c.init(); err != nil {
		return nil, opError("New", err)
	}
	runtime.SetFinalizer(c, (*Context).Close)
	return c, nil
}

func (c *Context) init() error {
	size := c.engine.StateSize()
	if size <= 0 {
		return fmt.Errorf("%w: engine reported state size %d", ErrContextInitFailed, size)
	}
	state := c.alloc(size)
	if len(state) != size {
		return fmt.Errorf("%w: cannot allocate %d byte state block", ErrContextInitFailed, size)
	}

	seed := make([]byte, EntropySize)
	defer ZeroizeBytes(seed)
	if err := c.draw(seed); err != nil {
		c.free(state)
		return fmt.Errorf("%w: %w", ErrContextInitFailed, err)
	}
	if err := c.engine.InitState(state, seed); err != nil {
		c.free(state)
		return fmt.Errorf("%w: %w", ErrContextInitFailed, err)
	}

	c.state = state
	c.phase = phaseInitialized
	c.metrics.ContextOpened()
	c.logger.Debug(context.Background(), "context initialized", "state_size", size)
	return nil
}

// Close destroys the engine state and releases the block. Only the first
// call reaches the engine; later calls return nil. If the engine reports a
// failure the Context is still considered destroyed and the error wraps
// ErrContextDestroyFailed.
func (c *Context) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != phaseInitialized {
		return nil
	}
	runtime.SetFinalizer(c, nil)
	return opError("Close", c.destroy())
}

// Closed reports whether the Context has been destroyed.
func (c *Context) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == phaseDestroyed
}

// destroy requires c.mu.
func (c *Context) destroy() error {
	err := c.engine.DestroyState(c.state)
	c.free(c.state)
	c.state = nil
	c.phase = phaseDestroyed
	c.metrics.ContextClosed()
	if err != nil {
		c.logger.Error(context.Background(), "engine failed to destroy context", "error", err)
		return fmt.Errorf("%w: %w", ErrContextDestroyFailed, err)
	}
	c.logger.Debug(context.Background(), "context destroyed")
	return nil
}

// reseed draws a fresh seed and re-initializes the block in place. A failing
// engine leaves the block in an unknown state, so the Context is destroyed.
// Requires c.mu.
func (c *Context) reseed() error {
	seed := make([]byte, EntropySize)
	defer ZeroizeBytes(seed)
	if err := c.draw(seed); err != nil {
		return err
	}
	if err := c.engine.ReseedState(c.state, seed); err != nil {
		c.logger.Error(context.Background(), "reseed failed, destroying context", "error", err)
		_ = c.destroy()
		return fmt.Errorf("%w: reseed: %w", ErrContextInitFailed, err)
	}
	c.metrics.Reseeded()
	return nil
}

// lock acquires c.mu for an operation. On success the caller must unlock.
func (c *Context) lock(op string) error {
	c.mu.Lock()
	if c.phase != phaseInitialized {
		c.mu.Unlock()
		return opError(op, ErrInvalidState)
	}
	return nil
}

func (c *Context) draw(buf []byte) error {
	if _, err := io.ReadFull(c.entropy, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return nil
}

func (c *Context) alloc(size int) []byte {
	if a, ok := c.engine.(StateAllocator); ok {
		return a.AllocState(size)
	}
	return make([]byte, size)
}

func (c *Context) free(state []byte) {
	ZeroizeBytes(state)
	if a, ok := c.engine.(StateAllocator); ok {
		a.FreeState(state)
	}
}

// track starts timing op and returns the function that records its result.
func (c *Context) track(op string) func(result string) {
	start := time.Now()
	return func(result string) {
		c.metrics.ObserveOperation(op, result, time.Since(start))
	}
}

func (c *Context) rejected(op string, err error) error {
	c.metrics.ObserveOperation(op, metrics.ResultInvalid, 0)
	return opError(op, err)
}

func boolResult(ok bool) string {
	if ok {
		return metrics.ResultOK
	}
	return metrics.ResultFalse
}
