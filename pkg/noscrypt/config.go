package noscrypt

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/nostrkit/noscrypt-go/internal/bindings"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/logging"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/metrics"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/softengine"
)

// Backend names accepted by Config.Backend.
const (
	BackendSoft   = "soft"
	BackendNative = "native"
)

// Config selects the engine a Context runs on.
type Config struct {
	// Backend is BackendSoft (the default when empty) or BackendNative.
	Backend string
}

func (c Config) engine() (Engine, error) {
	switch c.Backend {
	case "", BackendSoft:
		return softengine.New(), nil
	case BackendNative:
		e, err := bindings.NewEngine()
		if err != nil {
			return nil, RemapError(err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

// Option customizes a Context.
type Option func(*options)

type options struct {
	engine  Engine
	entropy io.Reader
	logger  logging.Logger
	metrics *metrics.Collector
}

func defaultOptions() options {
	return options{
		entropy: rand.Reader,
		logger:  logging.Discard(),
	}
}

// WithEngine overrides the engine selected by Config.Backend.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithEntropy sets the random source used for seeds, nonce entropy and
// candidate secret keys. It must be safe for concurrent use when shared
// between contexts. The default is crypto/rand.Reader.
func WithEntropy(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.entropy = r
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records operation metrics on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = m
	}
}
