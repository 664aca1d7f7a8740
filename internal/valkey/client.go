// Package valkey keeps the connection to a Valkey (Redis protocol) server and
// stores verified Nostr events in it.
package valkey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/logging"
)

// DefaultAddr is used when Options.Addr is empty.
const DefaultAddr = "localhost:6379"

var (
	ErrAlreadyConnected = errors.New("valkey: already connected")
	ErrNotConnected     = errors.New("valkey: not connected")
)

// Options configures a Client.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Client wraps a go-redis client with an explicit connect/disconnect
// lifecycle.
type Client struct {
	opts   Options
	logger logging.Logger

	mu  sync.Mutex
	rdb *redis.Client
}

// New returns a disconnected Client.
func New(opts Options, logger logging.Logger) *Client {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{opts: opts, logger: logger.With("addr", opts.Addr)}
}

// Connect dials the server and checks it with PING.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rdb != nil {
		return ErrAlreadyConnected
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        c.opts.Addr,
		Password:    c.opts.Password,
		DB:          c.opts.DB,
		DialTimeout: c.opts.DialTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("valkey: connect to %s: %w", c.opts.Addr, err)
	}
	c.rdb = rdb
	c.logger.Info(ctx, "connected to valkey")
	return nil
}

// Disconnect closes the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	c.logger.Info(context.Background(), "disconnected from valkey")
	return err
}

// IsConnected reports whether Connect succeeded and Disconnect has not been
// called since.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rdb != nil
}

// Redis returns the underlying client.
func (c *Client) Redis() (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rdb == nil {
		return nil, ErrNotConnected
	}
	return c.rdb, nil
}

// Ping checks that the server is still reachable.
func (c *Client) Ping(ctx context.Context) error {
	rdb, err := c.Redis()
	if err != nil {
		return err
	}
	return rdb.Ping(ctx).Err()
}
