package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
	"github.com/nostrkit/noscrypt-go/pkg/nostr"
)

const eventKeyPrefix = "nostr:event:"

var (
	ErrEventNotFound = errors.New("valkey: event not found")
	ErrEventRejected = errors.New("valkey: event signature does not verify")
)

// EventStore keeps signed events keyed by id. Only events whose id and
// signature verify are stored.
type EventStore struct {
	client *Client
	pool   *noscrypt.Pool
	ttl    time.Duration
}

// NewEventStore returns a store writing through client. Verification borrows
// contexts from pool. A zero ttl keeps events forever.
func NewEventStore(client *Client, pool *noscrypt.Pool, ttl time.Duration) *EventStore {
	return &EventStore{client: client, pool: pool, ttl: ttl}
}

// EventKey returns the key an event id is stored under.
func EventKey(id string) string {
	return eventKeyPrefix + id
}

// Put verifies e and stores it.
func (s *EventStore) Put(ctx context.Context, e *nostr.Event) error {
	var ok bool
	err := s.pool.Do(ctx, func(c *noscrypt.Context) error {
		var err error
		ok, err = nostr.Verify(c, e)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrEventRejected, e.ID)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("valkey: encode event: %w", err)
	}
	rdb, err := s.client.Redis()
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, EventKey(e.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("valkey: store event %s: %w", e.ID, err)
	}
	return nil
}

// Get loads the event stored under id.
func (s *EventStore) Get(ctx context.Context, id string) (*nostr.Event, error) {
	rdb, err := s.client.Redis()
	if err != nil {
		return nil, err
	}
	data, err := rdb.Get(ctx, EventKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("valkey: load event %s: %w", id, err)
	}
	var e nostr.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("valkey: decode event %s: %w", id, err)
	}
	return &e, nil
}

// Delete removes the event stored under id. Deleting a missing event is not
// an error.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	rdb, err := s.client.Redis()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, EventKey(id)).Err()
}
