// Package cache provides the get-or-create response cache shared by the
// read endpoints of the campusgrid services.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
)

// Common cache errors.
var (
	// ErrCacheMiss indicates that the key was not found in the store.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidConfig indicates that the cache configuration is invalid.
	ErrInvalidConfig = errors.New("invalid cache configuration")
)

// Store is the backing key-value store. Values are opaque serialized bytes so
// an in-process store and a remote store are interchangeable.
type Store interface {
	// Get retrieves a value. Returns ErrCacheMiss if the key is not present
	// or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}

// Producer computes the value for a key on a cache miss.
type Producer func(ctx context.Context) ([]byte, error)

// Options configures a Cache.
type Options struct {
	// TTL is the default entry lifetime.
	TTL time.Duration

	// NegativeTTL is the lifetime of cached not-found results. Zero means
	// negatives use TTL. Negative to disable caching negatives.
	NegativeTTL time.Duration
}

// Cache wraps a Store with get-or-create semantics. Concurrent GetOrCreate
// calls for the same key share a single producer invocation; different keys
// proceed fully concurrently.
type Cache struct {
	store    Store
	group    singleflight.Group
	ttl      time.Duration
	negTTL   time.Duration
	negCache bool
	logger   zerolog.Logger
}

// New creates a Cache over the given store.
func New(store Store, opts Options, logger zerolog.Logger) *Cache {
	negTTL := opts.NegativeTTL
	negCache := true
	switch {
	case negTTL == 0:
		negTTL = opts.TTL
	case negTTL < 0:
		negCache = false
		negTTL = 0
	}

	return &Cache{
		store:    store,
		ttl:      opts.TTL,
		negTTL:   negTTL,
		negCache: negCache,
		logger:   logger,
	}
}

// Entry envelope markers. A negative entry records a definitive not-found
// result so repeated misses do not hit the producer until the entry expires.
const (
	markerValue    = 0x00
	markerNegative = 0x01
)

// GetOrCreate returns the cached value for key, or invokes producer exactly
// once per key per expiry window to compute and store it.
//
// A producer error wrapping apperrors.ErrNotFound is treated as a definitive
// negative: it is cached (policy-controlled) and returned as-is. Any other
// producer error is returned without caching.
func (c *Cache) GetOrCreate(ctx context.Context, key string, producer Producer) ([]byte, error) {
	return c.GetOrCreateTTL(ctx, key, c.ttl, producer)
}

// GetOrCreateTTL is GetOrCreate with an explicit TTL for this entry.
func (c *Cache) GetOrCreateTTL(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error) {
	if raw, err := c.store.Get(ctx, key); err == nil {
		return c.unwrap(raw)
	} else if !errors.Is(err, ErrCacheMiss) {
		// A broken store must not take the read path down; fall through to
		// the producer.
		c.logger.Warn().Err(err).Str("key", key).Msg("cache store get failed")
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have stored the
		// entry between our miss and acquiring the flight.
		if raw, err := c.store.Get(ctx, key); err == nil {
			return raw, nil
		}

		value, err := producer(ctx)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) && c.negCache {
				if serr := c.store.Set(ctx, key, []byte{markerNegative}, c.negTTL); serr != nil {
					c.logger.Warn().Err(serr).Str("key", key).Msg("cache store set failed")
				}
			}
			return nil, err
		}

		raw := make([]byte, 0, len(value)+1)
		raw = append(raw, markerValue)
		raw = append(raw, value...)
		if serr := c.store.Set(ctx, key, raw, ttl); serr != nil {
			c.logger.Warn().Err(serr).Str("key", key).Msg("cache store set failed")
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	return c.unwrap(v.([]byte))
}

// Remove explicitly invalidates a key. Used on writes and on an inbound
// no-cache directive, where the caller removes the key before GetOrCreate to
// force a fresh fetch and store.
func (c *Cache) Remove(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

func (c *Cache) unwrap(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrCacheMiss
	}
	if raw[0] == markerNegative {
		return nil, apperrors.ErrNotFound
	}
	return raw[1:], nil
}
