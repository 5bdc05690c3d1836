// listings.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

// Package cache holds a small Redis-backed cache for the unfiltered customer
// and todo listings, the two hot reads on the board view.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Listing scopes. Mutations invalidate the scope they touch.
const (
	ScopeCustomers = "customers"
	ScopeTodos     = "todos"
)

// Listings caches serialized listing payloads per user. A nil *Listings is a
// disabled cache: every method is a safe no-op, so callers never branch on
// whether Redis is configured.
type Listings struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis, or returns nil (cache disabled) when redisURL is
// empty.
func New(redisURL string, ttl time.Duration) (*Listings, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Listings{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

func key(userID, scope string) string {
	return "wb:" + userID + ":" + scope
}

// Get returns the cached listing payload, or false on miss, disabled cache,
// or Redis trouble. Cache errors are logged and treated as misses.
func (l *Listings) Get(ctx context.Context, userID, scope string) ([]byte, bool) {
	if l == nil {
		return nil, false
	}

	val, err := l.rdb.Get(ctx, key(userID, scope)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache: get %s: %v", scope, err)
		}
		return nil, false
	}
	return val, true
}

// Set stores a listing payload under the user's scope key.
func (l *Listings) Set(ctx context.Context, userID, scope string, payload []byte) {
	if l == nil {
		return
	}

	if err := l.rdb.Set(ctx, key(userID, scope), payload, l.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", scope, err)
	}
}

// Invalidate drops the user's cached listings for the given scopes.
func (l *Listings) Invalidate(ctx context.Context, userID string, scopes ...string) {
	if l == nil || len(scopes) == 0 {
		return
	}

	keys := make([]string, len(scopes))
	for i, s := range scopes {
		keys[i] = key(userID, s)
	}
	if err := l.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: invalidate %v: %v", scopes, err)
	}
}

// Ping reports whether Redis answers. Used by the health check.
func (l *Listings) Ping(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.rdb.Ping(ctx).Err()
}

// Enabled reports whether a Redis backend is configured.
func (l *Listings) Enabled() bool {
	return l != nil
}

// Close releases the Redis connection.
func (l *Listings) Close() error {
	if l == nil {
		return nil
	}
	return l.rdb.Close()
}
