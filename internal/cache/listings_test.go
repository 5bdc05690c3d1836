// listings_test.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package cache_test

import (
	"context"
	"testing"

	"github.com/cseboard/cse-whiteboard/internal/cache"
)

func TestDisabledCacheIsSafe(t *testing.T) {
	listings, err := cache.New("", 0)
	if err != nil {
		t.Fatalf("Expected no error for empty url, got %v", err)
	}
	if listings != nil {
		t.Fatal("Expected nil cache for empty url")
	}

	// Every method on the disabled cache is a no-op.
	ctx := context.Background()
	if _, ok := listings.Get(ctx, "u", cache.ScopeCustomers); ok {
		t.Error("Expected miss from disabled cache")
	}
	listings.Set(ctx, "u", cache.ScopeCustomers, []byte("[]"))
	listings.Invalidate(ctx, "u", cache.ScopeCustomers, cache.ScopeTodos)
	if err := listings.Ping(ctx); err != nil {
		t.Errorf("Expected nil ping, got %v", err)
	}
	if listings.Enabled() {
		t.Error("Expected disabled")
	}
	if err := listings.Close(); err != nil {
		t.Errorf("Expected nil close, got %v", err)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := cache.New("not a redis url", 0); err == nil {
		t.Error("Expected error for malformed url")
	}
}
