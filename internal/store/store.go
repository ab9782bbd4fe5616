package store

import (
	"context"
	"errors"
)

// UpdateFunc transforms the current value of a key into its next value.
// ok reports whether a value currently exists.
type UpdateFunc func(old string, ok bool) (string, error)

// Store is the persistent key-value store behind every entitlement record.
// Counter increments must go through Update so read-modify-write stays atomic
// even when a background poll and a user action interleave.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// ErrUnavailable indicates the backing store could not be reached.
// Callers fall back to restrictive defaults instead of failing the request.
var ErrUnavailable = errors.New("store unavailable")
