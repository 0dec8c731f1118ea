// Package store holds the key/value persistence the game state is kept in.
// Every record is a single serialized value under one key; writes to a key
// are atomic but no transaction ever spans two keys.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// ErrUnavailable wraps every I/O failure coming from a backend.
var ErrUnavailable = errors.New("store unavailable")

// KeyValueStore is the minimal contract the game services depend on.
type KeyValueStore interface {
	// Get returns the value and true, or "" and false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key. A zero expireAt keeps the key forever.
	Set(ctx context.Context, key, value string, expireAt time.Time) error

	// Incr atomically adds one to the integer stored under key, treating an
	// absent key as 0, and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	Close() error
}

var codec = sonic.ConfigStd

// GetJSON decodes the record under key into dest. The boolean reports whether
// the key existed.
func GetJSON(ctx context.Context, s KeyValueStore, key string, dest interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := codec.UnmarshalFromString(raw, dest); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s KeyValueStore, key string, value interface{}, expireAt time.Time) error {
	raw, err := codec.MarshalToString(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw, expireAt)
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%s %s: %w: %v", op, key, ErrUnavailable, err)
}
