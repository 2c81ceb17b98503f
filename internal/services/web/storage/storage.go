package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrVisitorRequired is returned when a scope is requested without a visitor id.
var ErrVisitorRequired = errors.New("visitor id is required")

// Storage reads and writes string values for one visitor.
//
// The Many variants apply to all keys at once: a concurrent reader sees
// either none or all of a SetMany or RemoveMany.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error

	// GetMany returns the present keys among keys; absent keys are omitted.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) error
	RemoveMany(ctx context.Context, keys ...string) error
}

// Provider hands out visitor-scoped storage.
type Provider interface {
	ForVisitor(visitorID string) (Storage, error)
	Close() error
}

// ValidateVisitor normalizes a visitor id.
func ValidateVisitor(visitorID string) (string, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return "", ErrVisitorRequired
	}
	return visitorID, nil
}

// ValidateKeys normalizes each key in keys.
func ValidateKeys(keys []string) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key, err := ValidateKey(key)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

// ValidateKey normalizes a storage key.
func ValidateKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage key is required")
	}
	return key, nil
}
