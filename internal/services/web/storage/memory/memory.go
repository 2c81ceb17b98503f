// Package memory provides an in-process storage provider.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vpshub/site/internal/services/web/storage"
)

type entry struct {
	value     string
	updatedAt time.Time
}

// Provider keeps every visitor's values in one mutex-guarded map.
type Provider struct {
	mu     sync.RWMutex
	values map[string]map[string]entry
	now    func() time.Time
}

// New returns an empty provider.
func New() *Provider {
	return &Provider{values: make(map[string]map[string]entry), now: time.Now}
}

// ForVisitor returns the storage scope for visitorID.
func (p *Provider) ForVisitor(visitorID string) (storage.Storage, error) {
	visitorID, err := storage.ValidateVisitor(visitorID)
	if err != nil {
		return nil, err
	}
	return &scope{provider: p, visitorID: visitorID}, nil
}

// PurgeBefore removes values not written since cutoff and reports how many
// were dropped.
func (p *Provider) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var removed int64
	for visitorID, values := range p.values {
		for key, e := range values {
			if e.updatedAt.Before(cutoff) {
				delete(values, key)
				removed++
			}
		}
		if len(values) == 0 {
			delete(p.values, visitorID)
		}
	}
	return removed, nil
}

// Close drops all values.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = make(map[string]map[string]entry)
	return nil
}

type scope struct {
	provider  *Provider
	visitorID string
}

func (s *scope) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return "", false, err
	}
	values, err := s.GetMany(ctx, key)
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *scope) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *scope) Remove(ctx context.Context, key string) error {
	return s.RemoveMany(ctx, key)
}

func (s *scope) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	keys, err := storage.ValidateKeys(keys)
	if err != nil {
		return nil, err
	}
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()
	out := make(map[string]string, len(keys))
	values := s.provider.values[s.visitorID]
	for _, key := range keys {
		if e, ok := values[key]; ok {
			out[key] = e.value
		}
	}
	return out, nil
}

func (s *scope) SetMany(_ context.Context, values map[string]string) error {
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key, err := storage.ValidateKey(key)
		if err != nil {
			return err
		}
		normalized[key] = value
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	stored, ok := s.provider.values[s.visitorID]
	if !ok {
		stored = make(map[string]entry)
		s.provider.values[s.visitorID] = stored
	}
	now := s.provider.now()
	for key, value := range normalized {
		stored[key] = entry{value: value, updatedAt: now}
	}
	return nil
}

func (s *scope) RemoveMany(_ context.Context, keys ...string) error {
	keys, err := storage.ValidateKeys(keys)
	if err != nil {
		return err
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	values := s.provider.values[s.visitorID]
	for _, key := range keys {
		delete(values, key)
	}
	if len(values) == 0 {
		delete(s.provider.values, s.visitorID)
	}
	return nil
}
