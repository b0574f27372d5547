package settings

import (
	"context"
	"encoding/json"
	"sync"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety.
type InMemory struct {
	mu   sync.RWMutex
	data map[string]All // accountID -> category -> key -> value
}

// NewInMemory creates an empty settings store.
func NewInMemory() *InMemory {
	return &InMemory{data: make(map[string]All)}
}

func (s *InMemory) GetAll(ctx context.Context, accountID string) (All, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := emptyAll()
	stored, ok := s.data[accountID]
	if !ok {
		return all, nil
	}
	for c, values := range stored {
		for k, v := range values {
			all[c][k] = v
		}
	}
	return all, nil
}

func (s *InMemory) Upsert(ctx context.Context, accountID string, category Category, key string, value json.RawMessage) error {
	if err := ValidateValue(category, key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(accountID, category, key, value)
	return nil
}

func (s *InMemory) UpsertMany(ctx context.Context, accountID string, category Category, values Values) error {
	if _, err := ParseCategory(string(category)); err != nil {
		return err
	}
	failed := make(map[string]error)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range values {
		if err := ValidateValue(category, key, value); err != nil {
			failed[key] = err
			continue
		}
		s.upsertLocked(accountID, category, key, value)
	}
	if len(failed) > 0 {
		return &BatchError{Failed: failed}
	}
	return nil
}

func (s *InMemory) upsertLocked(accountID string, category Category, key string, value json.RawMessage) {
	all, ok := s.data[accountID]
	if !ok {
		all = emptyAll()
		s.data[accountID] = all
	}
	cp := make(json.RawMessage, len(value))
	copy(cp, value)
	all[category][key] = cp
}
