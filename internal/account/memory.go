package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"samikna.id/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety.
// Used by handler tests and local development without PostgreSQL.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[string]*Account
	byUsername map[string]string // normalized username -> id
}

// NewInMemory creates an empty credential store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[string]*Account),
		byUsername: make(map[string]string),
	}
}

func (s *InMemory) Create(ctx context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = ids.New()
	}
	a.Username = NormalizeUsername(a.Username)
	if a.Kabupaten == "" {
		a.Kabupaten = a.Username
	}
	if _, exists := s.byUsername[a.Username]; exists {
		return ErrAlreadyExists
	}
	if a.JoinDate.IsZero() {
		a.JoinDate = time.Now().UTC()
	}
	a.UpdatedAt = time.Now().UTC()
	a.Active = true

	cp := *a
	s.byID[a.ID] = &cp
	s.byUsername[a.Username] = a.ID
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *InMemory) FindByUsername(ctx context.Context, username string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[NormalizeUsername(username)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *InMemory) UpdateProfileFields(ctx context.Context, id string, fields ProfileFields) (*Account, error) {
	if err := ValidateProfileFields(fields); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.FullName = strings.TrimSpace(fields.FullName)
	a.Email = strings.TrimSpace(fields.Email)
	a.Phone = fields.Phone
	a.Position = fields.Position
	a.Department = fields.Department
	a.Address = fields.Address
	a.Bio = fields.Bio
	a.Website = fields.Website
	a.Organization = fields.Organization
	a.ProfileImage = fields.ProfileImage
	a.EarthEngineURL = fields.EarthEngineURL
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (s *InMemory) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemory) RecordLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	t := at.UTC()
	a.LastLogin = &t
	a.LoginCount++
	return nil
}

func (s *InMemory) Deactivate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	a.Active = false
	a.UpdatedAt = time.Now().UTC()
	return nil
}
