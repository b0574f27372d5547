// Package profile composes the credential and settings stores into the
// single view the dashboard reads, and dispatches the three partial update
// kinds. Validation runs here before any store call; the stores re-enforce
// their own invariants independently.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"samikna.id/internal/account"
	"samikna.id/internal/settings"
)

// View is the merged read-only profile aggregation. Get never mutates.
type View struct {
	Profile    *account.Account `json:"profile"`
	Settings   settings.All     `json:"settings"`
	Statistics Statistics       `json:"statistics"`
}

// Statistics are derived on every read, never stored.
type Statistics struct {
	AccountAgeDays      int `json:"accountAgeDays"`
	ProfileCompleteness int `json:"profileCompleteness"`
	LoginCount          int `json:"loginCount"`
}

// Service is the single entry point the presentation layer calls.
type Service struct {
	accounts account.Store
	settings settings.Store
	now      func() time.Time
}

// NewService wires the two stores together.
func NewService(accounts account.Store, sets settings.Store) *Service {
	return &Service{accounts: accounts, settings: sets, now: time.Now}
}

// WithClock overrides the time source. Only intended for test use.
func (s *Service) WithClock(fn func() time.Time) *Service {
	if fn != nil {
		s.now = fn
	}
	return s
}

// Resolve looks an account up by id, falling back to the normalized
// username. The dashboard addresses accounts by regency slug.
func (s *Service) Resolve(ctx context.Context, idOrUsername string) (*account.Account, error) {
	idOrUsername = strings.TrimSpace(idOrUsername)
	if idOrUsername == "" {
		return nil, account.ErrNotFound
	}
	if a, err := s.accounts.Find(ctx, idOrUsername); err == nil {
		return a, nil
	} else if err != account.ErrNotFound {
		return nil, err
	}
	return s.accounts.FindByUsername(ctx, idOrUsername)
}

// Get returns the merged profile view for one account.
func (s *Service) Get(ctx context.Context, accountID string) (*View, error) {
	a, err := s.accounts.Find(ctx, accountID)
	if err != nil {
		return nil, err
	}
	all, err := s.settings.GetAll(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &View{
		Profile:    a,
		Settings:   all,
		Statistics: s.statistics(a),
	}, nil
}

// Apply dispatches exactly one update kind to the matching store operation
// and returns its result verbatim.
func (s *Service) Apply(ctx context.Context, accountID string, upd Update) error {
	switch u := upd.(type) {
	case ProfileFieldsUpdate:
		return s.applyProfileFields(ctx, accountID, u)
	case PasswordUpdate:
		return s.applyPassword(ctx, accountID, u)
	case SettingsUpdate:
		return s.applySettings(ctx, accountID, u)
	default:
		return fmt.Errorf("profile: unsupported update kind %T", upd)
	}
}

func (s *Service) applyProfileFields(ctx context.Context, accountID string, u ProfileFieldsUpdate) error {
	if err := account.ValidateProfileFields(u.Fields); err != nil {
		return err
	}
	_, err := s.accounts.UpdateProfileFields(ctx, accountID, u.Fields)
	return err
}

func (s *Service) applyPassword(ctx context.Context, accountID string, u PasswordUpdate) error {
	if u.CurrentPassword == "" {
		return account.Invalid("currentPassword", "is required")
	}
	if u.NewPassword != u.ConfirmPassword {
		return account.Invalid("confirmPassword", "does not match the new password")
	}
	if err := account.ValidatePasswordStrength(u.NewPassword); err != nil {
		return err
	}
	a, err := s.accounts.Find(ctx, accountID)
	if err != nil {
		return err
	}
	if err := account.VerifyPassword(a.PasswordHash, u.CurrentPassword); err != nil {
		return account.ErrInvalidCredentials
	}
	hash, err := account.HashPassword(u.NewPassword)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, accountID, hash)
}

func (s *Service) applySettings(ctx context.Context, accountID string, u SettingsUpdate) error {
	if _, err := settings.ParseCategory(string(u.Category)); err != nil {
		return err
	}
	if len(u.Values) == 0 {
		return account.Invalid("settings", "at least one key is required")
	}
	return s.settings.UpsertMany(ctx, accountID, u.Category, u.Values)
}

// Login verifies credentials, stamps last-login and returns the account.
// Inactive accounts fail the same way wrong credentials do.
func (s *Service) Login(ctx context.Context, username, password string) (*account.Account, error) {
	username = account.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, account.ErrInvalidCredentials
	}
	a, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if err == account.ErrNotFound {
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}
	if !a.Active {
		return nil, account.ErrInvalidCredentials
	}
	if err := account.VerifyPassword(a.PasswordHash, password); err != nil {
		return nil, account.ErrInvalidCredentials
	}
	now := s.now().UTC()
	if err := s.accounts.RecordLogin(ctx, a.ID, now); err != nil {
		return nil, err
	}
	a.LastLogin = &now
	a.LoginCount++
	return a, nil
}

// optional profile attributes counted toward completeness
var completenessFields = func(a *account.Account) []string {
	return []string{
		a.FullName, a.Email, a.Phone, a.Position, a.Department,
		a.Address, a.Bio, a.Website, a.Organization, a.ProfileImage,
		a.EarthEngineURL,
	}
}

func (s *Service) statistics(a *account.Account) Statistics {
	fields := completenessFields(a)
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	ageDays := 0
	if !a.JoinDate.IsZero() {
		ageDays = int(s.now().UTC().Sub(a.JoinDate.UTC()).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}
	}
	return Statistics{
		AccountAgeDays:      ageDays,
		ProfileCompleteness: filled * 100 / len(fields),
		LoginCount:          a.LoginCount,
	}
}
