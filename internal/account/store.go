package account

import (
	"context"
	"time"
)

// Store describes persistence operations for administrator accounts.
//
// Mutations touch exactly one row and have no cascading effect on settings.
// Implementations return ErrNotFound for unknown accounts and re-enforce
// the validation rules independently of the profile service.
type Store interface {
	Create(ctx context.Context, a *Account) error
	Find(ctx context.Context, id string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)

	// UpdateProfileFields applies a partial profile update and stamps the
	// last-profile-update time.
	UpdateProfileFields(ctx context.Context, id string, fields ProfileFields) (*Account, error)

	// UpdatePassword replaces the stored hash after the caller has verified
	// the current password and the strength policy.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// RecordLogin stamps last-login and increments the login counter.
	RecordLogin(ctx context.Context, id string, at time.Time) error

	// Deactivate soft-deletes the account. Ordinary flows never hard-remove rows.
	Deactivate(ctx context.Context, id string) error
}
