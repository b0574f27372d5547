package profile

import (
	"samikna.id/internal/account"
	"samikna.id/internal/settings"
)

// Update is the closed set of partial update kinds. A request carries exactly
// one kind; combined updates across kinds are rejected by construction. The
// HTTP layer maps the wire "type" parameter onto one of these; adding a kind
// means adding a type here and a case in Service.Apply, checked at compile
// time via the exhaustive switch.
type Update interface {
	updateKind() string
}

// ProfileFieldsUpdate replaces the mutable profile attributes.
type ProfileFieldsUpdate struct {
	Fields account.ProfileFields
}

// PasswordUpdate changes the account password. The current password is
// re-verified so a stolen session token alone cannot take over the account.
// Confirmation matching is a request-shape concern and is enforced here,
// not in the credential store.
type PasswordUpdate struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// SettingsUpdate upserts one category's key/value documents.
type SettingsUpdate struct {
	Category settings.Category
	Values   settings.Values
}

func (ProfileFieldsUpdate) updateKind() string { return "profile-fields" }
func (PasswordUpdate) updateKind() string      { return "password" }
func (SettingsUpdate) updateKind() string      { return "settings" }
