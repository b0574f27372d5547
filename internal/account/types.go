package account

import "time"

// Account is one administrative user, one per regency (kabupaten).
// Username doubles as the regency slug and never changes after provisioning.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Kabupaten    string    `json:"kabupaten"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Position     string    `json:"position,omitempty"`
	Department   string    `json:"department,omitempty"`
	Address      string    `json:"address,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Website      string    `json:"website,omitempty"`
	Organization string    `json:"organization,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	// EarthEngineURL points at the regency's embedded satellite view.
	EarthEngineURL string     `json:"earthEngineUrl,omitempty"`
	JoinDate       time.Time  `json:"joinDate"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LoginCount     int        `json:"loginCount"`
	Active         bool       `json:"active"`
}

// ProfileFields carries the mutable profile attributes for a partial update.
// FullName and Email are required; the rest may be empty to clear the field.
type ProfileFields struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Address        string `json:"address"`
	Bio            string `json:"bio"`
	Website        string `json:"website"`
	Organization   string `json:"organization"`
	ProfileImage   string `json:"profileImage"`
	EarthEngineURL string `json:"earthEngineUrl"`
}
