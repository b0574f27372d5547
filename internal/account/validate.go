package account

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxBioLength = 500

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeUsername lower-cases and trims a username so lookups are
// case-insensitive. Regency slugs are stored in this form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidEmail reports whether s matches the basic syntactic email pattern.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidateProfileFields enforces the required-field and bounded-length rules
// for a profile update. Optional fields may be empty.
func ValidateProfileFields(f ProfileFields) error {
	if strings.TrimSpace(f.FullName) == "" {
		return Invalid("fullName", "is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return Invalid("email", "is required")
	}
	if !ValidEmail(f.Email) {
		return Invalid("email", "is malformed")
	}
	// Characters, not bytes, to match the char_length check on the column.
	if utf8.RuneCountInString(f.Bio) > maxBioLength {
		return Invalid("bio", "must be at most 500 characters")
	}
	return nil
}

// ValidatePasswordStrength enforces the policy applied at password-change
// time: at least 8 characters containing upper-case, lower-case, digit and
// symbol classes. Existing hashes are never re-checked retroactively.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return Invalid("password", "must be at least 8 characters")
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return Invalid("password", "must contain upper-case, lower-case, digit and symbol characters")
	}
	return nil
}
