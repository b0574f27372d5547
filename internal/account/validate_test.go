package account

import (
	"strings"
	"testing"
)

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]string{
		"Malang":        "malang",
		"  BANYUWANGI ": "banyuwangi",
		"lombok timur":  "lombok timur",
	}
	for input, expected := range cases {
		if got := NormalizeUsername(input); got != expected {
			t.Fatalf("NormalizeUsername(%q)=%q, want %q", input, got, expected)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"admin.malang@samikna.id", "a@b.com", "x.y+z@example.co.id"}
	invalid := []string{"", "plainaddress", "a@b", "a b@c.com", "@samikna.id", "a@"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}

func TestValidateProfileFields(t *testing.T) {
	base := ProfileFields{FullName: "Admin Malang", Email: "admin.malang@samikna.id"}

	if err := ValidateProfileFields(base); err != nil {
		t.Fatalf("expected valid fields, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ProfileFields)
	}{
		{"missing full name", func(f *ProfileFields) { f.FullName = "" }},
		{"blank full name", func(f *ProfileFields) { f.FullName = "   " }},
		{"missing email", func(f *ProfileFields) { f.Email = "" }},
		{"malformed email", func(f *ProfileFields) { f.Email = "not-an-email" }},
		{"oversized bio", func(f *ProfileFields) { f.Bio = strings.Repeat("x", 501) }},
	}
	for _, tc := range cases {
		f := base
		tc.mutate(&f)
		err := ValidateProfileFields(f)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
	}

	// Bio at exactly the limit is allowed.
	f := base
	f.Bio = strings.Repeat("x", 500)
	if err := ValidateProfileFields(f); err != nil {
		t.Fatalf("bio of 500 chars should pass: %v", err)
	}

	// The limit counts characters like the column constraint does, so a
	// multibyte bio under 500 characters passes even when over 500 bytes.
	f = base
	f.Bio = strings.Repeat("é", 500)
	if err := ValidateProfileFields(f); err != nil {
		t.Fatalf("bio of 500 multibyte chars should pass: %v", err)
	}
	f.Bio = strings.Repeat("é", 501)
	if err := ValidateProfileFields(f); err == nil {
		t.Fatal("bio of 501 multibyte chars should fail")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	if err := ValidatePasswordStrength("malangAdmin2024!"); err != nil {
		t.Fatalf("expected strong password to pass: %v", err)
	}

	weak := []string{
		"Ab1!",             // too short
		"alllower1!",       // no upper
		"ALLUPPER1!",       // no lower
		"NoDigits!!",       // no digit
		"NoSymbols123",     // no symbol
		"",                 // empty
	}
	for _, pw := range weak {
		err := ValidatePasswordStrength(pw)
		if err == nil {
			t.Fatalf("expected %q to fail the strength policy", pw)
		}
		if !IsValidation(err) {
			t.Fatalf("expected ValidationError for %q, got %T", pw, err)
		}
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("malangAdmin2024!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "malangAdmin2024!" {
		t.Fatal("hash must not equal plaintext")
	}
	if err := VerifyPassword(hash, "malangAdmin2024!"); err != nil {
		t.Fatalf("VerifyPassword with correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrongPassword1!"); err == nil {
		t.Fatal("expected verification failure for wrong password")
	}
}
