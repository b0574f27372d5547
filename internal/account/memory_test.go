package account

import (
	"context"
	"testing"
	"time"
)

func seedAccount(t *testing.T, s Store) *Account {
	t.Helper()
	hash, err := HashPassword("malangAdmin2024!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	a := &Account{
		Username:     "Malang",
		PasswordHash: hash,
		FullName:     "Admin Kabupaten Malang",
		Email:        "admin.malang@samikna.id",
		JoinDate:     time.Now().UTC().AddDate(0, 0, -30),
	}
	if err := s.Create(context.Background(), a); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return a
}

func TestInMemoryCreateAndFind(t *testing.T) {
	s := NewInMemory()
	a := seedAccount(t, s)

	if a.Username != "malang" {
		t.Fatalf("username not normalized: %q", a.Username)
	}
	if a.Kabupaten != "malang" {
		t.Fatalf("kabupaten defaulted incorrectly: %q", a.Kabupaten)
	}

	got, err := s.Find(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Email != a.Email {
		t.Fatalf("unexpected email: %q", got.Email)
	}

	// Lookup is case-insensitive on the stored normalized form.
	got, err = s.FindByUsername(context.Background(), "MALANG")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.ID != a.ID {
		t.Fatalf("wrong account: %q", got.ID)
	}

	if _, err := s.Find(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Create(context.Background(), &Account{Username: "malang"}); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestInMemoryUpdateProfileFields(t *testing.T) {
	s := NewInMemory()
	a := seedAccount(t, s)

	before := a.UpdatedAt
	updated, err := s.UpdateProfileFields(context.Background(), a.ID, ProfileFields{
		FullName: "Ir. Budi Santoso",
		Email:    "budi.santoso@samikna.id",
		Phone:    "+62 812 0000 0000",
		Bio:      "Agronomist",
	})
	if err != nil {
		t.Fatalf("UpdateProfileFields: %v", err)
	}
	if updated.FullName != "Ir. Budi Santoso" || updated.Phone != "+62 812 0000 0000" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.UpdatedAt.Before(before) {
		t.Fatalf("last-profile-update not stamped")
	}

	// FullName and Email are stored trimmed, like the Postgres store writes them.
	updated, err = s.UpdateProfileFields(context.Background(), a.ID, ProfileFields{
		FullName: "  Ir. Budi Santoso  ",
		Email:    " budi.santoso@samikna.id ",
	})
	if err != nil {
		t.Fatalf("UpdateProfileFields: %v", err)
	}
	if updated.FullName != "Ir. Budi Santoso" || updated.Email != "budi.santoso@samikna.id" {
		t.Fatalf("expected trimmed values, got %q / %q", updated.FullName, updated.Email)
	}

	// A rejected update must not mutate the row.
	if _, err := s.UpdateProfileFields(context.Background(), a.ID, ProfileFields{
		FullName: "",
		Email:    "a@b.com",
	}); err == nil {
		t.Fatal("expected validation error")
	}
	got, err := s.Find(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.FullName != "Ir. Budi Santoso" {
		t.Fatalf("rejected update mutated the row: %q", got.FullName)
	}
}

func TestInMemoryRecordLoginAndDeactivate(t *testing.T) {
	s := NewInMemory()
	a := seedAccount(t, s)

	at := time.Now().UTC()
	if err := s.RecordLogin(context.Background(), a.ID, at); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	if err := s.RecordLogin(context.Background(), a.ID, at.Add(time.Minute)); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	got, _ := s.Find(context.Background(), a.ID)
	if got.LoginCount != 2 {
		t.Fatalf("expected login count 2, got %d", got.LoginCount)
	}
	if got.LastLogin == nil || !got.LastLogin.After(at) {
		t.Fatalf("last login not advanced: %v", got.LastLogin)
	}

	if err := s.Deactivate(context.Background(), a.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	got, err := s.Find(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("soft-deleted account must remain readable: %v", err)
	}
	if got.Active {
		t.Fatal("expected account to be inactive")
	}
}
