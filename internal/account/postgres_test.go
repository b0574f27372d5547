package account

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var accountRows = []string{
	"id", "username", "kabupaten", "password_hash", "full_name", "email",
	"phone", "position", "department", "address", "bio", "website",
	"organization", "profile_image", "earth_engine_url", "join_date",
	"last_login", "updated_at", "login_count", "active",
}

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPGStore(db), mock
}

func TestPGStoreFindByUsername(t *testing.T) {
	store, mock := newMockStore(t)

	joined := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)select .+ from accounts where username=`).
		WithArgs("malang").
		WillReturnRows(sqlmock.NewRows(accountRows).AddRow(
			"acc-1", "malang", "malang", "hash", "Admin Kabupaten Malang",
			"admin.malang@samikna.id", "", "", "", "", "", "", "", "", "",
			joined, nil, joined, 3, true,
		))

	a, err := store.FindByUsername(context.Background(), "MALANG")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if a.ID != "acc-1" || a.Kabupaten != "malang" {
		t.Fatalf("unexpected account: %+v", a)
	}
	if a.LastLogin != nil {
		t.Fatalf("expected nil last login, got %v", a.LastLogin)
	}
	if a.LoginCount != 3 {
		t.Fatalf("unexpected login count: %d", a.LoginCount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGStoreFindNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)select .+ from accounts where id=`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := store.Find(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreUpdateProfileFieldsRejectsInvalidInput(t *testing.T) {
	store, mock := newMockStore(t)

	// Validation short-circuits before any SQL is issued.
	_, err := store.UpdateProfileFields(context.Background(), "acc-1", ProfileFields{
		FullName: "",
		Email:    "a@b.com",
	})
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store issued unexpected SQL: %v", err)
	}
}

func TestPGStoreUpdatePasswordNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`update accounts set password_hash=`).
		WithArgs("missing", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.UpdatePassword(context.Background(), "missing", "new-hash"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreRecordLogin(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`update accounts set last_login=.+login_count=login_count\+1`).
		WithArgs("acc-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.RecordLogin(context.Background(), "acc-1", time.Now()); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
