package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"samikna.id/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const accountColumns = `id, username, kabupaten, password_hash, full_name, email,
	phone, position, department, address, bio, website, organization,
	profile_image, earth_engine_url, join_date, last_login, updated_at,
	login_count, active`

func (s *PGStore) Create(ctx context.Context, a *Account) error {
	if a.ID == "" {
		a.ID = ids.New()
	}
	a.Username = NormalizeUsername(a.Username)
	if a.Kabupaten == "" {
		a.Kabupaten = a.Username
	}
	if a.JoinDate.IsZero() {
		a.JoinDate = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		insert into accounts(id, username, kabupaten, password_hash, full_name, email,
			phone, position, department, address, bio, website, organization,
			profile_image, earth_engine_url, join_date, active)
		values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		a.ID, a.Username, a.Kabupaten, a.PasswordHash, a.FullName, a.Email,
		a.Phone, a.Position, a.Department, a.Address, a.Bio, a.Website, a.Organization,
		a.ProfileImage, a.EarthEngineURL, a.JoinDate, true,
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrAlreadyExists
	}
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where id=$1`, id)
	return scanAccount(row)
}

func (s *PGStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+accountColumns+` from accounts where username=$1`,
		NormalizeUsername(username))
	return scanAccount(row)
}

func (s *PGStore) UpdateProfileFields(ctx context.Context, id string, fields ProfileFields) (*Account, error) {
	// Defense in depth: the profile service validates first, the store
	// re-checks before touching the row.
	if err := ValidateProfileFields(fields); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `
		update accounts set
			full_name=$2, email=$3, phone=$4, position=$5, department=$6,
			address=$7, bio=$8, website=$9, organization=$10,
			profile_image=$11, earth_engine_url=$12, updated_at=now()
		where id=$1
		returning `+accountColumns,
		id, strings.TrimSpace(fields.FullName), strings.TrimSpace(fields.Email),
		fields.Phone, fields.Position, fields.Department, fields.Address,
		fields.Bio, fields.Website, fields.Organization,
		fields.ProfileImage, fields.EarthEngineURL,
	)
	return scanAccount(row)
}

func (s *PGStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`update accounts set password_hash=$2, updated_at=now() where id=$1`,
		id, passwordHash)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (s *PGStore) RecordLogin(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`update accounts set last_login=$2, login_count=login_count+1 where id=$1`,
		id, at.UTC())
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (s *PGStore) Deactivate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`update accounts set active=false, updated_at=now() where id=$1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var (
		a         Account
		lastLogin sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Username, &a.Kabupaten, &a.PasswordHash,
		&a.FullName, &a.Email, &a.Phone, &a.Position, &a.Department,
		&a.Address, &a.Bio, &a.Website, &a.Organization, &a.ProfileImage,
		&a.EarthEngineURL, &a.JoinDate, &lastLogin, &a.UpdatedAt,
		&a.LoginCount, &a.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return &a, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
