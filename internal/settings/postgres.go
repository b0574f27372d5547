package settings

import (
	"context"
	"database/sql"
	"encoding/json"

	"samikna.id/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL with a jsonb value column.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) GetAll(ctx context.Context, accountID string) (All, error) {
	rows, err := s.db.QueryContext(ctx,
		`select category, key, value from settings where account_id=$1 order by category, key`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := emptyAll()
	for rows.Next() {
		var (
			category string
			key      string
			value    []byte
		)
		if err := rows.Scan(&category, &key, &value); err != nil {
			return nil, err
		}
		c, err := ParseCategory(category)
		if err != nil {
			// Rows outside the closed set cannot exist under the check
			// constraint; skip rather than fail the whole read.
			continue
		}
		all[c][key] = json.RawMessage(value)
	}
	return all, rows.Err()
}

func (s *PGStore) Upsert(ctx context.Context, accountID string, category Category, key string, value json.RawMessage) error {
	if err := ValidateValue(category, key, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		insert into settings(id, account_id, category, key, value)
		values ($1,$2,$3,$4,$5)
		on conflict (account_id, category, key) do update
		set value = excluded.value, updated_at = now()`,
		ids.New(), accountID, string(category), key, []byte(value),
	)
	return err
}

func (s *PGStore) UpsertMany(ctx context.Context, accountID string, category Category, values Values) error {
	if _, err := ParseCategory(string(category)); err != nil {
		return err
	}
	failed := make(map[string]error)
	for key, value := range values {
		if err := s.Upsert(ctx, accountID, category, key, value); err != nil {
			failed[key] = err
		}
	}
	if len(failed) > 0 {
		return &BatchError{Failed: failed}
	}
	return nil
}
