// Package settings stores per-account preference documents partitioned by a
// closed set of categories. Values are opaque JSON; known keys are validated
// against a per-category schema before the write, unknown keys pass through.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Category partitions an account's settings keys. The set is closed: new
// categories require a schema and code change, not dynamic registration.
type Category string

const (
	CategoryNotification Category = "notification"
	CategoryPrivacy      Category = "privacy"
	CategoryPreference   Category = "preference"
)

// Categories lists the closed category set in stable order.
var Categories = []Category{CategoryNotification, CategoryPrivacy, CategoryPreference}

// ErrUnknownCategory rejects writes outside the closed category set.
var ErrUnknownCategory = errors.New("settings: unknown category")

// ParseCategory validates a wire-level category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Values maps setting keys to their opaque JSON documents.
type Values map[string]json.RawMessage

// All is the merged settings view: one Values map per category. Categories
// with no rows are present as empty maps, never nil and never an error.
type All map[Category]Values

// BatchError reports which keys of a batch upsert failed. Remaining keys
// were applied; there are no silent partial failures.
type BatchError struct {
	Failed map[string]error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("settings: %d keys failed to upsert", len(e.Failed))
}

// Store describes persistence for per-account settings documents.
//
// (account, category, key) is unique; Upsert replaces an existing value
// rather than inserting a duplicate. Rows are created lazily on first write.
type Store interface {
	GetAll(ctx context.Context, accountID string) (All, error)
	Upsert(ctx context.Context, accountID string, category Category, key string, value json.RawMessage) error
	UpsertMany(ctx context.Context, accountID string, category Category, values Values) error
}

// emptyAll returns the merged view skeleton with an empty map per category.
func emptyAll() All {
	all := make(All, len(Categories))
	for _, c := range Categories {
		all[c] = Values{}
	}
	return all
}
