package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, known := range []string{"notification", "privacy", "preference"} {
		if _, err := ParseCategory(known); err != nil {
			t.Fatalf("ParseCategory(%q): %v", known, err)
		}
	}
	for _, bogus := range []string{"", "bogus", "Notification", "security"} {
		_, err := ParseCategory(bogus)
		if !errors.Is(err, ErrUnknownCategory) {
			t.Fatalf("ParseCategory(%q): expected ErrUnknownCategory, got %v", bogus, err)
		}
	}
}

func TestValidateValueSchema(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		key      string
		value    string
		wantErr  bool
	}{
		{"bool toggle", CategoryNotification, "emailNotifications", `true`, false},
		{"bool toggle false", CategoryNotification, "smsAlerts", `false`, false},
		{"bool with wrong type", CategoryNotification, "emailNotifications", `"yes"`, true},
		{"visibility enum", CategoryPrivacy, "profileVisibility", `"team"`, false},
		{"visibility outside enum", CategoryPrivacy, "profileVisibility", `"everyone"`, true},
		{"language string", CategoryPreference, "language", `"id"`, false},
		{"language empty", CategoryPreference, "language", `""`, true},
		{"theme enum", CategoryPreference, "theme", `"dark"`, false},
		{"theme outside enum", CategoryPreference, "theme", `"solarized"`, true},
		{"unknown key passes through", CategoryPreference, "experimentalWidget", `{"rows":3}`, false},
		{"invalid json", CategoryPreference, "language", `{not-json`, true},
	}
	for _, tc := range cases {
		err := ValidateValue(tc.category, tc.key, json.RawMessage(tc.value))
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestInMemoryGetAllEmpty(t *testing.T) {
	s := NewInMemory()

	all, err := s.GetAll(context.Background(), "fresh-account")
	if err != nil {
		t.Fatalf("GetAll for fresh account must not error: %v", err)
	}
	if len(all) != len(Categories) {
		t.Fatalf("expected %d categories, got %d", len(Categories), len(all))
	}
	for _, c := range Categories {
		values, ok := all[c]
		if !ok || values == nil {
			t.Fatalf("category %s missing or nil", c)
		}
		if len(values) != 0 {
			t.Fatalf("category %s should be empty, got %v", c, values)
		}
	}
}

func TestInMemoryUpsertIdempotent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Upsert(ctx, "acc-1", CategoryNotification, "emailNotifications", json.RawMessage(`true`)); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	all, err := s.GetAll(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	values := all[CategoryNotification]
	if len(values) != 1 {
		t.Fatalf("expected exactly one row for the key, got %d", len(values))
	}
	if string(values["emailNotifications"]) != `true` {
		t.Fatalf("unexpected value: %s", values["emailNotifications"])
	}

	// Replacement, not duplication.
	if err := s.Upsert(ctx, "acc-1", CategoryNotification, "emailNotifications", json.RawMessage(`false`)); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	all, _ = s.GetAll(ctx, "acc-1")
	if string(all[CategoryNotification]["emailNotifications"]) != `false` {
		t.Fatalf("value not replaced: %s", all[CategoryNotification]["emailNotifications"])
	}
}

func TestInMemoryUpsertRejectsUnknownCategory(t *testing.T) {
	s := NewInMemory()
	err := s.Upsert(context.Background(), "acc-1", Category("bogus"), "key", json.RawMessage(`1`))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	all, _ := s.GetAll(context.Background(), "acc-1")
	for _, c := range Categories {
		if len(all[c]) != 0 {
			t.Fatalf("no row should be written, found %v in %s", all[c], c)
		}
	}
}

func TestInMemoryUpsertManyReportsFailures(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	err := s.UpsertMany(ctx, "acc-1", CategoryNotification, Values{
		"emailNotifications": json.RawMessage(`true`),
		"smsAlerts":          json.RawMessage(`"not-a-bool"`),
	})
	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected BatchError, got %v", err)
	}
	if _, ok := batchErr.Failed["smsAlerts"]; !ok {
		t.Fatalf("expected smsAlerts to be reported, got %v", batchErr.Failed)
	}
	if len(batchErr.Failed) != 1 {
		t.Fatalf("expected exactly one failed key, got %d", len(batchErr.Failed))
	}

	// The valid pair was applied; the invalid one was not.
	all, _ := s.GetAll(ctx, "acc-1")
	if string(all[CategoryNotification]["emailNotifications"]) != `true` {
		t.Fatal("valid key should have been applied")
	}
	if _, ok := all[CategoryNotification]["smsAlerts"]; ok {
		t.Fatal("invalid key must not be written")
	}
}
