package settings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// valueCheck validates the decoded JSON document for a known key.
type valueCheck func(raw json.RawMessage) error

// knownKeys gives known settings keys a typed contract at the application
// layer while the store itself stays opaque. Keys absent from this table are
// written as-is.
var knownKeys = map[Category]map[string]valueCheck{
	CategoryNotification: {
		"emailNotifications": boolValue,
		"smsAlerts":          boolValue,
		"pushNotifications":  boolValue,
		"weeklyReport":       boolValue,
		"criticalAlerts":     boolValue,
	},
	CategoryPrivacy: {
		"profileVisibility": enumValue("public", "team", "private"),
		"dataSharing":       boolValue,
		"activityTracking":  boolValue,
	},
	CategoryPreference: {
		"language": nonEmptyString,
		"timezone": nonEmptyString,
		"theme":    enumValue("light", "dark"),
		"mapLayer": nonEmptyString,
	},
}

// ValidateValue checks a single key/value pair against the category schema.
func ValidateValue(category Category, key string, raw json.RawMessage) error {
	checks, ok := knownKeys[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if len(raw) == 0 || !json.Valid(raw) {
		return fmt.Errorf("settings: %s.%s: value is not valid JSON", category, key)
	}
	check, known := checks[key]
	if !known {
		return nil
	}
	if err := check(raw); err != nil {
		return fmt.Errorf("settings: %s.%s: %w", category, key, err)
	}
	return nil
}

func boolValue(raw json.RawMessage) error {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("expected a boolean")
	}
	return nil
}

func nonEmptyString(raw json.RawMessage) error {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("expected a string")
	}
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("expected a non-empty string")
	}
	return nil
}

func enumValue(allowed ...string) valueCheck {
	return func(raw json.RawMessage) error {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("expected a string")
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("expected one of %s", strings.Join(allowed, ", "))
	}
}
