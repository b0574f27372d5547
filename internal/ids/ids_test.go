package ids

import (
	"strings"
	"testing"
)

func TestNewIsUniqueAndSortable(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("unexpected id length %d: %q", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if prev != "" && id <= prev {
			t.Fatalf("ids not monotonic: %q then %q", prev, id)
		}
		prev = id
	}
}

func TestNewRequestIDIsLowercase(t *testing.T) {
	id := NewRequestID()
	if id != strings.ToLower(id) {
		t.Fatalf("request id not lowercase: %q", id)
	}
	if len(id) != 26 {
		t.Fatalf("unexpected length %d", len(id))
	}
}
