package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "default", KeyCategories); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	payload := json.RawMessage(`[{"id":"c1","name":"Food"}]`)
	if err := m.Set(ctx, "default", KeyCategories, payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := m.Get(ctx, "default", KeyCategories)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}

	// Profiles are isolated.
	if _, err := m.Get(ctx, "other", KeyCategories); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-profile read: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	payload := json.RawMessage(`[1,2,3]`)
	if err := m.Set(ctx, "p", KeyGoals, payload); err != nil {
		t.Fatalf("Set: %v", err)
	}
	payload[1] = '9'

	got, _ := m.Get(ctx, "p", KeyGoals)
	if string(got) != "[1,2,3]" {
		t.Errorf("stored value aliased caller's buffer: %s", got)
	}
}
