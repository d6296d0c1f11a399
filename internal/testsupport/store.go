package testsupport

import (
	"testing"

	"memmet/internal/defaults"
	"memmet/internal/logging"
)

// MustOpenDefaults opens a defaults.Store in a fresh temp directory.
func MustOpenDefaults(t testing.TB) *defaults.Store {
	t.Helper()

	store, err := defaults.Open(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("defaults.Open: %v", err)
	}
	return store
}

// MustSetDefaults opens a store like MustOpenDefaults and persists record.
func MustSetDefaults(t testing.TB, record defaults.Record) *defaults.Store {
	t.Helper()

	store := MustOpenDefaults(t)
	if err := store.Set(record); err != nil {
		t.Fatalf("store.Set: %v", err)
	}
	return store
}
