// Package testutil provides shared helpers for tests: an in-memory pattern
// store with migrations applied, and builders for common fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/smallprintlabs/clausecheck/internal/model"
	"github.com/smallprintlabs/clausecheck/internal/storage"
)

// SetupTestStore creates an in-memory SQLite pattern store with the schema
// migrated, registering cleanup on the test.
func SetupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Candidate builds a valid pending candidate, overridable via the configure
// callback.
func Candidate(t *testing.T, configure func(*model.CandidatePattern)) *model.CandidatePattern {
	t.Helper()

	candidate := &model.CandidatePattern{
		DocumentID: "doc-1",
		Phrase:     "service may be suspended without notice",
		Label:      "Service term",
		Type:       model.CategoryTypeRisk,
		State:      model.CandidateStatePending,
		Page:       1,
		Confidence: 0.5,
	}
	if configure != nil {
		configure(candidate)
	}
	return candidate
}

// SinglePageDoc wraps one page of text as a document.
func SinglePageDoc(id, text string) model.Document {
	return model.Document{
		ID:    id,
		Pages: []model.Page{{Number: 1, Text: text}},
	}
}
