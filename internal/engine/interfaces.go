// Package engine orchestrates analysis of extracted documents: catalog
// loading, matching, novel-pattern discovery, candidate persistence, and
// rating. It also exposes the admin operations over the pattern store.
package engine

import (
	"context"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

// PatternStore is the durable lifecycle contract for candidate patterns and
// approved categories. The SQLite store implements it; swapping the medium
// does not touch the engine.
type PatternStore interface {
	SubmitCandidate(ctx context.Context, candidate *model.CandidatePattern) (string, error)
	GetCandidate(ctx context.Context, id string) (*model.CandidatePattern, error)
	ListCandidates(ctx context.Context, state model.CandidateState) ([]model.CandidatePattern, error)
	ScoreCandidate(ctx context.Context, id, categoryKey string, categoryType model.CategoryType, weight int) (*model.Category, error)
	RejectCandidate(ctx context.Context, id string) error
	ListUserCategories(ctx context.Context) ([]model.Category, error)
	PutUserCategory(ctx context.Context, category *model.Category) error
}
