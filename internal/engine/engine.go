package engine

import (
	"context"
	"fmt"

	"github.com/smallprintlabs/clausecheck/internal/catalog"
	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/discovery"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
	"github.com/smallprintlabs/clausecheck/internal/rating"
)

// Result is the output of one document analysis.
type Result struct {
	// Matches groups located occurrences under their category key.
	Matches map[string][]model.Match
	// AllMatches holds the same occurrences ordered by (page, offset).
	AllMatches []model.Match
	// Rating is the aggregate document rating over AllMatches.
	Rating model.DocumentRating
	// Candidates are the pending proposals newly created by this analysis.
	Candidates []model.CandidatePattern
}

// Engine ties the catalog, matcher, discovery, and pattern store together.
// Analysis is a pure computation over an immutable catalog snapshot; the only
// side effect is persisting discovered candidates as pending.
type Engine struct {
	store         PatternStore
	cache         *catalog.Cache
	discoveryOpts discovery.Options
	retryOpts     common.RetryOptions
}

// Option configures an Engine.
type Option func(*Engine)

// WithDiscoveryOptions overrides the discovery tuning.
func WithDiscoveryOptions(opts discovery.Options) Option {
	return func(e *Engine) {
		e.discoveryOpts = opts
	}
}

// WithRetryOptions overrides retry behavior for store writes.
func WithRetryOptions(opts common.RetryOptions) Option {
	return func(e *Engine) {
		e.retryOpts = opts
	}
}

// New creates an engine over the given pattern store. A nil store disables
// candidate persistence; analysis still reports discovered proposals.
func New(store PatternStore, opts ...Option) *Engine {
	e := &Engine{store: store}
	if store != nil {
		e.cache = catalog.NewCache(store)
	} else {
		e.cache = catalog.NewCache(nil)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the current catalog snapshot.
func (e *Engine) Catalog(ctx context.Context) *catalog.Catalog {
	return e.cache.Get(ctx)
}

// Analyze runs detection, discovery, and rating over one document.
//
// The catalog snapshot is fixed for the whole run. Pending candidates never
// participate in detection; they only reach the matcher once an admin scores
// them into the catalog.
func (e *Engine) Analyze(ctx context.Context, doc model.Document) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	snapshot := e.cache.Get(ctx)
	matches := matcher.Find(doc.Pages, snapshot.Categories())
	proposals := discovery.Discover(doc.Pages, matches, e.discoveryOpts)

	candidates := make([]model.CandidatePattern, 0, len(proposals))
	for _, proposal := range proposals {
		proposal.DocumentID = doc.ID
		if e.store != nil {
			submit := func() error {
				_, err := e.store.SubmitCandidate(ctx, &proposal)
				return err
			}
			if err := common.WithRetry(ctx, submit, e.retryOpts); err != nil {
				// One bad candidate must not sink the analysis.
				common.LogError(err, "failed to persist candidate", common.Fields{
					"document": doc.ID,
					"page":     proposal.Page,
				})
				continue
			}
		}
		candidates = append(candidates, proposal)
	}

	common.LogDebug("analysis complete", common.Fields{
		"document":   doc.ID,
		"pages":      len(doc.Pages),
		"matches":    len(matches),
		"candidates": len(candidates),
	})

	return &Result{
		Matches:    matcher.GroupByCategory(matches),
		AllMatches: matches,
		Rating:     rating.Rate(matches),
		Candidates: candidates,
	}, nil
}

// SubmitManual records an admin-selected span as a pending candidate with
// the Manual label.
func (e *Engine) SubmitManual(ctx context.Context, documentID, phrase string, page int, categoryType model.CategoryType) (*model.CandidatePattern, error) {
	if e.store == nil {
		return nil, fmt.Errorf("pattern store not configured")
	}

	normalized := matcher.NormalizeText(phrase)
	if _, err := matcher.ExpandPhrase(normalized); err != nil {
		return nil, fmt.Errorf("phrase cannot serve as a matcher: %w", err)
	}

	candidate := &model.CandidatePattern{
		DocumentID: documentID,
		Phrase:     normalized,
		Page:       page,
		Type:       categoryType,
		Label:      model.DefaultManualLabel,
		State:      model.CandidateStatePending,
		Confidence: 1,
	}

	submit := func() error {
		_, err := e.store.SubmitCandidate(ctx, candidate)
		return err
	}
	if err := common.WithRetry(ctx, submit, e.retryOpts); err != nil {
		return nil, err
	}
	return candidate, nil
}

// ListCandidates returns candidates in the given state ("" for all).
func (e *Engine) ListCandidates(ctx context.Context, state model.CandidateState) ([]model.CandidatePattern, error) {
	if e.store == nil {
		return nil, fmt.Errorf("pattern store not configured")
	}
	return e.store.ListCandidates(ctx, state)
}

// Score approves a pending candidate into the catalog and invalidates the
// cached catalog so the next analysis sees the new category.
func (e *Engine) Score(ctx context.Context, id, categoryKey string, categoryType model.CategoryType, weight int) (*model.Category, error) {
	if e.store == nil {
		return nil, fmt.Errorf("pattern store not configured")
	}

	category, err := e.store.ScoreCandidate(ctx, id, categoryKey, categoryType, weight)
	if err != nil {
		return nil, err
	}

	e.cache.Invalidate()
	common.LogInfo("candidate scored into catalog", common.Fields{
		"candidate": id,
		"category":  categoryKey,
		"weight":    weight,
	})
	return category, nil
}

// Reject discards a pending candidate. The catalog is untouched, so no
// invalidation is needed.
func (e *Engine) Reject(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("pattern store not configured")
	}
	return e.store.RejectCandidate(ctx, id)
}
