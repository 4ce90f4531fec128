package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
	"github.com/smallprintlabs/clausecheck/internal/testutil"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testutil.SetupTestStore(t), WithRetryOptions(common.RetryOptions{
		MaxAttempts:  1,
		InitialDelay: time.Millisecond,
	}))
}

func TestAnalyzeKnownBenefitClause(t *testing.T) {
	eng := newTestEngine(t)
	doc := testutil.SinglePageDoc("tos.txt", "You may cancel within 14 days with no penalty.")

	result, err := eng.Analyze(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, result.AllMatches, 1)
	m := result.AllMatches[0]
	assert.Equal(t, "cooling_off", m.CategoryKey)
	assert.Equal(t, "cancel within 14 days", m.Text)
	assert.Equal(t, model.CategoryTypeBenefit, m.Type)
	assert.Equal(t, 3, m.Score)

	require.Contains(t, result.Matches, "cooling_off")
	assert.InDelta(t, 6.8, result.Rating.Score, 0.001)
	assert.Equal(t, model.BandFavorable, result.Rating.Band)

	// The only sentence is covered by a match, so nothing is proposed.
	assert.Empty(t, result.Candidates)
}

func TestAnalyzePersistsDiscoveredCandidates(t *testing.T) {
	eng := newTestEngine(t)
	doc := testutil.SinglePageDoc("invoice.txt", "A processing fee will be assessed monthly.")

	result, err := eng.Analyze(context.Background(), doc)
	require.NoError(t, err)

	assert.Empty(t, result.AllMatches)
	require.Len(t, result.Candidates, 1)
	assert.NotEmpty(t, result.Candidates[0].ID)
	assert.Equal(t, "invoice.txt", result.Candidates[0].DocumentID)

	pending, err := eng.ListCandidates(context.Background(), model.CandidateStatePending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, result.Candidates[0].ID, pending[0].ID)
}

func TestAnalyzeReanalysisDoesNotDuplicateCandidates(t *testing.T) {
	eng := newTestEngine(t)
	doc := testutil.SinglePageDoc("invoice.txt", "A processing fee will be assessed monthly.")
	ctx := context.Background()

	_, err := eng.Analyze(ctx, doc)
	require.NoError(t, err)
	_, err = eng.Analyze(ctx, doc)
	require.NoError(t, err)

	pending, err := eng.ListCandidates(ctx, model.CandidateStatePending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestAnalyzeParallelDocuments(t *testing.T) {
	eng := newTestEngine(t)

	g, ctx := errgroup.WithContext(context.Background())
	for i := range 8 {
		doc := testutil.SinglePageDoc(
			fmt.Sprintf("doc-%d.txt", i),
			fmt.Sprintf("Document %d carries a processing fee assessed monthly.", i),
		)
		g.Go(func() error {
			result, err := eng.Analyze(ctx, doc)
			if err != nil {
				return err
			}
			if len(result.Candidates) != 1 {
				return fmt.Errorf("expected 1 candidate for %s, got %d", doc.ID, len(result.Candidates))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	pending, err := eng.ListCandidates(context.Background(), model.CandidateStatePending)
	require.NoError(t, err)
	assert.Len(t, pending, 8)
}

func TestAnalyzeInvalidDocument(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Analyze(context.Background(), model.Document{})
	assert.Error(t, err)
}

func TestPendingCandidatesDoNotParticipateInMatching(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	phrase := "tenant waives all claims against the landlord"
	_, err := eng.SubmitManual(ctx, "lease.txt", phrase, 1, model.CategoryTypeRisk)
	require.NoError(t, err)

	doc := testutil.SinglePageDoc("other.txt", "The tenant waives all claims against the landlord here.")
	result, err := eng.Analyze(ctx, doc)
	require.NoError(t, err)

	assert.Empty(t, result.AllMatches, "pending candidates must not produce matches")
}

func TestScoredCandidateMatchesOnNextAnalysis(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	phrase := "tenant waives all claims against the landlord"
	candidate, err := eng.SubmitManual(ctx, "lease.txt", phrase, 1, model.CategoryTypeRisk)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultManualLabel, candidate.Label)

	category, err := eng.Score(ctx, candidate.ID, "claim_waiver", model.CategoryTypeRisk, 4)
	require.NoError(t, err)
	assert.Equal(t, "claim_waiver", category.Key)

	doc := testutil.SinglePageDoc("other.txt", "The tenant waives all claims against the landlord here.")
	result, err := eng.Analyze(ctx, doc)
	require.NoError(t, err)

	require.Contains(t, result.Matches, "claim_waiver")
	assert.Equal(t, 4, result.Matches["claim_waiver"][0].Score)
}

func TestRejectedCandidateNeverMatches(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	phrase := "tenant waives all claims against the landlord"
	candidate, err := eng.SubmitManual(ctx, "lease.txt", phrase, 1, model.CategoryTypeRisk)
	require.NoError(t, err)

	require.NoError(t, eng.Reject(ctx, candidate.ID))

	doc := testutil.SinglePageDoc("other.txt", "The tenant waives all claims against the landlord here.")
	result, err := eng.Analyze(ctx, doc)
	require.NoError(t, err)
	assert.NotContains(t, result.Matches, "claim_waiver")
}

func TestSubmitManualRejectsUnusablePhrase(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	oversized := strings.Repeat("waive ", matcher.MaxSpan/5)
	_, err := eng.SubmitManual(ctx, "lease.txt", oversized, 1, model.CategoryTypeRisk)
	assert.ErrorIs(t, err, common.ErrMatcherConfig)

	pending, err := eng.ListCandidates(ctx, model.CandidateStatePending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitManualNormalizesPhrase(t *testing.T) {
	eng := newTestEngine(t)

	candidate, err := eng.SubmitManual(context.Background(), "lease.txt", "  messy \n whitespace  phrase ", 1, model.CategoryTypeRisk)
	require.NoError(t, err)
	assert.Equal(t, "messy whitespace phrase", candidate.Phrase)
	assert.InDelta(t, 1.0, candidate.Confidence, 0.001)
}

func TestCatalogSnapshotRefreshesAfterScore(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	before := eng.Catalog(ctx).Len()

	candidate, err := eng.SubmitManual(ctx, "lease.txt", "brand new clause phrasing", 1, model.CategoryTypeBenefit)
	require.NoError(t, err)
	_, err = eng.Score(ctx, candidate.ID, "new_benefit", model.CategoryTypeBenefit, 2)
	require.NoError(t, err)

	after := eng.Catalog(ctx)
	assert.Equal(t, before+1, after.Len())
	_, ok := after.Get("new_benefit")
	assert.True(t, ok)
}

func TestNilStoreAnalyzesWithoutPersistence(t *testing.T) {
	eng := New(nil)
	doc := testutil.SinglePageDoc("invoice.txt", "A processing fee will be assessed monthly.")

	result, err := eng.Analyze(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Empty(t, result.Candidates[0].ID)

	_, err = eng.SubmitManual(context.Background(), "d", "phrase here", 1, model.CategoryTypeRisk)
	assert.Error(t, err)
	_, err = eng.ListCandidates(context.Background(), "")
	assert.Error(t, err)
}

type failingStore struct {
	PatternStore
}

func (f *failingStore) SubmitCandidate(context.Context, *model.CandidatePattern) (string, error) {
	return "", errors.New("disk full")
}

func (f *failingStore) ListUserCategories(context.Context) ([]model.Category, error) {
	return nil, nil
}

func TestAnalyzeSurvivesCandidatePersistenceFailure(t *testing.T) {
	eng := New(&failingStore{}, WithRetryOptions(common.RetryOptions{
		MaxAttempts:  1,
		InitialDelay: time.Millisecond,
	}))
	doc := testutil.SinglePageDoc("invoice.txt", "A processing fee will be assessed monthly.")

	result, err := eng.Analyze(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates, "failed submissions are dropped, not fatal")
}
