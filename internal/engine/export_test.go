package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallprintlabs/clausecheck/internal/model"
	"github.com/smallprintlabs/clausecheck/internal/testutil"
)

func approveCategory(t *testing.T, eng *Engine, phrase, key string, categoryType model.CategoryType, weight int) {
	t.Helper()
	ctx := context.Background()

	candidate, err := eng.SubmitManual(ctx, "seed.txt", phrase, 1, categoryType)
	require.NoError(t, err)
	_, err = eng.Score(ctx, candidate.ID, key, categoryType, weight)
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newTestEngine(t)
	approveCategory(t, source, "tenant waives all claims", "claim_waiver", model.CategoryTypeRisk, 4)
	approveCategory(t, source, "deposit held in escrow", "deposit_protection", model.CategoryTypeBenefit, 3)

	var buf bytes.Buffer
	require.NoError(t, source.ExportCatalog(context.Background(), &buf))

	target := New(testutil.SetupTestStore(t))
	count, err := target.ImportCatalog(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	cat := target.Catalog(context.Background())
	waiver, ok := cat.Get("claim_waiver")
	require.True(t, ok)
	assert.Equal(t, 4, waiver.Weight)
	assert.Equal(t, []string{"tenant waives all claims"}, waiver.Matchers)
	assert.True(t, waiver.UserOwned)

	_, ok = cat.Get("deposit_protection")
	assert.True(t, ok)
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	eng := newTestEngine(t)

	bad := strings.NewReader(`categories:
  - key: broken
    type: neither
    weight: 3
    matchers: [phrase]
`)
	_, err := eng.ImportCatalog(context.Background(), bad)
	assert.Error(t, err)

	garbled := strings.NewReader("[not: a: snapshot")
	_, err = eng.ImportCatalog(context.Background(), garbled)
	assert.Error(t, err)
}

func TestParseCatalogSnapshot(t *testing.T) {
	in := strings.NewReader(`categories:
  - key: claim_waiver
    type: risk
    weight: 4
    matchers:
      - tenant waives all claims
`)

	cats, err := ParseCatalogSnapshot(in)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "claim_waiver", cats[0].Key)
	assert.Equal(t, model.CategoryTypeRisk, cats[0].Type)
	assert.True(t, cats[0].UserOwned)
}
