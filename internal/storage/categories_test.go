package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

func TestPutUserCategoryInsertAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cat := &model.Category{
		Key:      "deposit_protection",
		Type:     model.CategoryTypeBenefit,
		Weight:   4,
		Matchers: []string{"deposit is protected", "deposit held in escrow"},
	}
	require.NoError(t, store.PutUserCategory(ctx, cat))

	got, err := store.GetUserCategory(ctx, "deposit_protection")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTypeBenefit, got.Type)
	assert.Equal(t, 4, got.Weight)
	assert.Equal(t, cat.Matchers, got.Matchers)
	assert.True(t, got.UserOwned)
}

func TestPutUserCategoryReplacesWeightAndMatchers(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUserCategory(ctx, &model.Category{
		Key: "deposit_protection", Type: model.CategoryTypeBenefit, Weight: 2,
		Matchers: []string{"old matcher"},
	}))
	require.NoError(t, store.PutUserCategory(ctx, &model.Category{
		Key: "deposit_protection", Type: model.CategoryTypeBenefit, Weight: 5,
		Matchers: []string{"new matcher"},
	}))

	got, err := store.GetUserCategory(ctx, "deposit_protection")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Weight)
	assert.Equal(t, []string{"new matcher"}, got.Matchers)
}

func TestPutUserCategoryTypeImmutable(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutUserCategory(ctx, &model.Category{
		Key: "deposit_protection", Type: model.CategoryTypeBenefit, Weight: 2,
		Matchers: []string{"m"},
	}))

	err := store.PutUserCategory(ctx, &model.Category{
		Key: "deposit_protection", Type: model.CategoryTypeRisk, Weight: 2,
		Matchers: []string{"m"},
	})
	assert.ErrorIs(t, err, common.ErrInvalidCategoryType)
}

func TestPutUserCategoryValidates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	assert.Error(t, store.PutUserCategory(ctx, nil))
	assert.Error(t, store.PutUserCategory(ctx, &model.Category{
		Key: "x", Type: model.CategoryTypeRisk, Weight: 9, Matchers: []string{"m"},
	}))

	err := store.PutUserCategory(ctx, &model.Category{
		Key: "x", Type: model.CategoryTypeRisk, Weight: 3,
		Matchers: []string{strings.Repeat("y", matcher.MaxSpan+1)},
	})
	assert.ErrorIs(t, err, common.ErrMatcherConfig)
}

func TestListUserCategoriesOrderedByKey(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, key := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.PutUserCategory(ctx, &model.Category{
			Key: key, Type: model.CategoryTypeRisk, Weight: 3, Matchers: []string{"phrase " + key},
		}))
	}

	cats, err := store.ListUserCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "alpha", cats[0].Key)
	assert.Equal(t, "mid", cats[1].Key)
	assert.Equal(t, "zeta", cats[2].Key)
}

func TestGetUserCategoryNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetUserCategory(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
