package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

// ListUserCategories returns all administrator-approved categories. This is
// the user-extended catalog source merged at load time.
func (s *SQLiteStore) ListUserCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, type, weight, matchers, created_at, updated_at
		FROM user_categories
		ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var matchersJSON string
		if err := rows.Scan(&cat.Key, &cat.Type, &cat.Weight, &matchersJSON, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user category: %w", err)
		}
		if err := json.Unmarshal([]byte(matchersJSON), &cat.Matchers); err != nil {
			return nil, fmt.Errorf("failed to decode matchers for category %q: %w", cat.Key, err)
		}
		cat.UserOwned = true
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user categories: %w", err)
	}

	return categories, nil
}

// GetUserCategory retrieves one approved category by key.
func (s *SQLiteStore) GetUserCategory(ctx context.Context, key string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var cat model.Category
	var matchersJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT key, type, weight, matchers, created_at, updated_at
		FROM user_categories
		WHERE key = ?`, key,
	).Scan(&cat.Key, &cat.Type, &cat.Weight, &matchersJSON, &cat.CreatedAt, &cat.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user category: %w", err)
	}

	if err := json.Unmarshal([]byte(matchersJSON), &cat.Matchers); err != nil {
		return nil, fmt.Errorf("failed to decode matchers for category %q: %w", key, err)
	}
	cat.UserOwned = true
	return &cat, nil
}

// PutUserCategory writes a full approved category, replacing the weight and
// matcher set of an existing one. Type remains immutable across updates. Used
// by catalog snapshot import.
func (s *SQLiteStore) PutUserCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := category.Validate(); err != nil {
		return err
	}
	for _, phrase := range category.Matchers {
		if _, err := matcher.ExpandPhrase(phrase); err != nil {
			return fmt.Errorf("matcher for category %q: %w", category.Key, err)
		}
	}

	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		var existingType model.CategoryType
		err := tx.QueryRowContext(ctx,
			`SELECT type FROM user_categories WHERE key = ?`, category.Key,
		).Scan(&existingType)

		encoded, encErr := json.Marshal(category.Matchers)
		if encErr != nil {
			return fmt.Errorf("failed to encode matchers: %w", encErr)
		}

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, execErr := tx.ExecContext(ctx, `
				INSERT INTO user_categories (key, type, weight, matchers)
				VALUES (?, ?, ?, ?)`,
				category.Key, category.Type, category.Weight, string(encoded),
			); execErr != nil {
				return fmt.Errorf("failed to insert user category: %w", execErr)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to load user category: %w", err)
		}

		if existingType != category.Type {
			return fmt.Errorf("%w: category %q is %s, type is immutable", common.ErrInvalidCategoryType, category.Key, existingType)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE user_categories SET weight = ?, matchers = ? WHERE key = ?`,
			category.Weight, string(encoded), category.Key,
		); err != nil {
			return fmt.Errorf("failed to update user category: %w", err)
		}
		return nil
	})
}

// upsertUserCategoryTx merges a newly scored phrase into the user-extended
// catalog. An existing category keeps its type (type is immutable), takes the
// new weight, and gains the phrase as a matcher if it is not already present.
func upsertUserCategoryTx(ctx context.Context, tx *sql.Tx, key string, categoryType model.CategoryType, weight int, phrase string) (*model.Category, error) {
	var existingType model.CategoryType
	var existingWeight int
	var matchersJSON string

	err := tx.QueryRowContext(ctx,
		`SELECT type, weight, matchers FROM user_categories WHERE key = ?`, key,
	).Scan(&existingType, &existingWeight, &matchersJSON)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		matchers := []string{phrase}
		encoded, encErr := json.Marshal(matchers)
		if encErr != nil {
			return nil, fmt.Errorf("failed to encode matchers: %w", encErr)
		}
		if _, execErr := tx.ExecContext(ctx, `
			INSERT INTO user_categories (key, type, weight, matchers)
			VALUES (?, ?, ?, ?)`,
			key, categoryType, weight, string(encoded),
		); execErr != nil {
			return nil, fmt.Errorf("failed to insert user category: %w", execErr)
		}
		return &model.Category{
			Key:       key,
			Type:      categoryType,
			Weight:    weight,
			Matchers:  matchers,
			UserOwned: true,
		}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to load user category: %w", err)
	}

	if existingType != categoryType {
		return nil, fmt.Errorf("%w: category %q is %s, type is immutable", common.ErrInvalidCategoryType, key, existingType)
	}

	var matchers []string
	if err := json.Unmarshal([]byte(matchersJSON), &matchers); err != nil {
		return nil, fmt.Errorf("failed to decode matchers for category %q: %w", key, err)
	}

	found := false
	for _, m := range matchers {
		if m == phrase {
			found = true
			break
		}
	}
	if !found {
		matchers = append(matchers, phrase)
	}

	encoded, err := json.Marshal(matchers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matchers: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE user_categories SET weight = ?, matchers = ? WHERE key = ?`,
		weight, string(encoded), key,
	); err != nil {
		return nil, fmt.Errorf("failed to update user category: %w", err)
	}

	return &model.Category{
		Key:       key,
		Type:      existingType,
		Weight:    weight,
		Matchers:  matchers,
		UserOwned: true,
	}, nil
}
