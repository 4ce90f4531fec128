package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

// SubmitCandidate appends a pending candidate and returns its id.
//
// Submission is idempotent per (document, phrase, page): resubmitting an
// identical span returns the already-stored candidate's id instead of
// creating a duplicate pending entry.
func (s *SQLiteStore) SubmitCandidate(ctx context.Context, candidate *model.CandidatePattern) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateCandidate(candidate); err != nil {
		return "", err
	}

	var id string
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM candidates WHERE document_id = ? AND phrase = ? AND page = ?`,
			candidate.DocumentID, candidate.Phrase, candidate.Page,
		).Scan(&id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check for existing candidate: %w", err)
		}

		id = uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO candidates (id, document_id, phrase, page, type, label, state, confidence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, candidate.DocumentID, candidate.Phrase, candidate.Page,
			candidate.Type, candidate.Label, model.CandidateStatePending, candidate.Confidence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert candidate: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	candidate.ID = id
	candidate.State = model.CandidateStatePending
	return id, nil
}

// GetCandidate retrieves a candidate by id.
func (s *SQLiteStore) GetCandidate(ctx context.Context, id string) (*model.CandidatePattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, phrase, page, type, label, state, confidence,
			COALESCE(weight, 0), COALESCE(category_key, ''), created_at, updated_at
		FROM candidates
		WHERE id = ?`, id)

	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("candidate %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// ListCandidates returns candidates in the given state, or all candidates
// when state is empty, ordered by creation time then id.
func (s *SQLiteStore) ListCandidates(ctx context.Context, state model.CandidateState) ([]model.CandidatePattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, document_id, phrase, page, type, label, state, confidence,
			COALESCE(weight, 0), COALESCE(category_key, ''), created_at, updated_at
		FROM candidates`
	args := []any{}
	if state != "" {
		query += ` WHERE state = ?`
		args = append(args, state)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var candidates []model.CandidatePattern
	for rows.Next() {
		candidate, scanErr := scanCandidate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", scanErr)
		}
		candidates = append(candidates, *candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// ScoreCandidate transitions a pending candidate to scored and merges the
// resulting category into the user-extended catalog source, all in one
// transaction. A non-pending or unknown id fails with ErrNotFound and an
// out-of-range weight or type fails validation with the candidate unchanged.
func (s *SQLiteStore) ScoreCandidate(ctx context.Context, id, categoryKey string, categoryType model.CategoryType, weight int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateString(categoryKey, "categoryKey"); err != nil {
		return nil, err
	}
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidCategoryType, categoryType)
	}
	if weight < model.MinWeight || weight > model.MaxWeight {
		return nil, fmt.Errorf("%w: got %d", common.ErrInvalidScore, weight)
	}

	var category *model.Category
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		var phrase string
		var state model.CandidateState
		err := tx.QueryRowContext(ctx,
			`SELECT phrase, state FROM candidates WHERE id = ?`, id,
		).Scan(&phrase, &state)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("candidate %s: %w", id, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}
		if state != model.CandidateStatePending {
			return fmt.Errorf("candidate %s is %s, not pending: %w", id, state, common.ErrNotFound)
		}

		// The phrase becomes a live matcher on the next catalog load, so it
		// must pass the same checks the loader applies. Rejecting here keeps
		// an admin from approving a category that can never fire.
		if _, expandErr := matcher.ExpandPhrase(phrase); expandErr != nil {
			return fmt.Errorf("candidate %s phrase cannot serve as a matcher: %w", id, expandErr)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE candidates
			SET state = ?, weight = ?, category_key = ?
			WHERE id = ?`,
			model.CandidateStateScored, weight, categoryKey, id,
		)
		if err != nil {
			return fmt.Errorf("failed to mark candidate scored: %w", err)
		}

		category, err = upsertUserCategoryTx(ctx, tx, categoryKey, categoryType, weight, phrase)
		return err
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// RejectCandidate transitions a pending candidate to rejected. Rejecting an
// already-rejected id is a no-op; a scored or unknown id fails with
// ErrNotFound.
func (s *SQLiteStore) RejectCandidate(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		var state model.CandidateState
		err := tx.QueryRowContext(ctx,
			`SELECT state FROM candidates WHERE id = ?`, id,
		).Scan(&state)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("candidate %s: %w", id, common.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load candidate: %w", err)
		}

		switch state {
		case model.CandidateStateRejected:
			return nil
		case model.CandidateStateScored:
			return fmt.Errorf("candidate %s is scored, not pending: %w", id, common.ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE candidates SET state = ? WHERE id = ?`,
			model.CandidateStateRejected, id,
		); err != nil {
			return fmt.Errorf("failed to reject candidate: %w", err)
		}
		return nil
	})
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (*model.CandidatePattern, error) {
	var candidate model.CandidatePattern
	err := row.Scan(
		&candidate.ID, &candidate.DocumentID, &candidate.Phrase, &candidate.Page,
		&candidate.Type, &candidate.Label, &candidate.State, &candidate.Confidence,
		&candidate.Weight, &candidate.CategoryKey, &candidate.CreatedAt, &candidate.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}
