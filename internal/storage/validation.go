package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCandidate validates a candidate pattern for submission.
func validateCandidate(candidate *model.CandidatePattern) error {
	if candidate == nil {
		return fmt.Errorf("%w: candidate", ErrNilParameter)
	}
	if err := validateString(candidate.DocumentID, "document_id"); err != nil {
		return err
	}
	return candidate.Validate()
}
