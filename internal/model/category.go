// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"time"
)

// CategoryType indicates whether a category flags a risk or a benefit clause.
type CategoryType string

const (
	// CategoryTypeRisk marks clauses that work against the reader.
	CategoryTypeRisk CategoryType = "risk"
	// CategoryTypeBenefit marks clauses that work in the reader's favor.
	CategoryTypeBenefit CategoryType = "benefit"
)

// Valid reports whether the category type is one of the known values.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeRisk || t == CategoryTypeBenefit
}

const (
	// MinWeight is the lowest severity/benefit weight a category may carry.
	MinWeight = 1
	// MaxWeight is the highest severity/benefit weight a category may carry.
	MaxWeight = 5
)

// Category is a named clause classification with a type, a weight, and a set
// of bounded phrase matchers. The type is immutable once created; changing it
// requires retiring the category and creating a new one.
type Category struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Key       string
	Type      CategoryType
	Matchers  []string
	Weight    int
	UserOwned bool
}

// Validate ensures the category has valid data.
func (c *Category) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("category key is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("invalid category type: %q", c.Type)
	}
	if c.Weight < MinWeight || c.Weight > MaxWeight {
		return fmt.Errorf("weight must be between %d and %d, got %d", MinWeight, MaxWeight, c.Weight)
	}
	if len(c.Matchers) == 0 {
		return fmt.Errorf("category must have at least one matcher")
	}
	return nil
}
