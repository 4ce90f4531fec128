// Package catalog builds the authoritative set of clause categories from the
// built-in definitions and the administrator-approved user source.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/smallprintlabs/clausecheck/internal/common"
	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

// UserSource supplies administrator-approved categories for merging.
// The SQLite store implements this; analysis never writes through it.
type UserSource interface {
	ListUserCategories(ctx context.Context) ([]model.Category, error)
}

// Warning records a non-fatal problem found while loading the catalog.
// Load never fails outright: a bad user source or a bad matcher degrades
// to a smaller catalog plus warnings.
type Warning struct {
	CategoryKey string
	Matcher     string
	Reason      string
}

func (w Warning) String() string {
	if w.Matcher != "" {
		return fmt.Sprintf("category %q: matcher %q dropped: %s", w.CategoryKey, w.Matcher, w.Reason)
	}
	if w.CategoryKey != "" {
		return fmt.Sprintf("category %q: %s", w.CategoryKey, w.Reason)
	}
	return w.Reason
}

// Catalog is an immutable snapshot of all detectable categories. Analyses
// hold one snapshot for their whole run; changes become visible only through
// a fresh Load.
type Catalog struct {
	categories map[string]model.Category
	keys       []string
}

// Load merges the built-in categories with the user-extended set.
//
// On key collision the user entry's weight and matchers override the built-in
// entry; the category type stays immutable. If the user source fails, the
// built-in-only catalog is returned with a warning rather than an error.
// Categories with oversized or empty matcher sets are dropped with warnings.
func Load(ctx context.Context, user UserSource) (*Catalog, []Warning) {
	var warnings []Warning

	merged := make(map[string]model.Category)
	for _, cat := range Builtin() {
		merged[cat.Key] = cat
	}

	if user != nil {
		userCats, err := user.ListUserCategories(ctx)
		if err != nil {
			warnings = append(warnings, Warning{
				Reason: fmt.Sprintf("%v: %v, falling back to built-in catalog", common.ErrCatalogLoad, err),
			})
		} else {
			for _, uc := range userCats {
				existing, ok := merged[uc.Key]
				if !ok {
					uc.UserOwned = true
					merged[uc.Key] = uc
					continue
				}
				if uc.Type != existing.Type {
					warnings = append(warnings, Warning{
						CategoryKey: uc.Key,
						Reason: fmt.Sprintf("type %q conflicts with existing type %q; type is immutable, keeping %q",
							uc.Type, existing.Type, existing.Type),
					})
				}
				existing.Weight = uc.Weight
				existing.Matchers = uc.Matchers
				existing.UserOwned = true
				merged[uc.Key] = existing
			}
		}
	}

	categories := make(map[string]model.Category, len(merged))
	for key, cat := range merged {
		valid, catWarnings := validateMatchers(cat)
		warnings = append(warnings, catWarnings...)
		if len(valid.Matchers) == 0 {
			warnings = append(warnings, Warning{
				CategoryKey: key,
				Reason:      "no usable matchers, category can never fire",
			})
			continue
		}
		if valid.Weight < model.MinWeight || valid.Weight > model.MaxWeight {
			warnings = append(warnings, Warning{
				CategoryKey: key,
				Reason:      fmt.Sprintf("weight %d outside [%d,%d]", valid.Weight, model.MinWeight, model.MaxWeight),
			})
			continue
		}
		categories[key] = valid
	}

	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Catalog{categories: categories, keys: keys}, warnings
}

// validateMatchers drops matchers that fail phrase expansion (oversized span,
// malformed alternation) and returns the category with the survivors.
func validateMatchers(cat model.Category) (model.Category, []Warning) {
	var warnings []Warning
	valid := make([]string, 0, len(cat.Matchers))

	for _, phrase := range cat.Matchers {
		if _, err := matcher.ExpandPhrase(phrase); err != nil {
			warnings = append(warnings, Warning{
				CategoryKey: cat.Key,
				Matcher:     phrase,
				Reason:      err.Error(),
			})
			continue
		}
		valid = append(valid, phrase)
	}

	cat.Matchers = valid
	return cat, warnings
}

// Categories returns all categories ordered by key.
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.categories[key])
	}
	return out
}

// Get returns the category for a key, if present.
func (c *Catalog) Get(key string) (model.Category, bool) {
	cat, ok := c.categories[key]
	return cat, ok
}

// Len returns the number of detectable categories.
func (c *Catalog) Len() int {
	return len(c.keys)
}
