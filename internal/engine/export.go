package engine

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

// catalogSnapshot is the portable export format for approved categories.
type catalogSnapshot struct {
	Categories []snapshotCategory `yaml:"categories"`
}

type snapshotCategory struct {
	Key      string   `yaml:"key"`
	Type     string   `yaml:"type"`
	Weight   int      `yaml:"weight"`
	Matchers []string `yaml:"matchers"`
}

// ExportCatalog writes all administrator-approved categories as a portable
// YAML snapshot, mergeable into another instance's catalog.
func (e *Engine) ExportCatalog(ctx context.Context, w io.Writer) error {
	if e.store == nil {
		return fmt.Errorf("pattern store not configured")
	}

	categories, err := e.store.ListUserCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list approved categories: %w", err)
	}

	snapshot := catalogSnapshot{
		Categories: make([]snapshotCategory, 0, len(categories)),
	}
	for _, cat := range categories {
		snapshot.Categories = append(snapshot.Categories, snapshotCategory{
			Key:      cat.Key,
			Type:     string(cat.Type),
			Weight:   cat.Weight,
			Matchers: cat.Matchers,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}
	return nil
}

// ImportCatalog merges a snapshot produced by ExportCatalog into the approved
// catalog. Existing categories keep their type; weight and matchers are
// replaced. Returns the number of categories imported.
func (e *Engine) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("pattern store not configured")
	}

	categories, err := ParseCatalogSnapshot(r)
	if err != nil {
		return 0, err
	}

	for i := range categories {
		if err := e.store.PutUserCategory(ctx, &categories[i]); err != nil {
			return i, fmt.Errorf("failed to import category %q: %w", categories[i].Key, err)
		}
	}

	e.cache.Invalidate()
	return len(categories), nil
}

// ParseCatalogSnapshot decodes a portable snapshot back into categories,
// for importing an exported catalog elsewhere.
func ParseCatalogSnapshot(r io.Reader) ([]model.Category, error) {
	var snapshot catalogSnapshot
	if err := yaml.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}

	categories := make([]model.Category, 0, len(snapshot.Categories))
	for _, sc := range snapshot.Categories {
		cat := model.Category{
			Key:       sc.Key,
			Type:      model.CategoryType(sc.Type),
			Weight:    sc.Weight,
			Matchers:  sc.Matchers,
			UserOwned: true,
		}
		if err := cat.Validate(); err != nil {
			return nil, fmt.Errorf("invalid category %q in snapshot: %w", sc.Key, err)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}
