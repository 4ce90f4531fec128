package model

import "fmt"

// Page is one page of extracted document text. Extraction happens upstream;
// the engine consumes pages as-is and performs no I/O of its own.
type Page struct {
	Text   string
	Number int
}

// Document is a sequence of extracted pages identified by a stable ID.
// The ID scopes candidate submission idempotency.
type Document struct {
	ID    string
	Pages []Page
}

// Validate ensures the document has an ID and 1-based page numbering.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	for i, p := range d.Pages {
		if p.Number < 1 {
			return fmt.Errorf("page at index %d: number must be 1 or greater, got %d", i, p.Number)
		}
	}
	return nil
}
