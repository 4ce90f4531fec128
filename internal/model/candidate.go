package model

import (
	"fmt"
	"time"
)

// CandidateState tracks a candidate pattern through its review lifecycle.
type CandidateState string

const (
	// CandidateStatePending means the candidate awaits an admin decision.
	CandidateStatePending CandidateState = "pending"
	// CandidateStateScored means the candidate was approved and merged into the catalog.
	CandidateStateScored CandidateState = "scored"
	// CandidateStateRejected means the candidate was discarded and never enters the catalog.
	CandidateStateRejected CandidateState = "rejected"
)

// DefaultManualLabel is the label given to candidates submitted by hand
// rather than surfaced by discovery.
const DefaultManualLabel = "Manual"

// CandidatePattern is a proposed new category awaiting human judgment.
// Pending candidates never participate in detection; only a scored candidate's
// resulting category does, on the next catalog load.
type CandidatePattern struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	DocumentID  string
	Phrase      string
	Label       string
	Type        CategoryType
	State       CandidateState
	CategoryKey string
	Page        int
	Weight      int
	Confidence  float64
}

// Validate ensures the candidate has valid data for submission.
func (c *CandidatePattern) Validate() error {
	if c.Phrase == "" {
		return fmt.Errorf("candidate phrase is required")
	}
	if c.Page < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", c.Page)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("invalid candidate type: %q", c.Type)
	}
	switch c.State {
	case CandidateStatePending, CandidateStateScored, CandidateStateRejected:
	default:
		return fmt.Errorf("invalid candidate state: %q", c.State)
	}
	return nil
}
