package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTypeValid(t *testing.T) {
	assert.True(t, CategoryTypeRisk.Valid())
	assert.True(t, CategoryTypeBenefit.Valid())
	assert.False(t, CategoryType("").Valid())
	assert.False(t, CategoryType("neutral").Valid())
}

func TestCategoryValidate(t *testing.T) {
	valid := Category{Key: "fees", Type: CategoryTypeRisk, Weight: 3, Matchers: []string{"fee"}}

	tests := []struct {
		name    string
		mutate  func(*Category)
		wantErr bool
	}{
		{"valid", func(*Category) {}, false},
		{"missing key", func(c *Category) { c.Key = "" }, true},
		{"bad type", func(c *Category) { c.Type = "other" }, true},
		{"weight too low", func(c *Category) { c.Weight = 0 }, true},
		{"weight too high", func(c *Category) { c.Weight = 6 }, true},
		{"no matchers", func(c *Category) { c.Matchers = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := valid
			cat.Matchers = append([]string(nil), valid.Matchers...)
			tt.mutate(&cat)
			err := cat.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCandidateValidate(t *testing.T) {
	valid := CandidatePattern{
		Phrase: "some phrase", Page: 1, Type: CategoryTypeRisk, State: CandidateStatePending,
	}

	tests := []struct {
		name    string
		mutate  func(*CandidatePattern)
		wantErr bool
	}{
		{"valid", func(*CandidatePattern) {}, false},
		{"empty phrase", func(c *CandidatePattern) { c.Phrase = "" }, true},
		{"zero page", func(c *CandidatePattern) { c.Page = 0 }, true},
		{"bad type", func(c *CandidatePattern) { c.Type = "other" }, true},
		{"bad state", func(c *CandidatePattern) { c.State = "limbo" }, true},
		{"scored state", func(c *CandidatePattern) { c.State = CandidateStateScored }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocumentValidate(t *testing.T) {
	doc := Document{ID: "d", Pages: []Page{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}}
	assert.NoError(t, doc.Validate())

	assert.Error(t, (&Document{}).Validate())

	bad := Document{ID: "d", Pages: []Page{{Number: 0, Text: "a"}}}
	assert.Error(t, bad.Validate())
}

func TestMatchEndAndOverlaps(t *testing.T) {
	a := Match{Page: 1, Offset: 10, Text: "hello"}
	assert.Equal(t, 15, a.End())

	tests := []struct {
		name  string
		other Match
		want  bool
	}{
		{"identical", Match{Page: 1, Offset: 10, Text: "hello"}, true},
		{"partial overlap", Match{Page: 1, Offset: 13, Text: "lower"}, true},
		{"contained", Match{Page: 1, Offset: 11, Text: "el"}, true},
		{"adjacent", Match{Page: 1, Offset: 15, Text: "next"}, false},
		{"before", Match{Page: 1, Offset: 0, Text: "front"}, false},
		{"other page", Match{Page: 2, Offset: 10, Text: "hello"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(a))
		})
	}
}
