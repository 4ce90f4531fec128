// Package discovery surfaces text spans that resemble risk or benefit
// language but are not covered by any catalog category. It is a shallow
// statistical heuristic, kept strictly apart from the deterministic matcher
// so its false positives cannot contaminate detection.
package discovery

import (
	"sort"
	"strings"

	"github.com/smallprintlabs/clausecheck/internal/matcher"
	"github.com/smallprintlabs/clausecheck/internal/model"
)

const (
	// DefaultMaxCandidates bounds proposals per document so the admin
	// review queue stays tractable.
	DefaultMaxCandidates = 10
	// DefaultMinLength is the minimal clause length worth proposing.
	DefaultMinLength = 20
	// DefaultThreshold is the confidence floor for emitting a proposal.
	DefaultThreshold = 0.25

	// proximityWindow is the trigger-gap (in characters) under which two
	// hits count as clustered.
	proximityWindow = 40
)

// Span is a sentence-level candidate span within a page's normalized text.
type Span struct {
	Text        string
	Page        int
	Start       int
	End         int
	RiskHits    int
	BenefitHits int
	Clustered   bool
}

// Scorer assigns a confidence in [0,1] to a span. The default scorer weighs
// trigger density plus a clustering bonus; callers may plug in their own.
type Scorer func(Span) float64

// Options tunes discovery behavior. The zero value selects defaults; spans
// can never exceed the matcher span ceiling regardless of MaxLength.
type Options struct {
	Scorer        Scorer
	MaxCandidates int
	MinLength     int
	MaxLength     int
	Threshold     float64
}

func (o Options) withDefaults() Options {
	if o.Scorer == nil {
		o.Scorer = DefaultScorer
	}
	if o.MaxCandidates <= 0 {
		o.MaxCandidates = DefaultMaxCandidates
	}
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinLength
	}
	if o.MaxLength <= 0 || o.MaxLength > matcher.MaxSpan {
		o.MaxLength = matcher.MaxSpan
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	return o
}

// DefaultScorer scores a span by trigger count with a bonus when triggers
// cluster close together.
func DefaultScorer(s Span) float64 {
	hits := s.RiskHits + s.BenefitHits
	if hits == 0 {
		return 0
	}
	confidence := float64(hits) * 0.3
	if s.Clustered {
		confidence += 0.1
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// Discover proposes candidate patterns for spans the matcher missed.
//
// Spans overlapping an existing match are skipped so known categories do not
// generate duplicate proposals. Each proposal starts in the pending state;
// discovery never touches the catalog.
func Discover(pages []model.Page, existing []model.Match, opts Options) []model.CandidatePattern {
	opts = opts.withDefaults()

	type scored struct {
		span       Span
		confidence float64
	}

	var spans []scored
	seen := make(map[string]bool)

	for _, page := range pages {
		norm := matcher.NormalizeText(page.Text)
		for _, span := range splitSentences(norm, page.Number) {
			length := len(span.Text)
			if length < opts.MinLength || length > opts.MaxLength {
				continue
			}
			if coveredByMatch(span, existing) {
				continue
			}

			analyzeTriggers(&span)
			confidence := opts.Scorer(span)
			if confidence < opts.Threshold {
				continue
			}

			dedupeKey := strings.ToLower(span.Text)
			if seen[dedupeKey] {
				continue
			}
			seen[dedupeKey] = true

			spans = append(spans, scored{span: span, confidence: confidence})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].confidence != spans[j].confidence {
			return spans[i].confidence > spans[j].confidence
		}
		if spans[i].span.Page != spans[j].span.Page {
			return spans[i].span.Page < spans[j].span.Page
		}
		return spans[i].span.Start < spans[j].span.Start
	})

	if len(spans) > opts.MaxCandidates {
		spans = spans[:opts.MaxCandidates]
	}

	proposals := make([]model.CandidatePattern, 0, len(spans))
	for _, sc := range spans {
		proposals = append(proposals, model.CandidatePattern{
			Phrase:     sc.span.Text,
			Page:       sc.span.Page,
			Type:       proposedType(sc.span),
			Label:      proposedLabel(sc.span),
			State:      model.CandidateStatePending,
			Confidence: sc.confidence,
		})
	}

	return proposals
}

// splitSentences breaks normalized page text into sentence spans, keeping
// offsets into the normalized text.
func splitSentences(norm string, pageNumber int) []Span {
	var spans []Span
	start := 0

	for i := 0; i <= len(norm); i++ {
		atEnd := i == len(norm)
		if !atEnd && !isSentenceBoundary(norm[i]) {
			continue
		}

		raw := norm[start:i]
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			offset := start + strings.Index(raw, trimmed)
			spans = append(spans, Span{
				Text:  trimmed,
				Page:  pageNumber,
				Start: offset,
				End:   offset + len(trimmed),
			})
		}
		start = i + 1
	}

	return spans
}

func isSentenceBoundary(b byte) bool {
	return b == '.' || b == '!' || b == '?' || b == ';'
}

// coveredByMatch reports whether the span intersects any existing match's
// offset range on the same page.
func coveredByMatch(span Span, existing []model.Match) bool {
	for _, m := range existing {
		if m.Page != span.Page {
			continue
		}
		if span.Start < m.End() && m.Offset < span.End {
			return true
		}
	}
	return false
}

// analyzeTriggers counts trigger-family hits and flags clustered hits.
func analyzeTriggers(span *Span) {
	lower := strings.ToLower(span.Text)

	var positions []int
	for _, trigger := range riskTriggers {
		for _, pos := range allIndexes(lower, trigger) {
			span.RiskHits++
			positions = append(positions, pos)
		}
	}
	for _, trigger := range benefitTriggers {
		for _, pos := range allIndexes(lower, trigger) {
			span.BenefitHits++
			positions = append(positions, pos)
		}
	}

	sort.Ints(positions)
	for i := 1; i < len(positions); i++ {
		if positions[i]-positions[i-1] <= proximityWindow {
			span.Clustered = true
			break
		}
	}
}

func allIndexes(haystack, needle string) []int {
	var out []int
	start := 0
	for {
		pos := strings.Index(haystack[start:], needle)
		if pos == -1 {
			return out
		}
		out = append(out, start+pos)
		start += pos + len(needle)
	}
}

// proposedType defaults to risk unless only benefit triggers fired.
func proposedType(span Span) model.CategoryType {
	if span.BenefitHits > 0 && span.RiskHits == 0 {
		return model.CategoryTypeBenefit
	}
	return model.CategoryTypeRisk
}

func proposedLabel(span Span) string {
	if proposedType(span) == model.CategoryTypeBenefit {
		return "potential_benefit"
	}
	return "potential_risk"
}
