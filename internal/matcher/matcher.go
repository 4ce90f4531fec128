// Package matcher scans extracted document text against the pattern catalog.
package matcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

// NormalizeText collapses runs of whitespace into single spaces and trims the
// result. Match offsets refer to positions within the normalized page text;
// original casing is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Find locates every catalog category occurrence across the given pages.
//
// Matching is case-insensitive and purely literal after phrase expansion.
// Overlapping spans from the same category collapse to the longest match;
// different categories may flag overlapping spans. The result is ordered by
// (page, offset) and is deterministic for a given input.
func Find(pages []model.Page, categories []model.Category) []model.Match {
	cats := make([]model.Category, len(categories))
	copy(cats, categories)
	sort.Slice(cats, func(i, j int) bool { return cats[i].Key < cats[j].Key })

	var matches []model.Match
	for _, page := range pages {
		norm := NormalizeText(page.Text)
		if norm == "" {
			continue
		}
		folded := foldText(norm)

		for _, cat := range cats {
			spans := findCategory(norm, folded, page.Number, cat)
			matches = append(matches, resolveOverlaps(spans)...)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Page != matches[j].Page {
			return matches[i].Page < matches[j].Page
		}
		if matches[i].Offset != matches[j].Offset {
			return matches[i].Offset < matches[j].Offset
		}
		return matches[i].CategoryKey < matches[j].CategoryKey
	})

	return matches
}

// foldedText pairs a lowercased copy of a page with a byte-offset map back
// into the original text. Lowercasing can change rune widths (İ shrinks,
// Ⱥ grows), so positions found in the folded copy cannot index the original
// directly.
type foldedText struct {
	lower string
	// orig[i] is the original byte offset of the rune that produced lower
	// byte i; one extra entry maps len(lower) to len(original).
	orig []int
}

func foldText(s string) foldedText {
	var b strings.Builder
	b.Grow(len(s))
	orig := make([]int, 0, len(s)+1)

	for i, r := range s {
		lr := unicode.ToLower(r)
		for range utf8.RuneLen(lr) {
			orig = append(orig, i)
		}
		b.WriteRune(lr)
	}
	orig = append(orig, len(s))

	return foldedText{lower: b.String(), orig: orig}
}

// findCategory collects every occurrence of every matcher variant for one
// category on one page, overlaps included. Needles are valid UTF-8, so a
// byte-level hit in the folded text always lands on a rune boundary and the
// offset map yields a well-formed slice of the original.
func findCategory(norm string, folded foldedText, pageNumber int, cat model.Category) []model.Match {
	var spans []model.Match

	for _, phrase := range cat.Matchers {
		variants, err := ExpandPhrase(phrase)
		if err != nil {
			// Invalid matchers are dropped at catalog load; skip any that
			// arrive through an unvalidated category slice.
			continue
		}

		for _, variant := range variants {
			needle := strings.ToLower(variant)
			start := 0
			for {
				pos := strings.Index(folded.lower[start:], needle)
				if pos == -1 {
					break
				}
				pos += start
				origStart := folded.orig[pos]
				origEnd := folded.orig[pos+len(needle)]
				spans = append(spans, model.Match{
					CategoryKey: cat.Key,
					Text:        norm[origStart:origEnd],
					Type:        cat.Type,
					Page:        pageNumber,
					Offset:      origStart,
					Score:       cat.Weight,
				})
				start = pos + len(needle)
			}
		}
	}

	return spans
}

// resolveOverlaps applies the longest-match-wins policy within one category:
// among overlapping spans the longest is kept, ties going to the earliest.
func resolveOverlaps(spans []model.Match) []model.Match {
	if len(spans) < 2 {
		return spans
	}

	sort.Slice(spans, func(i, j int) bool {
		if len(spans[i].Text) != len(spans[j].Text) {
			return len(spans[i].Text) > len(spans[j].Text)
		}
		return spans[i].Offset < spans[j].Offset
	})

	kept := make([]model.Match, 0, len(spans))
	for _, span := range spans {
		overlaps := false
		for _, k := range kept {
			if span.Overlaps(k) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, span)
		}
	}

	return kept
}

// GroupByCategory buckets matches under their category key for presentation.
func GroupByCategory(matches []model.Match) map[string][]model.Match {
	grouped := make(map[string][]model.Match)
	for _, m := range matches {
		grouped[m.CategoryKey] = append(grouped[m.CategoryKey], m)
	}
	return grouped
}
