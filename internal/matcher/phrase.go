package matcher

import (
	"fmt"
	"strings"

	"github.com/smallprintlabs/clausecheck/internal/common"
)

// MaxSpan is the sentence-fragment ceiling on a matcher's expanded length.
// Matchers that could cover a longer span are rejected at catalog load so a
// single matcher can never swallow a large chunk of a page.
const MaxSpan = 120

// ExpandPhrase expands a matcher phrase into its literal variants.
//
// A phrase is literal text optionally containing a single "(a|b|c)"
// alternation group of word forms. Free-form regular expressions are
// deliberately not supported: broad patterns produced oversized, imprecise
// matches, so matchers are restricted to bounded phrase alternation.
func ExpandPhrase(phrase string) ([]string, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, fmt.Errorf("%w: empty phrase", common.ErrMatcherConfig)
	}

	open := strings.IndexByte(phrase, '(')
	if open == -1 {
		if strings.ContainsAny(phrase, ")|") {
			return nil, fmt.Errorf("%w: unbalanced alternation in %q", common.ErrMatcherConfig, phrase)
		}
		if len(phrase) > MaxSpan {
			return nil, fmt.Errorf("%w: phrase %q exceeds %d characters", common.ErrMatcherConfig, phrase, MaxSpan)
		}
		return []string{phrase}, nil
	}

	closing := strings.IndexByte(phrase, ')')
	if closing < open {
		return nil, fmt.Errorf("%w: unbalanced alternation in %q", common.ErrMatcherConfig, phrase)
	}

	prefix := phrase[:open]
	group := phrase[open+1 : closing]
	suffix := phrase[closing+1:]

	if strings.ContainsAny(prefix, ")|") || strings.ContainsAny(suffix, "()|") || strings.Contains(group, "(") {
		return nil, fmt.Errorf("%w: only one alternation group is allowed in %q", common.ErrMatcherConfig, phrase)
	}

	branches := strings.Split(group, "|")
	variants := make([]string, 0, len(branches))
	for _, branch := range branches {
		branch = strings.TrimSpace(branch)
		if branch == "" {
			return nil, fmt.Errorf("%w: empty alternation branch in %q", common.ErrMatcherConfig, phrase)
		}
		variant := prefix + branch + suffix
		if len(variant) > MaxSpan {
			return nil, fmt.Errorf("%w: variant %q exceeds %d characters", common.ErrMatcherConfig, variant, MaxSpan)
		}
		variants = append(variants, variant)
	}

	return variants, nil
}
