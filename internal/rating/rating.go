// Package rating reduces a document's match set to an aggregate 0-10 rating.
package rating

import (
	"math"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

const (
	baseScore    = 5.0
	maxSwing     = 3.0
	minScore     = 0.0
	maxScore     = 10.0
	highCutoff   = 4.0
	mediumCutoff = 2.5
)

// Rate computes the document rating from a match set.
//
// The score starts from a neutral base of 5: benefits can add up to 3 points
// and risks can subtract up to 3, each scaled by the average weight of their
// matches. A document with no matches rates 5.0 / Neutral.
func Rate(matches []model.Match) model.DocumentRating {
	var rating model.DocumentRating

	for _, m := range matches {
		switch m.Type {
		case model.CategoryTypeRisk:
			rating.RiskCount++
			rating.TotalRiskScore += m.Score
		case model.CategoryTypeBenefit:
			rating.BenefitCount++
			rating.TotalBenefitScore += m.Score
		}
	}

	if rating.RiskCount > 0 {
		rating.AvgRiskWeight = float64(rating.TotalRiskScore) / float64(rating.RiskCount)
	}
	if rating.BenefitCount > 0 {
		rating.AvgBenefitWeight = float64(rating.TotalBenefitScore) / float64(rating.BenefitCount)
	}

	benefitContribution := (rating.AvgBenefitWeight / float64(model.MaxWeight)) * maxSwing
	riskPenalty := (rating.AvgRiskWeight / float64(model.MaxWeight)) * maxSwing

	score := baseScore + benefitContribution - riskPenalty
	score = math.Max(minScore, math.Min(maxScore, score))
	rating.Score = math.Round(score*10) / 10

	rating.Band = bandFor(rating.Score)
	rating.RiskLevel = levelFor(rating.AvgRiskWeight, rating.RiskCount)
	rating.BenefitLevel = levelFor(rating.AvgBenefitWeight, rating.BenefitCount)

	return rating
}

// bandFor maps a score to its qualitative band. Boundaries are half-open
// except the top band, which includes 10.
func bandFor(score float64) model.Band {
	switch {
	case score >= 9:
		return model.BandVeryFavorable
	case score >= 6:
		return model.BandFavorable
	case score >= 4:
		return model.BandNeutral
	case score >= 2:
		return model.BandRisky
	default:
		return model.BandVeryRisky
	}
}

func levelFor(avg float64, count int) model.Level {
	switch {
	case count == 0:
		return model.LevelNone
	case avg >= highCutoff:
		return model.LevelHigh
	case avg >= mediumCutoff:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}
