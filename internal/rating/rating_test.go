package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

func risks(weights ...int) []model.Match {
	var matches []model.Match
	for _, w := range weights {
		matches = append(matches, model.Match{Type: model.CategoryTypeRisk, Score: w})
	}
	return matches
}

func benefits(weights ...int) []model.Match {
	var matches []model.Match
	for _, w := range weights {
		matches = append(matches, model.Match{Type: model.CategoryTypeBenefit, Score: w})
	}
	return matches
}

func TestRateEmptyIsNeutral(t *testing.T) {
	rating := Rate(nil)

	assert.InDelta(t, 5.0, rating.Score, 0.001)
	assert.Equal(t, model.BandNeutral, rating.Band)
	assert.Equal(t, model.LevelNone, rating.RiskLevel)
	assert.Equal(t, model.LevelNone, rating.BenefitLevel)
	assert.Zero(t, rating.RiskCount)
	assert.Zero(t, rating.BenefitCount)
}

func TestRateScores(t *testing.T) {
	tests := []struct {
		name      string
		matches   []model.Match
		wantScore float64
		wantBand  model.Band
	}{
		{
			name:      "max benefits only",
			matches:   benefits(5, 5),
			wantScore: 8.0,
			wantBand:  model.BandFavorable,
		},
		{
			name:      "max risks only",
			matches:   risks(5, 5),
			wantScore: 2.0,
			wantBand:  model.BandRisky,
		},
		{
			name:      "high risk average",
			matches:   risks(4, 4),
			wantScore: 2.6,
			wantBand:  model.BandRisky,
		},
		{
			name:      "balanced sides cancel",
			matches:   append(risks(3), benefits(3)...),
			wantScore: 5.0,
			wantBand:  model.BandNeutral,
		},
		{
			name:      "single low risk",
			matches:   risks(1),
			wantScore: 4.4,
			wantBand:  model.BandNeutral,
		},
		{
			name:      "mixed weights",
			matches:   append(risks(5, 3), benefits(2)...),
			wantScore: 3.8,
			wantBand:  model.BandRisky,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := Rate(tt.matches)
			assert.InDelta(t, tt.wantScore, rating.Score, 0.001)
			assert.Equal(t, tt.wantBand, rating.Band)
		})
	}
}

func TestRateMonotonicity(t *testing.T) {
	base := Rate(append(risks(3, 4), benefits(2)...))

	withRisk := Rate(append(risks(3, 4, 5), benefits(2)...))
	assert.LessOrEqual(t, withRisk.Score, base.Score, "adding a risk match must never raise the score")

	withBenefit := Rate(append(risks(3, 4), benefits(2, 5)...))
	assert.GreaterOrEqual(t, withBenefit.Score, base.Score, "adding a benefit match must never lower the score")

	// At the clamped floor the score stays put rather than going negative.
	floor := Rate(risks(5, 5, 5))
	assert.InDelta(t, 2.0, floor.Score, 0.001)
	assert.LessOrEqual(t, Rate(risks(5, 5, 5, 5)).Score, floor.Score)
	assert.GreaterOrEqual(t, Rate(risks(5, 5, 5, 5)).Score, 0.0)
}

func TestRateCountsAndAverages(t *testing.T) {
	rating := Rate(append(risks(4, 2), benefits(5)...))

	assert.Equal(t, 2, rating.RiskCount)
	assert.Equal(t, 1, rating.BenefitCount)
	assert.Equal(t, 6, rating.TotalRiskScore)
	assert.Equal(t, 5, rating.TotalBenefitScore)
	assert.InDelta(t, 3.0, rating.AvgRiskWeight, 0.001)
	assert.InDelta(t, 5.0, rating.AvgBenefitWeight, 0.001)
}

func TestRateLevels(t *testing.T) {
	tests := []struct {
		name     string
		matches  []model.Match
		wantRisk model.Level
		wantBen  model.Level
	}{
		{"no matches", nil, model.LevelNone, model.LevelNone},
		{"high risk", risks(4), model.LevelHigh, model.LevelNone},
		{"medium risk boundary", risks(2, 3), model.LevelMedium, model.LevelNone},
		{"low risk", risks(2), model.LevelLow, model.LevelNone},
		{"high benefit", benefits(5), model.LevelNone, model.LevelHigh},
		{"low benefit", benefits(1, 2), model.LevelNone, model.LevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := Rate(tt.matches)
			assert.Equal(t, tt.wantRisk, rating.RiskLevel)
			assert.Equal(t, tt.wantBen, rating.BenefitLevel)
		})
	}
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Band
	}{
		{10, model.BandVeryFavorable},
		{9, model.BandVeryFavorable},
		{8.9, model.BandFavorable},
		{6, model.BandFavorable},
		{5.9, model.BandNeutral},
		{4, model.BandNeutral},
		{3.9, model.BandRisky},
		{2, model.BandRisky},
		{1.9, model.BandVeryRisky},
		{0, model.BandVeryRisky},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bandFor(tt.score), "score %.1f", tt.score)
	}
}
