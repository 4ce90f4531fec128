package model

// Band is the qualitative rating derived from a document's numeric score.
type Band string

const (
	// BandVeryFavorable covers scores in [9,10].
	BandVeryFavorable Band = "Very Favorable"
	// BandFavorable covers scores in [6,9).
	BandFavorable Band = "Favorable"
	// BandNeutral covers scores in [4,6).
	BandNeutral Band = "Neutral"
	// BandRisky covers scores in [2,4).
	BandRisky Band = "Risky"
	// BandVeryRisky covers scores in [0,2).
	BandVeryRisky Band = "Very Risky"
)

// Level summarizes the average weight of one side of a rating.
type Level string

const (
	// LevelNone means no matches of that type were found.
	LevelNone Level = "None"
	// LevelLow means an average weight below 2.5.
	LevelLow Level = "Low"
	// LevelMedium means an average weight in [2.5,4).
	LevelMedium Level = "Medium"
	// LevelHigh means an average weight of 4 or more.
	LevelHigh Level = "High"
)

// DocumentRating is the aggregate 0-10 score and qualitative band derived
// from a document's match set. It is computed fresh on each request and has
// no independent lifecycle.
type DocumentRating struct {
	Band              Band
	RiskLevel         Level
	BenefitLevel      Level
	Score             float64
	AvgRiskWeight     float64
	AvgBenefitWeight  float64
	RiskCount         int
	BenefitCount      int
	TotalRiskScore    int
	TotalBenefitScore int
}
