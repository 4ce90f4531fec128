// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smallprintlabs/clausecheck/internal/model"
)

var (
	// RiskColor highlights risk findings.
	RiskColor = lipgloss.Color("#FF6B6B")
	// BenefitColor highlights benefit findings.
	BenefitColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	// RiskStyle formats risk category output.
	RiskStyle = lipgloss.NewStyle().
			Foreground(RiskColor)

	// BenefitStyle formats benefit category output.
	BenefitStyle = lipgloss.NewStyle().
			Foreground(BenefitColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats secondary detail.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// TypeStyle returns the style for a category type.
func TypeStyle(t model.CategoryType) lipgloss.Style {
	if t == model.CategoryTypeBenefit {
		return BenefitStyle
	}
	return RiskStyle
}

// BandStyle returns the style for a rating band.
func BandStyle(band model.Band) lipgloss.Style {
	switch band {
	case model.BandVeryFavorable, model.BandFavorable:
		return BenefitStyle
	case model.BandRisky, model.BandVeryRisky:
		return RiskStyle
	default:
		return InfoStyle
	}
}
