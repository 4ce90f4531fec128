package catalog

import "github.com/smallprintlabs/clausecheck/internal/model"

// Builtin returns the built-in category set. Weights are reviewer-assigned
// severities on the 1-5 scale; matchers use bounded phrase alternation for
// word-form variants.
func Builtin() []model.Category {
	return []model.Category{
		// Risk categories.
		{
			Key:    "early_termination_fee",
			Type:   model.CategoryTypeRisk,
			Weight: 4,
			Matchers: []string{
				"early termination (fee|fees)",
				"cancellation (fee|fees)",
				"termination (penalty|penalties|charge|charges)",
				"(penalty|penalties) for early termination",
			},
		},
		{
			Key:    "automatic_renewal",
			Type:   model.CategoryTypeRisk,
			Weight: 3,
			Matchers: []string{
				"automatically renew",
				"automatic renewal",
				"subscription renewal",
				"renewal (term|terms)",
				"continuous service",
				"auto-(bill|billed|billing)",
			},
		},
		{
			Key:    "arbitration_clause",
			Type:   model.CategoryTypeRisk,
			Weight: 4,
			Matchers: []string{
				"binding arbitration",
				"final decision by arbitrator",
				"dispute resolution via arbitration",
				"(waive|waives|waived) your right to sue",
				"waive the right to sue",
				"arbitration proceedings",
			},
		},
		{
			Key:    "late_payment_penalties",
			Type:   model.CategoryTypeRisk,
			Weight: 3,
			Matchers: []string{
				"late payment (fee|fees)",
				"late (charge|charges)",
				"overdue payment (penalty|penalties|charge|charges)",
				"interest on overdue",
				"charged if payment is late",
				"finance (charge|charges)",
			},
		},
		{
			Key:    "non_refundable",
			Type:   model.CategoryTypeRisk,
			Weight: 3,
			Matchers: []string{
				"non-refundable",
				"non refundable",
				"no (refund|refunds)",
				"not entitled to a refund",
				"non-returnable",
				"cannot be returned",
			},
		},
		{
			Key:    "limited_liability",
			Type:   model.CategoryTypeRisk,
			Weight: 4,
			Matchers: []string{
				"limited (liability|responsibility)",
				"(not liable|no liability) for",
				"held harmless",
				"(indemnify|indemnification)",
				"not responsible for",
			},
		},
		{
			Key:    "service_availability_disclaimer",
			Type:   model.CategoryTypeRisk,
			Weight: 2,
			Matchers: []string{
				"availability (not guaranteed|may vary)",
				"subject to change without notice",
				"(service|services) may be unavailable",
				"no guarantee of availability",
			},
		},
		{
			Key:    "unilateral_modification",
			Type:   model.CategoryTypeRisk,
			Weight: 4,
			Matchers: []string{
				"(reserve|reserves) the right to change",
				"may modify these terms",
				"subject to change at (any|our) discretion",
			},
		},
		{
			Key:    "hidden_charges",
			Type:   model.CategoryTypeRisk,
			Weight: 4,
			Matchers: []string{
				"additional charges may apply",
				"extra fees not included",
				"hidden costs may be incurred",
				"surcharges apply",
				"administrative fees additional",
				"processing fees extra",
				"service charges not included",
				"handling fees additional cost",
			},
		},
		{
			Key:    "data_sharing",
			Type:   model.CategoryTypeRisk,
			Weight: 5,
			Matchers: []string{
				"consent to share personal data",
				"authorize sharing personal information",
				"permission to share sensitive data",
				"data may be shared with third parties",
				"information disclosed to partners",
				"consent to third party access",
			},
		},
		{
			Key:    "rights_limitation",
			Type:   model.CategoryTypeRisk,
			Weight: 5,
			Matchers: []string{
				"(waive right|no right) to appeal",
				"final decision no appeal",
				"binding decision no recourse",
				"limited right to challenge",
			},
		},

		// Benefit categories.
		{
			Key:    "grace_period",
			Type:   model.CategoryTypeBenefit,
			Weight: 3,
			Matchers: []string{
				"grace period of (14|30|60|90) days",
				"no penalty within (14|30|60|90) days",
			},
		},
		{
			Key:    "money_back_guarantee",
			Type:   model.CategoryTypeBenefit,
			Weight: 4,
			Matchers: []string{
				"money-back guarantee",
				"money back guarantee",
				"refund guarantee",
			},
		},
		{
			Key:    "data_protection",
			Type:   model.CategoryTypeBenefit,
			Weight: 4,
			Matchers: []string{
				"data (will be|is) kept secure",
				"data (will be|is) kept confidential",
				"gdpr compliant",
			},
		},
		{
			Key:    "limitation_of_liability",
			Type:   model.CategoryTypeBenefit,
			Weight: 3,
			Matchers: []string{
				"(limit|cap) of liability",
				"cap on liability",
				"liability limited to",
			},
		},
		{
			Key:    "no_win_no_fee",
			Type:   model.CategoryTypeBenefit,
			Weight: 4,
			Matchers: []string{
				"no win no fee",
				"no win no fee (arrangement|agreement|basis)",
			},
		},
		{
			Key:    "fee_caps",
			Type:   model.CategoryTypeBenefit,
			Weight: 4,
			Matchers: []string{
				"success fee (capped at|not exceeding|limited to) 25%",
				"maximum success fee 25%",
			},
		},
		{
			Key:    "cost_protection",
			Type:   model.CategoryTypeBenefit,
			Weight: 3,
			Matchers: []string{
				"no charge for work after offer deadline",
				"no additional charge work after offer",
				"no fee work done after offer",
			},
		},
		{
			Key:    "cooling_off",
			Type:   model.CategoryTypeBenefit,
			Weight: 3,
			Matchers: []string{
				"14-day cooling-off period",
				"14 day cooling off period",
				"cooling-off period 14 days",
				"cancellation period 14 days",
				"cancel within (14|30) days",
			},
		},
		{
			Key:    "transparency",
			Type:   model.CategoryTypeBenefit,
			Weight: 2,
			Matchers: []string{
				"clear explanation of charges",
				"transparent fee structure",
				"clear fee breakdown",
				"detailed cost explanation",
			},
		},
	}
}
