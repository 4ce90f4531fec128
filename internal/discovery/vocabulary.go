package discovery

// Trigger vocabularies for surfacing unmatched clause language. These are
// word families, not matchers: a hit only nominates a span for review, it
// never produces a detection on its own.
var (
	riskTriggers = []string{
		"fee",
		"charge",
		"penalty",
		"terminate",
		"cancel",
		"waive",
		"liability",
		"damage",
		"cost",
		"payment",
	}

	benefitTriggers = []string{
		"guarantee",
		"refund",
		"secure",
		"protect",
		"free",
		"no charge",
		"capped",
		"limit",
	}
)
