// Package classify reconciles raw, untrusted classifier output into a
// canonical, fully populated classification. It is pure: no I/O, no side
// effects, deterministic for a given input.
package classify

import "github.com/poiesic/pulse/core"

// Classification is the canonical result of analyzing one feedback item.
// Every field is always populated. The JSON tags match the ai_analysis
// object on the wire.
type Classification struct {
	SentimentScore    int    `json:"sentiment_score"`
	NPSClass          string `json:"nps_class"`
	Urgency           string `json:"urgency_level"`
	ProductCategory   string `json:"product_category"`
	FeedbackKind      string `json:"feedback_type"`
	AudienceType      string `json:"user_type"`
	Summary           string `json:"summary"`
	RecommendedAction string `json:"recommended_action"`
}

// Overrides carries caller-supplied values that take precedence over
// whatever the classifier inferred.
type Overrides struct {
	Urgency string
}

// DefaultRecommendedAction is used when the classifier suggests nothing.
const DefaultRecommendedAction = "Review feedback"

// summaryRunes is how much of the original text becomes the summary when the
// classifier provides none.
const summaryRunes = 50

// fallback is the fixed classification used when no structured data can be
// recovered from the classifier output. Ingestion never fails because of a
// malformed classification.
func fallback(originalText string) Classification {
	return Classification{
		SentimentScore:    core.DefaultSentimentScore,
		NPSClass:          core.NPSPassive,
		Urgency:           core.UrgencyNeutral,
		ProductCategory:   core.ValueUnknown,
		FeedbackKind:      core.KindUX,
		AudienceType:      core.AudienceIndividual,
		Summary:           truncateRunes(originalText, summaryRunes),
		RecommendedAction: DefaultRecommendedAction,
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
