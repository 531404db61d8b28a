package classify

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/poiesic/pulse/core"
)

// Normalize turns raw classifier output into a canonical classification.
//
// The raw string is treated as an untrusted blob: markdown fences are
// stripped, the largest well-formed JSON fragment is located, and common LLM
// JSON damage is repaired before decoding. If nothing usable can be
// recovered, the fixed fallback classification applies.
//
// Field precedence: caller overrides, then classifier values, then defaults.
// A missing NPS class is derived from the (possibly defaulted) sentiment
// score.
func Normalize(raw, originalText string, ov Overrides) Classification {
	parsed, ok := parse(raw)
	if !ok {
		c := fallback(originalText)
		if core.ValidUrgency(ov.Urgency) {
			c.Urgency = ov.Urgency
		}
		return c
	}

	c := Classification{}

	c.SentimentScore = clampScore(parsed.sentimentScore())

	c.NPSClass = parsed.NPSClass
	if !core.ValidNPSClass(c.NPSClass) {
		c.NPSClass = core.DeriveNPSClass(c.SentimentScore)
	}

	switch {
	case core.ValidUrgency(ov.Urgency):
		c.Urgency = ov.Urgency
	case core.ValidUrgency(parsed.Urgency):
		c.Urgency = parsed.Urgency
	default:
		c.Urgency = core.UrgencyNeutral
	}

	c.ProductCategory = strings.TrimSpace(parsed.ProductCategory)
	if c.ProductCategory == "" {
		c.ProductCategory = core.ValueUnknown
	}

	c.FeedbackKind = parsed.FeedbackKind
	if !core.ValidFeedbackKind(c.FeedbackKind) {
		c.FeedbackKind = core.KindUX
	}

	c.AudienceType = parsed.AudienceType
	if !core.ValidAudienceType(c.AudienceType) {
		c.AudienceType = core.AudienceIndividual
	}

	c.Summary = strings.TrimSpace(parsed.Summary)
	if c.Summary == "" {
		c.Summary = truncateRunes(originalText, summaryRunes)
	}

	c.RecommendedAction = strings.TrimSpace(parsed.RecommendedAction)
	if c.RecommendedAction == "" {
		c.RecommendedAction = DefaultRecommendedAction
	}

	return c
}

// rawClassification mirrors the seven-field shape requested from the
// classifier. SentimentScore is untyped because models return it as an
// integer, a float, or a quoted string.
type rawClassification struct {
	SentimentScore    any    `json:"sentiment_score"`
	NPSClass          string `json:"nps_class"`
	Urgency           string `json:"urgency_level"`
	ProductCategory   string `json:"product_category"`
	FeedbackKind      string `json:"feedback_type"`
	AudienceType      string `json:"user_type"`
	Summary           string `json:"summary"`
	RecommendedAction string `json:"recommended_action"`
}

// sentimentScore coerces the untyped score to an int, or 0 when absent or
// unusable. Callers clamp the result.
func (r *rawClassification) sentimentScore() (score int, ok bool) {
	switch v := r.SentimentScore.(type) {
	case float64:
		return int(math.Round(v)), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// parse extracts a structured classification from the raw output.
// Returns ok=false when no JSON object can be recovered at all.
func parse(raw string) (*rawClassification, bool) {
	fragment := extractObject(raw)
	if fragment == "" {
		return nil, false
	}

	fragment = repairJSON(fragment)

	var parsed rawClassification
	if err := json.Unmarshal([]byte(fragment), &parsed); err != nil {
		return nil, false
	}
	return &parsed, true
}

// extractObject strips markdown code fences and returns the largest
// brace-delimited fragment of the text, or "" when none exists. Models
// routinely wrap their JSON in prose or fences.
func extractObject(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// clampScore forces a coerced score into the valid [1,10] range, defaulting
// when the classifier supplied nothing usable.
func clampScore(score int, ok bool) int {
	if !ok {
		return core.DefaultSentimentScore
	}
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
