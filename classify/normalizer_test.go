package classify

import (
	"testing"

	"github.com/poiesic/pulse/core"
	"github.com/stretchr/testify/assert"
)

const sampleText = "The R2 upload API keeps timing out for our team and it is blocking our release."

func TestNormalize_WellFormedOutput(t *testing.T) {
	raw := `{
		"sentiment_score": 2,
		"nps_class": "Detractor",
		"urgency_level": "High",
		"user_type": "Enterprise",
		"product_category": "R2",
		"feedback_type": "Tech",
		"summary": "R2 uploads time out and block a release",
		"recommended_action": "Escalate to the R2 on-call"
	}`

	c := Normalize(raw, sampleText, Overrides{})

	assert.Equal(t, 2, c.SentimentScore)
	assert.Equal(t, core.NPSDetractor, c.NPSClass)
	assert.Equal(t, core.UrgencyHigh, c.Urgency)
	assert.Equal(t, core.AudienceEnterprise, c.AudienceType)
	assert.Equal(t, "R2", c.ProductCategory)
	assert.Equal(t, core.KindTech, c.FeedbackKind)
	assert.Equal(t, "R2 uploads time out and block a release", c.Summary)
	assert.Equal(t, "Escalate to the R2 on-call", c.RecommendedAction)
}

func TestNormalize_MarkdownFencesAndProse(t *testing.T) {
	raw := "Sure! Here is the analysis:\n```json\n{\"sentiment_score\": 9, \"product_category\": \"Workers\"}\n```\nLet me know if you need more."

	c := Normalize(raw, sampleText, Overrides{})

	assert.Equal(t, 9, c.SentimentScore)
	assert.Equal(t, core.NPSPromoter, c.NPSClass)
	assert.Equal(t, "Workers", c.ProductCategory)
}

func TestNormalize_GarbageFallsBackToDefaults(t *testing.T) {
	for _, raw := range []string{"", "no json here at all", "{broken", "[1,2,3]"} {
		c := Normalize(raw, sampleText, Overrides{})

		assert.Equal(t, core.DefaultSentimentScore, c.SentimentScore, "raw=%q", raw)
		assert.Equal(t, core.NPSPassive, c.NPSClass)
		assert.Equal(t, core.UrgencyNeutral, c.Urgency)
		assert.Equal(t, core.ValueUnknown, c.ProductCategory)
		assert.Equal(t, core.KindUX, c.FeedbackKind)
		assert.Equal(t, core.AudienceIndividual, c.AudienceType)
		assert.Equal(t, string([]rune(sampleText)[:50]), c.Summary)
		assert.Equal(t, DefaultRecommendedAction, c.RecommendedAction)
	}
}

func TestNormalize_DerivesNPSFromDefaultedScore(t *testing.T) {
	// Parseable object that carries neither nps_class nor sentiment_score:
	// the score defaults to 5 and the class is derived from it.
	c := Normalize(`{"summary": "something"}`, sampleText, Overrides{})

	assert.Equal(t, 5, c.SentimentScore)
	assert.Equal(t, core.NPSDetractor, c.NPSClass)
}

func TestNormalize_DerivationBoundaries(t *testing.T) {
	assert.Equal(t, core.NPSPromoter, Normalize(`{"sentiment_score": 10}`, sampleText, Overrides{}).NPSClass)
	assert.Equal(t, core.NPSPromoter, Normalize(`{"sentiment_score": 9}`, sampleText, Overrides{}).NPSClass)
	assert.Equal(t, core.NPSPassive, Normalize(`{"sentiment_score": 8}`, sampleText, Overrides{}).NPSClass)
	assert.Equal(t, core.NPSPassive, Normalize(`{"sentiment_score": 7}`, sampleText, Overrides{}).NPSClass)
	assert.Equal(t, core.NPSDetractor, Normalize(`{"sentiment_score": 6}`, sampleText, Overrides{}).NPSClass)
	assert.Equal(t, core.NPSDetractor, Normalize(`{"sentiment_score": 1}`, sampleText, Overrides{}).NPSClass)
}

func TestNormalize_CallerUrgencyWins(t *testing.T) {
	raw := `{"urgency_level": "High", "sentiment_score": 3}`

	c := Normalize(raw, sampleText, Overrides{Urgency: core.UrgencyLow})
	assert.Equal(t, core.UrgencyLow, c.Urgency)

	// Invalid caller value falls through to the classifier's.
	c = Normalize(raw, sampleText, Overrides{Urgency: "Critical"})
	assert.Equal(t, core.UrgencyHigh, c.Urgency)
}

func TestNormalize_CallerUrgencySurvivesFallback(t *testing.T) {
	c := Normalize("not json", sampleText, Overrides{Urgency: core.UrgencyHigh})
	assert.Equal(t, core.UrgencyHigh, c.Urgency)
}

func TestNormalize_ScoreCoercionAndClamping(t *testing.T) {
	assert.Equal(t, 7, Normalize(`{"sentiment_score": 7.4}`, sampleText, Overrides{}).SentimentScore)
	assert.Equal(t, 8, Normalize(`{"sentiment_score": "8"}`, sampleText, Overrides{}).SentimentScore)
	assert.Equal(t, 10, Normalize(`{"sentiment_score": 42}`, sampleText, Overrides{}).SentimentScore)
	assert.Equal(t, 1, Normalize(`{"sentiment_score": -3}`, sampleText, Overrides{}).SentimentScore)
	assert.Equal(t, 5, Normalize(`{"sentiment_score": "angry"}`, sampleText, Overrides{}).SentimentScore)
}

func TestNormalize_InvalidEnumsFallBack(t *testing.T) {
	raw := `{"urgency_level": "ASAP", "user_type": "Startup", "feedback_type": "Bug", "nps_class": "Meh", "sentiment_score": 9}`

	c := Normalize(raw, sampleText, Overrides{})

	assert.Equal(t, core.UrgencyNeutral, c.Urgency)
	assert.Equal(t, core.AudienceIndividual, c.AudienceType)
	assert.Equal(t, core.KindUX, c.FeedbackKind)
	assert.Equal(t, core.NPSPromoter, c.NPSClass) // derived, not "Meh"
}

func TestNormalize_ShortTextSummaryFallback(t *testing.T) {
	c := Normalize("{}", "too slow", Overrides{})
	assert.Equal(t, "too slow", c.Summary)
}
