package core

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a fresh globally unique record identifier.
func NewID() string {
	return uuid.NewString()
}

// Urgency levels for a feedback record.
const (
	UrgencyHigh    = "High"
	UrgencyNeutral = "Neutral"
	UrgencyLow     = "Low"
)

// NPS classes derived from the sentiment score.
const (
	NPSPromoter  = "Promoter"
	NPSPassive   = "Passive"
	NPSDetractor = "Detractor"
)

// Audience types describing who submitted the feedback.
const (
	AudienceEnterprise = "Enterprise"
	AudienceSMB        = "SMB"
	AudienceIndividual = "Individual"
	AudienceUnknown    = "Unknown"
)

// Feedback kinds.
const (
	KindUX             = "UX"
	KindTech           = "Tech"
	KindService        = "Service"
	KindFeatureRequest = "Feature Request"
)

// StatusOpen is the initial workflow status of every ingested record.
// Downstream workflow tooling mutates it, never this core.
const StatusOpen = "Open"

// ValueUnknown is the sentinel for optional fields the caller left empty
// (submitter id, region, product category).
const ValueUnknown = "Unknown"

// DefaultSentimentScore is used when the classifier provides no usable score.
const DefaultSentimentScore = 5

// FeedbackRecord is the canonical unit of feedback. Once ingested, no field
// may be unset. The JSON tags are the wire contract and must not change.
type FeedbackRecord struct {
	ID                string    `json:"id"`
	ReceivedAt        time.Time `json:"feedback_timestamp"`
	SubmitterID       string    `json:"user_id"`
	Source            string    `json:"source"`
	ProductCategory   string    `json:"product_category"`
	AudienceType      string    `json:"user_type"`
	Urgency           string    `json:"urgency_level"`
	FeedbackKind      string    `json:"feedback_type"`
	Region            string    `json:"region"`
	Summary           string    `json:"summary"`
	RecommendedAction string    `json:"recommended_action"`
	Status            string    `json:"feedback_status"`
	OriginalText      string    `json:"original_text"`
	SentimentScore    int       `json:"sentiment_score"`
	NPSClass          string    `json:"nps_class"`
}

// DeriveNPSClass maps a sentiment score to its NPS class:
// 9-10 Promoter, 7-8 Passive, below 7 Detractor.
func DeriveNPSClass(sentimentScore int) string {
	switch {
	case sentimentScore >= 9:
		return NPSPromoter
	case sentimentScore >= 7:
		return NPSPassive
	default:
		return NPSDetractor
	}
}

// ValidUrgency reports whether the value is one of the urgency levels.
func ValidUrgency(v string) bool {
	return v == UrgencyHigh || v == UrgencyNeutral || v == UrgencyLow
}

// ValidNPSClass reports whether the value is one of the NPS classes.
func ValidNPSClass(v string) bool {
	return v == NPSPromoter || v == NPSPassive || v == NPSDetractor
}

// ValidAudienceType reports whether the value is one of the audience types.
func ValidAudienceType(v string) bool {
	return v == AudienceEnterprise || v == AudienceSMB ||
		v == AudienceIndividual || v == AudienceUnknown
}

// ValidFeedbackKind reports whether the value is one of the feedback kinds.
func ValidFeedbackKind(v string) bool {
	return v == KindUX || v == KindTech || v == KindService || v == KindFeatureRequest
}
