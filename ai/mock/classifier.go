package mock

import (
	"context"
	"strings"
)

// MockClassifier is a test double for ai.FeedbackClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default keyword-driven behavior.
	ClassifyFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns a canned, well-formed analysis. The default keys the
// sentiment off a few obvious words so tests can steer it with their input
// text instead of wiring ClassifyFunc.
func (m *MockClassifier) Classify(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "love") || strings.Contains(lowered, "great"):
		return `{"sentiment_score": 9, "nps_class": "Promoter", "urgency_level": "Low", "user_type": "Individual", "product_category": "Workers", "feedback_type": "UX", "summary": "Very happy user", "recommended_action": "Share with the team"}`, nil
	case strings.Contains(lowered, "broken") || strings.Contains(lowered, "crash"):
		return `{"sentiment_score": 2, "nps_class": "Detractor", "urgency_level": "High", "user_type": "Enterprise", "product_category": "R2", "feedback_type": "Tech", "summary": "Something is broken", "recommended_action": "File an incident"}`, nil
	default:
		return `{"sentiment_score": 6, "nps_class": "Detractor", "urgency_level": "Neutral", "user_type": "Individual", "product_category": "Unknown", "feedback_type": "UX", "summary": "Neutral feedback", "recommended_action": "Review feedback"}`, nil
	}
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
