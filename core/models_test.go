package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveNPSClass_FullRange(t *testing.T) {
	expected := map[int]string{
		1:  NPSDetractor,
		2:  NPSDetractor,
		3:  NPSDetractor,
		4:  NPSDetractor,
		5:  NPSDetractor, // the defaulted score must classify as Detractor
		6:  NPSDetractor,
		7:  NPSPassive,
		8:  NPSPassive,
		9:  NPSPromoter,
		10: NPSPromoter,
	}

	for score, class := range expected {
		assert.Equal(t, class, DeriveNPSClass(score), "score %d", score)
	}
}

func TestNewID_Unique(t *testing.T) {
	a := NewID()
	b := NewID()
	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		source  string
		wantErr error
	}{
		{"valid", "the dashboard is slow", "Email", nil},
		{"missing text", "", "Email", ErrEmptyText},
		{"whitespace text", "   ", "Email", ErrEmptyText},
		{"missing source", "slow dashboard", "", ErrEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.text, tt.source)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("login issues"))
	assert.ErrorIs(t, ValidateQuery(""), ErrInvalidInput)
	assert.ErrorIs(t, ValidateQuery(" \t"), ErrEmptyQuery)
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidUrgency(UrgencyHigh))
	assert.False(t, ValidUrgency("Critical"))

	assert.True(t, ValidAudienceType(AudienceSMB))
	assert.False(t, ValidAudienceType("Startup"))

	assert.True(t, ValidFeedbackKind(KindFeatureRequest))
	assert.False(t, ValidFeedbackKind("Bug"))

	assert.True(t, ValidNPSClass(NPSPassive))
	assert.False(t, ValidNPSClass("Neutral"))
}
