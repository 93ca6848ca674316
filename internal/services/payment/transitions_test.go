package payment

import (
	"testing"

	"breadroute/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.PaymentStatusPending, models.PaymentStatusCompleted, true},
		{models.PaymentStatusPending, models.PaymentStatusCancelled, true},
		{models.PaymentStatusPending, models.PaymentStatusFailed, true},
		{models.PaymentStatusPending, models.PaymentStatusRefunded, false},
		{models.PaymentStatusCompleted, models.PaymentStatusRefunded, true},
		{models.PaymentStatusCompleted, models.PaymentStatusPending, false},
		{models.PaymentStatusCancelled, models.PaymentStatusCompleted, false},
		{models.PaymentStatusFailed, models.PaymentStatusPending, false},
		{models.PaymentStatusRefunded, models.PaymentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			err := checkTransition(statusTransitions, tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestVerificationTransitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.VerificationPending, models.VerificationVerified, true},
		{models.VerificationPending, models.VerificationRejected, true},
		{models.VerificationPending, models.VerificationUnderReview, true},
		{models.VerificationUnderReview, models.VerificationVerified, true},
		{models.VerificationUnderReview, models.VerificationRejected, true},
		{models.VerificationVerified, models.VerificationRejected, false},
		{models.VerificationRejected, models.VerificationVerified, false},
		{models.VerificationVerified, models.VerificationUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			err := checkTransition(verificationTransitions, tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestCheckTransition_UnknownState(t *testing.T) {
	err := checkTransition(statusTransitions, "bogus", models.PaymentStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
