package payment

import (
	"fmt"

	"breadroute/internal/models"
)

// Allowed payment status transitions. Anything not listed is rejected;
// completed is only reversible into refunded, and cancelled, failed and
// refunded are terminal.
var statusTransitions = map[string][]string{
	models.PaymentStatusPending:   {models.PaymentStatusCompleted, models.PaymentStatusCancelled, models.PaymentStatusFailed},
	models.PaymentStatusCompleted: {models.PaymentStatusRefunded},
	models.PaymentStatusCancelled: {},
	models.PaymentStatusFailed:    {},
	models.PaymentStatusRefunded:  {},
}

// Allowed verification transitions. Verified and rejected are final; a
// review can only be opened before a verdict.
var verificationTransitions = map[string][]string{
	models.VerificationPending:     {models.VerificationVerified, models.VerificationRejected, models.VerificationUnderReview},
	models.VerificationUnderReview: {models.VerificationVerified, models.VerificationRejected},
	models.VerificationVerified:    {},
	models.VerificationRejected:    {},
}

func checkTransition(table map[string][]string, from, to string) error {
	for _, allowed := range table[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
