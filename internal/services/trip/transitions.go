package trip

import (
	"fmt"

	"breadroute/internal/models"
)

// Allowed trip status transitions. Completed and cancelled are terminal;
// a suspended trip can resume or be written off.
var statusTransitions = map[string][]string{
	models.TripStatusPlanned:    {models.TripStatusInProgress, models.TripStatusCancelled, models.TripStatusSuspended},
	models.TripStatusInProgress: {models.TripStatusCompleted, models.TripStatusCancelled, models.TripStatusSuspended},
	models.TripStatusSuspended:  {models.TripStatusInProgress, models.TripStatusCancelled},
	models.TripStatusCompleted:  {},
	models.TripStatusCancelled:  {},
}

func checkTransition(from, to string) error {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
