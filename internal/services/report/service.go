// Package report builds daily operational summaries across trips,
// payments and stores.
package report

import (
	"context"
	"fmt"
	"time"

	"breadroute/internal/models"
	"breadroute/internal/repositories"
)

// DailyReport is the distribution overview for a single day.
type DailyReport struct {
	Date string `json:"date"`

	TripsPlanned    int `json:"trips_planned"`
	TripsInProgress int `json:"trips_in_progress"`
	TripsCompleted  int `json:"trips_completed"`
	TripsCancelled  int `json:"trips_cancelled"`
	TripsSuspended  int `json:"trips_suspended"`

	StoresVisited        int     `json:"stores_visited"`
	AverageCompletionPct float64 `json:"average_completion_pct"`

	CollectedEUR float64 `json:"collected_eur"`
	CollectedSYP float64 `json:"collected_syp"`

	ActiveStores          int64   `json:"active_stores"`
	OutstandingBalanceEUR float64 `json:"outstanding_balance_eur"`
}

// Service builds reports over the distribution data.
type Service interface {
	Daily(ctx context.Context, date time.Time) (*DailyReport, error)
}

type service struct {
	trips    repositories.TripRepository
	payments repositories.PaymentRepository
	stores   repositories.StoreRepository
}

func NewService(trips repositories.TripRepository, payments repositories.PaymentRepository, stores repositories.StoreRepository) Service {
	if trips == nil || payments == nil || stores == nil {
		panic("report service requires trip, payment and store repositories")
	}
	return &service{
		trips:    trips,
		payments: payments,
		stores:   stores,
	}
}

func (s *service) Daily(_ context.Context, date time.Time) (*DailyReport, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	trips, err := s.trips.ListByDate(day)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}

	report := &DailyReport{Date: day.Format("2006-01-02")}

	var completionSum float64
	for i := range trips {
		t := &trips[i]
		switch t.Status {
		case models.TripStatusPlanned:
			report.TripsPlanned++
		case models.TripStatusInProgress:
			report.TripsInProgress++
		case models.TripStatusCompleted:
			report.TripsCompleted++
		case models.TripStatusCancelled:
			report.TripsCancelled++
		case models.TripStatusSuspended:
			report.TripsSuspended++
		}
		report.StoresVisited += t.CompletedStores
		completionSum += t.CompletionRate
	}
	if len(trips) > 0 {
		report.AverageCompletionPct = completionSum / float64(len(trips))
	}

	eur, syp, err := s.payments.CollectedTotals(day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load collected totals: %w", err)
	}
	report.CollectedEUR = eur
	report.CollectedSYP = syp

	active, err := s.stores.CountByStatus(models.StoreStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active stores: %w", err)
	}
	report.ActiveStores = active

	outstanding, err := s.stores.TotalOutstandingBalance()
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	report.OutstandingBalanceEUR = outstanding

	return report, nil
}
