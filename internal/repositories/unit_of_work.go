package repositories

import (
	"gorm.io/gorm"
)

// UnitOfWork runs multi-aggregate updates inside a single database
// transaction. Completing a visit touches the visit row, the parent trip's
// aggregates and the store ledger; completing a payment touches the payment
// row and the store ledger. Those writes must commit or roll back together
// so the counters always reflect the sum of the rows beneath them.
type UnitOfWork interface {
	Do(fn func(visits VisitRepository, trips TripRepository, stores StoreRepository, payments PaymentRepository) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(fn func(visits VisitRepository, trips TripRepository, stores StoreRepository, payments PaymentRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewVisitRepository(tx), NewTripRepository(tx), NewStoreRepository(tx), NewPaymentRepository(tx))
	})
}
