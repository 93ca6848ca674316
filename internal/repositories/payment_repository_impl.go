package repositories

import (
	"fmt"
	"time"

	"breadroute/internal/models"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByNumber(number string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("payment_number = ?", number).First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) List(filter PaymentFilter, limit, offset int) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.DistributorID != nil {
		query = query.Where("distributor_id = ?", *filter.DistributorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.VerificationStatus != "" {
		query = query.Where("verification_status = ?", filter.VerificationStatus)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	err := query.Order("payment_date DESC").Limit(limit).Offset(offset).Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListOverdue(cutoff time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("status = ? AND payment_date < ?", models.PaymentStatusPending, cutoff).
		Order("payment_date").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) CreateStatusChange(change *models.StatusChange) error {
	if err := r.db.Create(change).Error; err != nil {
		return fmt.Errorf("failed to record status change: %w", err)
	}
	return nil
}

func (r *paymentRepository) ListStatusChanges(paymentID uint) ([]models.StatusChange, error) {
	var changes []models.StatusChange
	err := r.db.
		Where("entity_type = ? AND entity_id = ?", models.EntityPayment, paymentID).
		Order("created_at").
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status changes: %w", err)
	}
	return changes, nil
}

func (r *paymentRepository) CollectedTotals(from, to time.Time) (float64, float64, error) {
	type totals struct {
		EUR float64
		SYP float64
	}
	var t totals
	err := r.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount_eur), 0) AS eur, COALESCE(SUM(amount_syp), 0) AS syp").
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			models.PaymentStatusCompleted, from, to).
		Scan(&t).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum collected totals: %w", err)
	}
	return t.EUR, t.SYP, nil
}
