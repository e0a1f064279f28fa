package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(payment *domain.Payment) error {
	paymentModel := mappers.ToGORMPayment(payment)
	if err := r.DB.Create(paymentModel).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(payID string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	if err := r.DB.First(&paymentModel, "id = ?", payID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

func (r *DefaultPaymentRepository) FindPending() ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.DB.
		Where("status = ?", domain.StatusPending).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&paymentModels[i])
	}
	return payments, nil
}

func (r *DefaultPaymentRepository) FindPendingRetry(retryOf string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	err := r.DB.
		Where("retry_of = ? AND status = ?", retryOf, domain.StatusPending).
		First(&paymentModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

// MarkCompleted transitions PENDING -> COMPLETED. The WHERE clause on
// the current status is the single-writer guard: when two writers
// race, exactly one sees RowsAffected == 1.
func (r *DefaultPaymentRepository) MarkCompleted(payID, txHash string) (bool, error) {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", payID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":     domain.StatusCompleted,
			"tx_hash":    txHash,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkFailed transitions PENDING -> FAILED under the same guard.
func (r *DefaultPaymentRepository) MarkFailed(payID, reason string) (bool, error) {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", payID, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":         domain.StatusFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetRetryChain follows retry_of pointers backward. Predecessors are
// fixed at creation, so the walk cannot cycle.
func (r *DefaultPaymentRepository) GetRetryChain(payID string) ([]*domain.Payment, error) {
	var chain []*domain.Payment
	currentID := payID

	for currentID != "" {
		payment, err := r.GetPaymentByID(currentID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, payment)
		currentID = payment.RetryOf
	}

	return chain, nil
}
