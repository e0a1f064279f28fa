package repository

import (
	"errors"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultMerchantRepository is the read side of the merchant store.
// Address and order management live in the merchant backoffice; this
// service only snapshots their state.
type DefaultMerchantRepository struct {
	DB *gorm.DB
}

func NewDefaultMerchantRepository(db *gorm.DB) *DefaultMerchantRepository {
	return &DefaultMerchantRepository{DB: db}
}

func (r *DefaultMerchantRepository) GetOrder(orderID string) (*domain.MerchantOrder, error) {
	var orderModel models.MerchantOrderModel
	if err := r.DB.First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return &domain.MerchantOrder{
		ID:            orderModel.ID,
		MerchantID:    orderModel.MerchantID,
		ProductID:     orderModel.ProductID,
		ProductName:   orderModel.ProductName,
		AmountUSD:     orderModel.AmountUSD,
		BusinessEmail: orderModel.BusinessEmail,
		IsActive:      orderModel.IsActive,
		IsCancelled:   orderModel.IsCancelled,
	}, nil
}

func (r *DefaultMerchantRepository) GetAPIStatus(apiKey string) (*domain.APIStatus, error) {
	var statusModel models.APIStatusModel
	if err := r.DB.First(&statusModel, "key = ?", apiKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return &domain.APIStatus{
		Key:        statusModel.Key,
		MerchantID: statusModel.MerchantID,
		IsActive:   statusModel.IsActive,
	}, nil
}

func (r *DefaultMerchantRepository) GetEnabledCryptos(merchantID string) ([]domain.WalletOption, error) {
	var optionModels []models.WalletOptionModel
	if err := r.DB.
		Where("merchant_id = ? AND enabled = ?", merchantID, true).
		Find(&optionModels).Error; err != nil {
		return nil, err
	}

	options := make([]domain.WalletOption, len(optionModels))
	for i, m := range optionModels {
		options[i] = domain.WalletOption{
			CoinType:      m.CoinType,
			Network:       m.Network,
			WalletAddress: m.WalletAddress,
		}
	}
	return options, nil
}

func (r *DefaultMerchantRepository) CreatePayLink(link *domain.PayLink) error {
	return r.DB.Create(&models.PayLinkModel{
		Code:      link.Code,
		APIKey:    link.APIKey,
		OrderID:   link.OrderID,
		CreatedAt: link.CreatedAt,
	}).Error
}

func (r *DefaultMerchantRepository) GetPayLink(code string) (*domain.PayLink, error) {
	var linkModel models.PayLinkModel
	if err := r.DB.First(&linkModel, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayLinkNotFound
		}
		return nil, err
	}

	return &domain.PayLink{
		Code:      linkModel.Code,
		APIKey:    linkModel.APIKey,
		OrderID:   linkModel.OrderID,
		CreatedAt: linkModel.CreatedAt,
	}, nil
}
