package mappers

import (
	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/postgres/models"
)

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	var retryOf *string
	if payment.RetryOf != "" {
		v := payment.RetryOf
		retryOf = &v
	}

	return &models.PaymentModel{
		ID:            payment.ID,
		Status:        payment.Status,
		AmountUSD:     payment.AmountUSD,
		AmountCrypto:  payment.AmountCrypto,
		CryptoRate:    payment.CryptoRate,
		CryptoType:    payment.CryptoType,
		Network:       payment.Network,
		WalletAddress: payment.WalletAddress,
		MerchantID:    payment.MerchantID,
		APIKey:        payment.APIKey,
		OrderID:       payment.OrderID,
		ProductID:     payment.ProductID,
		BusinessEmail: payment.BusinessEmail,
		CustomerName:  payment.CustomerName,
		CustomerEmail: payment.CustomerEmail,
		OrderActive:   payment.OrderActive,
		APIActive:     payment.APIActive,
		FailureReason: payment.FailureReason,
		TxHash:        payment.TxHash,
		RetryOf:       retryOf,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	retryOf := ""
	if model.RetryOf != nil {
		retryOf = *model.RetryOf
	}

	return &domain.Payment{
		ID:            model.ID,
		Status:        model.Status,
		AmountUSD:     model.AmountUSD,
		AmountCrypto:  model.AmountCrypto,
		CryptoRate:    model.CryptoRate,
		CryptoType:    model.CryptoType,
		Network:       model.Network,
		WalletAddress: model.WalletAddress,
		MerchantID:    model.MerchantID,
		APIKey:        model.APIKey,
		OrderID:       model.OrderID,
		ProductID:     model.ProductID,
		BusinessEmail: model.BusinessEmail,
		CustomerName:  model.CustomerName,
		CustomerEmail: model.CustomerEmail,
		OrderActive:   model.OrderActive,
		APIActive:     model.APIActive,
		FailureReason: model.FailureReason,
		TxHash:        model.TxHash,
		RetryOf:       retryOf,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
