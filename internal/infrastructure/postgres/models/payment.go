package models

import (
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
)

type PaymentModel struct {
	ID            string               `gorm:"primaryKey;type:uuid"`
	Status        domain.PaymentStatus `gorm:"index:idx_status_created"`
	AmountUSD     float64              `gorm:"not null"`
	AmountCrypto  float64              `gorm:"not null"`
	CryptoRate    float64
	CryptoType    string `gorm:"not null"`
	Network       string `gorm:"not null"`
	WalletAddress string `gorm:"not null"`

	MerchantID    string `gorm:"index"`
	APIKey        string `gorm:"index"`
	OrderID       string `gorm:"index"`
	ProductID     string
	BusinessEmail string
	CustomerName  string
	CustomerEmail string

	OrderActive bool
	APIActive   bool

	FailureReason string
	TxHash        string

	RetryOf *string `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"index:idx_status_created"`
	UpdatedAt time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
