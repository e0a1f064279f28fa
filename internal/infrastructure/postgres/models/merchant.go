package models

import "time"

type MerchantOrderModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	MerchantID    string `gorm:"index:idx_merchant_orders"`
	ProductID     string
	ProductName   string
	AmountUSD     float64 `gorm:"not null"`
	BusinessEmail string  `gorm:"not null"`
	IsActive      bool    `gorm:"default:true"`
	IsCancelled   bool    `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (MerchantOrderModel) TableName() string {
	return "merchant_orders"
}

type APIStatusModel struct {
	Key        string `gorm:"primaryKey"`
	MerchantID string `gorm:"index"`
	IsActive   bool   `gorm:"default:true"`
	UpdatedAt  time.Time
}

func (APIStatusModel) TableName() string {
	return "api_statuses"
}

type WalletOptionModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	MerchantID    string `gorm:"index:idx_wallet_pair"`
	CoinType      string `gorm:"index:idx_wallet_pair"`
	Network       string `gorm:"index:idx_wallet_pair"`
	WalletAddress string `gorm:"not null"`
	Enabled       bool   `gorm:"default:true"`
	UpdatedAt     time.Time
}

func (WalletOptionModel) TableName() string {
	return "wallet_options"
}

type PayLinkModel struct {
	Code      string `gorm:"primaryKey"`
	APIKey    string `gorm:"not null"`
	OrderID   string `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

func (PayLinkModel) TableName() string {
	return "pay_links"
}
