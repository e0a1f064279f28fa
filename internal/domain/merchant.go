package domain

import "time"

// MerchantOrder is the merchant-side order a payment link points at.
// Owned by the merchant store; this service only reads it.
type MerchantOrder struct {
	ID            string
	MerchantID    string
	ProductID     string
	ProductName   string
	AmountUSD     float64
	BusinessEmail string
	IsActive      bool
	IsCancelled   bool
}

type APIStatus struct {
	Key        string
	MerchantID string
	IsActive   bool
}

// WalletOption is one enabled (coin, network) pair with the merchant
// wallet address deposits for that pair go to.
type WalletOption struct {
	CoinType      string
	Network       string
	WalletAddress string
}

// PayLink is the short shareable code a merchant hands to a customer.
type PayLink struct {
	Code      string
	APIKey    string
	OrderID   string
	CreatedAt time.Time
}

type MerchantStore interface {
	GetOrder(orderID string) (*MerchantOrder, error)
	GetAPIStatus(apiKey string) (*APIStatus, error)
	GetEnabledCryptos(merchantID string) ([]WalletOption, error)

	CreatePayLink(link *PayLink) error
	GetPayLink(code string) (*PayLink, error)
}
