package response

import (
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

type PaymentResponse struct {
	PayID         string    `json:"pay_id"`
	Status        string    `json:"status"`
	AmountUSD     float64   `json:"amount_usd"`
	AmountCrypto  float64   `json:"amount_crypto"`
	CryptoRate    float64   `json:"crypto_rate"`
	CryptoType    string    `json:"crypto_type"`
	Network       string    `json:"network"`
	WalletAddress string    `json:"wallet_address"`
	PaymentURI    string    `json:"payment_uri"`
	OrderID       string    `json:"order_id"`
	ProductID     string    `json:"product_id"`
	TxHash        string    `json:"tx_hash,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	RetryOf       string    `json:"retry_of,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresInMs   int64     `json:"expires_in_ms"`
	Expired       bool      `json:"expired"`
}

type StatusResponse struct {
	PayID       string `json:"pay_id"`
	Status      string `json:"status"`
	Expired     bool   `json:"expired"`
	ExpiresInMs int64  `json:"expires_in_ms"`
}

type ValidationResponse struct {
	OrderID        string         `json:"order_id"`
	MerchantID     string         `json:"merchant_id"`
	ProductName    string         `json:"product_name"`
	AmountUSD      float64        `json:"amount_usd"`
	EnabledCryptos []WalletOption `json:"enabled_cryptos"`
}

type WalletOption struct {
	CoinType string `json:"coin_type"`
	Network  string `json:"network"`
}

type PayLinkResponse struct {
	Code      string    `json:"code"`
	OrderID   string    `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

type OverrideResponse struct {
	PayID  string `json:"pay_id"`
	Result string `json:"result"`
}

type VerificationPassResponse struct {
	Checked   int `json:"checked"`
	Completed int `json:"completed"`
	Expired   int `json:"expired"`
}

func FromPaymentOutput(out *paymentdto.PaymentOutput) PaymentResponse {
	p := out.Payment
	return PaymentResponse{
		PayID:         p.ID,
		Status:        string(p.Status),
		AmountUSD:     p.AmountUSD,
		AmountCrypto:  p.AmountCrypto,
		CryptoRate:    p.CryptoRate,
		CryptoType:    p.CryptoType,
		Network:       p.Network,
		WalletAddress: p.WalletAddress,
		PaymentURI:    out.PaymentURI,
		OrderID:       p.OrderID,
		ProductID:     p.ProductID,
		TxHash:        p.TxHash,
		FailureReason: p.FailureReason,
		RetryOf:       p.RetryOf,
		CreatedAt:     p.CreatedAt,
		ExpiresInMs:   out.ExpiresInMs,
		Expired:       out.Expired,
	}
}

func FromValidationOutput(out *paymentdto.ValidationOutput) ValidationResponse {
	options := make([]WalletOption, len(out.EnabledCryptos))
	for i, opt := range out.EnabledCryptos {
		options[i] = WalletOption{CoinType: opt.CoinType, Network: opt.Network}
	}
	return ValidationResponse{
		OrderID:        out.Order.ID,
		MerchantID:     out.APIStatus.MerchantID,
		ProductName:    out.Order.ProductName,
		AmountUSD:      out.Order.AmountUSD,
		EnabledCryptos: options,
	}
}

func FromPayLink(link *domain.PayLink) PayLinkResponse {
	return PayLinkResponse{
		Code:      link.Code,
		OrderID:   link.OrderID,
		CreatedAt: link.CreatedAt,
	}
}
