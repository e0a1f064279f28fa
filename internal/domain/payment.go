package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusCompleted PaymentStatus = "COMPLETED"
	StatusFailed    PaymentStatus = "FAILED"
)

// PaymentWindow is the wall-clock deadline for a pending payment,
// anchored at CreatedAt. Expiry is always derived from CreatedAt,
// never stored as a countdown.
const PaymentWindow = 10 * time.Minute

const (
	ReasonExpired         = "expired"
	ReasonRejectedByAdmin = "Rejected by admin"
)

// Payment is the central record of the gateway. Everything except
// Status, FailureReason and TxHash is immutable after creation.
type Payment struct {
	ID            string
	Status        PaymentStatus
	AmountUSD     float64
	AmountCrypto  float64
	CryptoRate    float64
	CryptoType    string
	Network       string
	WalletAddress string

	// Provenance, frozen at creation.
	MerchantID    string
	APIKey        string
	OrderID       string
	ProductID     string
	BusinessEmail string
	CustomerName  string
	CustomerEmail string

	// Point-in-time snapshots from the validation gate. Later
	// deactivation of the order or API key does not touch an
	// in-flight payment.
	OrderActive bool
	APIActive   bool

	FailureReason string
	TxHash        string

	// RetryOf links a successor payment to the terminal record it
	// replaces. The pointer only ever goes backward.
	RetryOf string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Payment) Deadline() time.Time {
	return p.CreatedAt.Add(PaymentWindow)
}

func (p *Payment) Remaining(now time.Time) time.Duration {
	return p.Deadline().Sub(now)
}

// IsExpired reports whether the payment window has elapsed. Readers
// treat this as advisory; only the verification pass commits the
// expiry transition.
func (p *Payment) IsExpired(now time.Time) bool {
	return p.Remaining(now) <= 0
}

func (p *Payment) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusFailed
}

// PaymentURI renders the string handed to the external QR renderer.
func (p *Payment) PaymentURI() string {
	amount := strconv.FormatFloat(p.AmountCrypto, 'f', -1, 64)
	return fmt.Sprintf("%s:%s?amount=%s", uriScheme(p.CryptoType), p.WalletAddress, amount)
}

func uriScheme(coinType string) string {
	switch strings.ToUpper(coinType) {
	case "BTC":
		return "bitcoin"
	case "ETH":
		return "ethereum"
	case "LTC":
		return "litecoin"
	default:
		return strings.ToLower(coinType)
	}
}
