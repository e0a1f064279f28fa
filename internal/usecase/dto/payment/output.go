package paymentdto

import "github.com/cryptolink/cryptolink-payment-service/internal/domain"

type ValidationOutput struct {
	Order          *domain.MerchantOrder
	APIStatus      *domain.APIStatus
	EnabledCryptos []domain.WalletOption
}

// PaymentOutput is the full read model of one record. Expired is
// advisory for pending records: readers render expired UI from it but
// only the verification pass commits the transition.
type PaymentOutput struct {
	Payment     domain.Payment
	PaymentURI  string
	ExpiresInMs int64
	Expired     bool
}

type StatusOutput struct {
	PayID       string
	Status      domain.PaymentStatus
	Expired     bool
	ExpiresInMs int64
}

type VerificationPassOutput struct {
	Checked   int
	Completed int
	Expired   int
}

// OverrideOutcome distinguishes an applied admin override from the
// benign "some other writer got there first" case.
type OverrideOutcome string

const (
	OverrideApplied         OverrideOutcome = "ok"
	OverrideAlreadyResolved OverrideOutcome = "already_resolved"
)
