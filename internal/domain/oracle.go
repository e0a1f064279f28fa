package domain

import "context"

// OracleReport is the chain oracle's observation for one address.
// Confirmation and amount thresholds are applied by the caller.
type OracleReport struct {
	Confirmed      bool
	Confirmations  int
	TxHash         string
	ObservedAmount float64
}

// ChainOracle is the external chain-explorer collaborator queried by
// the verification pass. Implementations must honor ctx deadlines so
// one slow lookup cannot stall a whole pass.
type ChainOracle interface {
	CheckPayment(ctx context.Context, address, network string, expectedAmount float64) (*OracleReport, error)
}

// RateSource quotes the USD price of one unit of a coin. The quote is
// frozen into the payment at creation and never recomputed.
type RateSource interface {
	GetUSDPrice(ctx context.Context, coinType string) (float64, error)
}
