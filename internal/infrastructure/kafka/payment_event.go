package publisher

// PaymentEvent is published on every lifecycle transition. Consumers
// are merchant notification and reporting pipelines.
type PaymentEvent struct {
	PayID         string  `json:"pay_id"`
	MerchantID    string  `json:"merchant_id"`
	OrderID       string  `json:"order_id"`
	Event         string  `json:"event"` // created, completed, failed, expired
	Status        string  `json:"status"`
	AmountUSD     float64 `json:"amount_usd"`
	AmountCrypto  float64 `json:"amount_crypto"`
	CryptoType    string  `json:"crypto_type"`
	Network       string  `json:"network"`
	TxHash        string  `json:"tx_hash,omitempty"`
	FailureReason string  `json:"failure_reason,omitempty"`
	RetryOf       string  `json:"retry_of,omitempty"`
}
