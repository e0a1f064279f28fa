package domain

type PaymentRepository interface {
	CreatePayment(payment *Payment) error
	GetPaymentByID(payID string) (*Payment, error)

	// FindPending returns every record still in StatusPending,
	// oldest first. The verification pass decides per record
	// whether to check the chain or commit expiry.
	FindPending() ([]*Payment, error)

	// FindPendingRetry returns the pending successor of the given
	// payment, if one exists.
	FindPendingRetry(retryOf string) (*Payment, error)

	// MarkCompleted and MarkFailed are conditional updates guarded
	// on the record still being PENDING. A false return means some
	// other writer resolved the record first.
	MarkCompleted(payID, txHash string) (bool, error)
	MarkFailed(payID, reason string) (bool, error)

	// GetRetryChain walks retry_of pointers backward, starting at
	// payID, returning the record itself first.
	GetRetryChain(payID string) ([]*Payment, error)
}
