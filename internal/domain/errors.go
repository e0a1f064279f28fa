package domain

import "errors"

// ValidationCode identifies the first failing check of the validation
// gate. Codes are part of the API contract and rendered verbatim.
type ValidationCode string

const (
	CodeOrderDeactivated    ValidationCode = "ORDER_DEACTIVATED"
	CodeAPIPaused           ValidationCode = "API_PAUSED"
	CodeOrderCancelled      ValidationCode = "ORDER_CANCELLED"
	CodeNotFound            ValidationCode = "NOT_FOUND"
	CodeNoPaymentMethods    ValidationCode = "NO_PAYMENT_METHODS"
	CodeWalletNotConfigured ValidationCode = "WALLET_NOT_CONFIGURED"
)

type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

var (
	ErrOrderDeactivated = &ValidationError{CodeOrderDeactivated, "order has been deactivated by the merchant"}
	ErrAPIPaused        = &ValidationError{CodeAPIPaused, "merchant API key is paused"}
	ErrOrderCancelled   = &ValidationError{CodeOrderCancelled, "order has been cancelled"}
	ErrOrderNotFound    = &ValidationError{CodeNotFound, "order not found"}
	ErrNoPaymentMethods = &ValidationError{CodeNoPaymentMethods, "merchant has no enabled cryptocurrencies"}

	// ErrWalletNotConfigured is a merchant configuration gap, not a
	// request error, and is surfaced with its own code.
	ErrWalletNotConfigured = &ValidationError{CodeWalletNotConfigured, "no wallet address configured for the requested coin and network"}
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrAlreadyResolved      = errors.New("payment already resolved")
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
	ErrRetryStillPending    = errors.New("cannot retry a payment that is still pending")
	ErrRetryNotFailed       = errors.New("only failed payments can be retried")
	ErrRetryInFlight        = errors.New("payment already has a pending retry")
	ErrPayLinkNotFound      = errors.New("payment link not found")
	ErrPaymentExpired       = errors.New("payment window has elapsed")
)
