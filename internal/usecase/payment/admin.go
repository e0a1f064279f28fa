package usecase

import (
	"log/slog"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

// AdminApprove resolves a pending payment by hand, typically after an
// out-of-band confirmation. It shares the conditional-update guard
// with the verification pass: when automatic verification resolved
// the record first, the override reports "already resolved" instead
// of overwriting anything.
func (uc *DefaultPaymentUsecase) AdminApprove(payID, txHash string) (paymentdto.OverrideOutcome, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(payID)
	if err != nil {
		return "", err
	}
	if payment.IsTerminal() {
		return paymentdto.OverrideAlreadyResolved, nil
	}
	if payment.IsExpired(uc.now()) {
		// Past the window the only legal transition is failed/expired;
		// the customer must retry instead.
		return "", domain.ErrPaymentExpired
	}

	ok, err := uc.PaymentRepo.MarkCompleted(payID, txHash)
	if err != nil {
		return "", err
	}
	if !ok {
		slog.Info("admin approve lost the race", "pay_id", payID)
		return paymentdto.OverrideAlreadyResolved, nil
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordCompleted(payment.MerchantID, payment.CryptoType, "admin", payment.AmountUSD)
	}
	payment.Status = domain.StatusCompleted
	payment.TxHash = txHash
	uc.publishEvent(payment, "completed")

	slog.Info("payment approved by admin", "pay_id", payID, "tx_hash", txHash)
	return paymentdto.OverrideApplied, nil
}

// AdminReject fails a pending payment with the given reason
// (default "Rejected by admin") under the same guard.
func (uc *DefaultPaymentUsecase) AdminReject(payID, reason string) (paymentdto.OverrideOutcome, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(payID)
	if err != nil {
		return "", err
	}
	if payment.IsTerminal() {
		return paymentdto.OverrideAlreadyResolved, nil
	}

	if reason == "" {
		reason = domain.ReasonRejectedByAdmin
	}

	ok, err := uc.PaymentRepo.MarkFailed(payID, reason)
	if err != nil {
		return "", err
	}
	if !ok {
		slog.Info("admin reject lost the race", "pay_id", payID)
		return paymentdto.OverrideAlreadyResolved, nil
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordFailed(payment.MerchantID, reason)
	}
	payment.Status = domain.StatusFailed
	payment.FailureReason = reason
	uc.publishEvent(payment, "failed")

	slog.Info("payment rejected by admin", "pay_id", payID, "reason", reason)
	return paymentdto.OverrideApplied, nil
}
