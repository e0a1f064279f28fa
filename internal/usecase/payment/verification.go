package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

// RunVerificationPass scans every pending record once. Records past
// the payment window are failed with reason "expired"; the rest are
// checked against the chain oracle and completed on a confirmed,
// amount-matching deposit. Safe to run concurrently with itself and
// with admin overrides: every transition goes through the conditional
// update, so a lost race is an observed no-op, never a double
// transition.
func (uc *DefaultPaymentUsecase) RunVerificationPass(ctx context.Context, trigger string) (*paymentdto.VerificationPassOutput, error) {
	start := time.Now()

	pending, err := uc.PaymentRepo.FindPending()
	if err != nil {
		return nil, err
	}

	out := &paymentdto.VerificationPassOutput{}
	for _, payment := range pending {
		if ctx.Err() != nil {
			break
		}
		out.Checked++
		uc.verifyOne(ctx, payment, out)
	}

	if uc.Metrics != nil {
		uc.Metrics.VerificationPassDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())
	}

	slog.Info("verification pass finished",
		"trigger", trigger,
		"checked", out.Checked,
		"completed", out.Completed,
		"expired", out.Expired,
		"elapsed", time.Since(start),
	)

	return out, nil
}

// verifyOne drives at most one transition for one record. Oracle
// errors are transient: the record stays pending and is re-checked on
// the next pass.
func (uc *DefaultPaymentUsecase) verifyOne(ctx context.Context, payment *domain.Payment, out *paymentdto.VerificationPassOutput) {
	if payment.IsExpired(uc.now()) {
		ok, err := uc.PaymentRepo.MarkFailed(payment.ID, domain.ReasonExpired)
		if err != nil {
			slog.Error("failed to commit expiry", "pay_id", payment.ID, "error", err.Error())
			return
		}
		if !ok {
			slog.Info("expiry skipped, payment already resolved", "pay_id", payment.ID)
			return
		}
		out.Expired++
		if uc.Metrics != nil {
			uc.Metrics.RecordExpired(payment.MerchantID)
		}
		payment.Status = domain.StatusFailed
		payment.FailureReason = domain.ReasonExpired
		uc.publishEvent(payment, "expired")
		return
	}

	// Per-record timeout so one slow chain query cannot stall the
	// rest of the batch.
	recordCtx, cancel := context.WithTimeout(ctx, uc.Rules.RecordTimeout)
	defer cancel()

	report, err := uc.Oracle.CheckPayment(recordCtx, payment.WalletAddress, payment.Network, payment.AmountCrypto)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.OracleErrorsTotal.WithLabelValues(payment.Network).Inc()
		}
		slog.Warn("chain oracle check failed, will retry next pass", "pay_id", payment.ID, "error", err.Error())
		return
	}

	if !report.Confirmed || report.Confirmations < uc.Rules.MinConfirmations {
		return
	}
	if !amountMatches(report.ObservedAmount, payment.AmountCrypto, uc.Rules.AmountTolerance) {
		slog.Warn("observed deposit outside tolerance",
			"pay_id", payment.ID,
			"expected", payment.AmountCrypto,
			"observed", report.ObservedAmount,
		)
		return
	}

	ok, err := uc.PaymentRepo.MarkCompleted(payment.ID, report.TxHash)
	if err != nil {
		slog.Error("failed to complete payment", "pay_id", payment.ID, "error", err.Error())
		return
	}
	if !ok {
		slog.Info("completion skipped, payment already resolved", "pay_id", payment.ID)
		return
	}

	out.Completed++
	if uc.Metrics != nil {
		uc.Metrics.RecordCompleted(payment.MerchantID, payment.CryptoType, "verification", payment.AmountUSD)
	}
	payment.Status = domain.StatusCompleted
	payment.TxHash = report.TxHash
	uc.publishEvent(payment, "completed")
}

func amountMatches(observed, expected, tolerance float64) bool {
	if expected == 0 {
		return false
	}
	return math.Abs(observed-expected)/expected <= tolerance
}

// StartVerificationWorker runs interval passes until ctx is done.
// Operator-triggered runs share RunVerificationPass and therefore the
// same per-record guard.
func (uc *DefaultPaymentUsecase) StartVerificationWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.RunVerificationPass(ctx, "interval"); err != nil {
				slog.Error("verification pass failed", "error", err.Error())
			}
		}
	}
}
