package usecase

import (
	"context"
	"log/slog"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

// RetryPayment creates a successor record for a failed payment. The
// predecessor is never touched: history stays immutable and the chain
// is reconstructable by walking retry_of backward. The validation
// gate runs again at retry time, so an order deactivated since the
// original attempt rejects the retry.
func (uc *DefaultPaymentUsecase) RetryPayment(ctx context.Context, input *paymentdto.RetryPaymentInput) (*paymentdto.PaymentOutput, error) {
	predecessor, err := uc.PaymentRepo.GetPaymentByID(input.OldPayID)
	if err != nil {
		return nil, err
	}

	if predecessor.Status == domain.StatusPending {
		return nil, domain.ErrRetryStillPending
	}
	if predecessor.Status != domain.StatusFailed {
		return nil, domain.ErrRetryNotFailed
	}

	// At most one pending successor per predecessor.
	inFlight, err := uc.PaymentRepo.FindPendingRetry(predecessor.ID)
	if err != nil {
		return nil, err
	}
	if inFlight != nil {
		return nil, domain.ErrRetryInFlight
	}

	out, err := uc.createPayment(ctx, &paymentdto.CreatePaymentInput{
		APIKey:   predecessor.APIKey,
		OrderID:  predecessor.OrderID,
		CoinType: input.CoinType,
		Network:  input.Network,
		Buyer:    input.Buyer,
	}, predecessor.ID)
	if err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.PaymentsRetriedTotal.WithLabelValues(out.Payment.MerchantID, out.Payment.CryptoType).Inc()
	}

	slog.Info("payment retried",
		"old_pay_id", predecessor.ID,
		"new_pay_id", out.Payment.ID,
	)

	return out, nil
}
