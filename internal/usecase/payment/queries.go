package usecase

import (
	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) GetPaymentDetails(payID string) (*paymentdto.PaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(payID)
	if err != nil {
		return nil, err
	}
	return uc.toPaymentOutput(payment), nil
}

func (uc *DefaultPaymentUsecase) GetPaymentStatus(payID string) (*paymentdto.StatusOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(payID)
	if err != nil {
		return nil, err
	}

	out := &paymentdto.StatusOutput{
		PayID:  payment.ID,
		Status: payment.Status,
	}
	if payment.Status == domain.StatusPending {
		now := uc.now()
		out.Expired = payment.IsExpired(now)
		out.ExpiresInMs = payment.Remaining(now).Milliseconds()
		if out.ExpiresInMs < 0 {
			out.ExpiresInMs = 0
		}
	}
	return out, nil
}

func (uc *DefaultPaymentUsecase) GetRetryChain(payID string) ([]*paymentdto.PaymentOutput, error) {
	chain, err := uc.PaymentRepo.GetRetryChain(payID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*paymentdto.PaymentOutput, len(chain))
	for i, payment := range chain {
		outputs[i] = uc.toPaymentOutput(payment)
	}
	return outputs, nil
}

func (uc *DefaultPaymentUsecase) toPaymentOutput(payment *domain.Payment) *paymentdto.PaymentOutput {
	out := &paymentdto.PaymentOutput{
		Payment:    *payment,
		PaymentURI: payment.PaymentURI(),
	}
	if payment.Status == domain.StatusPending {
		now := uc.now()
		out.Expired = payment.IsExpired(now)
		out.ExpiresInMs = payment.Remaining(now).Milliseconds()
		if out.ExpiresInMs < 0 {
			out.ExpiresInMs = 0
		}
	}
	return out
}
