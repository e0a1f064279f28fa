package usecase

import (
	"errors"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
	"github.com/jaevor/go-nanoid"
)

// ValidatePaymentRequest runs the gate checks in a fixed sequence and
// reports the first failing condition, so the caller can render a
// precise message. Read-only.
func (uc *DefaultPaymentUsecase) ValidatePaymentRequest(apiKey, orderID string) (*paymentdto.ValidationOutput, error) {
	order, err := uc.MerchantStore.GetOrder(orderID)
	if err != nil {
		return nil, uc.rejected(err)
	}

	apiStatus, err := uc.MerchantStore.GetAPIStatus(apiKey)
	if err != nil {
		return nil, uc.rejected(err)
	}

	if !order.IsActive {
		return nil, uc.rejected(domain.ErrOrderDeactivated)
	}
	if !apiStatus.IsActive {
		return nil, uc.rejected(domain.ErrAPIPaused)
	}
	if order.IsCancelled {
		return nil, uc.rejected(domain.ErrOrderCancelled)
	}

	enabledCryptos, err := uc.MerchantStore.GetEnabledCryptos(apiStatus.MerchantID)
	if err != nil {
		return nil, err
	}
	if len(enabledCryptos) == 0 {
		return nil, uc.rejected(domain.ErrNoPaymentMethods)
	}

	return &paymentdto.ValidationOutput{
		Order:          order,
		APIStatus:      apiStatus,
		EnabledCryptos: enabledCryptos,
	}, nil
}

// CreatePayLink mints a short shareable code for (apiKey, orderID)
// after the gate passes, so merchants cannot hand out links to dead
// orders.
func (uc *DefaultPaymentUsecase) CreatePayLink(apiKey, orderID string) (*domain.PayLink, error) {
	if _, err := uc.ValidatePaymentRequest(apiKey, orderID); err != nil {
		return nil, err
	}

	link := &domain.PayLink{
		Code:      uc.newLinkCode(),
		APIKey:    apiKey,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}
	if err := uc.MerchantStore.CreatePayLink(link); err != nil {
		return nil, err
	}
	return link, nil
}

// ResolvePayLink re-runs the gate at link-open time; a link to an
// order deactivated since creation rejects like any other request.
func (uc *DefaultPaymentUsecase) ResolvePayLink(code string) (*paymentdto.ValidationOutput, error) {
	link, err := uc.MerchantStore.GetPayLink(code)
	if err != nil {
		return nil, err
	}
	return uc.ValidatePaymentRequest(link.APIKey, link.OrderID)
}

func (uc *DefaultPaymentUsecase) rejected(err error) error {
	var verr *domain.ValidationError
	if uc.Metrics != nil && errors.As(err, &verr) {
		uc.Metrics.ValidationRejectionsTotal.WithLabelValues(string(verr.Code)).Inc()
	}
	return err
}

func mustLinkCodeGenerator() func() string {
	generate, err := nanoid.Standard(12)
	if err != nil {
		panic(err)
	}
	return generate
}
