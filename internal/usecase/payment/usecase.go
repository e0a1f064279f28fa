package usecase

import (
	"context"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	publisher "github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/kafka"
	"github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	ValidatePaymentRequest(apiKey, orderID string) (*paymentdto.ValidationOutput, error)
	CreatePayLink(apiKey, orderID string) (*domain.PayLink, error)
	ResolvePayLink(code string) (*paymentdto.ValidationOutput, error)

	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error)
	RetryPayment(ctx context.Context, input *paymentdto.RetryPaymentInput) (*paymentdto.PaymentOutput, error)

	GetPaymentDetails(payID string) (*paymentdto.PaymentOutput, error)
	GetPaymentStatus(payID string) (*paymentdto.StatusOutput, error)
	GetRetryChain(payID string) ([]*paymentdto.PaymentOutput, error)

	AdminApprove(payID, txHash string) (paymentdto.OverrideOutcome, error)
	AdminReject(payID, reason string) (paymentdto.OverrideOutcome, error)

	RunVerificationPass(ctx context.Context, trigger string) (*paymentdto.VerificationPassOutput, error)
	StartVerificationWorker(ctx context.Context, interval time.Duration)
}

// EventPublisher is the slice of the kafka publisher the usecase needs.
type EventPublisher interface {
	PublishPayment(event publisher.PaymentEvent) error
}

// VerificationRules are the thresholds the verification pass applies
// on top of raw oracle observations.
type VerificationRules struct {
	MinConfirmations int
	AmountTolerance  float64
	RecordTimeout    time.Duration
}

type DefaultPaymentUsecase struct {
	PaymentRepo   domain.PaymentRepository
	MerchantStore domain.MerchantStore
	Oracle        domain.ChainOracle
	Rates         domain.RateSource
	Publisher     EventPublisher
	Metrics       *metrics.PaymentMetrics
	Rules         VerificationRules

	// now is swappable so expiry scenarios are testable against a
	// fixed clock.
	now func() time.Time

	// newLinkCode mints short public pay-link codes.
	newLinkCode func() string
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	merchantStore domain.MerchantStore,
	oracle domain.ChainOracle,
	rates domain.RateSource,
	eventPublisher EventPublisher,
	paymentMetrics *metrics.PaymentMetrics,
	rules VerificationRules) *DefaultPaymentUsecase {

	if rules.MinConfirmations <= 0 {
		rules.MinConfirmations = 1
	}
	if rules.RecordTimeout <= 0 {
		rules.RecordTimeout = 10 * time.Second
	}

	return &DefaultPaymentUsecase{
		PaymentRepo:   paymentRepo,
		MerchantStore: merchantStore,
		Oracle:        oracle,
		Rates:         rates,
		Publisher:     eventPublisher,
		Metrics:       paymentMetrics,
		Rules:         rules,
		now:           time.Now,
		newLinkCode:   mustLinkCodeGenerator(),
	}
}
