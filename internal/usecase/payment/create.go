package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	publisher "github.com/cryptolink/cryptolink-payment-service/internal/infrastructure/kafka"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// CreatePayment is the payment factory: validation gate, wallet
// address resolution for the exact (coin, network) pair, and a USD to
// crypto conversion computed once and frozen into the record.
func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error) {
	return uc.createPayment(ctx, input, "")
}

func (uc *DefaultPaymentUsecase) createPayment(ctx context.Context, input *paymentdto.CreatePaymentInput, retryOf string) (*paymentdto.PaymentOutput, error) {
	validated, err := uc.ValidatePaymentRequest(input.APIKey, input.OrderID)
	if err != nil {
		return nil, err
	}

	walletAddress := resolveWalletAddress(validated.EnabledCryptos, input.CoinType, input.Network)
	if walletAddress == "" {
		return nil, uc.rejected(domain.ErrWalletNotConfigured)
	}
	if err := checkWalletAddress(walletAddress, validated.Order.BusinessEmail); err != nil {
		return nil, err
	}

	price, err := uc.Rates.GetUSDPrice(ctx, input.CoinType)
	if err != nil {
		return nil, fmt.Errorf("failed to quote %s rate: %w", input.CoinType, err)
	}
	amountCrypto := roundCrypto(validated.Order.AmountUSD / price)

	payment := &domain.Payment{
		ID:            uuid.New().String(),
		Status:        domain.StatusPending,
		AmountUSD:     validated.Order.AmountUSD,
		AmountCrypto:  amountCrypto,
		CryptoRate:    price,
		CryptoType:    strings.ToUpper(input.CoinType),
		Network:       input.Network,
		WalletAddress: walletAddress,
		MerchantID:    validated.APIStatus.MerchantID,
		APIKey:        input.APIKey,
		OrderID:       input.OrderID,
		ProductID:     validated.Order.ProductID,
		BusinessEmail: validated.Order.BusinessEmail,
		CustomerName:  input.Buyer.CustomerName,
		CustomerEmail: input.Buyer.CustomerEmail,
		OrderActive:   validated.Order.IsActive,
		APIActive:     validated.APIStatus.IsActive,
		RetryOf:       retryOf,
		CreatedAt:     uc.now(),
	}
	payment.UpdatedAt = payment.CreatedAt

	if err := uc.PaymentRepo.CreatePayment(payment); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordCreated(payment.MerchantID, payment.CryptoType, payment.Network, payment.AmountUSD)
	}

	uc.publishEvent(payment, "created")

	slog.Info("payment created",
		"pay_id", payment.ID,
		"merchant_id", payment.MerchantID,
		"crypto_type", payment.CryptoType,
		"network", payment.Network,
		"amount_usd", payment.AmountUSD,
		"retry_of", retryOf,
	)

	return uc.toPaymentOutput(payment), nil
}

func resolveWalletAddress(options []domain.WalletOption, coinType, network string) string {
	for _, opt := range options {
		if strings.EqualFold(opt.CoinType, coinType) && strings.EqualFold(opt.Network, network) {
			return opt.WalletAddress
		}
	}
	return ""
}

// checkWalletAddress rejects misconfigured merchant addresses at
// creation time: a blank address or one that is actually the contact
// email must never reach a pending record.
func checkWalletAddress(address, businessEmail string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.ErrInvalidWalletAddress
	}
	if businessEmail != "" && strings.EqualFold(address, businessEmail) {
		return domain.ErrInvalidWalletAddress
	}
	if strings.Contains(address, "@") {
		return domain.ErrInvalidWalletAddress
	}
	return nil
}

func roundCrypto(amount float64) float64 {
	return math.Round(amount*1e8) / 1e8
}

// publishEvent emits a lifecycle event async; a broker hiccup must
// never fail the transition that already happened.
func (uc *DefaultPaymentUsecase) publishEvent(payment *domain.Payment, event string) {
	if uc.Publisher == nil {
		return
	}
	go func(e publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(e); err != nil {
			slog.Error("failed to publish PaymentEvent", "event", e.Event, "pay_id", e.PayID, "error", err.Error())
		}
	}(publisher.PaymentEvent{
		PayID:         payment.ID,
		MerchantID:    payment.MerchantID,
		OrderID:       payment.OrderID,
		Event:         event,
		Status:        string(payment.Status),
		AmountUSD:     payment.AmountUSD,
		AmountCrypto:  payment.AmountCrypto,
		CryptoType:    payment.CryptoType,
		Network:       payment.Network,
		TxHash:        payment.TxHash,
		FailureReason: payment.FailureReason,
		RetryOf:       payment.RetryOf,
	})
}
