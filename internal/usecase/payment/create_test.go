package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
	"github.com/stretchr/testify/require"
)

func createInput() *paymentdto.CreatePaymentInput {
	return &paymentdto.CreatePaymentInput{
		APIKey:   testAPIKey,
		OrderID:  testOrderID,
		CoinType: "BTC",
		Network:  "mainnet",
		Buyer: paymentdto.BuyerInfo{
			CustomerName:  "Ada Customer",
			CustomerEmail: "ada@example.com",
		},
	}
}

func TestCreatePayment(t *testing.T) {
	uc, repo, _, _, clock := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	payment := out.Payment
	require.NotEmpty(t, payment.ID)
	require.Equal(t, domain.StatusPending, payment.Status)
	require.Equal(t, 100.0, payment.AmountUSD)
	// 100 USD at 50000 USD/BTC, frozen at creation time.
	require.Equal(t, 0.002, payment.AmountCrypto)
	require.Equal(t, 50000.0, payment.CryptoRate)
	require.Equal(t, "BTC", payment.CryptoType)
	require.Equal(t, testAddress, payment.WalletAddress)
	require.Equal(t, testMerchant, payment.MerchantID)
	require.Equal(t, "prod-1", payment.ProductID)
	require.True(t, payment.OrderActive)
	require.True(t, payment.APIActive)
	require.Empty(t, payment.RetryOf)
	require.Equal(t, clock.Now(), payment.CreatedAt)

	require.Equal(t, "bitcoin:"+testAddress+"?amount=0.002", out.PaymentURI)
	require.Equal(t, domain.PaymentWindow.Milliseconds(), out.ExpiresInMs)
	require.False(t, out.Expired)

	stored, err := repo.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, stored.Status)
}

func TestCreatePaymentRateFrozenAfterCreation(t *testing.T) {
	uc, repo, _, _, _ := newTestUsecase()
	rates := uc.Rates.(*fakeRates)

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	// A later market move must not touch the stored conversion.
	rates.prices["BTC"] = 65000

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, 0.002, stored.AmountCrypto)
	require.Equal(t, 50000.0, stored.CryptoRate)
}

func TestCreatePaymentCoinTypeCaseInsensitive(t *testing.T) {
	uc, _, _, _, _ := newTestUsecase()

	input := createInput()
	input.CoinType = "btc"

	out, err := uc.CreatePayment(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "BTC", out.Payment.CryptoType)
	require.Equal(t, testAddress, out.Payment.WalletAddress)
}

func TestCreatePaymentWalletNotConfigured(t *testing.T) {
	uc, _, _, _, _ := newTestUsecase()

	input := createInput()
	input.CoinType = "LTC"

	_, err := uc.CreatePayment(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrWalletNotConfigured)
}

func TestCreatePaymentRejectsEmailAsWalletAddress(t *testing.T) {
	uc, _, store, _, _ := newTestUsecase()

	store.cryptos[testMerchant] = []domain.WalletOption{
		{CoinType: "BTC", Network: "mainnet", WalletAddress: "owner@example.com"},
	}

	_, err := uc.CreatePayment(context.Background(), createInput())
	require.ErrorIs(t, err, domain.ErrInvalidWalletAddress)
}

func TestCreatePaymentGate(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(store *fakeMerchantStore)
		wantErr error
	}{
		{
			name: "deactivated order",
			prepare: func(store *fakeMerchantStore) {
				store.orders[testOrderID].IsActive = false
			},
			wantErr: domain.ErrOrderDeactivated,
		},
		{
			name: "deactivated order wins over paused key",
			prepare: func(store *fakeMerchantStore) {
				store.orders[testOrderID].IsActive = false
				store.apiStatuses[testAPIKey].IsActive = false
			},
			wantErr: domain.ErrOrderDeactivated,
		},
		{
			name: "paused api key",
			prepare: func(store *fakeMerchantStore) {
				store.apiStatuses[testAPIKey].IsActive = false
			},
			wantErr: domain.ErrAPIPaused,
		},
		{
			name: "cancelled order",
			prepare: func(store *fakeMerchantStore) {
				store.orders[testOrderID].IsCancelled = true
			},
			wantErr: domain.ErrOrderCancelled,
		},
		{
			name: "unknown order",
			prepare: func(store *fakeMerchantStore) {
				delete(store.orders, testOrderID)
			},
			wantErr: domain.ErrOrderNotFound,
		},
		{
			name: "no enabled cryptos",
			prepare: func(store *fakeMerchantStore) {
				store.cryptos[testMerchant] = nil
			},
			wantErr: domain.ErrNoPaymentMethods,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, store, _, _ := newTestUsecase()
			tt.prepare(store)

			_, err := uc.CreatePayment(context.Background(), createInput())
			require.ErrorIs(t, err, tt.wantErr)

			pending, err := repo.FindPending()
			require.NoError(t, err)
			require.Empty(t, pending, "rejected request must not create a record")
		})
	}
}

func TestGetPaymentStatusCountdown(t *testing.T) {
	uc, _, _, _, clock := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)

	status, err := uc.GetPaymentStatus(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, status.Status)
	require.False(t, status.Expired)
	require.Equal(t, (6 * time.Minute).Milliseconds(), status.ExpiresInMs)

	clock.Advance(7 * time.Minute)

	status, err = uc.GetPaymentStatus(out.Payment.ID)
	require.NoError(t, err)
	// Expired is advisory: the stored status stays pending until a
	// verification pass commits the transition.
	require.Equal(t, domain.StatusPending, status.Status)
	require.True(t, status.Expired)
	require.Zero(t, status.ExpiresInMs)
}

func TestGetPaymentStatusNotFound(t *testing.T) {
	uc, _, _, _, _ := newTestUsecase()

	_, err := uc.GetPaymentStatus("missing")
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)
}
