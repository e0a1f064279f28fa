package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
	"github.com/stretchr/testify/require"
)

func TestVerificationCompletesConfirmedPayment(t *testing.T) {
	uc, repo, _, oracle, clock := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	clock.Advance(90 * time.Second)
	oracle.reports[testAddress] = &domain.OracleReport{
		Confirmed:      true,
		Confirmations:  2,
		TxHash:         "f4184fc596403b9d638783cf57adfe4c75c605f6356fbc91338530e9831e9e16",
		ObservedAmount: 0.002,
	}

	pass, err := uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Equal(t, 1, pass.Checked)
	require.Equal(t, 1, pass.Completed)
	require.Zero(t, pass.Expired)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, stored.Status)
	require.Equal(t, "f4184fc596403b9d638783cf57adfe4c75c605f6356fbc91338530e9831e9e16", stored.TxHash)
}

func TestVerificationExpiresOverduePayment(t *testing.T) {
	uc, repo, _, _, clock := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	clock.Advance(601 * time.Second)

	pass, err := uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Equal(t, 1, pass.Checked)
	require.Equal(t, 1, pass.Expired)
	require.Zero(t, pass.Completed)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, stored.Status)
	require.Equal(t, domain.ReasonExpired, stored.FailureReason)
}

func TestVerificationLeavesUnconfirmedPending(t *testing.T) {
	tests := []struct {
		name   string
		report domain.OracleReport
	}{
		{
			name:   "no deposit observed",
			report: domain.OracleReport{},
		},
		{
			name: "below confirmation threshold",
			report: domain.OracleReport{
				Confirmed:      true,
				Confirmations:  0,
				ObservedAmount: 0.002,
			},
		},
		{
			name: "amount outside tolerance",
			report: domain.OracleReport{
				Confirmed:      true,
				Confirmations:  3,
				TxHash:         "ab12",
				ObservedAmount: 0.0015,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _, oracle, _ := newTestUsecase()

			out, err := uc.CreatePayment(context.Background(), createInput())
			require.NoError(t, err)

			report := tt.report
			oracle.reports[testAddress] = &report

			pass, err := uc.RunVerificationPass(context.Background(), "interval")
			require.NoError(t, err)
			require.Equal(t, 1, pass.Checked)
			require.Zero(t, pass.Completed)

			stored, err := repo.GetPaymentByID(out.Payment.ID)
			require.NoError(t, err)
			require.Equal(t, domain.StatusPending, stored.Status)
		})
	}
}

func TestVerificationAcceptsAmountWithinTolerance(t *testing.T) {
	uc, repo, _, oracle, _ := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	// 0.4% under the expected 0.002, inside the 0.5% tolerance.
	oracle.reports[testAddress] = &domain.OracleReport{
		Confirmed:      true,
		Confirmations:  1,
		TxHash:         "cd34",
		ObservedAmount: 0.001992,
	}

	_, err = uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, stored.Status)
}

func TestVerificationOracleErrorIsTransient(t *testing.T) {
	uc, repo, _, oracle, _ := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	oracle.err = errors.New("oracle unavailable")

	pass, err := uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Equal(t, 1, pass.Checked)
	require.Zero(t, pass.Completed)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, stored.Status)

	// Oracle recovers; the next pass resolves the record.
	oracle.err = nil
	oracle.reports[testAddress] = &domain.OracleReport{
		Confirmed:      true,
		Confirmations:  1,
		TxHash:         "ef56",
		ObservedAmount: 0.002,
	}

	pass, err = uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Equal(t, 1, pass.Completed)
}

func TestVerificationSecondPassIsNoOp(t *testing.T) {
	uc, _, _, oracle, _ := newTestUsecase()

	_, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	oracle.reports[testAddress] = &domain.OracleReport{
		Confirmed:      true,
		Confirmations:  1,
		TxHash:         "ab12",
		ObservedAmount: 0.002,
	}

	first, err := uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Equal(t, 1, first.Completed)

	second, err := uc.RunVerificationPass(context.Background(), "manual")
	require.NoError(t, err)
	require.Zero(t, second.Checked, "resolved records leave the pending scan")
	require.Zero(t, second.Completed)
}

func TestVerificationLosesRaceToAdmin(t *testing.T) {
	uc, repo, _, oracle, clock := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	clock.Advance(601 * time.Second)

	// The record is past the window but an admin rejects it between
	// the pending scan and the expiry commit. The pass must observe
	// the lost race as a no-op, not overwrite the reason.
	outcome, err := uc.AdminReject(out.Payment.ID, "duplicate order")
	require.NoError(t, err)
	require.Equal(t, paymentdto.OverrideApplied, outcome)

	pass, err := uc.RunVerificationPass(context.Background(), "interval")
	require.NoError(t, err)
	require.Zero(t, pass.Expired)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, stored.Status)
	require.Equal(t, "duplicate order", stored.FailureReason)
	_ = oracle
}

func TestTransitionsAreMonotonic(t *testing.T) {
	uc, repo, _, _, _ := newTestUsecase()

	out, err := uc.CreatePayment(context.Background(), createInput())
	require.NoError(t, err)

	outcome, err := uc.AdminApprove(out.Payment.ID, "ab12")
	require.NoError(t, err)
	require.Equal(t, paymentdto.OverrideApplied, outcome)

	// A terminal record accepts no further transitions, whatever the
	// writer.
	ok, err := repo.MarkFailed(out.Payment.ID, domain.ReasonExpired)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.MarkCompleted(out.Payment.ID, "other")
	require.NoError(t, err)
	require.False(t, ok)

	stored, err := repo.GetPaymentByID(out.Payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, stored.Status)
	require.Equal(t, "ab12", stored.TxHash)
}
