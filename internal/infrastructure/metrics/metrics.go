package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics groups every lifecycle metric of the gateway.
type PaymentMetrics struct {
	PaymentsCreatedTotal       prometheus.CounterVec
	PaymentsCreatedAmountTotal prometheus.CounterVec

	PaymentsCompletedTotal       prometheus.CounterVec
	PaymentsCompletedAmountTotal prometheus.CounterVec

	PaymentsFailedTotal  prometheus.CounterVec
	PaymentsExpiredTotal prometheus.CounterVec
	PaymentsRetriedTotal prometheus.CounterVec

	PendingPaymentsGauge prometheus.GaugeVec

	VerificationPassDuration prometheus.HistogramVec
	OracleErrorsTotal        prometheus.CounterVec

	ValidationRejectionsTotal prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Total number of payment records created",
			},
			[]string{"merchant_id", "crypto_type", "network"},
		),

		PaymentsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_amount_usd_total",
				Help: "Total USD amount of created payments",
			},
			[]string{"merchant_id", "crypto_type"},
		),

		PaymentsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_total",
				Help: "Total number of payments confirmed on chain or approved by admin",
			},
			[]string{"merchant_id", "crypto_type", "resolved_by"},
		),

		PaymentsCompletedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_amount_usd_total",
				Help: "Total USD amount of completed payments",
			},
			[]string{"merchant_id", "crypto_type"},
		),

		PaymentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Total number of failed payments by reason",
			},
			[]string{"merchant_id", "reason"},
		),

		PaymentsExpiredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_expired_total",
				Help: "Total number of payments failed past the payment window",
			},
			[]string{"merchant_id"},
		),

		PaymentsRetriedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_retried_total",
				Help: "Total number of successor payments created via retry",
			},
			[]string{"merchant_id", "crypto_type"},
		),

		PendingPaymentsGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "payments_pending_count",
				Help: "Current number of pending payments",
			},
			[]string{"merchant_id"},
		),

		VerificationPassDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "verification_pass_duration_seconds",
				Help:    "Duration of full verification passes",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),

		OracleErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chain_oracle_errors_total",
				Help: "Transient chain oracle failures (retried on the next pass)",
			},
			[]string{"network"},
		),

		ValidationRejectionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_validation_rejections_total",
				Help: "Validation gate rejections by code",
			},
			[]string{"code"},
		),
	}
}

func (m *PaymentMetrics) RecordCreated(merchantID, cryptoType, network string, amountUSD float64) {
	m.PaymentsCreatedTotal.WithLabelValues(merchantID, cryptoType, network).Inc()
	m.PaymentsCreatedAmountTotal.WithLabelValues(merchantID, cryptoType).Add(amountUSD)
	m.PendingPaymentsGauge.WithLabelValues(merchantID).Inc()
}

func (m *PaymentMetrics) RecordCompleted(merchantID, cryptoType, resolvedBy string, amountUSD float64) {
	m.PaymentsCompletedTotal.WithLabelValues(merchantID, cryptoType, resolvedBy).Inc()
	m.PaymentsCompletedAmountTotal.WithLabelValues(merchantID, cryptoType).Add(amountUSD)
	m.PendingPaymentsGauge.WithLabelValues(merchantID).Dec()
}

func (m *PaymentMetrics) RecordFailed(merchantID, reason string) {
	m.PaymentsFailedTotal.WithLabelValues(merchantID, reason).Inc()
	m.PendingPaymentsGauge.WithLabelValues(merchantID).Dec()
}

func (m *PaymentMetrics) RecordExpired(merchantID string) {
	m.PaymentsExpiredTotal.WithLabelValues(merchantID).Inc()
	m.RecordFailed(merchantID, "expired")
}
