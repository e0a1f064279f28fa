package oracle

import (
	"context"
	"fmt"

	"github.com/cryptolink/cryptolink-payment-service/internal/config"
	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	"github.com/go-resty/resty/v2"
)

// HTTPChainOracle queries the external chain-explorer service for
// deposits observed on a wallet address. It never decides payment
// outcomes; thresholds belong to the verification pass.
type HTTPChainOracle struct {
	client *resty.Client
}

type checkPaymentResponse struct {
	Confirmed      bool    `json:"confirmed"`
	Confirmations  int     `json:"confirmations"`
	TxHash         string  `json:"tx_hash"`
	ObservedAmount float64 `json:"observed_amount"`
}

func NewHTTPChainOracle(cfg *config.OracleAPI) *HTTPChainOracle {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("X-Api-Key", cfg.APIKey)
	}

	return &HTTPChainOracle{client: client}
}

func (o *HTTPChainOracle) CheckPayment(ctx context.Context, address, network string, expectedAmount float64) (*domain.OracleReport, error) {
	var result checkPaymentResponse

	resp, err := o.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address":         address,
			"network":         network,
			"expected_amount": fmt.Sprintf("%f", expectedAmount),
		}).
		SetResult(&result).
		Get("/v1/chain/check-payment")
	if err != nil {
		return nil, fmt.Errorf("chain oracle request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chain oracle returned %s", resp.Status())
	}

	return &domain.OracleReport{
		Confirmed:      result.Confirmed,
		Confirmations:  result.Confirmations,
		TxHash:         result.TxHash,
		ObservedAmount: result.ObservedAmount,
	}, nil
}
