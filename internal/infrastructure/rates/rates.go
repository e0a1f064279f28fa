package rates

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cryptolink/cryptolink-payment-service/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
)

// CachedRateSource quotes USD prices from the exchange API and keeps
// them in redis for a short TTL so a burst of link-opens does not
// hammer the exchange. The quote is frozen into the payment record at
// creation, so a slightly stale cache only shifts which quote gets
// frozen, never what an existing customer owes.
type CachedRateSource struct {
	client *resty.Client
	rdb    *redis.Client
	ttl    time.Duration
}

type quoteResponse struct {
	Symbol   string  `json:"symbol"`
	PriceUSD float64 `json:"price_usd"`
}

func NewCachedRateSource(cfg *config.RatesAPI, rdb *redis.Client) *CachedRateSource {
	return &CachedRateSource{
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(2),
		rdb: rdb,
		ttl: cfg.CacheTTL,
	}
}

func (s *CachedRateSource) GetUSDPrice(ctx context.Context, coinType string) (float64, error) {
	cacheKey := "rates:usd:" + coinType

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		if price, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			return price, nil
		}
	}

	var quote quoteResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", coinType+"/USD").
		SetResult(&quote).
		Get("/v1/rates/quote")
	if err != nil {
		return 0, fmt.Errorf("rates request failed: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("rates API returned %s", resp.Status())
	}
	if quote.PriceUSD <= 0 {
		return 0, fmt.Errorf("rates API returned non-positive price for %s", coinType)
	}

	if err := s.rdb.Set(ctx, cacheKey, strconv.FormatFloat(quote.PriceUSD, 'f', -1, 64), s.ttl).Err(); err != nil {
		slog.Warn("failed to cache rate quote", "coin", coinType, "error", err.Error())
	}

	return quote.PriceUSD, nil
}

// Refresh warms the cache for the given coins. Run from a ticker in
// main so the first customer of a quiet coin does not eat the fetch.
func (s *CachedRateSource) Refresh(ctx context.Context, coinTypes []string) {
	for _, coin := range coinTypes {
		if _, err := s.GetUSDPrice(ctx, coin); err != nil {
			slog.Error("rate refresh failed", "coin", coin, "error", err.Error())
		}
	}
}
