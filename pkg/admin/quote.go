package admin

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	PlanPriceUSD         = 10
	FallbackUSDToEGP     = 50.0
	DefaultExchangeURL   = "https://api.exchangerate-api.com/v4/latest/USD"
	exchangeRateCacheTTL = time.Hour
	rateCacheKey         = "usd_egp"
)

// RateSource は USD から EGP への換算レートを提供します。
type RateSource interface {
	USDToEGP(ctx context.Context) (float64, error)
}

// JSONFetcher は GET した JSON をデコードする HTTP クライアントです。httpkit.Client が満たします。
type JSONFetcher interface {
	FetchAndDecodeJSON(ctx context.Context, url string, v any) error
}

// HTTPRateSource は exchangerate-api 互換の JSON ({"rates":{"EGP":..}}) からレートを取得します。
type HTTPRateSource struct {
	url    string
	client JSONFetcher
}

// NewHTTPRateSource は HTTPRateSource を作成します。url が空なら公開 API を使います。
func NewHTTPRateSource(client JSONFetcher, url string) (*HTTPRateSource, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if url == "" {
		url = DefaultExchangeURL
	}
	return &HTTPRateSource{url: url, client: client}, nil
}

func (s *HTTPRateSource) USDToEGP(ctx context.Context) (float64, error) {
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := s.client.FetchAndDecodeJSON(ctx, s.url, &body); err != nil {
		return 0, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	rate, ok := body.Rates["EGP"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("exchange rate for EGP not found")
	}
	return rate, nil
}

// Quote は Pro プランの支払額の見積もりです。
type Quote struct {
	PriceUSD  int64   `json:"price_usd"`
	Rate      float64 `json:"rate"`
	AmountEGP int64   `json:"amount_egp"`
	Live      bool    `json:"live"`
}

// Quoter はレートを1時間キャッシュしつつ見積もりを計算します。
type Quoter struct {
	source RateSource
	cache  *cache.Cache
}

// NewQuoter は Quoter を作成します。source が nil の場合は常に固定レートを使います。
func NewQuoter(source RateSource) *Quoter {
	return &Quoter{
		source: source,
		cache:  cache.New(exchangeRateCacheTTL, 10*time.Minute),
	}
}

// Quote は現在のレートで見積もります。レート取得に失敗した場合は 1 USD = 50 EGP で計算します。
// 金額は切り上げです。
func (q *Quoter) Quote(ctx context.Context) Quote {
	rate, live := q.rate(ctx)
	return Quote{
		PriceUSD:  PlanPriceUSD,
		Rate:      rate,
		AmountEGP: int64(math.Ceil(PlanPriceUSD * rate)),
		Live:      live,
	}
}

func (q *Quoter) rate(ctx context.Context) (float64, bool) {
	if v, ok := q.cache.Get(rateCacheKey); ok {
		if rate, ok := v.(float64); ok {
			return rate, true
		}
	}
	if q.source == nil {
		return FallbackUSDToEGP, false
	}

	rate, err := q.source.USDToEGP(ctx)
	if err != nil {
		slog.WarnContext(ctx, "為替レートの取得に失敗しました。固定レートで続行します", "error", err, "fallback", FallbackUSDToEGP)
		return FallbackUSDToEGP, false
	}
	q.cache.SetDefault(rateCacheKey, rate)
	return rate, true
}
