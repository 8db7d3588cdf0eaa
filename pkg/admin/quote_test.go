package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoter_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("取得したレートで切り上げ計算し、キャッシュするのだ", func(t *testing.T) {
		src := &stubRateSource{rate: 50.61}
		q := NewQuoter(src)

		got := q.Quote(ctx)
		assert.Equal(t, Quote{PriceUSD: 10, Rate: 50.61, AmountEGP: 507, Live: true}, got)

		q.Quote(ctx)
		assert.Equal(t, 1, src.calls)
	})

	t.Run("取得に失敗したら 50 で計算するのだ", func(t *testing.T) {
		src := &stubRateSource{err: errors.New("dns failure")}
		got := NewQuoter(src).Quote(ctx)
		assert.Equal(t, Quote{PriceUSD: 10, Rate: 50, AmountEGP: 500, Live: false}, got)
	})
}

func TestHTTPRateSource_USDToEGP(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.92,"EGP":47.85}}`))
		case "/no-egp":
			_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
		case "/broken":
			_, _ = w.Write([]byte(`{"rates":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := httpkit.New(time.Second, httpkit.WithSkipNetworkValidation(true), httpkit.WithMaxRetries(0))
	newSource := func(t *testing.T, path string) *HTTPRateSource {
		t.Helper()
		src, err := NewHTTPRateSource(client, srv.URL+path)
		require.NoError(t, err)
		return src
	}

	t.Run("rates.EGP を返すのだ", func(t *testing.T) {
		rate, err := newSource(t, "/ok").USDToEGP(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 47.85, rate, 1e-9)
	})

	for _, path := range []string{"/no-egp", "/broken", "/missing"} {
		t.Run("取得できなければエラーなのだ: "+path, func(t *testing.T) {
			_, err := newSource(t, path).USDToEGP(ctx)
			assert.Error(t, err)
		})
	}

	t.Run("クライアントなしは作成できないのだ", func(t *testing.T) {
		_, err := NewHTTPRateSource(nil, "")
		assert.Error(t, err)
	})

	t.Run("URL 未指定なら公開 API を使うのだ", func(t *testing.T) {
		src, err := NewHTTPRateSource(client, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultExchangeURL, src.url)
	})
}
