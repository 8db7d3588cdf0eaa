package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newInternalServers は内部向けの秘密を返すサーバーと、そこへリダイレクトするサーバーを立てるのだ。
func newInternalServers(t *testing.T) (internal, redirect *httptest.Server) {
	t.Helper()
	internal = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("INTERNAL-SECRET"))
	}))
	t.Cleanup(internal.Close)

	redirect = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL+"/latest/meta-data", http.StatusFound)
	}))
	t.Cleanup(redirect.Close)
	return internal, redirect
}

func TestNewHTTPClient_BlocksInternalDestinations(t *testing.T) {
	ctx := context.Background()
	_, redirect := newInternalServers(t)
	client := NewHTTPClient(time.Second, httpkit.WithMaxRetries(0))

	t.Run("内部アドレスへのリダイレクトは取得しないのだ", func(t *testing.T) {
		data, err := client.FetchBytes(ctx, redirect.URL+"/avatar.png")
		require.Error(t, err)
		assert.NotContains(t, string(data), "INTERNAL-SECRET")
	})

	t.Run("URL検証を経ない接続も接続時に拒否されるのだ", func(t *testing.T) {
		// リダイレクトの各ホップと同じくトランスポートの接続処理だけを通る経路なのだ
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, redirect.URL+"/avatar.png", nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		if resp != nil {
			_ = resp.Body.Close()
		}
		assert.Error(t, err)
	})
}

func TestNewHTTPClient_FetchBytes(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("image-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// httptest はループバックで待ち受けるため、ここでは宛先検証を外すのだ
	client := NewHTTPClient(time.Second, httpkit.WithSkipNetworkValidation(true), httpkit.WithMaxRetries(0))

	t.Run("本文を返すのだ", func(t *testing.T) {
		data, err := client.FetchBytes(ctx, srv.URL+"/ok.png")
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("2xx以外はエラーなのだ", func(t *testing.T) {
		_, err := client.FetchBytes(ctx, srv.URL+"/missing.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("キャンセル済みのコンテキストでは取得しないのだ", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		data, err := client.FetchBytes(cctx, srv.URL+"/ok.png")
		assert.Error(t, err)
		assert.Nil(t, data)
	})

	t.Run("タイムアウト未指定でも作成できるのだ", func(t *testing.T) {
		assert.NotNil(t, NewHTTPClient(0))
	})
}
