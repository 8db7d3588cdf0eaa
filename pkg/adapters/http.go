package adapters

import (
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const defaultFetchTimeout = 15 * time.Second

// NewHTTPClient は参照画像と為替レートの取得に使う httpkit クライアントを作成します。
// 既定の SafeHTTPClient は接続のたびに宛先 IP を検証するため、リダイレクト先の内部アドレスにも接続しません。
// timeout が 0 以下の場合は 15 秒を使います。
func NewHTTPClient(timeout time.Duration, opts ...httpkit.ClientOption) *httpkit.Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return httpkit.New(timeout, opts...)
}

var (
	_ generator.HTTPClient = (*httpkit.Client)(nil)
	_ admin.JSONFetcher    = (*httpkit.Client)(nil)
)
