package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/shouni/gemini-thumbnail-kit/pkg/imgutil"
	"github.com/shouni/gemini-thumbnail-kit/pkg/metrics"
	"google.golang.org/genai"
)

// GeminiImageCore は参照画像の準備（取得・キャッシュ・圧縮）とレスポンス解析を担う基盤クラスです。
type GeminiImageCore struct {
	httpClient HTTPClient
	cache      ImageCacher
	expiration time.Duration
	checkURL   func(rawURL string) (bool, error)
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
// httpClient が nil の場合は URL 指定の参照画像を扱えません。cache は nil を許容（キャッシュなし動作）。
func NewGeminiImageCore(httpClient HTTPClient, cache ImageCacher, cacheTTL time.Duration) *GeminiImageCore {
	return &GeminiImageCore{
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
		checkURL:   IsSafeURL,
	}
}

// PrepareReferencePart は、リクエストの参照画像（バイト列またはURL）を InlineData パーツに変換します。
func (c *GeminiImageCore) PrepareReferencePart(ctx context.Context, req domain.GenerationRequest) (*genai.Part, error) {
	switch {
	case req.ReferenceImage != nil:
		return c.toPart(req.ReferenceImage.Data, req.ReferenceImage.MimeType)
	case req.ReferenceURL != "":
		data, err := c.fetchReference(ctx, req.ReferenceURL)
		if err != nil {
			return nil, err
		}
		return c.toPart(data, "")
	default:
		return nil, nil
	}
}

func (c *GeminiImageCore) fetchReference(ctx context.Context, rawURL string) ([]byte, error) {
	cacheKey := cacheKeyReferenceURL + rawURL
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			if data, ok := cached.([]byte); ok {
				metrics.ReferenceCacheTotal.WithLabelValues("hit").Inc()
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}
	metrics.ReferenceCacheTotal.WithLabelValues("miss").Inc()

	if safe, err := c.checkURL(rawURL); err != nil || !safe {
		slog.WarnContext(ctx, "SSRFの可能性がある、または不正なURLをブロックしました", "url", rawURL, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}
	if c.httpClient == nil {
		return nil, fmt.Errorf("reference url given but no http client is configured")
	}

	data, err := c.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("参照画像のダウンロードに失敗しました: %w", err)
	}
	if len(data) > domain.MaxReferenceImageBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit", domain.ErrInvalidReferenceImage, len(data))
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, data, c.expiration)
	}
	return data, nil
}

func (c *GeminiImageCore) toPart(data []byte, mimeType string) (*genai.Part, error) {
	if mimeType == "" {
		mimeType = imgutil.DetectMIME(data)
	}
	ref := &domain.ReferenceImage{Data: data, MimeType: mimeType}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	if UseImageCompression {
		ref.Data, ref.MimeType = imgutil.ShrinkIfLarger(ref.Data, ref.MimeType, CompressionThreshold, ImageCompressionQuality)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: ref.MimeType, Data: ref.Data}}, nil
}
