package generator

import (
	"context"
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"google.golang.org/genai"
)

// ThumbnailGenerator はビジネスロジック層が利用する統合窓口です。
type ThumbnailGenerator interface {
	// Generate は同じプロンプトで count 枚を並列生成し、発行順に返します。1枚でも失敗すれば全体が失敗します。
	Generate(ctx context.Context, req domain.GenerationRequest, count int) ([]*domain.ImageResponse, error)
}

// GenerativeModel は画像生成 API との通信を抽象化したインターフェースです。
type GenerativeModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts GenerateOptions) (*genai.GenerateContentResponse, error)
}

// ImageGeneratorCore は参照画像の準備とレスポンス解析を担当します。
type ImageGeneratorCore interface {
	// PrepareReferencePart は参照画像を genai.Part に変換します。参照画像がなければ nil, nil を返します。
	PrepareReferencePart(ctx context.Context, req domain.GenerationRequest) (*genai.Part, error)
	// ParseToResponse はレスポンスから最初の画像パーツを取り出します。
	ParseToResponse(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error)
}

// ImageCacher は、画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
