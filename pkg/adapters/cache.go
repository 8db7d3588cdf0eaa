package adapters

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
)

// NewMemoryImageCache は参照画像用のインメモリキャッシュを作成します。
// *cache.Cache はそのまま generator.ImageCacher を満たします。
func NewMemoryImageCache(defaultTTL, cleanupInterval time.Duration) *cache.Cache {
	return cache.New(defaultTTL, cleanupInterval)
}

var _ generator.ImageCacher = (*cache.Cache)(nil)
