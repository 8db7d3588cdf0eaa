package generator

import (
	"errors"
	"time"
)

const (
	DefaultModel       = "gemini-2.5-flash-image"
	DefaultAspectRatio = "16:9"
	DefaultCount       = 3
	DefaultCallTimeout = 90 * time.Second
	DefaultMimeType    = "image/png"

	UseImageCompression     = true
	ImageCompressionQuality = 85
	// CompressionThreshold を超える参照画像だけ JPEG に再圧縮します。
	CompressionThreshold = 1024 * 1024

	cacheKeyReferenceURL = "reference_url:"
)

var (
	ErrInvalidCount     = errors.New("count must be at least 1")
	ErrNoImageData      = errors.New("no image data found in response")
	ErrGenerationFailed = errors.New("thumbnail generation failed")
	ErrUnsafeURL        = errors.New("unsafe reference url")
)

// GenerateOptions は1回の生成呼び出しに付与するパラメータです。
type GenerateOptions struct {
	AspectRatio string
	Seed        *int32
}

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}
