package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ThumbnailStyle はサムネイルの画風プリセットです。値の集合は閉じており、実行時の追加はできません。
type ThumbnailStyle string

const (
	StyleMrBeast    ThumbnailStyle = "MrBeast"
	StyleGaming     ThumbnailStyle = "Gaming"
	StyleVlog       ThumbnailStyle = "Vlog"
	StylePodcast    ThumbnailStyle = "Podcast"
	StyleMinimalist ThumbnailStyle = "Minimalist"
)

var (
	ErrEmptyTitle            = errors.New("video title is required")
	ErrUnknownStyle          = errors.New("unknown thumbnail style")
	ErrInvalidReferenceImage = errors.New("invalid reference image")
)

// AllStyles は定義済みのすべてのスタイルを表示順で返します。
func AllStyles() []ThumbnailStyle {
	return []ThumbnailStyle{StyleMrBeast, StyleGaming, StyleVlog, StylePodcast, StyleMinimalist}
}

// ParseStyle は文字列をスタイルに変換します。大文字小文字は区別しません。
func ParseStyle(s string) (ThumbnailStyle, error) {
	for _, style := range AllStyles() {
		if strings.EqualFold(strings.TrimSpace(s), string(style)) {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// GenerationRequest は1バッチ分のサムネイル生成要求です。
type GenerationRequest struct {
	Title  string
	Prompt string
	Style  ThumbnailStyle
	// ReferenceImage はアップロードされた参照写真（顔の同一性保持用）。
	ReferenceImage *ReferenceImage
	// ReferenceURL は ReferenceImage の代わりに公開URLで参照写真を指定する場合に使います。
	ReferenceURL string
	// Seed は nil でランダム。指定時は試行ごとに +i した値を使います。
	Seed *int64
}

// HasReference は参照画像がバイト列またはURLで指定されているかを返します。
func (r GenerationRequest) HasReference() bool {
	return r.ReferenceImage != nil || r.ReferenceURL != ""
}

// Validate は生成開始前に呼び出し側で行う入力チェックです。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.ReferenceImage != nil {
		if err := r.ReferenceImage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}
