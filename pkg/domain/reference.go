package domain

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/shouni/gemini-thumbnail-kit/pkg/imgutil"
)

// MaxReferenceImageBytes はアップロードを受け付ける参照画像の上限サイズです。
const MaxReferenceImageBytes = 5 * 1024 * 1024

// supportedImageTypes は参照画像として受け付ける MIME タイプです。中身の判別結果と一致する必要があります。
var supportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// ReferenceImage は参照写真のバイナリと MIME タイプのペアです。
type ReferenceImage struct {
	Data     []byte
	MimeType string
}

// Validate は MIME タイプが対応形式であり、中身がその形式として判別できることを確認します。
func (ri *ReferenceImage) Validate() error {
	if ri == nil || len(ri.Data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrInvalidReferenceImage)
	}
	if len(ri.Data) > MaxReferenceImageBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInvalidReferenceImage, len(ri.Data), MaxReferenceImageBytes)
	}
	declared := ri.MimeType
	if !supportedImageTypes[declared] {
		return fmt.Errorf("%w: unsupported mime type %q", ErrInvalidReferenceImage, ri.MimeType)
	}
	if detected := imgutil.DetectMIME(ri.Data); detected != declared {
		return fmt.Errorf("%w: payload is %s but declared as %s", ErrInvalidReferenceImage, detected, declared)
	}
	return nil
}

// DecodeDataURL は "data:<mime>;base64,<payload>" 形式、または素の base64 文字列をデコードします。
// data URL 側に MIME タイプがあればそれを優先し、なければ mimeType 引数を使います。
func DecodeDataURL(s, mimeType string) (*ReferenceImage, error) {
	payload := strings.TrimSpace(s)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidReferenceImage)
	}

	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URL", ErrInvalidReferenceImage)
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("%w: data URL is not base64 encoded", ErrInvalidReferenceImage)
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mimeType = m
		}
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReferenceImage, err)
	}

	ri := &ReferenceImage{Data: data, MimeType: mimeType}
	if ri.MimeType == "" {
		ri.MimeType = imgutil.DetectMIME(data)
	}
	return ri, nil
}
