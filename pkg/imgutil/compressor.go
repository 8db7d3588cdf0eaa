package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
)

// DetectMIME はバイト列の先頭から MIME タイプを判定します。
func DetectMIME(data []byte) string {
	return http.DetectContentType(data)
}

// CompressToJPEG は参照写真（PNG, GIF, JPEG）を JPEG に再エンコードします。
// JPEG はアルファを持てないため、透過部分は白で塗りつぶします。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ShrinkIfLarger は data が threshold バイトを超える場合だけ JPEG に再圧縮します。
// 圧縮に失敗した場合や小さくならない場合は元のデータと MIME タイプをそのまま返します。
func ShrinkIfLarger(data []byte, mimeType string, threshold, quality int) ([]byte, string) {
	if len(data) <= threshold {
		return data, mimeType
	}
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType
	}
	return compressed, "image/jpeg"
}
