package domain

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PNGの最小構成バイナリ（シグネチャ含む）
var validPng = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

func TestDecodeDataURL(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(validPng)

	t.Run("data URL のプレフィックスを取り除いてデコードするのだ", func(t *testing.T) {
		ri, err := DecodeDataURL("data:image/png;base64,"+encoded, "")
		require.NoError(t, err)
		assert.Equal(t, "image/png", ri.MimeType)
		assert.Equal(t, validPng, ri.Data)
		assert.NoError(t, ri.Validate())
	})

	t.Run("素の base64 なら引数の MIME を使うのだ", func(t *testing.T) {
		ri, err := DecodeDataURL(encoded, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", ri.MimeType)
	})

	t.Run("MIME 指定がなければ中身から判定するのだ", func(t *testing.T) {
		ri, err := DecodeDataURL(encoded, "")
		require.NoError(t, err)
		assert.Equal(t, "image/png", ri.MimeType)
	})

	t.Run("base64 でない data URL は拒否するのだ", func(t *testing.T) {
		_, err := DecodeDataURL("data:image/png,rawbytes", "")
		assert.ErrorIs(t, err, ErrInvalidReferenceImage)
	})

	t.Run("壊れた base64 は拒否するのだ", func(t *testing.T) {
		_, err := DecodeDataURL("%%%not-base64%%%", "image/png")
		assert.ErrorIs(t, err, ErrInvalidReferenceImage)
	})
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	return buf.Bytes()
}

func TestReferenceImage_Validate(t *testing.T) {
	jpg := jpegBytes(t)
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	webp := []byte("RIFF\x1a\x00\x00\x00WEBPVP8 \x0e\x00\x00\x00")

	valid := []struct {
		name string
		ri   ReferenceImage
	}{
		{"png", ReferenceImage{Data: validPng, MimeType: "image/png"}},
		{"jpeg", ReferenceImage{Data: jpg, MimeType: "image/jpeg"}},
		{"gif", ReferenceImage{Data: gif, MimeType: "image/gif"}},
		{"webp", ReferenceImage{Data: webp, MimeType: "image/webp"}},
	}
	for _, tt := range valid {
		t.Run("受け付けるのだ: "+tt.name, func(t *testing.T) {
			assert.NoError(t, tt.ri.Validate())
		})
	}

	t.Run("中身と違う MIME は拒否するのだ", func(t *testing.T) {
		ri := &ReferenceImage{Data: jpg, MimeType: "image/png"}
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})

	t.Run("存在しない画像形式は拒否するのだ", func(t *testing.T) {
		ri := &ReferenceImage{Data: jpg, MimeType: "image/not-a-real-type"}
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})

	t.Run("非対応の画像形式は拒否するのだ", func(t *testing.T) {
		ri := &ReferenceImage{Data: validPng, MimeType: "image/svg+xml"}
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})

	t.Run("画像以外の MIME は拒否するのだ", func(t *testing.T) {
		ri := &ReferenceImage{Data: validPng, MimeType: "application/pdf"}
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})

	t.Run("上限サイズを超えると拒否するのだ", func(t *testing.T) {
		big := append([]byte{}, validPng...)
		big = append(big, []byte(strings.Repeat("x", MaxReferenceImageBytes))...)
		ri := &ReferenceImage{Data: big, MimeType: "image/png"}
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})

	t.Run("nil は拒否するのだ", func(t *testing.T) {
		var ri *ReferenceImage
		assert.ErrorIs(t, ri.Validate(), ErrInvalidReferenceImage)
	})
}
