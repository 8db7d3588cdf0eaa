package server

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-thumbnail-kit/internal/logger"
	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

// Response は成功時の共通レスポンスです。
type Response[T any] struct {
	Data      T      `json:"data"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse は失敗時の共通レスポンスです。
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondOK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{Data: data, RequestID: logger.RequestID(c.Request.Context())})
}

func respondCreated[T any](c *gin.Context, data T) {
	c.JSON(http.StatusCreated, Response[T]{Data: data, RequestID: logger.RequestID(c.Request.Context())})
}

// GenerateThumbnailsRequest はサムネイル生成 API の入力です。
type GenerateThumbnailsRequest struct {
	Title  string `json:"title" binding:"required"`
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
	// ReferenceImage は data URL ("data:image/png;base64,...") または素の base64 です。
	ReferenceImage string `json:"reference_image"`
	ReferenceMime  string `json:"reference_mime"`
	ReferenceURL   string `json:"reference_url" binding:"omitempty,url"`
	Seed           *int64 `json:"seed"`
}

// ThumbnailDTO は生成画像1枚分の出力です。
type ThumbnailDTO struct {
	DataURL  string `json:"data_url"`
	MimeType string `json:"mime_type"`
	Seed     int64  `json:"seed"`
}

// GenerateThumbnailsResponse は発行順に並んだ生成結果です。
type GenerateThumbnailsResponse struct {
	Style      domain.ThumbnailStyle `json:"style"`
	Thumbnails []ThumbnailDTO        `json:"thumbnails"`
}

func toThumbnailDTOs(images []*domain.ImageResponse) []ThumbnailDTO {
	out := make([]ThumbnailDTO, 0, len(images))
	for _, img := range images {
		out = append(out, ThumbnailDTO{
			DataURL:  "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
			MimeType: img.MimeType,
			Seed:     img.UsedSeed,
		})
	}
	return out
}

// SubmitPaymentRequest はチェックアウト画面からの送金報告です。
type SubmitPaymentRequest struct {
	User          string `json:"user" binding:"required"`
	Phone         string `json:"phone"`
	TransactionID string `json:"tid"`
	ReceiptURL    string `json:"receipt_url"`
}

// LoginRequest は管理者ログインの入力です。
type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}
