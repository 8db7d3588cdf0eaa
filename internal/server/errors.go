package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-thumbnail-kit/internal/logger"
	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
)

// statusFor はエラーを HTTP ステータスとクライアント向けメッセージに変換します。
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrUnknownStyle),
		errors.Is(err, domain.ErrInvalidReferenceImage),
		errors.Is(err, admin.ErrInvalidPayment):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, generator.ErrUnsafeURL):
		return http.StatusBadRequest, "reference url is not allowed"
	case errors.Is(err, admin.ErrInvalidCredentials), errors.Is(err, admin.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, admin.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, admin.ErrAlreadyDecided):
		return http.StatusConflict, err.Error()
	case errors.Is(err, generator.ErrGenerationFailed):
		return http.StatusBadGateway, "generation failed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	ctx := c.Request.Context()
	if status >= http.StatusInternalServerError {
		logger.FromContext(ctx).Error("リクエストの処理に失敗しました", "path", c.FullPath(), "status", status, "error", err)
	} else {
		logger.FromContext(ctx).Warn("リクエストを拒否しました", "path", c.FullPath(), "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, RequestID: logger.RequestID(ctx)})
}

func badRequest(c *gin.Context, msg string) {
	abortWithStatus(c, http.StatusBadRequest, msg)
}

func abortWithStatus(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, RequestID: logger.RequestID(c.Request.Context())})
}
