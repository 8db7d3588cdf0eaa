package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shouni/gemini-thumbnail-kit/internal/logger"
	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/metrics"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxKeySubject   = "admin_subject"
)

// RequestID はヘッダーのリクエスト ID を引き継ぎ、なければ採番して context とレスポンスに載せます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog はリクエストごとに1行のアクセスログを出します。管理 API では操作した管理者も記録します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		}
		if subject := c.GetString(ctxKeySubject); subject != "" {
			attrs = append(attrs, "admin", subject)
		}
		logger.FromContext(c.Request.Context()).Info("http request", attrs...)
	}
}

// Metrics は Prometheus のリクエスト数とレイテンシを記録します。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		c.Next()

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// CORS は許可オリジンを指定して gin-contrib/cors を設定します。
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// TokenVerifier は管理者トークンの検証器です。
type TokenVerifier interface {
	Verify(token string) (*admin.Claims, error)
}

// AdminAuth は Bearer トークンを検証し、失敗時は 401 で打ち切ります。
func AdminAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortWithError(c, admin.ErrInvalidToken)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set(ctxKeySubject, claims.Subject)
		c.Next()
	}
}
