// Package server はサムネイル生成と管理機能の HTTP API を提供します。
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
)

// Deps はルーターの依存関係です。Auth と Tokens が nil の場合、管理 API は登録しません。
type Deps struct {
	Generator   generator.ThumbnailGenerator
	Count       int
	Admin       *admin.Service
	Auth        admin.Authenticator
	Tokens      TokenVerifier
	CORSOrigins []string
}

// Server は HTTP ハンドラー群です。
type Server struct {
	generator generator.ThumbnailGenerator
	count     int
	admin     *admin.Service
	auth      admin.Authenticator
	tokens    TokenVerifier
	engine    *gin.Engine
}

// New はミドルウェアとルートを設定した Server を作成します。
func New(deps Deps) (*Server, error) {
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("admin service is required")
	}
	if deps.Count < 1 {
		deps.Count = generator.DefaultCount
	}

	s := &Server{
		generator: deps.Generator,
		count:     deps.Count,
		admin:     deps.Admin,
		auth:      deps.Auth,
		tokens:    deps.Tokens,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery(), RequestID(), AccessLog(), Metrics(), CORS(deps.CORSOrigins))
	s.routes()
	return s, nil
}

// Handler は http.Server に渡すハンドラーを返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1")
	{
		v1.GET("/styles", s.listStyles)
		v1.POST("/thumbnails", s.generateThumbnails)
		v1.GET("/payments/quote", s.paymentQuote)
		v1.POST("/payments", s.submitPayment)
	}

	if s.auth == nil || s.tokens == nil {
		return
	}

	v1.POST("/admin/login", s.login)
	adm := v1.Group("/admin", AdminAuth(s.tokens))
	{
		adm.GET("/overview", s.overview)
		adm.GET("/payments", s.listPayments)
		adm.GET("/payments/:id", s.getPayment)
		adm.POST("/payments/:id/approve", s.approvePayment)
		adm.POST("/payments/:id/reject", s.rejectPayment)
		adm.GET("/users", s.listUsers)
		adm.POST("/users/:id/ban", s.banUser)
		adm.POST("/users/:id/unban", s.unbanUser)
	}
}
