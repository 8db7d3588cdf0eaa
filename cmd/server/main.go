package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/gemini-thumbnail-kit/internal/config"
	"github.com/shouni/gemini-thumbnail-kit/internal/logger"
	"github.com/shouni/gemini-thumbnail-kit/internal/server"
	"github.com/shouni/gemini-thumbnail-kit/pkg/adapters"
	"github.com/shouni/gemini-thumbnail-kit/pkg/admin"
	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := adapters.NewHTTPClient(15 * time.Second)

	gen, err := buildGenerator(ctx, cfg, httpClient)
	if err != nil {
		return err
	}

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rates, err := admin.NewHTTPRateSource(httpClient, cfg.ExchangeRateURL)
	if err != nil {
		return err
	}
	svc, err := admin.NewService(store, admin.NewQuoter(rates))
	if err != nil {
		return err
	}

	deps := server.Deps{
		Generator:   gen,
		Count:       cfg.GenerationCount,
		Admin:       svc,
		CORSOrigins: cfg.CORSOrigins,
	}
	if cfg.AdminEnabled() {
		tokens, err := admin.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			return err
		}
		auth, err := admin.NewCredentialAuthenticator(cfg.AdminID, cfg.AdminPasswordHash, tokens)
		if err != nil {
			return err
		}
		deps.Auth, deps.Tokens = auth, tokens
	} else {
		slog.Warn("管理者の資格情報が未設定のため管理 API を無効にします")
	}

	srv, err := server.New(deps)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// 生成は1リクエストで最大 CallTimeout かかる
		WriteTimeout: cfg.CallTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr, "model", cfg.GeminiModel, "count", cfg.GenerationCount)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server exited")
	return nil
}

func buildGenerator(ctx context.Context, cfg *config.Config, httpClient generator.HTTPClient) (*generator.GeminiGenerator, error) {
	aiClient, err := adapters.NewGenAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	cache := adapters.NewMemoryImageCache(cfg.ImageCacheTTL, 10*time.Minute)
	core := generator.NewGeminiImageCore(httpClient, cache, cfg.ImageCacheTTL)

	return generator.NewGeminiGenerator(core, aiClient, cfg.GeminiModel, generator.WithCallTimeout(cfg.CallTimeout))
}

// buildStore は REDIS_ADDR があれば Redis、なければデモデータ入りのメモリストアを返します。
func buildStore(ctx context.Context, cfg *config.Config) (admin.Store, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR が未設定のためメモリストアを使います")
		return admin.NewDemoMemoryStore(), func() {}, nil
	}

	rdb, err := admin.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	store, err := admin.NewRedisStore(rdb, "")
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	if err := store.Seed(ctx, admin.DemoPayments(), admin.DemoUsers()); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return store, func() { _ = rdb.Close() }, nil
}
