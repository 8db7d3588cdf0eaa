package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/shouni/gemini-thumbnail-kit/pkg/metrics"
	"github.com/shouni/gemini-thumbnail-kit/pkg/prompt"
	"github.com/shouni/gemini-thumbnail-kit/pkg/utils"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// GeminiGenerator は、同じプロンプトから複数枚のサムネイルを並列生成するジェネレーターです。
type GeminiGenerator struct {
	imgCore     ImageGeneratorCore
	aiClient    GenerativeModel
	model       string
	aspectRatio string
	callTimeout time.Duration
}

// Option は GeminiGenerator の任意設定です。
type Option func(*GeminiGenerator)

// WithCallTimeout は1回の生成呼び出しのタイムアウトを設定します。
func WithCallTimeout(d time.Duration) Option {
	return func(g *GeminiGenerator) {
		if d > 0 {
			g.callTimeout = d
		}
	}
}

// WithAspectRatio は出力画像のアスペクト比を上書きします。
func WithAspectRatio(ratio string) Option {
	return func(g *GeminiGenerator) {
		if ratio != "" {
			g.aspectRatio = ratio
		}
	}
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
func NewGeminiGenerator(core ImageGeneratorCore, aiClient GenerativeModel, model string, opts ...Option) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (ImageGeneratorCore) is required")
	}
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (GenerativeModel) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	g := &GeminiGenerator{
		imgCore:     core,
		aiClient:    aiClient,
		model:       model,
		aspectRatio: DefaultAspectRatio,
		callTimeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate はプロンプトを一度だけ組み立て、count 回の独立した生成呼び出しを並列に発行します。
// 結果は発行順に並びます。いずれかが失敗した場合は残りをキャンセルし、部分的な結果は返しません。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerationRequest, count int) ([]*domain.ImageResponse, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	start := time.Now()

	fullPrompt := prompt.Compose(req.Style, req.Title, req.Prompt, req.HasReference())

	refPart, err := g.imgCore.PrepareReferencePart(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: 参照画像の準備に失敗しました: %w", ErrGenerationFailed, err)
	}

	slog.InfoContext(ctx, "サムネイル一括生成を開始します",
		"model", g.model,
		"style", req.Style,
		"count", count,
		"has_reference", refPart != nil,
	)

	results := make([]*domain.ImageResponse, count)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range count {
		eg.Go(func() error {
			seed := utils.SeedForAttempt(req.Seed, i)
			res, err := g.generateOnce(egCtx, buildParts(fullPrompt, refPart), seed)
			if err != nil {
				if egCtx.Err() != nil && errors.Is(err, context.Canceled) {
					slog.DebugContext(ctx, "他の試行の失敗によりキャンセルされました", "attempt", i)
				} else {
					slog.WarnContext(ctx, "サムネイル生成の試行に失敗しました", "attempt", i, "error", err)
				}
				return fmt.Errorf("attempt %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		metrics.GenerationBatchDuration.WithLabelValues(g.model, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	metrics.GenerationBatchDuration.WithLabelValues(g.model, "ok").Observe(time.Since(start).Seconds())
	slog.InfoContext(ctx, "サムネイル一括生成が完了しました", "count", count, "elapsed", time.Since(start).String())
	return results, nil
}

// generateOnce は1回分の生成（通信と解析）を行います。呼び出しごとにタイムアウトを設けます。
func (g *GeminiGenerator) generateOnce(ctx context.Context, parts []*genai.Part, seed *int64) (*domain.ImageResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	opts := GenerateOptions{
		AspectRatio: g.aspectRatio,
		Seed:        utils.SeedToPtrInt32(seed),
	}

	resp, err := g.aiClient.GenerateWithParts(callCtx, g.model, parts, opts)
	if err != nil {
		status := "error"
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			status = "timeout"
		}
		metrics.GenerationAttemptsTotal.WithLabelValues(g.model, status).Inc()
		return nil, err
	}

	out, err := g.imgCore.ParseToResponse(resp, utils.DereferenceSeed(seed))
	if err != nil {
		metrics.GenerationAttemptsTotal.WithLabelValues(g.model, "no_image").Inc()
		return nil, err
	}
	metrics.GenerationAttemptsTotal.WithLabelValues(g.model, "ok").Inc()

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}

// buildParts は参照画像（あれば先頭）とプロンプトテキストからパーツ列を作ります。
func buildParts(text string, refPart *genai.Part) []*genai.Part {
	parts := make([]*genai.Part, 0, 2)
	if refPart != nil {
		parts = append(parts, refPart)
	}
	return append(parts, &genai.Part{Text: text})
}

var (
	_ ThumbnailGenerator = (*GeminiGenerator)(nil)
	_ ImageGeneratorCore = (*GeminiImageCore)(nil)
)
