package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-thumbnail-kit/pkg/generator"
	"google.golang.org/genai"
)

// contentGenerator は *genai.Models のうち、画像生成で使う部分だけを切り出したものです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIClient は genai SDK を generator.GenerativeModel として使えるようにするアダプターです。
type GenAIClient struct {
	models contentGenerator
}

// NewGenAIClient は Gemini API (Developer API) 用のクライアントを作成します。
func NewGenAIClient(ctx context.Context, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAIClient{models: client.Models}, nil
}

// GenerateWithParts はパーツ列を1件のユーザーメッセージとして送信し、生のレスポンスを返します。
func (c *GenAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts generator.GenerateOptions) (*genai.GenerateContentResponse, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		Seed:               opts.Seed,
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.DebugContext(ctx, "Geminiに画像生成をリクエストします", "model", model, "parts", len(parts))
	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}
	return resp, nil
}

var _ generator.GenerativeModel = (*GenAIClient)(nil)
