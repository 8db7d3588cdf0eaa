package generator

import (
	"context"
	"sync"
	"time"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"google.golang.org/genai"
)

// --- Mocks ---

// PNGの最小構成バイナリ（シグネチャ含む）
var validPng = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

type mockAIClient struct {
	mu        sync.Mutex
	calls     int
	lastParts [][]*genai.Part
	generate  func(ctx context.Context, model string, parts []*genai.Part, opts GenerateOptions) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts GenerateOptions) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastParts = append(m.lastParts, parts)
	m.mu.Unlock()

	if m.generate != nil {
		return m.generate(ctx, model, parts, opts)
	}
	return imageResponse("image/png", []byte("fake")), nil
}

func (m *mockAIClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockImageCore は ImageGeneratorCore のテスト用モックなのだ。
type mockImageCore struct {
	prepareFunc func(ctx context.Context, req domain.GenerationRequest) (*genai.Part, error)
	parseFunc   func(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error)
}

func (m *mockImageCore) PrepareReferencePart(ctx context.Context, req domain.GenerationRequest) (*genai.Part, error) {
	if m.prepareFunc != nil {
		return m.prepareFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockImageCore) ParseToResponse(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error) {
	if m.parseFunc != nil {
		return m.parseFunc(resp, seed)
	}
	return (&GeminiImageCore{}).ParseToResponse(resp, seed)
}

type mockHTTPClient struct {
	mu    sync.Mutex
	calls int
	data  []byte
	err   error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.data, m.err
}

type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.data[key] = value
}

func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
			},
		}},
	}
}
