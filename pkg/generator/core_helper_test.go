package generator

import (
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiImageCore_ParseToResponse(t *testing.T) {
	core := &GeminiImageCore{}
	seed := int64(999)

	t.Run("正常系", func(t *testing.T) {
		out, err := core.ParseToResponse(imageResponse("image/png", []byte("png-data")), seed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out.Data) != "png-data" || out.MimeType != "image/png" {
			t.Errorf("unexpected output: %+v", out)
		}
		if out.UsedSeed != seed {
			t.Errorf("got seed %d, want %d", out.UsedSeed, seed)
		}
	})

	t.Run("テキストの後ろにある画像パーツも拾うのだ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "Here is your thumbnail"},
					{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("jpeg-data")}},
				}},
				FinishReason: genai.FinishReasonStop,
			}},
		}
		out, err := core.ParseToResponse(resp, seed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.MimeType != "image/jpeg" {
			t.Errorf("got %s, want image/jpeg", out.MimeType)
		}
	})

	t.Run("MIMEタイプが空ならPNGとみなすのだ", func(t *testing.T) {
		out, err := core.ParseToResponse(imageResponse("", []byte("data")), seed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.MimeType != DefaultMimeType {
			t.Errorf("got %s, want %s", out.MimeType, DefaultMimeType)
		}
	})

	t.Run("空のInlineDataは画像とみなさないのだ", func(t *testing.T) {
		_, err := core.ParseToResponse(imageResponse("image/png", nil), seed)
		if !errors.Is(err, ErrNoImageData) {
			t.Errorf("expected ErrNoImageData, got %v", err)
		}
	})

	t.Run("テキストのみの応答はErrNoImageData", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "I cannot draw that"}}},
				FinishReason: genai.FinishReasonStop,
			}},
		}
		_, err := core.ParseToResponse(resp, seed)
		if !errors.Is(err, ErrNoImageData) {
			t.Errorf("expected ErrNoImageData, got %v", err)
		}
	})

	t.Run("安全フィルターによる停止", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}
		_, err := core.ParseToResponse(resp, seed)
		if !errors.Is(err, ErrNoImageData) {
			t.Fatalf("expected ErrNoImageData, got %v", err)
		}
		if err.Error() == ErrNoImageData.Error() {
			t.Error("finish reason should be included in the error message")
		}
	})

	t.Run("nilまたは候補なし", func(t *testing.T) {
		if _, err := core.ParseToResponse(nil, seed); !errors.Is(err, ErrNoImageData) {
			t.Errorf("nil response: expected ErrNoImageData, got %v", err)
		}
		if _, err := core.ParseToResponse(&genai.GenerateContentResponse{}, seed); !errors.Is(err, ErrNoImageData) {
			t.Errorf("no candidates: expected ErrNoImageData, got %v", err)
		}
	})
}
