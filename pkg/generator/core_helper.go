package generator

import (
	"fmt"

	"google.golang.org/genai"
)

// ParseToResponse は Gemini のレスポンスを解析して ImageOutput に変換します。
// 画像が見つからない場合はすべて ErrNoImageData として扱います。
func (c *GeminiImageCore) ParseToResponse(resp *genai.GenerateContentResponse, seed int64) (*ImageOutput, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: empty response", ErrNoImageData)
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = DefaultMimeType
				}
				return &ImageOutput{Data: part.InlineData.Data, MimeType: mimeType, UsedSeed: seed}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	switch candidate.FinishReason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
	default:
		return nil, fmt.Errorf("%w: generation stopped (FinishReason: %s)", ErrNoImageData, candidate.FinishReason)
	}

	return nil, ErrNoImageData
}
