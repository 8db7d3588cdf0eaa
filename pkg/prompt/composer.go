// Package prompt は、サムネイルの画風プリセットとユーザー入力から
// 画像生成 API に送る単一のプロンプト文字列を組み立てます。
package prompt

import (
	"strings"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

const (
	// RealismBoost はすべての画風に付与する写実性強調句です。
	RealismBoost = "photorealistic, 8k uhd, highly detailed, shot on Sony A7R IV, 85mm lens, f/1.8, sharp focus, professional photography, cinematic lighting, raw photo quality, skin texture, visible pores, subsurface scattering, hyper-realistic, masterpiece, ray tracing, global illumination"

	// NegativeConstraint は生成結果から除外したい要素の一覧です。
	NegativeConstraint = "Ensure the image is pristine. Exclude: blurry, low quality, extra people, cluttered background, small text, watermark, logo, distorted faces, bad anatomy, cartoonish, low resolution, pixelated, grain, noise."

	// IdentityClause は参照写真がある場合に末尾へ付ける顔の同一性保持の指示です。
	IdentityClause = "Use the person in the provided image as the main subject. Maintain their facial features and likeness exactly but adapt the lighting and expression to match the requested style. Blend them seamlessly into the scene."
)

// styleTemplates は画風ごとの描写句です。domain.AllStyles() のすべてのキーを持つ必要があります。
var styleTemplates = map[domain.ThumbnailStyle]string{
	domain.StyleMrBeast:    "Hyper-realistic composite. Close-up of a person with an exaggerated shocked or excited expression (wide eyes, open mouth). High saturation, high contrast. Bright, vibrant background with high stakes elements (money, explosion, luxury). Studio lighting with strong rim light. Clear separation between subject and background.",
	domain.StyleGaming:     "3D render style mixed with real photography. Intense action, neon lighting (purple, blue, red), esports tournament atmosphere. Character or player in focus with glowing effects. Detailed textures.",
	domain.StyleVlog:       "Lifestyle photography, golden hour lighting, authentic emotion. Wide angle shot, GoPro or high-end mirrorless aesthetic. Travel or daily life setting. Bokeh background, natural skin tones.",
	domain.StylePodcast:    "Professional studio setting. Two or more subjects engaging in deep conversation. Warm, rich lighting. Microphones clearly visible. Depth of field. Serious and intellectual atmosphere.",
	domain.StyleMinimalist: "Clean composition, solid or gradient background, high contrast subject. Bold, simple elements. Negative space. Modern design, Apple advertisement aesthetic.",
}

// StyleClause は画風の描写句を返します。未知の画風は RealismBoost のみになります。
func StyleClause(style domain.ThumbnailStyle) string {
	desc, ok := styleTemplates[style]
	if !ok {
		return RealismBoost
	}
	return "Style: " + string(style) + ". " + RealismBoost + ". " + desc
}

// StyleDescription は画風の描写句のみを返します。未知の画風は空文字です。
func StyleDescription(style domain.ThumbnailStyle) string {
	return styleTemplates[style]
}

// BaseSentence はタイトルと詳細を埋め込んだ指示文です。
// detail が空の場合はタイトルを詳細として再利用します。
func BaseSentence(title, detail string) string {
	if strings.TrimSpace(detail) == "" {
		detail = title
	}
	return `Create a professional, viral YouTube thumbnail for a video titled "` + title + `". ` + detail
}

// Compose は最終的なプロンプトを組み立てます。副作用はなく、同じ入力には常に同じ結果を返します。
func Compose(style domain.ThumbnailStyle, title, detail string, hasReferenceImage bool) string {
	var b strings.Builder
	b.WriteString(BaseSentence(title, detail))
	b.WriteString(". ")
	b.WriteString(StyleClause(style))
	b.WriteString(" ")
	b.WriteString(NegativeConstraint)
	if hasReferenceImage {
		b.WriteString(" ")
		b.WriteString(IdentityClause)
	}
	return b.String()
}
