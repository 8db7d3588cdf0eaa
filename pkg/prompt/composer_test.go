package prompt

import (
	"strings"
	"testing"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestStyleTemplates_Exhaustive(t *testing.T) {
	for _, style := range domain.AllStyles() {
		_, ok := styleTemplates[style]
		assert.True(t, ok, "style %s has no template", style)
	}
	assert.Len(t, styleTemplates, len(domain.AllStyles()), "template table has entries outside the style enum")
}

func TestCompose(t *testing.T) {
	const title = "I Spent 24 Hours in a Bunker"

	t.Run("すべての画風で描写句と固定句が含まれるのだ", func(t *testing.T) {
		for _, style := range domain.AllStyles() {
			got := Compose(style, title, "detail text", false)

			assert.Contains(t, got, styleTemplates[style])
			assert.Contains(t, got, "Style: "+string(style)+".")
			assert.Contains(t, got, RealismBoost)
			assert.Contains(t, got, NegativeConstraint)
		}
	})

	t.Run("MrBeast の例", func(t *testing.T) {
		got := Compose(domain.StyleMrBeast, title, "", false)

		assert.Contains(t, got, title)
		assert.Contains(t, got, "exaggerated shocked or excited expression")
		assert.Contains(t, got, "photorealistic, 8k uhd")
		assert.Contains(t, got, "Exclude: blurry, low quality")
		assert.NotContains(t, got, IdentityClause)
	})

	t.Run("詳細が空ならタイトルを一度だけ詳細として再利用するのだ", func(t *testing.T) {
		got := Compose(domain.StyleVlog, title, "  ", false)

		base := `Create a professional, viral YouTube thumbnail for a video titled "` + title + `". ` + title + ". "
		assert.True(t, strings.HasPrefix(got, base), "unexpected base sentence: %s", got)
		// 引用されたタイトル + 詳細としての再利用
		assert.Equal(t, 2, strings.Count(got, title))
	})

	t.Run("詳細があればタイトルは再利用しないのだ", func(t *testing.T) {
		got := Compose(domain.StyleVlog, title, "a cozy cabin", false)

		assert.Contains(t, got, `titled "`+title+`". a cozy cabin. `)
		assert.Equal(t, 1, strings.Count(got, title))
	})

	t.Run("参照画像があるときだけ同一性保持の指示が入るのだ", func(t *testing.T) {
		with := Compose(domain.StylePodcast, title, "", true)
		without := Compose(domain.StylePodcast, title, "", false)

		assert.True(t, strings.HasSuffix(with, IdentityClause))
		assert.NotContains(t, without, IdentityClause)
	})

	t.Run("未知の画風は写実性強調句のみで失敗しないのだ", func(t *testing.T) {
		got := Compose(domain.ThumbnailStyle("Anime"), title, "", false)

		assert.Contains(t, got, ". "+RealismBoost+" "+NegativeConstraint)
		assert.NotContains(t, got, "Style:")
	})

	t.Run("決定的であるのだ", func(t *testing.T) {
		a := Compose(domain.StyleGaming, title, "boss fight", true)
		b := Compose(domain.StyleGaming, title, "boss fight", true)
		assert.Equal(t, a, b)
	})

	t.Run("固定句の並び順が守られるのだ", func(t *testing.T) {
		got := Compose(domain.StyleMinimalist, title, "", true)

		iStyle := strings.Index(got, styleTemplates[domain.StyleMinimalist])
		iRealism := strings.Index(got, RealismBoost)
		iNeg := strings.Index(got, NegativeConstraint)
		iID := strings.Index(got, IdentityClause)
		assert.True(t, iRealism < iStyle && iStyle < iNeg && iNeg < iID, "clauses out of order: %s", got)
	})
}

func TestStyleDescription(t *testing.T) {
	assert.Contains(t, StyleDescription(domain.StylePodcast), "Microphones clearly visible")
	assert.Empty(t, StyleDescription("Anime"))
}
