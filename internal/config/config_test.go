package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("デフォルト値が入るのだ", func(t *testing.T) {
		t.Setenv("THUMBNAIL_GEMINI_API_KEY", "key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "gemini-2.5-flash-image", cfg.GeminiModel)
		assert.Equal(t, 3, cfg.GenerationCount)
		assert.Equal(t, 60*time.Second, cfg.CallTimeout)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.False(t, cfg.AdminEnabled())
	})

	t.Run("環境変数で上書きできるのだ", func(t *testing.T) {
		t.Setenv("THUMBNAIL_GEMINI_API_KEY", "key")
		t.Setenv("THUMBNAIL_GENERATION_COUNT", "5")
		t.Setenv("THUMBNAIL_CALL_TIMEOUT", "90s")
		t.Setenv("THUMBNAIL_CORS_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("THUMBNAIL_ADMIN_ID", "root")
		t.Setenv("THUMBNAIL_ADMIN_PASSWORD_HASH", "$2a$10$abc")
		t.Setenv("THUMBNAIL_JWT_SECRET", "s3cret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.GenerationCount)
		assert.Equal(t, 90*time.Second, cfg.CallTimeout)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
		assert.True(t, cfg.AdminEnabled())
	})

	t.Run("APIキーがなければエラーなのだ", func(t *testing.T) {
		t.Setenv("THUMBNAIL_GEMINI_API_KEY", "")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	base := Config{GeminiAPIKey: "k", GenerationCount: 3, CallTimeout: time.Second}

	c := base
	c.GenerationCount = 0
	assert.Error(t, c.Validate())

	c = base
	c.AdminID, c.AdminPasswordHash = "root", "hash"
	assert.Error(t, c.Validate(), "管理者を有効にするなら JWT_SECRET が必要なのだ")

	assert.NoError(t, base.Validate())
}
