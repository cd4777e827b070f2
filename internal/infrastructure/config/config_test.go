package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))

	require.NoError(t, err)
	assert.Equal(t, "RecipeQL", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "recipe.csv", cfg.Dataset.Path)
	assert.Equal(t, "llama3", cfg.AI.Model)
	assert.Equal(t, 2, cfg.AI.QueryAttempts)
	assert.Equal(t, 10*time.Minute, cfg.AI.CacheTTL)
	assert.True(t, cfg.AI.EnableCache)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  environment: production
server:
  port: 9000
dataset:
  path: /data/recipes.csv
ai:
  model: llama3.1:8b
  query_attempts: 3
  retry_backoff: 2s
`))

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/data/recipes.csv", cfg.Dataset.Path)
	assert.Equal(t, "llama3.1:8b", cfg.AI.Model)
	assert.Equal(t, 3, cfg.AI.QueryAttempts)
	assert.Equal(t, 2*time.Second, cfg.AI.RetryBackoff)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Validation(t *testing.T) {
	t.Run("BadPort", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server:\n  port: 0\n"))
		assert.Error(t, err)
	})

	t.Run("ZeroAttempts", func(t *testing.T) {
		_, err := Load(writeConfig(t, "ai:\n  query_attempts: 0\n"))
		assert.Error(t, err)
	})

	t.Run("EmptyDatasetPath", func(t *testing.T) {
		_, err := Load(writeConfig(t, "dataset:\n  path: \"\"\n"))
		assert.Error(t, err)
	})
}
