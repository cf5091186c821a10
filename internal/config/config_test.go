package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a directory with no config file so only defaults apply.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, 4000, cfg.Anthropic.MaxTokens)
	assert.Equal(t, "native", cfg.Parser.Extractor)
	assert.Equal(t, 3000, cfg.Chunker.ChunkSize)
	assert.Equal(t, 300, cfg.Chunker.Overlap)
	assert.Equal(t, 45000, cfg.Extractor.CharBudget)
	assert.Equal(t, 15, cfg.Extractor.MaxChunks)
	assert.Equal(t, 3, cfg.Extractor.MaxRetries)
	assert.Equal(t, 1, cfg.Verifier.PageWindow)
	assert.Equal(t, 20, cfg.Verifier.MinQuoteLen)
	assert.Equal(t, "evidence.db", cfg.Store.Path)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentDocs)
	assert.Equal(t, "info", cfg.Log.Level)

	require.Contains(t, cfg.Pricing.Anthropic, "claude-sonnet-4-5-20250929")
	assert.InDelta(t, 3.00, cfg.Pricing.Anthropic["claude-sonnet-4-5-20250929"].Input, 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EVIDENCE_ANTHROPIC_KEY", "sk-test-123")
	t.Setenv("EVIDENCE_ANTHROPIC_MODEL", "claude-haiku-4-5-20251001")
	t.Setenv("EVIDENCE_EXTRACTOR_MAX_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.Anthropic.Key)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 5, cfg.Extractor.MaxRetries)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := `
anthropic:
  model: claude-opus-4-6
chunker:
  chunk_size: 5000
`
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(yml), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-opus-4-6", cfg.Anthropic.Model)
	assert.Equal(t, 5000, cfg.Chunker.ChunkSize)
	// Untouched keys keep defaults.
	assert.Equal(t, 300, cfg.Chunker.Overlap)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
