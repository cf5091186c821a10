package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Parser    ParserConfig    `yaml:"parser" mapstructure:"parser"`
	Chunker   ChunkerConfig   `yaml:"chunker" mapstructure:"chunker"`
	Extractor ExtractorConfig `yaml:"extractor" mapstructure:"extractor"`
	Verifier  VerifierConfig  `yaml:"verifier" mapstructure:"verifier"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy" mapstructure:"taxonomy"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ParserConfig configures PDF text extraction.
type ParserConfig struct {
	Extractor     string `yaml:"extractor" mapstructure:"extractor"` // "native" or "pdftotext"
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// ChunkerConfig configures text windowing.
type ChunkerConfig struct {
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`
	Overlap   int `yaml:"overlap" mapstructure:"overlap"`
}

// ExtractorConfig configures per-block extraction behavior.
type ExtractorConfig struct {
	CharBudget     int     `yaml:"char_budget" mapstructure:"char_budget"`
	MaxChunks      int     `yaml:"max_chunks" mapstructure:"max_chunks"`
	MaxRetries     int     `yaml:"max_retries" mapstructure:"max_retries"`
	BlockTimeoutS  int     `yaml:"block_timeout_secs" mapstructure:"block_timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// VerifierConfig configures quote verification.
type VerifierConfig struct {
	// PageWindow is the number of adjacent pages searched on either side of
	// the claimed page. Configurable pending product-owner confirmation of
	// the ±1 heuristic.
	PageWindow  int `yaml:"page_window" mapstructure:"page_window"`
	MinQuoteLen int `yaml:"min_quote_len" mapstructure:"min_quote_len"`
}

// PricingConfig holds per-provider pricing rates.
type PricingConfig struct {
	Anthropic map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input         float64 `yaml:"input" mapstructure:"input"`
	Output        float64 `yaml:"output" mapstructure:"output"`
	CacheWriteMul float64 `yaml:"cache_write_mul" mapstructure:"cache_write_mul"`
	CacheReadMul  float64 `yaml:"cache_read_mul" mapstructure:"cache_read_mul"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// TaxonomyConfig points at an optional YAML taxonomy override.
type TaxonomyConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures the multi-document batch driver.
type BatchConfig struct {
	MaxConcurrentDocs int `yaml:"max_concurrent_docs" mapstructure:"max_concurrent_docs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EVIDENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4000)
	v.SetDefault("parser.extractor", "native")
	v.SetDefault("parser.pdftotext_path", "pdftotext")
	v.SetDefault("chunker.chunk_size", 3000)
	v.SetDefault("chunker.overlap", 300)
	v.SetDefault("extractor.char_budget", 45000)
	v.SetDefault("extractor.max_chunks", 15)
	v.SetDefault("extractor.max_retries", 3)
	v.SetDefault("extractor.block_timeout_secs", 120)
	v.SetDefault("extractor.requests_per_sec", 2.0)
	v.SetDefault("verifier.page_window", 1)
	v.SetDefault("verifier.min_quote_len", 20)
	v.SetDefault("store.path", "evidence.db")
	v.SetDefault("batch.max_concurrent_docs", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pricing.anthropic", map[string]any{
		"claude-sonnet-4-5-20250929": map[string]any{
			"input": 3.00, "output": 15.00,
			"cache_write_mul": 1.25, "cache_read_mul": 0.1,
		},
		"claude-haiku-4-5-20251001": map[string]any{
			"input": 0.80, "output": 4.00,
			"cache_write_mul": 1.25, "cache_read_mul": 0.1,
		},
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
