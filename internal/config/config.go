package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	OCR        OCRConfig        `yaml:"ocr" mapstructure:"ocr"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the report corpus.
type InputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// OutputConfig controls where datasets are written.
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	XLSXSummary bool   `yaml:"xlsx_summary" mapstructure:"xlsx_summary"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// GenerationConfig controls the question synthesis loop.
type GenerationConfig struct {
	QuestionsPerCompany  int `yaml:"questions_per_company" mapstructure:"questions_per_company"`
	QuestionsPerCall     int `yaml:"questions_per_call" mapstructure:"questions_per_call"`
	MaxChunksPerDocument int `yaml:"max_chunks_per_document" mapstructure:"max_chunks_per_document"`
	MaxAttempts          int `yaml:"max_attempts" mapstructure:"max_attempts"`
	RequestsPerMinute    int `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// OCRConfig configures PDF text extraction.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MistralKey    string `yaml:"mistral_api_key" mapstructure:"mistral_api_key"`
}

// StoreConfig configures the local run ledger. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	// Best-effort .env load so QUIZGEN_* vars can live in a dotfile.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("QUIZGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.dir", "files")
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.xlsx_summary", false)
	// Secrets default to empty so Unmarshal can see their env values; viper
	// only enumerates keys it already knows about.
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.temperature", 0.7)
	v.SetDefault("generation.questions_per_company", 50)
	v.SetDefault("generation.questions_per_call", 5)
	v.SetDefault("generation.max_chunks_per_document", 5)
	v.SetDefault("generation.max_attempts", 1)
	v.SetDefault("generation.requests_per_minute", 0)
	v.SetDefault("ocr.provider", "native")
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("ocr.mistral_api_key", "")
	v.SetDefault("store.path", "quizgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
