package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/helpdesk-ai/helpdesk/internal/shared/config"
)

const (
	FailureModeSentinel = "sentinel"
	FailureModeNull     = "null"
)

type Config struct {
	Server        sharedConfig.ServerConfig        `mapstructure:"server"`
	Database      sharedConfig.DatabaseConfig      `mapstructure:"database"`
	DocumentStore sharedConfig.DocumentStoreConfig `mapstructure:"document_store"`
	Logger        sharedConfig.LoggerConfig        `mapstructure:"logger"`
	Redis         sharedConfig.RedisConfig         `mapstructure:"redis"`
	RateLimit     sharedConfig.RateLimitConfig     `mapstructure:"rate_limit"`
	Classifier    sharedConfig.ClassifierConfig    `mapstructure:"classifier"`
	Generator     sharedConfig.GeneratorConfig     `mapstructure:"generator"`
	OCR           sharedConfig.OCRConfig           `mapstructure:"ocr"`
	Pipeline      sharedConfig.PipelineConfig      `mapstructure:"pipeline"`
	Notify        sharedConfig.NotifyConfig        `mapstructure:"notify"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// envAliases maps config keys to the plain environment variables used by
// existing deployments, in addition to the HELPDESK_ prefixed form.
var envAliases = map[string][]string{
	"database.dsn":         {"SUPABASE_URL", "DATABASE_URL"},
	"document_store.uri":   {"MONGO_URI"},
	"generator.api_key":    {"GROQ_API_KEY"},
	"classifier.model_dir": {"MODEL_DIR"},
}

// Load loads configuration from file and environment variables.
// A missing config file is not an error: defaults and environment are enough
// to boot the service.
func Load(env string, configPath ...string) (*Config, error) {
	v := viper.New()

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("HELPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{"HELPDESK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("configuration error: unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.GetDSN() == "" {
		return fmt.Errorf("configuration error: database dsn is required")
	}

	switch strings.ToLower(c.DocumentStore.Driver) {
	case "mongo":
		if c.DocumentStore.URI == "" {
			return fmt.Errorf("configuration error: document_store.uri is required for the mongo driver")
		}
	case "sql":
	default:
		return fmt.Errorf("configuration error: unsupported document store driver %q", c.DocumentStore.Driver)
	}

	if c.Classifier.ModelDir == "" {
		return fmt.Errorf("configuration error: classifier.model_dir is required")
	}

	switch strings.ToLower(c.Generator.Provider) {
	case "groq", "openai", "anthropic":
	default:
		return fmt.Errorf("configuration error: unsupported generator provider %q", c.Generator.Provider)
	}

	switch c.Generator.FailureMode {
	case FailureModeSentinel, FailureModeNull:
	default:
		return fmt.Errorf("configuration error: generator.failure_mode must be %q or %q", FailureModeSentinel, FailureModeNull)
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.swagger_enabled", true)

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "helpdesk")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Document store defaults
	v.SetDefault("document_store.driver", "mongo")
	v.SetDefault("document_store.uri", "mongodb://localhost:27017")
	v.SetDefault("document_store.database", "ticket_system")
	v.SetDefault("document_store.collection", "ocr_tickets")
	v.SetDefault("document_store.timeout", "10s")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", "1m")

	// Classifier defaults
	v.SetDefault("classifier.model_dir", "./models")
	v.SetDefault("classifier.vectorizer_file", "tfidf_vectorizer.json")
	v.SetDefault("classifier.model_file", "xgboost_model.json")
	v.SetDefault("classifier.label_encoder_file", "label_encoder.json")
	v.SetDefault("classifier.category_model_dir", "")
	v.SetDefault("classifier.default_category", "software")
	v.SetDefault("classifier.normalize_input", true)

	// Generator defaults
	v.SetDefault("generator.provider", "groq")
	// blank base_url and model resolve per provider in the genai package
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.temperature", 0.5)
	v.SetDefault("generator.top_p", 0.9)
	v.SetDefault("generator.max_tokens", 800)
	v.SetDefault("generator.timeout", "60s")
	v.SetDefault("generator.failure_mode", FailureModeSentinel)
	v.SetDefault("generator.prompt_file", "")

	// OCR defaults
	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.max_image_bytes", 10<<20)
	v.SetDefault("ocr.max_pixels", 40_000_000)

	// Pipeline defaults
	v.SetDefault("pipeline.ocr_timeout", "30s")
	v.SetDefault("pipeline.classify_timeout", "5s")
	v.SetDefault("pipeline.persist_timeout", "10s")

	// Notify defaults
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.smtp_host", "localhost")
	v.SetDefault("notify.smtp_port", 1025)
	v.SetDefault("notify.smtp_user", "")
	v.SetDefault("notify.smtp_password", "")
	v.SetDefault("notify.from_address", "helpdesk@localhost")
	v.SetDefault("notify.from_name", "Helpdesk")
	v.SetDefault("notify.to", []string{})
	v.SetDefault("notify.priorities", []string{"high", "critical"})
}
