package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	BaseURL         string        `mapstructure:"base_url"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SwaggerEnabled  bool          `mapstructure:"swagger_enabled"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig describes the relational store holding typed tickets.
// DSN wins over the discrete host/port fields when both are set.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch strings.ToLower(d.Driver) {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

// DocumentStoreConfig describes the store holding image-derived tickets.
type DocumentStoreConfig struct {
	Driver     string        `mapstructure:"driver"`
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ClassifierConfig points at the exported model artifacts.
// Category prediction uses CategoryModelDir when set and DefaultCategory otherwise.
type ClassifierConfig struct {
	ModelDir         string `mapstructure:"model_dir"`
	VectorizerFile   string `mapstructure:"vectorizer_file"`
	ModelFile        string `mapstructure:"model_file"`
	LabelEncoderFile string `mapstructure:"label_encoder_file"`
	CategoryModelDir string `mapstructure:"category_model_dir"`
	DefaultCategory  string `mapstructure:"default_category"`
	NormalizeInput   bool   `mapstructure:"normalize_input"`
}

type GeneratorConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	FailureMode string        `mapstructure:"failure_mode"`
	PromptFile  string        `mapstructure:"prompt_file"`
}

type OCRConfig struct {
	Engine        string `mapstructure:"engine"`
	TesseractPath string `mapstructure:"tesseract_path"`
	Language      string `mapstructure:"language"`
	MaxImageBytes int64  `mapstructure:"max_image_bytes"`
	MaxPixels     int64  `mapstructure:"max_pixels"`
}

type PipelineConfig struct {
	OCRTimeout      time.Duration `mapstructure:"ocr_timeout"`
	ClassifyTimeout time.Duration `mapstructure:"classify_timeout"`
	PersistTimeout  time.Duration `mapstructure:"persist_timeout"`
}

// NotifyConfig controls escalation e-mails sent after intake.
type NotifyConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address"`
	FromName     string   `mapstructure:"from_name"`
	To           []string `mapstructure:"to"`
	Priorities   []string `mapstructure:"priorities"`
}
