package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	OpenAI     OpenAIConfig
	MeetStream MeetStreamConfig
	Assembly   AssemblyConfig
	Zoom       ZoomOAuthConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Pipeline   PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// OpenAIConfig holds the completion model settings
type OpenAIConfig struct {
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	Model       string        `envconfig:"OPENAI_MODEL" default:"gpt-4"`
	BaseURL     string        `envconfig:"OPENAI_BASE_URL"`
	Temperature float64       `envconfig:"OPENAI_TEMPERATURE" default:"0.2"`
	MaxTokens   int           `envconfig:"OPENAI_MAX_TOKENS" default:"1000"`
	RateLimit   float64       `envconfig:"OPENAI_RATE_LIMIT" default:"3"`
	RateBurst   int           `envconfig:"OPENAI_RATE_BURST" default:"1"`
	MaxRetries  uint64        `envconfig:"OPENAI_MAX_RETRIES" default:"0"`
	Timeout     time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
}

// MeetStreamConfig holds meeting bot API settings
type MeetStreamConfig struct {
	APIKey     string        `envconfig:"MEETSTREAM_API_KEY"`
	APIURL     string        `envconfig:"MEETSTREAM_API_URL" default:"https://api.meetstream.ai"`
	BotName    string        `envconfig:"MEETSTREAM_BOT_NAME" default:"Legal Assistant Bot"`
	WebhookURL string        `envconfig:"MEETSTREAM_WEBHOOK_URL"`
	Timeout    time.Duration `envconfig:"MEETSTREAM_TIMEOUT" default:"30s"`
}

// AssemblyConfig holds AssemblyAI settings
type AssemblyConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// ZoomOAuthConfig holds Zoom OAuth configuration
type ZoomOAuthConfig struct {
	ClientID     string `envconfig:"ZOOM_CLIENT_ID"`
	ClientSecret string `envconfig:"ZOOM_CLIENT_SECRET"`
	RedirectURL  string `envconfig:"ZOOM_REDIRECT_URL" default:"http://localhost:8080/v1/auth/zoom/callback"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CacheConfig holds completion cache settings
type CacheConfig struct {
	Enabled         bool          `envconfig:"CACHE_ENABLED" default:"true"`
	TTL             time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	CleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"15m"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"legalmind"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// PipelineConfig holds analysis pipeline settings
type PipelineConfig struct {
	Parallel bool `envconfig:"PIPELINE_PARALLEL" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// FromEnv decodes every section from the process environment without
// reading .env or validating.
func FromEnv() (*Config, error) {
	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.OpenAI,
		&config.MeetStream,
		&config.Assembly,
		&config.Zoom,
		&config.Redis,
		&config.Cache,
		&config.Storage,
		&config.Pipeline,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.IsTest() {
		return nil
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.MeetStream.APIKey == "" {
		return fmt.Errorf("MEETSTREAM_API_KEY is required")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsTest reports whether the server runs in the test environment
func (c *Config) IsTest() bool {
	return c.Server.Environment == "test"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
