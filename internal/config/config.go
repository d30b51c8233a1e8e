package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Styles   StylesConfig   `mapstructure:"styles"`
	Export   ExportConfig   `mapstructure:"export"`
	ImageGen ImageGenConfig `mapstructure:"imagegen"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type StylesConfig struct {
	BasePath   string `mapstructure:"base_path"`
	CustomPath string `mapstructure:"custom_path"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type ImageGenConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	SamplerName       string        `mapstructure:"sampler_name"`
	Steps             int           `mapstructure:"steps"`
	StabilizerLora    string        `mapstructure:"stabilizer_lora"`
	NegativeEmbedding string        `mapstructure:"negative_embedding"`
	MaxDimension      int           `mapstructure:"max_dimension"`
	Timeout           time.Duration `mapstructure:"timeout"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

type LLMConfig struct {
	DefaultProvider string       `mapstructure:"default_provider"`
	Ollama          OllamaConfig `mapstructure:"ollama"`
	Gemini          GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	Host         string `mapstructure:"host"`
	DefaultModel string `mapstructure:"default_model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SecurityConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	// Override with environment variables
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s") // image generation blocks the response
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.middleware_timeout", "300s")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Styles
	v.SetDefault("styles.base_path", "./configs/styles.json")
	v.SetDefault("styles.custom_path", "./configs/styles/custom_styles.csv")

	// Export
	v.SetDefault("export.dir", "./exports")

	// Image generation
	v.SetDefault("imagegen.endpoint", "http://localhost:7860/sdapi/v1/txt2img")
	v.SetDefault("imagegen.sampler_name", "DPM++ 2M SDE")
	v.SetDefault("imagegen.steps", 23)
	v.SetDefault("imagegen.max_dimension", 1536)
	v.SetDefault("imagegen.timeout", "300s")
	v.SetDefault("imagegen.cache_ttl", "5m")

	// LLM
	v.SetDefault("llm.default_provider", "ollama")
	v.SetDefault("llm.ollama.host", "http://localhost:11434")
	v.SetDefault("llm.ollama.default_model", "gemma3:12b")

	// Security
	v.SetDefault("security.rate_limit.requests_per_minute", 60)
	v.SetDefault("security.rate_limit.burst", 10)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.dir", "./logs")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")

	// Export
	v.BindEnv("export.dir", "EXPORT_DIR")

	// Image generation
	v.BindEnv("imagegen.endpoint", "SD_API_ENDPOINT")

	// LLM
	v.BindEnv("llm.ollama.host", "OLLAMA_HOST")
	v.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY")
}
