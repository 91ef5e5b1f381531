// Package config handles loading and validating the duocast configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for duocast.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Access     AccessConfig     `mapstructure:"access"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Generation GenerationConfig `mapstructure:"generation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Debug      bool             `mapstructure:"debug"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	GRPC GRPCConfig `mapstructure:"grpc"`
}

// HTTPConfig configures the REST API.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// GRPCConfig configures the gRPC health endpoint.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// OpenAIConfig holds Azure OpenAI settings. When APIKey is empty the
// default Azure credential chain (managed identity, Azure CLI, ...) is used.
type OpenAIConfig struct {
	Endpoint                string `mapstructure:"endpoint"`
	APIKey                  string `mapstructure:"api_key"`
	APIVersion              string `mapstructure:"api_version"`
	Deployment              string `mapstructure:"deployment"`
	TranscriptionDeployment string `mapstructure:"transcription_deployment"`
	TranscriptionAPIVersion string `mapstructure:"transcription_api_version"`
}

// SpeechConfig holds Azure Speech settings. Either Key or ResourceID
// (for Entra ID token auth) must be set together with Region.
type SpeechConfig struct {
	Key        string `mapstructure:"key"`
	Region     string `mapstructure:"region"`
	ResourceID string `mapstructure:"resource_id"`
	Endpoint   string `mapstructure:"endpoint"` // overrides the regional endpoint
}

// AccessConfig restricts the app to a set of Entra ID tenants.
// An empty list disables the check.
type AccessConfig struct {
	AuthorizedTenants []string `mapstructure:"authorized_tenants"`
}

// ExtractConfig controls content extraction.
type ExtractConfig struct {
	WebCleanup    bool          `mapstructure:"web_cleanup"` // rewrite scraped pages to markdown with the LLM
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxUploadSize int64         `mapstructure:"max_upload_size"`
}

// GenerationConfig holds script generation defaults.
type GenerationConfig struct {
	DefaultTitle string `mapstructure:"default_title"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// envAliases binds config keys to the environment names used by existing
// deployments, in addition to the DUOCAST_ prefixed form.
var envAliases = map[string][]string{
	"openai.endpoint":           {"AZURE_OPENAI_ENDPOINT"},
	"openai.api_key":            {"AZURE_OPENAI_KEY"},
	"openai.deployment":         {"AZURE_OPENAI_MODEL_DEPLOYMENT"},
	"speech.key":                {"AZURE_SPEECH_KEY"},
	"speech.region":             {"AZURE_SPEECH_REGION"},
	"speech.resource_id":        {"AZURE_SPEECH_RESOURCE_ID"},
	"access.authorized_tenants": {"ENTRA_AUTHORIZED_TENANTS"},
	"debug":                     {"DEBUG_MODE"},
}

// Load reads the configuration from file, environment variables, and defaults.
// A .env file in the working directory is loaded first if present.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./duocast.yaml, ./configs/duocast.yaml, /etc/duocast/duocast.yaml.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("openai.api_version", "2024-08-01-preview")
	v.SetDefault("openai.deployment", "gpt-4o")
	v.SetDefault("openai.transcription_deployment", "whisper")
	v.SetDefault("openai.transcription_api_version", "2024-06-01")
	v.SetDefault("access.authorized_tenants", []string{})
	v.SetDefault("extract.web_cleanup", true)
	v.SetDefault("extract.timeout", 60*time.Second)
	v.SetDefault("extract.max_upload_size", 25<<20)
	v.SetDefault("generation.default_title", "AI in Action")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("debug", false)

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("duocast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/duocast")
	}

	// Environment variables: DUOCAST_OPENAI_ENDPOINT, DUOCAST_SPEECH_REGION, etc.
	v.SetEnvPrefix("DUOCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{"DUOCAST_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${AZURE_OPENAI_KEY}")
	cfg.OpenAI.APIKey = resolveEnvRef(cfg.OpenAI.APIKey)
	cfg.Speech.Key = resolveEnvRef(cfg.Speech.Key)

	cfg.Access.AuthorizedTenants = cleanList(cfg.Access.AuthorizedTenants)
	if cfg.Debug {
		cfg.Logging.Level = "debug"
	}

	return &cfg, nil
}

// Validate reports missing settings required to generate podcasts.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAI.Endpoint == "" {
		missing = append(missing, "openai.endpoint")
	}
	if c.Speech.Region == "" && c.Speech.Endpoint == "" {
		missing = append(missing, "speech.region")
	}
	if c.Speech.Key == "" && c.Speech.ResourceID == "" {
		missing = append(missing, "speech.key or speech.resource_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// cleanList splits comma-joined entries and drops blanks.
func cleanList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
