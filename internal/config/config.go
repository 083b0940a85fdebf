// README: Config loader; .env via godotenv, then env overrides and defaults via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AIConfig struct {
	Provider    string
	GeminiKey   string
	OpenAIKey   string
	OpenAIURL   string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	AI   AIConfig
	Maps struct {
		APIKey  string
		Timeout time.Duration
	}
	Speech struct {
		Enabled         bool
		CredentialsFile string
		Timeout         time.Duration
	}
	Redis struct {
		Addr string
	}
	Session struct {
		TTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from the process environment (and a .env file when
// present). It fails when the API key of the selected model provider is missing.
func Load() (Config, error) {
	loadDotEnv()
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PATHPLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("cors.origins", "")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("openai.url", "")
	v.SetDefault("model.timeout", 30*time.Second)
	v.SetDefault("maps.api.key", "")
	v.SetDefault("geocode.timeout", 5*time.Second)
	v.SetDefault("speech.enabled", false)
	v.SetDefault("speech.credentials.file", "")
	v.SetDefault("speech.timeout", 15*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Provider keys keep their conventional unprefixed names.
	_ = v.BindEnv("gemini.api.key", "GEMINI_API_KEY")
	_ = v.BindEnv("openai.api.key", "OPENAI_API_KEY")
	return v
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.CORSOrigins = splitList(v.GetString("cors.origins"))

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(v.GetString("ai.provider")))
	cfg.AI.GeminiKey = v.GetString("gemini.api.key")
	cfg.AI.OpenAIKey = v.GetString("openai.api.key")
	cfg.AI.OpenAIURL = v.GetString("openai.url")
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.Temperature = float32(v.GetFloat64("ai.temperature"))
	cfg.AI.Timeout = v.GetDuration("model.timeout")

	cfg.Maps.APIKey = v.GetString("maps.api.key")
	cfg.Maps.Timeout = v.GetDuration("geocode.timeout")

	cfg.Speech.Enabled = v.GetBool("speech.enabled")
	cfg.Speech.CredentialsFile = v.GetString("speech.credentials.file")
	cfg.Speech.Timeout = v.GetDuration("speech.timeout")

	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Session.TTL = v.GetDuration("session.ttl")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiKey == "" {
			return errors.New("environment variable GEMINI_API_KEY is required")
		}
	case "openai":
		if cfg.AI.OpenAIKey == "" {
			return errors.New("environment variable OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("model timeout must be positive, got %s", cfg.AI.Timeout)
	}
	return nil
}

// loadDotEnv loads the first .env found in the working directory or the
// nearest directory holding go.mod. A missing file is not an error.
func loadDotEnv() {
	candidates := []string{".env"}
	if root := findProjectRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
