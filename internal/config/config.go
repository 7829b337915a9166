// Package config loads reviewbot configuration from the environment.
//
// Everything comes from environment variables (the tool is meant to run
// inside a CI job); an optional .env file in the working directory is read
// first so local runs don't need to export anything.
package config

import (
	"github.com/spf13/viper"
)

// Defaults for the review request. The character and token limits match the
// context window of the default Groq model.
const (
	DefaultModel        = "llama-3.3-70b-versatile"
	DefaultGroqURL      = "https://api.groq.com/openai/v1/chat/completions"
	DefaultMaxDiffChars = 30000
	DefaultMaxTokens    = 4096
	DefaultTemperature  = 0.3
)

// Config holds the effective reviewbot configuration.
type Config struct {
	// GitHub Actions context.
	EventPath string
	Ref       string
	Repo      string

	// Completion service.
	APIKey       string
	Model        string
	BaseURL      string
	MaxDiffChars int
	MaxTokens    int
	Temperature  float64

	LogLevel string
}

// Load builds the effective config: defaults <- .env file <- environment.
func Load() Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("REVIEWBOT_MODEL", DefaultModel)
	v.SetDefault("REVIEWBOT_GROQ_URL", DefaultGroqURL)
	v.SetDefault("REVIEWBOT_MAX_DIFF_CHARS", DefaultMaxDiffChars)
	v.SetDefault("REVIEWBOT_MAX_TOKENS", DefaultMaxTokens)
	v.SetDefault("REVIEWBOT_TEMPERATURE", DefaultTemperature)
	v.SetDefault("REVIEWBOT_LOG_LEVEL", "info")

	// A missing .env is the normal case in CI; the environment is
	// authoritative either way.
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	return Config{
		EventPath:    v.GetString("GITHUB_EVENT_PATH"),
		Ref:          v.GetString("GITHUB_REF"),
		Repo:         v.GetString("GITHUB_REPOSITORY"),
		APIKey:       v.GetString("GROQ_API_KEY"),
		Model:        v.GetString("REVIEWBOT_MODEL"),
		BaseURL:      v.GetString("REVIEWBOT_GROQ_URL"),
		MaxDiffChars: v.GetInt("REVIEWBOT_MAX_DIFF_CHARS"),
		MaxTokens:    v.GetInt("REVIEWBOT_MAX_TOKENS"),
		Temperature:  v.GetFloat64("REVIEWBOT_TEMPERATURE"),
		LogLevel:     v.GetString("REVIEWBOT_LOG_LEVEL"),
	}
}
