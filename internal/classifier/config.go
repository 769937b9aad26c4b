package classifier

import (
	"fmt"
	"os"
	"time"
)

// Backend selector values for Config.Mode.
const (
	ModeOpenAI    = "open_ai"
	ModeZeroShot  = "hugging_face"
	ModeFineTuned = "fine_tuned_bart"
)

// Config holds classifier backend selection and per-backend parameters.
type Config struct {
	Mode    string       `toml:"mode"`
	Timeout string       `toml:"timeout"`
	OpenAI  OpenAIConfig `toml:"open_ai"`
	Local   LocalConfig  `toml:"local"`
}

// OpenAIConfig holds parameters for the remote chat-completion backend.
type OpenAIConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// LocalConfig holds parameters for the local inference backends.
type LocalConfig struct {
	BaseURL      string `toml:"base_url"`
	ArtifactPath string `toml:"artifact_path"`
}

// Env maps config fields to environment variable names.
type Env struct {
	Mode         string
	Timeout      string
	APIKey       string
	Model        string
	BaseURL      string
	ArtifactPath string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.OpenAI.APIKey != "" {
		c.OpenAI.APIKey = overlay.OpenAI.APIKey
	}
	if overlay.OpenAI.Model != "" {
		c.OpenAI.Model = overlay.OpenAI.Model
	}
	if overlay.OpenAI.MaxTokens != 0 {
		c.OpenAI.MaxTokens = overlay.OpenAI.MaxTokens
	}
	if overlay.OpenAI.Temperature != 0 {
		c.OpenAI.Temperature = overlay.OpenAI.Temperature
	}
	if overlay.Local.BaseURL != "" {
		c.Local.BaseURL = overlay.Local.BaseURL
	}
	if overlay.Local.ArtifactPath != "" {
		c.Local.ArtifactPath = overlay.Local.ArtifactPath
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeZeroShot
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 150
	}
	if c.OpenAI.Temperature == 0 {
		c.OpenAI.Temperature = 0.1
	}
	if c.Local.BaseURL == "" {
		c.Local.BaseURL = "http://localhost:8090"
	}
	if c.Local.ArtifactPath == "" {
		c.Local.ArtifactPath = "models/fine_tuned_bart"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(envVar string, dst *string) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			*dst = v
		}
	}

	setString(env.Mode, &c.Mode)
	setString(env.Timeout, &c.Timeout)
	setString(env.APIKey, &c.OpenAI.APIKey)
	setString(env.Model, &c.OpenAI.Model)
	setString(env.BaseURL, &c.Local.BaseURL)
	setString(env.ArtifactPath, &c.Local.ArtifactPath)
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeOpenAI, ModeZeroShot, ModeFineTuned:
	default:
		return fmt.Errorf(
			"invalid classifier mode %q: valid modes are %s, %s, %s",
			c.Mode, ModeOpenAI, ModeZeroShot, ModeFineTuned,
		)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.OpenAI.MaxTokens < 1 {
		return fmt.Errorf("open_ai max_tokens must be positive, got %d", c.OpenAI.MaxTokens)
	}
	return nil
}
