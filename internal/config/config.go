// Package config loads eduval settings from flags, EDUVAL_* environment
// variables and an optional eduval.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eduval/eduval/internal/generate"
	"github.com/eduval/eduval/internal/i18n"
	"github.com/eduval/eduval/internal/llm"
	"github.com/eduval/eduval/internal/logging"
	"github.com/eduval/eduval/internal/store"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "EDUVAL"

// Config is the resolved application configuration.
type Config struct {
	Lang     string
	Log      logging.Options
	DB       string // LLM audit log; empty disables it
	Addr     string
	LLM      llm.Config
	Generate generate.Config

	// File is the config file that was read, if any.
	File string
}

// flagKeys maps flag names to the nested keys they override.
var flagKeys = map[string]string{
	"lang":         "lang",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"log-file":     "log.file",
	"db":           "db",
	"addr":         "addr",
	"provider":     "llm.provider",
	"model":        "llm.model",
	"max-attempts": "llm.retry.max_attempts",
}

// New returns a viper instance with defaults, the command's flags, the
// environment and a config file bound. An explicit file must exist;
// otherwise eduval.yaml is searched in . and $HOME/.config/eduval.
func New(cmd *cobra.Command, file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	if cmd != nil {
		bindFlags(v, cmd)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
		return v, nil
	}

	v.SetConfigName("eduval")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/eduval")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load builds a Config for cmd. See New for the lookup order.
func Load(cmd *cobra.Command, file string) (Config, error) {
	v, err := New(cmd, file)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(name)
		}
		if f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("lang", i18n.DefaultLang)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	if path, err := store.DefaultDBPath(); err == nil {
		v.SetDefault("db", path)
	} else {
		v.SetDefault("db", "")
	}
	v.SetDefault("addr", "127.0.0.1:8080")

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("generate.max_tokens", 0)
	v.SetDefault("generate.temperature", 0.7)
}

// FromViper resolves a Config from v. A set llm.model overrides the
// model of the selected provider. Provider keys missing from the
// configuration are discovered from the vendors' own variables.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Lang: v.GetString("lang"),
		Log: logging.Options{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		DB:   v.GetString("db"),
		Addr: v.GetString("addr"),
		LLM: llm.Config{
			Provider: strings.ToLower(v.GetString("llm.provider")),
			Gemini: llm.GeminiConfig{
				APIKey:  v.GetString("llm.gemini.api_key"),
				Model:   v.GetString("llm.gemini.model"),
				BaseURL: v.GetString("llm.gemini.base_url"),
			},
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Anthropic: llm.AnthropicConfig{
				APIKey:  v.GetString("llm.anthropic.api_key"),
				Model:   v.GetString("llm.anthropic.model"),
				BaseURL: v.GetString("llm.anthropic.base_url"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("llm.openrouter.api_key"),
				Model:   v.GetString("llm.openrouter.model"),
				BaseURL: v.GetString("llm.openrouter.base_url"),
			},
			Retry: llm.RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
			Timeout: v.GetDuration("llm.timeout"),
		},
		Generate: generate.Config{
			MaxTokens:   v.GetInt("generate.max_tokens"),
			Temperature: v.GetFloat64("generate.temperature"),
		},
		File: v.ConfigFileUsed(),
	}

	if m := v.GetString("llm.model"); m != "" {
		switch c.LLM.Provider {
		case llm.ProviderGemini:
			c.LLM.Gemini.Model = m
		case llm.ProviderOpenAI:
			c.LLM.OpenAI.Model = m
		case llm.ProviderAnthropic:
			c.LLM.Anthropic.Model = m
		case llm.ProviderOpenRouter:
			c.LLM.OpenRouter.Model = m
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Generate.Temperature < 0 || c.Generate.Temperature > 2 {
		return Config{}, fmt.Errorf("generate.temperature must be within [0, 2], got %v", c.Generate.Temperature)
	}

	c.LLM.Discover()
	return c, nil
}
