package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the MiniMax credential.
const APIKeyEnv = "MINIMAX_API_KEY"

type Config struct {
	Address string `mapstructure:"address" yaml:"address"`

	// TelemetryEndpoint is the OTLP/HTTP collector as host:port. Empty disables tracing.
	TelemetryEndpoint string `mapstructure:"telemetry_endpoint" yaml:"telemetry_endpoint"`

	Log     Log     `mapstructure:"log" yaml:"log"`
	MiniMax MiniMax `mapstructure:"minimax" yaml:"minimax"`
}

type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MiniMax is the upstream provider configuration. It is read once at start
// and never changed afterwards. An empty APIKey is not a load error; the
// client reports it on first use.
type MiniMax struct {
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	URL         string  `mapstructure:"url" yaml:"url"`
	Model       string  `mapstructure:"model" yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	TopP        float64 `mapstructure:"top_p" yaml:"top_p"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("address", ":3000")
	v.SetDefault("telemetry_endpoint", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("minimax.url", "https://api.minimax.chat/v1/chat/completions")
	v.SetDefault("minimax.model", "m2-her")
	v.SetDefault("minimax.temperature", 1.0)
	v.SetDefault("minimax.top_p", 0.95)

	// allow environment variables like RELAY_ADDRESS or RELAY_MINIMAX_MODEL
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("minimax.api_key", APIKeyEnv); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// don't fail if config file is missing, allow env-only config
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Redacted renders the configuration as YAML with the API key masked.
func (c *Config) Redacted() (string, error) {
	cp := *c
	if cp.MiniMax.APIKey != "" {
		cp.MiniMax.APIKey = "[REDACTED]"
	}
	out, err := yaml.Marshal(&cp)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
