package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigPath = "CHATFMT_CONFIG"

// Config represents the chatfmt configuration file (~/.config/chatfmt/config.yaml).
type Config struct {
	DefaultTemplate string `yaml:"default_template"`
	PlayerName      string `yaml:"player_name"`
	AIName          string `yaml:"ai_name"`
	ModelsDir       string `yaml:"models_dir"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatfmt", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't
// exist or cannot be parsed.
func LoadConfig(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}

// applyLoggingConfig applies config file defaults to the root logging flags
// when the corresponding CLI flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") && !c.IsSet("debug") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyNameConfig fills the speaker names from the config file.
func applyNameConfig(c *cli.Command, cfg Config, player, ai *string) {
	if cfg.PlayerName != "" && !c.IsSet("player") {
		*player = cfg.PlayerName
	}
	if cfg.AIName != "" && !c.IsSet("ai") {
		*ai = cfg.AIName
	}
}

func applyModelsConfig(c *cli.Command, cfg Config, modelsDir *string) {
	if cfg.ModelsDir != "" && !c.IsSet("models-path") {
		*modelsDir = cfg.ModelsDir
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
