package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the aepdown configuration file (~/.config/aepdown/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Conversion defaults
	OutputDir string   `yaml:"output_dir"`
	Targets   []string `yaml:"targets"`
	Workers   *int     `yaml:"workers"`
	Overwrite *bool    `yaml:"overwrite"`

	// History database; "off" disables recording.
	HistoryDB string `yaml:"history_db"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress  string `yaml:"server_address"`
	MaxUploadBytes *int64 `yaml:"max_upload_bytes"`
}

// appConfig is loaded once by the root command's Before hook.
var appConfig Config

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "aepdown", "config.yaml")
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

type convertOptions struct {
	targets   []string
	outDir    string
	workers   int
	overwrite bool
	history   string
	noHistory bool
}

// applyConvertConfig applies config file defaults to convert options when the
// corresponding CLI flag was not explicitly set.
func applyConvertConfig(c *cli.Command, cfg Config, opts *convertOptions) {
	if len(cfg.Targets) > 0 && !c.IsSet("target") {
		opts.targets = cfg.Targets
	}
	if cfg.OutputDir != "" && !c.IsSet("out") {
		opts.outDir = cfg.OutputDir
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		opts.workers = *cfg.Workers
	}
	if cfg.Overwrite != nil && !c.IsSet("overwrite") {
		opts.overwrite = *cfg.Overwrite
	}
	if cfg.HistoryDB != "" && !c.IsSet("history-db") {
		opts.history = cfg.HistoryDB
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxUpload *int64) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxUploadBytes != nil && !c.IsSet("max-upload-bytes") {
		*maxUpload = *cfg.MaxUploadBytes
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) Config {
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
