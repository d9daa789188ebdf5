package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "BINDER"
	ConfigFileName = "novel-binder"

	DefaultOutputPath = "./novels"
	DefaultLanguage   = "en"
	DefaultBinary     = "kindlegen"
)

type (
	Config struct {
		OutputPath   string
		PackByVolume bool
		AssumeYes    bool
		Language     string
		MetricsFile  string
		Kindlegen
		Log
	}

	Kindlegen struct {
		Dir    string
		URL    string // empty means the release for the current OS
		Binary string
	}

	Log struct {
		Level  string // debug, info, warn or error
		Format string // text or json
	}
)

// flagKeys maps config keys to the command line flags that override them.
var flagKeys = map[string]string{
	"output_path":    "output-path",
	"pack_by_volume": "pack-by-volume",
	"assume_yes":     "yes",
	"language":       "language",
	"metrics_file":   "metrics-file",
	"log.level":      "log-level",
	"log.format":     "log-format",
}

// Load resolves the configuration from, in increasing priority: defaults, the
// YAML config file, .env files, BINDER_* environment variables and flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_path", DefaultOutputPath)
	v.SetDefault("pack_by_volume", false)
	v.SetDefault("assume_yes", false)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("metrics_file", "")
	v.SetDefault("kindlegen.dir", "")
	v.SetDefault("kindlegen.url", "")
	v.SetDefault("kindlegen.binary", DefaultBinary)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if flags != nil {
		for key, name := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				err := v.BindPFlag(key, flag)
				if err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	err := readConfigFile(v, flags)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OutputPath:   v.GetString("output_path"),
		PackByVolume: v.GetBool("pack_by_volume"),
		AssumeYes:    v.GetBool("assume_yes"),
		Language:     v.GetString("language"),
		MetricsFile:  v.GetString("metrics_file"),
		Kindlegen: Kindlegen{
			Dir:    v.GetString("kindlegen.dir"),
			URL:    v.GetString("kindlegen.url"),
			Binary: v.GetString("kindlegen.binary"),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
	if cfg.Kindlegen.Dir == "" {
		cfg.Kindlegen.Dir = defaultToolDir(cfg.OutputPath)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags != nil {
		if path, err := flags.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			return nil
		}
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// loadEnvFiles loads .env and .env.local when present. Variables that are
// already set are not overwritten.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		}
	}
}

func defaultToolDir(outputPath string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(outputPath, ".tools")
	}
	return filepath.Join(home, ".novel-binder", "bin")
}

func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
}
