package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chatstats/internal/domain"
)

const (
	// EnvPrefix prefixes every environment override, e.g. CHATSTATS_EXPORT
	EnvPrefix = "CHATSTATS"
	// FileName is the optional config file name, without extension
	FileName = "chatstats"
)

// Keys understood by Load
const (
	KeyExport     = "export"
	KeyDebug      = "debug"
	KeyNewestYear = "years.newest"
	KeyOldestYear = "years.oldest"
	KeyLogFormat  = "log.format"
)

// Config holds the settings of a run
type Config struct {
	ExportRoot string
	Debug      bool
	NewestYear int
	OldestYear int
	LogFormat  string
	File       string // Config file that was read, if any
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Debug:      false,
		NewestYear: domain.DefaultNewestYear,
		OldestYear: domain.DefaultOldestYear,
		LogFormat:  "console",
	}
}

// Dir returns the directory searched for chatstats.yaml
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatstats")
}

// Load reads settings from, highest priority first: flags that were set,
// CHATSTATS_* environment variables, chatstats.{yaml,json,toml} in Dir(),
// and defaults. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	return load(flags, Dir())
}

func load(flags *pflag.FlagSet, configDir string) (Config, error) {
	def := Default()
	v := viper.New()

	v.SetDefault(KeyExport, def.ExportRoot)
	v.SetDefault(KeyDebug, def.Debug)
	v.SetDefault(KeyNewestYear, def.NewestYear)
	v.SetDefault(KeyOldestYear, def.OldestYear)
	v.SetDefault(KeyLogFormat, def.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName(FileName)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for key, flag := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	return Config{
		ExportRoot: v.GetString(KeyExport),
		Debug:      v.GetBool(KeyDebug),
		NewestYear: v.GetInt(KeyNewestYear),
		OldestYear: v.GetInt(KeyOldestYear),
		LogFormat:  v.GetString(KeyLogFormat),
		File:       v.ConfigFileUsed(),
	}, nil
}

// flagKeys maps config keys to the flag names commands register
var flagKeys = map[string]string{
	KeyExport:     "export",
	KeyDebug:      "debug",
	KeyNewestYear: "newest",
	KeyOldestYear: "oldest",
	KeyLogFormat:  "log-format",
}

// YearRange returns the configured years, newest first
func (c Config) YearRange() (domain.YearRange, error) {
	return domain.NewYearRange(c.NewestYear, c.OldestYear)
}
