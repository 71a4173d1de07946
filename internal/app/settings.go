package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Setting keys shared by the settings file, the PIVOTAXIS_* environment and
// the CLI flags.
const (
	KeyReport    = "report"
	KeyPaths     = "paths"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyOutput    = "output"
	KeyLayout    = "layout"
)

// LoadSettings overlays the settings file (when path is set, or a
// pivotaxis.yaml in the working directory) and PIVOTAXIS_* environment
// variables onto cfg. Keys listed in explicit were set on the command line
// and keep their value from cfg.
func LoadSettings(path string, cfg Config, explicit map[string]bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PIVOTAXIS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyReport, KeyPaths, KeyLogLevel, KeyLogFormat, KeyOutput, KeyLayout} {
		if err := v.BindEnv(key); err != nil {
			return cfg, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pivotaxis")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	set := func(key string) bool { return !explicit[key] && v.IsSet(key) }
	if set(KeyReport) {
		cfg.ReportName = v.GetString(KeyReport)
	}
	if set(KeyPaths) && len(cfg.ReportPaths) == 0 {
		cfg.ReportPaths = v.GetStringSlice(KeyPaths)
	}
	if set(KeyLogLevel) {
		cfg.LogLevel = strings.ToLower(v.GetString(KeyLogLevel))
	}
	if set(KeyLogFormat) {
		cfg.LogFormat = strings.ToLower(v.GetString(KeyLogFormat))
	}
	if set(KeyOutput) {
		cfg.Output = strings.ToLower(v.GetString(KeyOutput))
	}
	if set(KeyLayout) {
		cfg.Layout = v.GetBool(KeyLayout)
	}
	return cfg, nil
}
