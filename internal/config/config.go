// Package config loads the tools' settings through viper: defaults
// first, then an optional config file over them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/viper"
)

// SetDefaults installs the default settings for the decoding tools.
func SetDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("logfile", "")
	viper.SetDefault("outputbitdepth", 16)
	// 0 keeps the source rate.
	viper.SetDefault("outputsamplerate", 0)
	viper.SetDefault("resamplequality", 10)
	viper.SetDefault("httptimeoutseconds", 30)
}

// Load installs the defaults and reads path over them. A missing file
// is not an error; the defaults simply stand.
func Load(path string) error {
	SetDefaults()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		// Viper reports a miss differently depending on whether the
		// file was searched for or named outright.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || errors.Is(err, fs.ErrNotExist) {
			slog.Info("no config file found", "configFilePath", path)
			return nil
		}
		return fmt.Errorf("error during config read: %w", err)
	}
	return nil
}
