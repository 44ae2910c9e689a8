package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func reset(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestDefaults(t *testing.T) {
	reset(t)
	if err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := viper.GetString("loglevel"); got != "info" {
		t.Fatalf("loglevel = %q", got)
	}
	if got := viper.GetInt("outputbitdepth"); got != 16 {
		t.Fatalf("outputbitdepth = %d", got)
	}
	if got := viper.GetInt("outputsamplerate"); got != 0 {
		t.Fatalf("outputsamplerate = %d", got)
	}
	if got := viper.GetInt("resamplequality"); got != 10 {
		t.Fatalf("resamplequality = %d", got)
	}
	if got := viper.GetInt("httptimeoutseconds"); got != 30 {
		t.Fatalf("httptimeoutseconds = %d", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("loglevel: debug\noutputsamplerate: 48000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := viper.GetString("loglevel"); got != "debug" {
		t.Fatalf("loglevel = %q", got)
	}
	if got := viper.GetInt("outputsamplerate"); got != 48000 {
		t.Fatalf("outputsamplerate = %d", got)
	}
	// Untouched keys keep their defaults.
	if got := viper.GetInt("outputbitdepth"); got != 16 {
		t.Fatalf("outputbitdepth = %d", got)
	}
}

func TestLoadMissingFileTolerated(t *testing.T) {
	reset(t)
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if got := viper.GetString("loglevel"); got != "info" {
		t.Fatalf("defaults not installed: loglevel = %q", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}
