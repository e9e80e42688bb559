package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("DMS_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("DMS_HOME", "/custom/dms")
		t.Setenv("DMS_API_URL", "http://docs.internal:8000")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := Defaults{
			ConfigPath: "/custom/config.toml",
			BaseDir:    "/custom/dms",
			LogDir:     "/custom/dms/log",
			APIURL:     "http://docs.internal:8000",
		}
		if d != want {
			t.Errorf("GetDefaults() = %+v, want %+v", d, want)
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("DMS_CONFIG_PATH", "")
		t.Setenv("DMS_HOME", "")
		t.Setenv("DMS_API_URL", "")

		d, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		wantBase := filepath.Join(homeDir, ".local", "share", "dms")
		want := Defaults{
			ConfigPath: filepath.Join(homeDir, ".config", "dms.toml"),
			BaseDir:    wantBase,
			LogDir:     filepath.Join(wantBase, "log"),
			APIURL:     "http://localhost:5000",
		}
		if d != want {
			t.Errorf("GetDefaults() = %+v, want %+v", d, want)
		}
	})
}
