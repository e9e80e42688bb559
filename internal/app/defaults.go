package app

import (
	"fmt"
	"os"
	"path/filepath"

	"dms-go/internal/api"
)

// Defaults are the locations and server used when no config file says otherwise.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
	APIURL     string
}

// GetDefaults returns application defaults, checking environment variables first.
// Environment variables:
//   - DMS_CONFIG_PATH: config file location (default: ~/.config/dms.toml)
//   - DMS_HOME: base directory for dms data (default: ~/.local/share/dms)
//   - DMS_API_URL: server origin (default: http://localhost:5000)
func GetDefaults() (Defaults, error) {
	configPath, err := fromEnvOrHome("DMS_CONFIG_PATH", ".config", "dms.toml")
	if err != nil {
		return Defaults{}, err
	}
	baseDir, err := fromEnvOrHome("DMS_HOME", ".local", "share", "dms")
	if err != nil {
		return Defaults{}, err
	}

	apiURL := os.Getenv("DMS_API_URL")
	if apiURL == "" {
		apiURL = api.DefaultBaseURL
	}

	return Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		APIURL:     apiURL,
	}, nil
}

// fromEnvOrHome returns the value of env, or the path elems joined under the
// user's home directory when it is unset.
func fromEnvOrHome(env string, elems ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elems...)...), nil
}
