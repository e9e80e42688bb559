package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the main configuration for dms.
type Config struct {
	APIURL     string           `toml:"api_url" env:"DMS_API_URL"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level" env:"DMS_LOG_LEVEL"`
	LogStderr  bool             `toml:"log_stderr"`
	Storage    StorageConfig    `toml:"storage"`
	Encryption EncryptionConfig `toml:"encryption"`
	Downloads  DownloadsConfig  `toml:"downloads"`
	UI         UIConfig         `toml:"ui"`
}

// StorageConfig selects where the session is persisted between commands.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type string `toml:"type"`           // "memory", "file" or "sqlite"
	Path string `toml:"path,omitempty"` // only used for type=file and type=sqlite
}

// EncryptionConfig controls sealing of the file storage backend.
type EncryptionConfig struct {
	Type         string `toml:"type"` // "none" (default) or "age"
	IdentityPath string `toml:"identity_path,omitempty"`
}

// DownloadsConfig selects where downloaded documents are written.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DownloadsConfig struct {
	Type string `toml:"type"` // "filesystem", "s3" or "memory"

	// Filesystem-specific fields (only used when Type == "filesystem")
	Dir string `toml:"dir,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket string `toml:"s3_bucket,omitempty"`
	S3Prefix string `toml:"s3_prefix,omitempty"`
	S3Region string `toml:"s3_region,omitempty"`

	// Optional S3 overrides; empty values fall back to the AWS default chain.
	S3Endpoint        string `toml:"s3_endpoint,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty" env:"DMS_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty" env:"DMS_S3_SECRET_ACCESS_KEY"`
}

// UIConfig holds presentation timings and listing sizes.
type UIConfig struct {
	StatusDelay       Duration `toml:"status_delay"`
	DeleteStatusDelay Duration `toml:"delete_status_delay"`
	RecentDocuments   int      `toml:"recent_documents"`
	PageSize          int      `toml:"page_size"`
	Accept            []string `toml:"accept"`
}

// Duration is a time.Duration written as a Go duration string ("2s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// DefaultAccept lists the upload extensions accepted by the server.
var DefaultAccept = []string{
	".pdf", ".doc", ".docx", ".txt", ".png", ".jpg", ".jpeg", ".gif",
	".xlsx", ".xls", ".ppt", ".pptx",
}

// NewConfig creates a new Config rooted at baseDir with default settings.
func NewConfig(apiURL, baseDir string) *Config {
	return &Config{
		APIURL:   apiURL,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: "info",
		Storage: StorageConfig{
			Type: "file",
			Path: filepath.Join(baseDir, "session.toml"),
		},
		Encryption: EncryptionConfig{
			Type:         "none",
			IdentityPath: filepath.Join(baseDir, "keys", "dms.key"),
		},
		Downloads: DownloadsConfig{
			Type: "filesystem",
			Dir:  filepath.Join(baseDir, "downloads"),
		},
		UI: UIConfig{
			StatusDelay:       Duration{2 * time.Second},
			DeleteStatusDelay: Duration{3 * time.Second},
			RecentDocuments:   5,
			Accept:            append([]string(nil), DefaultAccept...),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path and applies
// environment overrides (DMS_API_URL, DMS_LOG_LEVEL).
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
