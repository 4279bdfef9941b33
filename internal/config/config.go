package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"burnboard/internal/storage"

	"gopkg.in/yaml.v3"
)

// Config holds the unified application configuration
type Config struct {
	Backend    string            `yaml:"backend"`
	DataDir    string            `yaml:"data_dir"`
	Key        string            `yaml:"key"`
	SQLitePath string            `yaml:"sqlite_path"`
	BoardName  string            `yaml:"board_name"`
	S3         storage.S3Options `yaml:"s3"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	Backend string
	DataDir string
	Key     string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	defaultDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Backend:   storage.BackendFile,
		DataDir:   defaultDir,
		Key:       "cards",
		BoardName: "Kanban",
	}

	// Try loading config file first for base values
	configPath, err := GetConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			cfg.merge(fileConfig)
		}
	}

	// Priority 2: Environment variables override config file
	cfg.merge(&Config{
		Backend:    os.Getenv("BURNBOARD_BACKEND"),
		DataDir:    os.Getenv("BURNBOARD_DATA_DIR"),
		Key:        os.Getenv("BURNBOARD_KEY"),
		SQLitePath: os.Getenv("BURNBOARD_SQLITE_PATH"),
		S3: storage.S3Options{
			Endpoint:  os.Getenv("BURNBOARD_S3_ENDPOINT"),
			Bucket:    os.Getenv("BURNBOARD_S3_BUCKET"),
			Region:    os.Getenv("BURNBOARD_S3_REGION"),
			AccessKey: os.Getenv("BURNBOARD_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("BURNBOARD_S3_SECRET_KEY"),
			Prefix:    os.Getenv("BURNBOARD_S3_PREFIX"),
		},
	})
	if os.Getenv("BURNBOARD_S3_PATH_STYLE") == "true" {
		cfg.S3.UsePathStyle = true
	}

	// Priority 1: CLI flags override everything
	cfg.merge(&Config{
		Backend: flags.Backend,
		DataDir: flags.DataDir,
		Key:     flags.Key,
	})

	cfg.DataDir = expandPath(cfg.DataDir)
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "burnboard.db")
	}
	cfg.SQLitePath = expandPath(cfg.SQLitePath)

	return cfg, nil
}

// merge copies every non-empty field of other onto c
func (c *Config) merge(other *Config) {
	if other.Backend != "" {
		c.Backend = strings.ToLower(other.Backend)
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.Key != "" {
		c.Key = other.Key
	}
	if other.SQLitePath != "" {
		c.SQLitePath = other.SQLitePath
	}
	if other.BoardName != "" {
		c.BoardName = other.BoardName
	}
	if other.S3.Endpoint != "" {
		c.S3.Endpoint = other.S3.Endpoint
	}
	if other.S3.Bucket != "" {
		c.S3.Bucket = other.S3.Bucket
	}
	if other.S3.Region != "" {
		c.S3.Region = other.S3.Region
	}
	if other.S3.AccessKey != "" {
		c.S3.AccessKey = other.S3.AccessKey
	}
	if other.S3.SecretKey != "" {
		c.S3.SecretKey = other.S3.SecretKey
	}
	if other.S3.Prefix != "" {
		c.S3.Prefix = other.S3.Prefix
	}
	if other.S3.UsePathStyle {
		c.S3.UsePathStyle = true
	}
}

// StorageOptions translates the config into storage backend options
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    c.Backend,
		DataDir:    c.DataDir,
		SQLitePath: c.SQLitePath,
		S3:         c.S3,
	}
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	if c.DataDir == "" {
		return errors.New("no data directory configured")
	}
	return os.MkdirAll(c.DataDir, 0755)
}

// GetDefaultDataDir returns the default data directory path
func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "burnboard"), nil
}

// GetConfigPath returns the path to the configuration file.
// BURNBOARD_CONFIG overrides the default location.
func GetConfigPath() (string, error) {
	if p := os.Getenv("BURNBOARD_CONFIG"); p != "" {
		return expandPath(p), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "burnboard", "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDataDir()
	if err != nil {
		return err
	}

	settings := Config{
		Backend:   storage.BackendFile,
		DataDir:   defaultDir,
		Key:       "cards",
		BoardName: "Kanban",
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
