package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DataPath         string        `yaml:"data_path" json:"data_path"`                 // SQLite file holding the notes and theme slots
	ConfirmDelete    bool          `yaml:"confirm_delete" json:"confirm_delete"`       // Ask before delete and clear
	ReminderInterval time.Duration `yaml:"reminder_interval" json:"reminder_interval"` // How often due notes are checked
	ExportDir        string        `yaml:"export_dir" json:"export_dir"`               // Where exports are written by default
	ListenAddr       string        `yaml:"listen_addr" json:"listen_addr"`             // Address of the local HTTP API

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultReminderInterval bounds how late a reminder can fire
const DefaultReminderInterval = 10 * time.Second

// Dir returns the sticky home directory (~/.sticky), honoring STICKY_HOME
func Dir() (string, error) {
	if dir := os.Getenv("STICKY_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sticky"), nil
}

// DefaultPath returns the config file location
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	dataPath, logPath, exportDir := "", "", "."
	if dir != "" {
		dataPath = filepath.Join(dir, "notes.db")
		logPath = filepath.Join(dir, "logs", "sticky.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		exportDir = home
	}

	return &Config{
		DataPath:         getEnv("STICKY_DATA", dataPath),
		ConfirmDelete:    true,
		ReminderInterval: getDuration("STICKY_REMINDER_INTERVAL", DefaultReminderInterval),
		ExportDir:        getEnv("STICKY_EXPORT_DIR", exportDir),
		ListenAddr:       getEnv("STICKY_LISTEN", "127.0.0.1:8787"),
		LogLevel:         getEnv("STICKY_LOG_LEVEL", "INFO"),
		LogFile:          getEnv("STICKY_LOG_FILE", logPath),
		LogConsole:       getEnv("STICKY_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

// Load loads config from the default location
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path, returning defaults if the file is missing
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the app cannot run with
func (c *Config) Validate() error {
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("reminder_interval must be positive, got %s", c.ReminderInterval)
	}
	if c.DataPath == "" {
		return errors.New("data_path must be set")
	}
	return nil
}

// Save saves config to the default location
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config as YAML to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
