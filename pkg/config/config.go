package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the lsbmp configuration
type Config struct {
	Carrier Carrier `yaml:"carrier" toml:"carrier"`
	Server  Server  `yaml:"server" toml:"server"`
	Archive Archive `yaml:"archive" toml:"archive"`
	Logging Logging `yaml:"logging" toml:"logging"`
}

// Carrier contains carrier handling options
type Carrier struct {
	// RequireBMPExtension rejects carriers whose name does not end in .bmp
	RequireBMPExtension bool `yaml:"require_bmp_extension" toml:"require_bmp_extension"`
	// WarnHeaderMismatch logs a warning when the pixel array does not start at byte 54
	WarnHeaderMismatch bool `yaml:"warn_header_mismatch" toml:"warn_header_mismatch"`
	// FileMode is the permission applied to written files
	FileMode uint32 `yaml:"file_mode" toml:"file_mode"`
}

// Server contains REST API configuration
type Server struct {
	Port          int    `yaml:"port" toml:"port"`
	Bind          string `yaml:"bind" toml:"bind"`
	APIKey        string `yaml:"api_key" toml:"api_key"`
	MaxUploadSize int64  `yaml:"max_upload_size" toml:"max_upload_size"`
}

// Archive contains carrier archive configuration
type Archive struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Dir     string `yaml:"dir" toml:"dir"`
}

// Logging contains logging configuration
type Logging struct {
	Level   string `yaml:"level" toml:"level"`
	JSON    bool   `yaml:"json" toml:"json"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Carrier: Carrier{
			RequireBMPExtension: true,
			WarnHeaderMismatch:  true,
			FileMode:            0644,
		},
		Server: Server{
			Port:          9200,
			Bind:          "127.0.0.1",
			APIKey:        "auto",
			MaxUploadSize: 64 << 20,
		},
		Archive: Archive{
			Enabled: false,
			Dir:     "./archive",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the program cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive, got %d", c.Server.MaxUploadSize)
	}
	if c.Archive.Enabled && c.Archive.Dir == "" {
		return fmt.Errorf("archive is enabled but archive.dir is empty")
	}
	if c.Carrier.FileMode == 0 || c.Carrier.FileMode > 0777 {
		return fmt.Errorf("invalid file_mode: %o", c.Carrier.FileMode)
	}
	return nil
}

// isTOML reports whether the path selects the TOML format
func isTOML(configPath string) bool {
	return strings.EqualFold(filepath.Ext(configPath), ".toml")
}

// LoadConfig loads configuration from the specified path. Files ending in
// .toml are parsed as TOML, anything else as YAML. Missing keys keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isTOML(configPath) {
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(configPath) {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(config); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		var err error
		data, err = yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key
func BootstrapConfig(configPath string, archiveDir string) (*Config, error) {
	config := DefaultConfig()
	if archiveDir != "" {
		config.Archive.Enabled = true
		config.Archive.Dir = archiveDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./lsbmp.yaml"
	}

	// For Linux/macOS, use ~/.config/lsbmp/config.yaml
	configDir := filepath.Join(homeDir, ".config", "lsbmp")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
