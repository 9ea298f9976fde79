package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Config represents the application configuration
type Config struct {
	PlayerName    string   `toml:"player_name"`
	OpponentDelay Duration `toml:"opponent_delay"`
	Color         bool     `toml:"color"`
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	Theme         Theme    `toml:"theme"`
}

// Theme holds the hex colours used to draw the table
type Theme struct {
	Red    string `toml:"red"`
	Black  string `toml:"black"`
	Accent string `toml:"accent"`
	Legal  string `toml:"legal"`
}

// Duration is a time.Duration written as a string such as "1.5s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration: %s", text)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		PlayerName:    "You",
		OpponentDelay: Duration{1500 * time.Millisecond},
		Color:         true,
		LogLevel:      "info",
		LogFile:       GetLogFilePath(),
		Theme: Theme{
			Red:    "#e5484d",
			Black:  "#e8e8e8",
			Accent: "#3fb68b",
			Legal:  "#f5d90a",
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return xdgState
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "state")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "eights", "config.toml")
}

// GetLogFilePath returns the default path of the log file
func GetLogFilePath() string {
	return filepath.Join(GetXDGStateHome(), "eights", "eights.log")
}

// LoadConfig loads the config file, creating it when missing, and applies
// environment overrides
func LoadConfig() (*Config, error) {
	config, err := LoadFrom(GetConfigFilePath())
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFrom reads the config at configPath, writing defaults first if the
// file does not exist
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		if err := saveTo(configPath, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	// Start from defaults so keys missing from the file keep their value
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// ApplyEnv overrides config values from EIGHTS_* environment variables
func ApplyEnv(config *Config) error {
	if v := os.Getenv("EIGHTS_PLAYER_NAME"); v != "" {
		config.PlayerName = v
	}
	if v := os.Getenv("EIGHTS_OPPONENT_DELAY"); v != "" {
		if err := config.OpponentDelay.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid EIGHTS_OPPONENT_DELAY: %w", err)
		}
	}
	if v := os.Getenv("EIGHTS_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EIGHTS_COLOR: %w", err)
		}
		config.Color = b
	}
	if v := os.Getenv("EIGHTS_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv("EIGHTS_LOG_FILE"); ok {
		config.LogFile = v
	}
	return config.Validate()
}

// Validate checks the theme colours
func (c *Config) Validate() error {
	for name, hex := range map[string]string{
		"theme.red":    c.Theme.Red,
		"theme.black":  c.Theme.Black,
		"theme.accent": c.Theme.Accent,
		"theme.legal":  c.Theme.Legal,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%s: invalid colour %q", name, hex)
		}
	}
	return nil
}

// Set updates one key in the config file
func Set(key, value string) error {
	configPath := GetConfigFilePath()
	config, err := LoadFrom(configPath)
	if err != nil {
		return err
	}

	switch strings.ToLower(key) {
	case "player_name":
		config.PlayerName = value
	case "opponent_delay":
		if err := config.OpponentDelay.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid opponent_delay: %w", err)
		}
	case "color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid color: %w", err)
		}
		config.Color = b
	case "log_level":
		config.LogLevel = value
	case "log_file":
		config.LogFile = value
	case "theme.red":
		config.Theme.Red = value
	case "theme.black":
		config.Theme.Black = value
	case "theme.accent":
		config.Theme.Accent = value
	case "theme.legal":
		config.Theme.Legal = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := config.Validate(); err != nil {
		return err
	}
	return saveTo(configPath, config)
}

// Write encodes config as TOML
func Write(w io.Writer, config *Config) error {
	if err := toml.NewEncoder(w).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func saveTo(configPath string, config *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	return Write(file, config)
}
