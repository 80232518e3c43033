package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/turntable/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Rotator RotatorConfig     `mapstructure:"rotator"`
	Sets    []domain.FrameSet `mapstructure:"sets"`
	Render  RenderConfig      `mapstructure:"render"`
	Cache   CacheConfig       `mapstructure:"cache"`
	Fetch   FetchConfig       `mapstructure:"fetch"`
	Viewer  ViewerConfig      `mapstructure:"viewer"`
	Logging LoggingConfig     `mapstructure:"logging"`
}

// RotatorConfig holds rotation defaults
type RotatorConfig struct {
	Circumference float64 `mapstructure:"circumference"` // Terminal cells for one full turn
	DefaultSet    string  `mapstructure:"default_set"`   // Set opened when none is named
}

// RenderConfig holds frame rendering configuration
type RenderConfig struct {
	Strategy string `mapstructure:"strategy"` // "auto", "accelerated" or "legacy"
}

// CacheConfig holds frame cache configuration
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// FetchConfig holds frame download configuration
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ViewerConfig holds the external image viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // Empty for the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Rotator: RotatorConfig{
			Circumference: 80,
		},
		Render: RenderConfig{
			Strategy: "auto",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    defaultCachePath(),
		},
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Turntable/1.0",
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "turntable", "turntable.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "turntable", "turntable.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "turntable")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "turntable")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "turntable", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "turntable", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides (TURNTABLE_ROTATOR_CIRCUMFERENCE, ...)
	viper.SetEnvPrefix("TURNTABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(cfg)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers scalar keys so environment overrides reach Unmarshal
func setDefaults(cfg *Config) {
	viper.SetDefault("rotator.circumference", cfg.Rotator.Circumference)
	viper.SetDefault("rotator.default_set", cfg.Rotator.DefaultSet)
	viper.SetDefault("render.strategy", cfg.Render.Strategy)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.path", cfg.Cache.Path)
	viper.SetDefault("fetch.timeout", cfg.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", cfg.Fetch.UserAgent)
	viper.SetDefault("viewer.command", cfg.Viewer.Command)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveSet adds or replaces a frame set and writes the configuration file
func SaveSet(cfg *Config, set domain.FrameSet) error {
	replaced := false
	for i, s := range cfg.Sets {
		if strings.EqualFold(s.Name, set.Name) {
			cfg.Sets[i] = set
			replaced = true
			break
		}
	}
	if !replaced {
		cfg.Sets = append(cfg.Sets, set)
	}

	// Set fields individually to ensure correct key names (snake_case)
	sets := make([]map[string]any, len(cfg.Sets))
	for i, s := range cfg.Sets {
		sets[i] = map[string]any{
			"name":          s.Name,
			"circumference": s.Circumference,
			"urls":          s.URLs,
		}
	}
	viper.Set("sets", sets)

	return writeConfig()
}

func writeConfig() error {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
