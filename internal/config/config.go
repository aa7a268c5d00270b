package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = ".mathtimeline.toml"

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version"`
	Data     DataSettings     `toml:"data"`
	UI       UISettings       `toml:"ui"`
	Timeline TimelineSettings `toml:"timeline"`
	Log      LogSettings      `toml:"log"`
}

// DataSettings describes where the dataset comes from
type DataSettings struct {
	Source string `toml:"source" env:"MATHTIMELINE_DATA"` // path or URL
	Watch  bool   `toml:"watch" env:"MATHTIMELINE_WATCH"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Locale string `toml:"locale" env:"MATHTIMELINE_LOCALE"` // BCP 47 tag used for date formatting
	Theme  string `toml:"theme" env:"MATHTIMELINE_THEME"`   // "dark" or "light"
}

// TimelineSettings mirrors the options of the timeline widget
type TimelineSettings struct {
	Stack        bool `toml:"stack"`
	ZoomMinYears int  `toml:"zoom_min_years"`
	ZoomMaxYears int  `toml:"zoom_max_years"`
	MinHeight    int  `toml:"min_height"`
	BufferYears  int  `toml:"buffer_years"`
	Animate      bool `toml:"animate"`
}

// LogSettings controls the log file
type LogSettings struct {
	File  string `toml:"file" env:"MATHTIMELINE_LOG"`
	Level string `toml:"level" env:"MATHTIMELINE_LOG_LEVEL"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service bound to path. An empty path
// means DefaultFileName in the working directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultFileName
	}
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the bound file. A missing file yields
// the defaults. Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the bound file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Newf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// ApplyEnv overrides config values from MATHTIMELINE_* environment variables
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, "parse env")
	}
	cfg.normalize()
	return nil
}

// normalize repairs values that would make the timeline unusable
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Timeline.ZoomMinYears <= 0 {
		c.Timeline.ZoomMinYears = d.Timeline.ZoomMinYears
	}
	if c.Timeline.ZoomMaxYears < c.Timeline.ZoomMinYears {
		c.Timeline.ZoomMaxYears = d.Timeline.ZoomMaxYears
	}
	if c.Timeline.MinHeight <= 0 {
		c.Timeline.MinHeight = d.Timeline.MinHeight
	}
	if c.Timeline.BufferYears < 0 {
		c.Timeline.BufferYears = d.Timeline.BufferYears
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		c.UI.Theme = d.UI.Theme
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Data: DataSettings{
			Source: "data.json",
		},
		UI: UISettings{
			Locale: "en-US",
			Theme:  "dark",
		},
		Timeline: TimelineSettings{
			Stack:        true,
			ZoomMinYears: 1,
			ZoomMaxYears: 5000,
			MinHeight:    8,
			BufferYears:  5,
			Animate:      true,
		},
		Log: LogSettings{
			File:  "mathtimeline.log",
			Level: "info",
		},
	}
}
