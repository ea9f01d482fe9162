package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"valu/internal/carousel"
	"valu/internal/eventbus"
)

const (
	appDir         = "valu"
	configFile     = "config.toml"
	stateFile      = "state.cbor"
	logFile        = "valu.log"
	currentVersion = 1
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version"`
	Store     StoreSettings     `toml:"store"`
	Log       LogSettings       `toml:"log"`
	Input     InputSettings     `toml:"input"`
	Carousels CarouselsSettings `toml:"carousels"`
	Market    MarketSettings    `toml:"market"`
	Advisor   AdvisorSettings   `toml:"advisor"`
}

// StoreSettings locates the persisted state blob. A .json extension switches
// the codec to JSON.
type StoreSettings struct {
	Path string `toml:"path"`
}

// LogSettings controls the log file
type LogSettings struct {
	File    string `toml:"file"`
	Verbose bool   `toml:"verbose"`
}

// InputSettings holds gesture tuning shared by every carousel. CellWidth and
// CellHeight convert terminal cells into the pixel units the swipe threshold
// is expressed in.
type InputSettings struct {
	WheelCooldown  Duration `toml:"wheel_cooldown"`
	SwipeThreshold float64  `toml:"swipe_threshold"`
	CellWidth      float64  `toml:"cell_width"`
	CellHeight     float64  `toml:"cell_height"`
}

// CarouselSettings configures one carousel
type CarouselSettings struct {
	Interval         Duration `toml:"interval"`
	Axis             string   `toml:"axis"`
	StartIndex       int      `toml:"start_index"`
	EnableWheel      bool     `toml:"enable_wheel"`
	EnableDrag       bool     `toml:"enable_drag"`
	CaptureWheel     bool     `toml:"capture_wheel"`
	CaptureTouchMove bool     `toml:"capture_touch_move"`
}

// CarouselsSettings groups the dashboard carousels
type CarouselsSettings struct {
	Stats  CarouselSettings `toml:"stats"`
	Assets CarouselSettings `toml:"assets"`
}

// MarketSettings controls marketplace generation
type MarketSettings struct {
	Count int   `toml:"count"`
	Seed  int64 `toml:"seed"`
}

// AdvisorSettings controls the chat panel
type AdvisorSettings struct {
	ReplyDelay Duration `toml:"reply_delay"`
}

// Duration is a time.Duration written as a string such as "4s" in TOML.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Input.WheelCooldown.Duration > 0, "input.wheel_cooldown must be positive")
	check(c.Input.SwipeThreshold > 0, "input.swipe_threshold must be positive")
	check(c.Input.CellWidth > 0, "input.cell_width must be positive")
	check(c.Input.CellHeight > 0, "input.cell_height must be positive")
	for _, named := range []struct {
		name string
		cs   CarouselSettings
	}{{"stats", c.Carousels.Stats}, {"assets", c.Carousels.Assets}} {
		name, cs := named.name, named.cs
		check(cs.Interval.Duration > 0, "carousels.%s.interval must be positive", name)
		check(cs.StartIndex >= 0, "carousels.%s.start_index must not be negative", name)
		if _, err := carousel.ParseAxis(cs.Axis); err != nil {
			errs = append(errs, fmt.Errorf("%w: carousels.%s.axis: %v", ErrInvalidConfig, name, err))
		}
	}
	check(c.Market.Count > 0, "market.count must be positive")
	check(c.Advisor.ReplyDelay.Duration >= 0, "advisor.reply_delay must not be negative")

	return errors.Join(errs...)
}

// CarouselConfig builds the controller configuration for one carousel. The
// callback, scheduler and logger are left for the caller.
func (c *Config) CarouselConfig(name string, cs CarouselSettings) (carousel.Config, error) {
	axis, err := carousel.ParseAxis(cs.Axis)
	if err != nil {
		return carousel.Config{}, fmt.Errorf("carousel %s: %w", name, err)
	}
	return carousel.Config{
		Name:             name,
		AutoAdvance:      cs.Interval.Duration,
		WheelCooldown:    c.Input.WheelCooldown.Duration,
		SwipeThreshold:   c.Input.SwipeThreshold,
		Axis:             axis,
		StartIndex:       cs.StartIndex,
		CaptureWheel:     cs.CaptureWheel,
		CaptureTouchMove: cs.CaptureTouchMove,
	}, nil
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
	bus      eventbus.EventBus
	filePath string
	logger   *zap.Logger
}

// NewConfigService creates a config service reading path, or the default
// location when path is empty. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus, logger *zap.Logger) ConfigService {
	if path == "" {
		path = filepath.Join(Dir(), configFile)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &configService{
		bus:      bus,
		filePath: path,
		logger:   logger.With(zap.String("component", "config")),
	}
}

// Dir returns the per-user directory holding config, state and logs
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDir)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cs.logger.Debug("config file not found, using defaults", zap.String("path", cs.filePath))
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.logger.Info("config saved", zap.String("path", cs.filePath))
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Version: currentVersion,
		Store:   StoreSettings{Path: filepath.Join(dir, stateFile)},
		Log:     LogSettings{File: filepath.Join(dir, logFile)},
		Input: InputSettings{
			WheelCooldown:  Duration{carousel.DefaultWheelCooldown},
			SwipeThreshold: carousel.DefaultSwipeThreshold,
			CellWidth:      8,
			CellHeight:     16,
		},
		Carousels: CarouselsSettings{
			Stats: CarouselSettings{
				Interval:     Duration{4 * time.Second},
				Axis:         carousel.AxisVertical.String(),
				EnableWheel:  true,
				EnableDrag:   true,
				CaptureWheel: true,
			},
			Assets: CarouselSettings{
				Interval:     Duration{5 * time.Second},
				Axis:         carousel.AxisHorizontal.String(),
				StartIndex:   1,
				EnableWheel:  true,
				EnableDrag:   true,
				CaptureWheel: true,
			},
		},
		Market: MarketSettings{
			Count: 20,
		},
		Advisor: AdvisorSettings{
			ReplyDelay: Duration{600 * time.Millisecond},
		},
	}
}
