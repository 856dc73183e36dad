// Package config loads clitl settings from TOML files.
//
// A project can carry a .clitl.toml next to its sources; otherwise the user
// config at $XDG_CONFIG_HOME/clitl/config.toml applies. Settings found in a
// file override the defaults, and command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/vito/clitl/pkg/gradient"
)

// FileName is the name of a project config file.
const FileName = ".clitl.toml"

// UserFile is the user config path relative to the XDG config home.
const UserFile = "clitl/config.toml"

// Config holds the settings for the gradient and example commands.
type Config struct {
	// Speed is the frame interval in milliseconds for a single effect.
	// Fractions are allowed.
	Speed float64 `toml:"speed"`

	// Direction is the sweep direction, "left" or "right".
	Direction string `toml:"direction"`

	// Text is animated when no text is given on the command line.
	Text string `toml:"text"`

	Example Example `toml:"example"`
}

// Example configures the side-by-side demo.
type Example struct {
	Text    string `toml:"text"`
	Divider string `toml:"divider"`

	// Effects lists the effects to run, in display order.
	Effects []string `toml:"effects"`

	// Intervals maps effect names to frame intervals in milliseconds.
	// Effects without an entry use Speed.
	Intervals map[string]float64 `toml:"intervals"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Speed:     80,
		Direction: gradient.Left.String(),
		Text:      "Hello World!",
		Example: Example{
			Text:    "Gradient Example",
			Divider: "   ",
			Effects: []string{"rainbow", "darkrainbow", "sunset", "loading", "glitch"},
			Intervals: map[string]float64{
				"rainbow":     60,
				"darkrainbow": 80,
				"sunset":      70,
				"loading":     65,
				"glitch":      90,
			},
		},
	}
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	defaults := cfg.Example.Intervals
	cfg.Example.Intervals = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("ignoring unknown config key", "path", path, "key", key.String())
	}

	// Merge intervals under canonical names so that any spelling of an
	// effect overrides its default.
	intervals := maps.Clone(defaults)
	for name, ms := range cfg.Example.Intervals {
		if canonical, err := gradient.Canonical(name); err == nil {
			name = canonical
		}
		intervals[name] = ms
	}
	cfg.Example.Intervals = intervals

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find searches for a .clitl.toml starting from dir and walking up to parent
// directories, stopping at a repository root. If none is found the user
// config is tried. Returns the path that was loaded, or "" with the default
// config if there is none.
func Find(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	path, err := xdg.SearchConfigFile(UserFile)
	if err != nil {
		// Not found anywhere.
		return "", Default(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseSpeed(c.Speed); err != nil {
		errs = append(errs, err)
	}
	if _, err := gradient.ParseDirection(c.Direction); err != nil {
		errs = append(errs, err)
	}
	if len(c.Example.Effects) == 0 {
		errs = append(errs, errors.New("example.effects must not be empty"))
	}
	for _, name := range c.Example.Effects {
		if _, err := gradient.Canonical(name); err != nil {
			errs = append(errs, fmt.Errorf("example.effects: %w", err))
		}
	}
	for name, ms := range c.Example.Intervals {
		if _, err := gradient.Canonical(name); err != nil {
			errs = append(errs, fmt.Errorf("example.intervals: %w", err))
		}
		if _, err := ParseSpeed(ms); err != nil {
			errs = append(errs, fmt.Errorf("example.intervals.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// DirectionValue returns the parsed sweep direction.
func (c *Config) DirectionValue() (gradient.Direction, error) {
	return gradient.ParseDirection(c.Direction)
}

// SpeedInterval returns Speed as a duration.
func (c *Config) SpeedInterval() time.Duration {
	return millis(c.Speed)
}

// ParseSpeed converts a frame interval in milliseconds to a duration. The
// interval must be finite and at least a nanosecond.
func ParseSpeed(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms > float64(math.MaxInt64/int64(time.Millisecond)) {
		return 0, fmt.Errorf("invalid speed %v: expected a positive number (ms between frames)", ms)
	}
	d := millis(ms)
	if d <= 0 {
		return 0, fmt.Errorf("invalid speed %v: expected a positive number (ms between frames)", ms)
	}
	return d, nil
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Interval returns the demo frame interval for an effect, falling back to
// Speed.
func (c *Config) Interval(effect string) time.Duration {
	name, err := gradient.Canonical(effect)
	if err != nil {
		return c.SpeedInterval()
	}
	if ms, ok := c.Example.Intervals[name]; ok {
		return millis(ms)
	}
	return c.SpeedInterval()
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<invalid config: %s>", err)
	}
	return buf.String()
}
