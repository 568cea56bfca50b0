package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/montile/internal/geom"
)

// LayoutMode defines how the clients of a tiled tag are arranged.
type LayoutMode string

const (
	LayoutModeAuto       LayoutMode = "auto"       // Dynamic grid based on count.
	LayoutModeVertical   LayoutMode = "vertical"   // Single column stack.
	LayoutModeHorizontal LayoutMode = "horizontal" // Single row side-by-side.
	LayoutModeMax        LayoutMode = "max"        // Focused client fills the monitor.
)

// ParseLayoutMode validates a layout mode name.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch mode := LayoutMode(strings.TrimSpace(s)); mode {
	case LayoutModeAuto, LayoutModeVertical, LayoutModeHorizontal, LayoutModeMax:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid layout mode %q (want auto, vertical, horizontal or max)", s)
	}
}

// MonitorConfig describes a monitor created at startup when detection is off.
type MonitorConfig struct {
	Rect string `yaml:"rect"`
	Tag  string `yaml:"tag,omitempty"`
	Name string `yaml:"name,omitempty"`
	Pad  []int  `yaml:"pad,omitempty"` // up, right, down, left
}

// LoggingConfig configures the daemon log file.
type LoggingConfig struct {
	// File is the log file path (default: $XDG_STATE_HOME/montile/montile.log)
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// Config is the daemon configuration.
type Config struct {
	// Tags are created in order at startup. At least one is required.
	Tags []string `yaml:"tags"`

	// SwapMonitorsToGetTag makes a tag that is shown elsewhere trade places
	// with the current monitor's tag instead of only moving focus.
	SwapMonitorsToGetTag bool `yaml:"swap_monitors_to_get_tag"`
	// MouseRecenterGap recenters the pointer when focusing a monitor whose
	// remembered pointer position lies this close to an edge.
	MouseRecenterGap int `yaml:"mouse_recenter_gap"`
	// FrameGap is added around the tiling area unless SmartFrameSurroundings
	// is set and the layout is not split.
	FrameGap               int  `yaml:"frame_gap"`
	SmartFrameSurroundings bool `yaml:"smart_frame_surroundings"`

	GapSize       int        `yaml:"gap_size"`
	DefaultLayout LayoutMode `yaml:"default_layout"`

	DetectMonitorsOnStart bool            `yaml:"detect_monitors_on_start"`
	PadFromStruts         bool            `yaml:"pad_from_struts"`
	Monitors              []MonitorConfig `yaml:"monitors,omitempty"`

	// ManageWindows makes the daemon take over window management on the root
	// window. Without it only monitors and tags are tracked.
	ManageWindows bool `yaml:"manage_windows"`

	// Keybinds maps key sequences such as "Mod4-1" to command lines.
	Keybinds map[string]string `yaml:"keybinds"`

	LogLevel string        `yaml:"log_level"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Tags:                  []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		SwapMonitorsToGetTag:  true,
		MouseRecenterGap:      0,
		FrameGap:              0,
		GapSize:               8,
		DefaultLayout:         LayoutModeAuto,
		DetectMonitorsOnStart: true,
		Keybinds: map[string]string{
			"Mod4-Tab":       "monitor_cycle +1",
			"Mod4-Shift-Tab": "monitor_cycle -1",
			"Mod4-1":         "use_index 0",
			"Mod4-2":         "use_index 1",
			"Mod4-3":         "use_index 2",
			"Mod4-4":         "use_index 3",
			"Mod4-period":    "use_index +1 --skip-visible",
			"Mod4-comma":     "use_index -1 --skip-visible",
		},
		LogLevel: "info",
		Logging: LoggingConfig{
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 7,
		},
	}
}

// ValidationError reports an invalid setting along with where it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("at least one tag is required")}
	}
	seen := make(map[string]struct{}, len(c.Tags))
	for _, name := range c.Tags {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("tag names must not be empty")}
		}
		if _, dup := seen[name]; dup {
			return &ValidationError{Path: "tags", Err: fmt.Errorf("duplicate tag %q", name)}
		}
		seen[name] = struct{}{}
	}
	if c.MouseRecenterGap < 0 {
		return &ValidationError{Path: "mouse_recenter_gap", Err: fmt.Errorf("mouse_recenter_gap must be >= 0")}
	}
	if c.FrameGap < 0 {
		return &ValidationError{Path: "frame_gap", Err: fmt.Errorf("frame_gap must be >= 0")}
	}
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("gap_size must be >= 0")}
	}
	if _, err := ParseLayoutMode(string(c.DefaultLayout)); err != nil {
		return &ValidationError{Path: "default_layout", Err: err}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return &ValidationError{Path: "logging", Err: fmt.Errorf("rotation limits must be >= 0")}
	}
	for seq, cmd := range c.Keybinds {
		if strings.TrimSpace(seq) == "" {
			return &ValidationError{Path: "keybinds", Err: fmt.Errorf("keybinds contains an empty key sequence")}
		}
		if len(strings.Fields(cmd)) == 0 {
			return &ValidationError{Path: "keybinds." + seq, Err: fmt.Errorf("command must not be empty")}
		}
	}
	names := make(map[string]struct{})
	for i, m := range c.Monitors {
		path := fmt.Sprintf("monitors.%d", i)
		r, err := geom.Parse(m.Rect)
		if err != nil {
			return &ValidationError{Path: path + ".rect", Err: err}
		}
		if r.Empty() {
			return &ValidationError{Path: path + ".rect", Err: fmt.Errorf("rect must have a positive size")}
		}
		if len(m.Pad) > 4 {
			return &ValidationError{Path: path + ".pad", Err: fmt.Errorf("pad takes at most 4 values (up, right, down, left)")}
		}
		for _, p := range m.Pad {
			if p < 0 {
				return &ValidationError{Path: path + ".pad", Err: fmt.Errorf("pad values must be >= 0")}
			}
		}
		if m.Tag != "" {
			if _, ok := seen[m.Tag]; !ok {
				return &ValidationError{Path: path + ".tag", Err: fmt.Errorf("unknown tag %q", m.Tag)}
			}
		}
		if m.Name != "" {
			if m.Name[0] >= '0' && m.Name[0] <= '9' {
				return &ValidationError{Path: path + ".name", Err: fmt.Errorf("monitor names must not start with a digit")}
			}
			if _, dup := names[m.Name]; dup {
				return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate monitor name %q", m.Name)}
			}
			names[m.Name] = struct{}{}
		}
	}
	return nil
}

// MonitorRects returns the parsed geometry of the configured monitors.
func (c *Config) MonitorRects() []geom.Rect {
	rects := make([]geom.Rect, 0, len(c.Monitors))
	for _, m := range c.Monitors {
		if r, err := geom.Parse(m.Rect); err == nil {
			rects = append(rects, r)
		}
	}
	return rects
}
