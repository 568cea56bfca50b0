package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !cfg.SwapMonitorsToGetTag {
		t.Fatalf("expected swap_monitors_to_get_tag to default to true")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), res.Config); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultLayout != LayoutModeAuto {
		t.Fatalf("expected default_layout %q, got %q", LayoutModeAuto, res.Config.DefaultLayout)
	}
}

func TestLoadFromPath_OverridesSettings(t *testing.T) {
	data := strings.Join([]string{
		"tags: [web, code, chat]",
		"swap_monitors_to_get_tag: false",
		"mouse_recenter_gap: 20",
		"frame_gap: 4",
		"default_layout: max",
		"monitors:",
		"  - rect: 1024x768+0+0",
		"    name: left",
		"    tag: code",
		"    pad: [20, 0, 0, 0]",
		"",
	}, "\n")
	res, err := LoadFromPath(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if diff := cmp.Diff([]string{"web", "code", "chat"}, cfg.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if cfg.SwapMonitorsToGetTag {
		t.Errorf("expected swap_monitors_to_get_tag false")
	}
	if cfg.MouseRecenterGap != 20 || cfg.FrameGap != 4 {
		t.Errorf("unexpected gaps: recenter=%d frame=%d", cfg.MouseRecenterGap, cfg.FrameGap)
	}
	if cfg.DefaultLayout != LayoutModeMax {
		t.Errorf("expected max layout, got %q", cfg.DefaultLayout)
	}
	want := []MonitorConfig{{Rect: "1024x768+0+0", Name: "left", Tag: "code", Pad: []int{20, 0, 0, 0}}}
	if diff := cmp.Diff(want, cfg.Monitors); diff != "" {
		t.Errorf("monitors mismatch (-want +got):\n%s", diff)
	}
	if len(cfg.Keybinds) == 0 {
		t.Errorf("expected default keybinds to be kept")
	}
}

func TestLoadFromPath_KeybindsReplaceDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "keybinds:\n  Mod4-q: monitor_focus 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{"Mod4-q": "monitor_focus 0"}
	if diff := cmp.Diff(want, res.Config.Keybinds); diff != "" {
		t.Fatalf("keybinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_UnknownKeyFails(t *testing.T) {
	path := writeConfig(t, "no_such_setting: 1\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to mention %s, got %v", path, err)
	}
}

func TestLoadFromPath_ValidationErrorHasPosition(t *testing.T) {
	path := writeConfig(t, "tags: [a]\nframe_gap: -3\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "frame_gap" {
		t.Fatalf("expected path frame_gap, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{name: "no tags", mutate: func(c *Config) { c.Tags = nil }, path: "tags"},
		{name: "duplicate tag", mutate: func(c *Config) { c.Tags = []string{"a", "a"} }, path: "tags"},
		{name: "negative recenter gap", mutate: func(c *Config) { c.MouseRecenterGap = -1 }, path: "mouse_recenter_gap"},
		{name: "bad layout", mutate: func(c *Config) { c.DefaultLayout = "spiral" }, path: "default_layout"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, path: "log_level"},
		{name: "empty keybind command", mutate: func(c *Config) { c.Keybinds = map[string]string{"Mod4-x": " "} }, path: "keybinds.Mod4-x"},
		{name: "bad monitor rect", mutate: func(c *Config) { c.Monitors = []MonitorConfig{{Rect: "huge"}} }, path: "monitors.0.rect"},
		{name: "digit monitor name", mutate: func(c *Config) { c.Monitors = []MonitorConfig{{Rect: "10x10+0+0", Name: "1st"}} }, path: "monitors.0.name"},
		{name: "unknown monitor tag", mutate: func(c *Config) { c.Monitors = []MonitorConfig{{Rect: "10x10+0+0", Tag: "zz"}} }, path: "monitors.0.tag"},
		{name: "too many pads", mutate: func(c *Config) { c.Monitors = []MonitorConfig{{Rect: "10x10+0+0", Pad: []int{1, 2, 3, 4, 5}}} }, path: "monitors.0.pad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestParseLayoutMode(t *testing.T) {
	for _, s := range []string{"auto", "vertical", "horizontal", "max"} {
		if _, err := ParseLayoutMode(s); err != nil {
			t.Errorf("ParseLayoutMode(%q) error = %v", s, err)
		}
	}
	if _, err := ParseLayoutMode("fixed"); err == nil {
		t.Errorf("expected error for fixed")
	}
}
