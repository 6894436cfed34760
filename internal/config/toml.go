package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/averma/handwave/internal/gesture"
	"github.com/averma/handwave/internal/pose"
)

// Settings is the TOML settings file. Every tuning threshold of the
// engine lives here rather than being hard-coded; missing keys keep
// their defaults.
type Settings struct {
	Camera   CameraSettings   `toml:"camera"`
	Detector DetectorSettings `toml:"detector"`
	Tracker  TrackerSettings  `toml:"tracker"`
	Swipe    SwipeSettings    `toml:"swipe"`
	Scroll   ScrollSettings   `toml:"scroll"`
	Gestures map[string]bool  `toml:"gestures"`
}

// CameraSettings maps camera-related settings.
type CameraSettings struct {
	Device int `toml:"device"`
}

// DetectorSettings maps landmark-detection settings.
type DetectorSettings struct {
	MinConfidence float64 `toml:"min_confidence"`
}

// TrackerSettings maps pose-tracker settings.
type TrackerSettings struct {
	Window       int `toml:"window"`
	MaxGapFrames int `toml:"max_gap_frames"`
	MaxGapMs     int `toml:"max_gap_ms"`
}

// SwipeSettings maps swipe-detector settings.
type SwipeSettings struct {
	MinDisplacement float64 `toml:"min_displacement"`
	MinAxisRatio    float64 `toml:"min_axis_ratio"`
	MinSpeed        float64 `toml:"min_speed"`
	CooldownMs      int     `toml:"cooldown_ms"`
}

// ScrollSettings maps scroll-mode settings.
type ScrollSettings struct {
	EntryDebounce int     `toml:"entry_debounce"`
	ExitDebounce  int     `toml:"exit_debounce"`
	PointRatio    float64 `toml:"point_ratio"`
	Gain          float64 `toml:"gain"`
}

// DefaultSettings returns Settings pre-filled with every default.
func DefaultSettings() Settings {
	return Settings{
		Camera:   CameraSettings{Device: 0},
		Detector: DetectorSettings{MinConfidence: 0.5},
		Tracker: TrackerSettings{
			Window:       pose.DefaultWindow,
			MaxGapFrames: pose.DefaultMaxGapFrames,
			MaxGapMs:     int(pose.DefaultMaxGap / time.Millisecond),
		},
		Swipe: SwipeSettings{
			MinDisplacement: gesture.DefaultMinDisplacement,
			MinAxisRatio:    gesture.DefaultMinAxisRatio,
			MinSpeed:        gesture.DefaultMinSpeed,
			CooldownMs:      int(gesture.DefaultCooldown / time.Millisecond),
		},
		Scroll: ScrollSettings{
			EntryDebounce: gesture.DefaultEntryDebounce,
			ExitDebounce:  gesture.DefaultExitDebounce,
			PointRatio:    gesture.DefaultPointRatio,
			Gain:          gesture.DefaultScrollGain,
		},
	}
}

// Load reads the settings file at path over the defaults. A missing
// file is not an error: defaults are returned.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("stat settings file: %w", err)
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("decode settings file: %w", err)
	}
	return s, nil
}

// TrackerConfig converts the tracker settings.
func (s Settings) TrackerConfig() pose.TrackerConfig {
	return pose.TrackerConfig{
		Window:       s.Tracker.Window,
		MaxGapFrames: s.Tracker.MaxGapFrames,
		MaxGap:       time.Duration(s.Tracker.MaxGapMs) * time.Millisecond,
	}
}

// SwipeConfig converts the swipe settings.
func (s Settings) SwipeConfig() gesture.SwipeConfig {
	return gesture.SwipeConfig{
		MinDisplacement: s.Swipe.MinDisplacement,
		MinAxisRatio:    s.Swipe.MinAxisRatio,
		MinSpeed:        s.Swipe.MinSpeed,
	}
}

// ScrollConfig converts the scroll settings. The calibration baseline is
// seeded separately from the settings store.
func (s Settings) ScrollConfig() gesture.ScrollConfig {
	return gesture.ScrollConfig{
		EntryDebounce: s.Scroll.EntryDebounce,
		ExitDebounce:  s.Scroll.ExitDebounce,
		PointRatio:    s.Scroll.PointRatio,
		Gain:          s.Scroll.Gain,
	}
}

// MachineConfig converts the state machine settings.
func (s Settings) MachineConfig() gesture.MachineConfig {
	return gesture.MachineConfig{
		Cooldown: time.Duration(s.Swipe.CooldownMs) * time.Millisecond,
	}
}

// GestureFlags converts the [gestures] table into typed kinds, ignoring
// unknown names.
func (s Settings) GestureFlags() map[gesture.Kind]bool {
	if len(s.Gestures) == 0 {
		return nil
	}
	known := make(map[gesture.Kind]bool, len(gesture.Kinds()))
	for _, k := range gesture.Kinds() {
		known[k] = true
	}
	out := make(map[gesture.Kind]bool, len(s.Gestures))
	for name, v := range s.Gestures {
		if k := gesture.Kind(name); known[k] {
			out[k] = v
		}
	}
	return out
}
