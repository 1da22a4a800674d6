package config

import (
	"math"
	"sort"
)

func preset(thetaMax float64, frames, stride int) *Config {
	cfg := DefaultConfig()
	cfg.ThetaMax = thetaMax
	cfg.NumFrames = frames
	cfg.Animation.SliderStride = stride
	return cfg
}

var Presets = map[string]*Config{
	"euler":       DefaultConfig(),
	"single_turn": preset(2*math.Pi, 100, 10),
	"dense":       preset(10*math.Pi, 2000, 200),
	"quick":       preset(4*math.Pi, 120, 10),
	"long":        preset(20*math.Pi, 1000, 100),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
