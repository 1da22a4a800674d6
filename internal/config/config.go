package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/scene"
)

const (
	DefaultFrameDurationMs = 20
	DefaultTransitionMs    = 0
	DefaultSliderStride    = scene.DefaultSliderStride
	DefaultDataDir         = ".helixviz"
)

type Config struct {
	ThetaMax  float64         `yaml:"theta_max"`
	NumFrames int             `yaml:"num_frames"`
	Animation AnimationConfig `yaml:"animation"`
	Style     StyleConfig     `yaml:"style"`
}

type AnimationConfig struct {
	FrameDurationMs int `yaml:"frame_duration_ms"`
	TransitionMs    int `yaml:"transition_ms"`
	SliderStride    int `yaml:"slider_stride"`
}

type StyleConfig struct {
	PathColor     string  `yaml:"path_color"`
	PathWidth     float64 `yaml:"path_width"`
	MarkerColor   string  `yaml:"marker_color"`
	MarkerSize    float64 `yaml:"marker_size"`
	MarkerOpacity float64 `yaml:"marker_opacity"`
	GridColor     string  `yaml:"grid_color"`
	ZeroLineColor string  `yaml:"zero_line_color"`
}

func DefaultConfig() *Config {
	st := scene.DefaultStyle()
	return &Config{
		ThetaMax:  helix.DefaultThetaMax,
		NumFrames: helix.DefaultNumFrames,
		Animation: AnimationConfig{
			FrameDurationMs: DefaultFrameDurationMs,
			TransitionMs:    DefaultTransitionMs,
			SliderStride:    DefaultSliderStride,
		},
		Style: StyleConfig{
			PathColor:     st.PathColor,
			PathWidth:     st.PathWidth,
			MarkerColor:   st.MarkerColor,
			MarkerSize:    st.MarkerSize,
			MarkerOpacity: st.MarkerOpacity,
			GridColor:     st.GridColor,
			ZeroLineColor: st.ZeroLineColor,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the YAML file at path on cfg. Keys missing from the
// file keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() helix.Params {
	return helix.Params{ThetaMax: c.ThetaMax, NumFrames: c.NumFrames}
}

func (c *Config) SceneOptions() scene.Options {
	opts := scene.DefaultOptions()
	opts.FrameDuration = time.Duration(c.Animation.FrameDurationMs) * time.Millisecond
	opts.TransitionDuration = time.Duration(c.Animation.TransitionMs) * time.Millisecond
	opts.SliderStride = c.Animation.SliderStride

	opts.Style.PathColor = c.Style.PathColor
	opts.Style.PathWidth = c.Style.PathWidth
	opts.Style.MarkerColor = c.Style.MarkerColor
	opts.Style.MarkerSize = c.Style.MarkerSize
	opts.Style.MarkerOpacity = c.Style.MarkerOpacity
	opts.Style.GridColor = c.Style.GridColor
	opts.Style.ZeroLineColor = c.Style.ZeroLineColor
	return opts
}

// Clone returns a copy; presets are shared package values.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
