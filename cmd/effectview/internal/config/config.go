// Package config loads effectview.yaml, the optional file that sets the
// initial modes and options of every effect for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/effectview/pkg/blur"
	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/imageview"
	"github.com/go-drift/effectview/pkg/progress"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/shape"
)

// FileName is the config file looked up by LoadOptional.
const FileName = "effectview.yaml"

// Config represents effectview.yaml.
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Shape    ShapeConfig    `yaml:"shape"`
	Blur     BlurConfig     `yaml:"blur"`
	Progress ProgressConfig `yaml:"progress"`
}

// ShapeConfig holds the shape mask settings. Nil fields keep the defaults.
type ShapeConfig struct {
	Mode        ModeValue `yaml:"mode"`
	Padding     *float32  `yaml:"padding,omitempty"`
	BorderWidth *float32  `yaml:"border_width,omitempty"`
	BorderColor string    `yaml:"border_color,omitempty"`
	SolidColor  string    `yaml:"solid_color,omitempty"`
	Ratio       *float32  `yaml:"ratio,omitempty"`
	RadiusX     *float32  `yaml:"radius_x,omitempty"`
	RadiusY     *float32  `yaml:"radius_y,omitempty"`
	ScaleType   ModeValue `yaml:"scale_type"`
}

// BlurConfig holds the blur settings.
type BlurConfig struct {
	Mode             ModeValue `yaml:"mode"`
	Radius           int       `yaml:"radius,omitempty"`
	DownSamplingRate *float32  `yaml:"down_sampling_rate,omitempty"`
	Static           *bool     `yaml:"static,omitempty"`
	SoftwareFallback *bool     `yaml:"software_fallback,omitempty"`
	Threads          *int      `yaml:"threads,omitempty"`
}

// ProgressConfig holds the progress overlay settings.
type ProgressConfig struct {
	Mode       ModeValue `yaml:"mode"`
	Value      float32   `yaml:"value,omitempty"`
	Max        *float32  `yaml:"max,omitempty"`
	Thickness  *float32  `yaml:"thickness,omitempty"`
	StartAngle *float32  `yaml:"start_angle,omitempty"`
	Padding    *float32  `yaml:"padding,omitempty"`
	Color      string    `yaml:"color,omitempty"`
	TrackColor string    `yaml:"track_color,omitempty"`
}

// ModeValue is an enumeration written either by name or by integer value.
type ModeValue struct {
	Name  string
	Value int
	IsInt bool
	Set   bool
}

// UnmarshalYAML accepts a scalar name or integer.
func (m *ModeValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mode must be a name or an integer", node.Line)
	}
	*m = ModeValue{Set: true}
	if node.Tag == "!!int" {
		v, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		m.Value, m.IsInt = v, true
		return nil
	}
	m.Name = node.Value
	return nil
}

// MarshalYAML writes the name, or the integer when it was given as one.
func (m ModeValue) MarshalYAML() (any, error) {
	if m.IsInt {
		return m.Value, nil
	}
	return m.Name, nil
}

// resolveMode maps v to a T, keeping def when v is unset. A name that is
// not known resolves to the enumeration default and is reported.
func resolveMode[T fmt.Stringer](v ModeValue, def T, fromValue func(int) T, parse func(string) T, field string) T {
	if !v.Set {
		return def
	}
	if v.IsInt {
		return fromValue(v.Value)
	}
	got := parse(v.Name)
	if !strings.EqualFold(strings.ReplaceAll(strings.TrimSpace(v.Name), "-", "_"), got.String()) {
		efxerrors.Report(&efxerrors.EffectError{
			Op:   "config.Resolve",
			Kind: efxerrors.KindConfig,
			Mode: got.String(),
			Err:  fmt.Errorf("unknown %s %q", field, v.Name),
		})
	}
	return got
}

// LoadOptional reads effectview.yaml from dir if present. A missing file
// yields an empty Config.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes and validates config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the version and colors.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	for field, s := range map[string]string{
		"shape.border_color":   c.Shape.BorderColor,
		"shape.solid_color":    c.Shape.SolidColor,
		"progress.color":       c.Progress.Color,
		"progress.track_color": c.Progress.TrackColor,
	} {
		if s == "" {
			continue
		}
		if _, err := rendering.ParseColor(s); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

func validateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", v)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported config version %s (want v1)", major)
	}
	return nil
}

// ViewOptions turns the config into imageview construction options.
func (c *Config) ViewOptions() []imageview.Option {
	return []imageview.Option{
		imageview.WithShape(c.shapeOptions(), resolveMode(c.Shape.Mode, shape.DefaultMode, shape.FromValue, shape.ParseMode, "shape mode")),
		imageview.WithBlur(c.blurOptions(), resolveMode(c.Blur.Mode, blur.DefaultMode, blur.FromValue, blur.ParseMode, "blur mode"), c.Blur.Radius),
		imageview.WithProgress(c.progressOptions(), resolveMode(c.Progress.Mode, progress.DefaultMode, progress.FromValue, progress.ParseMode, "progress mode")),
	}
}

func (c *Config) shapeOptions() *shape.Options {
	s := c.Shape
	o := shape.NewOptions()
	setIf(s.Padding, o.SetInnerPadding)
	setIf(s.BorderWidth, o.SetBorderWidth)
	setIf(s.Ratio, o.SetRatio)
	setIf(s.RadiusX, o.SetRadiusX)
	setIf(s.RadiusY, o.SetRadiusY)
	setColor(s.BorderColor, o.SetBorderColor)
	setColor(s.SolidColor, o.SetSolidColor)
	o.SetScaleType(resolveMode(s.ScaleType, shape.DefaultScaleType, shape.ScaleTypeFromValue, shape.ParseScaleType, "scale type"))
	return o
}

func (c *Config) blurOptions() *blur.Options {
	b := c.Blur
	o := blur.NewOptions()
	setIf(b.DownSamplingRate, o.SetDownSamplingRate)
	setIf(b.Static, o.SetStaticBlur)
	setIf(b.SoftwareFallback, o.SetSoftwareFallback)
	setIf(b.Threads, o.SetNumThreads)
	return o
}

func (c *Config) progressOptions() *progress.Options {
	p := c.Progress
	o := progress.NewOptions()
	setIf(p.Max, o.SetMax)
	setIf(p.Thickness, o.SetThickness)
	setIf(p.StartAngle, o.SetStartAngle)
	setIf(p.Padding, o.SetPadding)
	setColor(p.Color, o.SetColor)
	setColor(p.TrackColor, o.SetTrackColor)
	return o
}

func setIf[T any](v *T, set func(T)) {
	if v != nil {
		set(*v)
	}
}

// setColor applies s when it parses. Validate has already rejected bad
// colors in loaded files.
func setColor(s string, set func(rendering.Color)) {
	if s == "" {
		return
	}
	if c, err := rendering.ParseColor(s); err == nil {
		set(c)
	}
}
