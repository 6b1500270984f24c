package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"solar-scene/internal/daynight"
	"solar-scene/internal/easing"
)

// DefaultPath is where the scene looks for its config, relative to the working directory.
const DefaultPath = "config/scene.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds everything tunable about the scene. A file only needs the fields it
// changes; the rest keep their Default values.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	DayNight  DayNightConfig  `yaml:"daynight"`
	Spin      SpinConfig      `yaml:"spin"`
	Bodies    []BodyConfig    `yaml:"bodies"`
	Starfield StarfieldConfig `yaml:"starfield"`
	Backdrop  BackdropConfig  `yaml:"backdrop"`
	Audio     AudioConfig     `yaml:"audio"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Debug     DebugConfig     `yaml:"debug"`
	Seed      uint64          `yaml:"seed"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	Fovy     float64    `yaml:"fovy"`
	Damping  float64    `yaml:"damping"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
}

// EnvConfig is a day/night pair plus the value shown before the first transition.
type EnvConfig struct {
	Sun     float64 `yaml:"sun"`
	Moon    float64 `yaml:"moon"`
	Initial float64 `yaml:"initial"`
}

type OrbitConfig struct {
	Count           int       `yaml:"count"`
	AngularSpeed    float64   `yaml:"angular_speed"`
	MinInclination  float64   `yaml:"min_inclination"`
	InclinationSpan float64   `yaml:"inclination_span"`
	RadiusBase      float64   `yaml:"radius_base"`
	RadiusJitter    float64   `yaml:"radius_jitter"`
	Scale           float64   `yaml:"scale"`
	Body            EnvConfig `yaml:"body"`
	Trail           EnvConfig `yaml:"trail"`
}

type DayNightConfig struct {
	LeftEdge      float64       `yaml:"left_edge"`
	RightEdge     float64       `yaml:"right_edge"`
	Duration      time.Duration `yaml:"duration"`
	Easing        string        `yaml:"easing"`
	Amplitude     float64       `yaml:"amplitude"`
	Period        float64       `yaml:"period"`
	BaseIntensity float64       `yaml:"base_intensity"`
	BaseHeight    float64       `yaml:"base_height"`
	InitialSheen  float64       `yaml:"initial_sheen"`
	Blend         string        `yaml:"blend"`
}

type SpinConfig struct {
	Speed float64 `yaml:"speed"`
}

type RingConfig struct {
	Inner   float64   `yaml:"inner"`
	Outer   float64   `yaml:"outer"`
	Opacity float64   `yaml:"opacity"`
	Color   string    `yaml:"color"`
	Env     EnvConfig `yaml:"env"`
}

type BodyConfig struct {
	Name       string      `yaml:"name"`
	Parent     string      `yaml:"parent,omitempty"`
	Radius     float64     `yaml:"radius"`
	Position   [3]float64  `yaml:"position"`
	Color      string      `yaml:"color"`
	Sheen      float64     `yaml:"sheen"`
	Env        EnvConfig   `yaml:"env"`
	SpinAxis   string      `yaml:"spin_axis"`
	SpinFactor float64     `yaml:"spin_factor"`
	TiltAxis   [3]float64  `yaml:"tilt_axis"`
	TiltAngle  float64     `yaml:"tilt_angle"`
	Yaw        float64     `yaml:"yaw"`
	Primary    bool        `yaml:"primary,omitempty"`
	Ring       *RingConfig `yaml:"ring,omitempty"`
}

type StarfieldConfig struct {
	Count      int     `yaml:"count"`
	Dispersion float64 `yaml:"dispersion"`
	Size       float64 `yaml:"size"`
	Visible    bool    `yaml:"visible"`
}

type BackdropConfig struct {
	Day   string `yaml:"day"`
	Night string `yaml:"night"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Track   string  `yaml:"track"`
	Volume  float64 `yaml:"volume"`
	Loop    bool    `yaml:"loop"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DebugConfig picks which overlays start visible. F3 toggles them at runtime.
type DebugConfig struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowStatus   bool `yaml:"show_status"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads path on top of Default. A missing file yields Default; a malformed or
// invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so a working copy can be edited without touching the
// original's slices and ring pointers.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen copying a type onto itself.
		panic(fmt.Sprintf("clone config: %v", err))
	}
	return out
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Orbit.Count < 0:
		return fmt.Errorf("%w: orbit.count %d < 0", ErrInvalid, c.Orbit.Count)
	case !finite(c.Orbit.AngularSpeed):
		return fmt.Errorf("%w: orbit.angular_speed not finite", ErrInvalid)
	case c.Orbit.AngularSpeed < 0:
		return fmt.Errorf("%w: orbit.angular_speed %v < 0", ErrInvalid, c.Orbit.AngularSpeed)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes need 0 < near < far, got %v/%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.DayNight.Duration <= 0:
		return fmt.Errorf("%w: daynight.duration must be positive", ErrInvalid)
	case c.DayNight.LeftEdge < 0 || c.DayNight.RightEdge < 0:
		return fmt.Errorf("%w: daynight edges must not be negative", ErrInvalid)
	case c.DayNight.Amplitude < easing.MinAmplitude || c.DayNight.Amplitude > easing.MaxAmplitude:
		return fmt.Errorf("%w: daynight.amplitude %v outside [%v,%v]", ErrInvalid, c.DayNight.Amplitude, easing.MinAmplitude, easing.MaxAmplitude)
	case c.DayNight.Period < easing.MinPeriod || c.DayNight.Period > easing.MaxPeriod:
		return fmt.Errorf("%w: daynight.period %v outside [%v,%v]", ErrInvalid, c.DayNight.Period, easing.MinPeriod, easing.MaxPeriod)
	case c.Starfield.Count < 0:
		return fmt.Errorf("%w: starfield.count %d < 0", ErrInvalid, c.Starfield.Count)
	}
	if _, err := daynight.ParseBlendMode(c.DayNight.Blend); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := easing.ByName(c.DayNight.Easing, c.DayNight.Amplitude, c.DayNight.Period); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	seen := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body without a name", ErrInvalid)
		}
		if b.Radius <= 0 {
			return fmt.Errorf("%w: body %s radius must be positive", ErrInvalid, b.Name)
		}
		if b.Parent != "" && !seen[b.Parent] {
			return fmt.Errorf("%w: body %s parent %s must be listed before it", ErrInvalid, b.Name, b.Parent)
		}
		seen[b.Name] = true
	}
	return nil
}

// Transition converts the daynight section into the state machine's config.
// Call it on a validated Config.
func (c Config) Transition() daynight.Config {
	blend, _ := daynight.ParseBlendMode(c.DayNight.Blend)
	ease, _ := easing.ByName(c.DayNight.Easing, c.DayNight.Amplitude, c.DayNight.Period)
	return daynight.Config{
		LeftEdge:      c.DayNight.LeftEdge,
		RightEdge:     c.DayNight.RightEdge,
		Duration:      c.DayNight.Duration,
		Easing:        ease,
		BaseIntensity: c.DayNight.BaseIntensity,
		BaseHeight:    c.DayNight.BaseHeight,
		InitialSheen:  c.DayNight.InitialSheen,
		Blend:         blend,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
