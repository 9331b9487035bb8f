// Package config provides configuration loading and access for the silk renderer.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all silk renderer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Ribbon    RibbonConfig    `yaml:"ribbon"`
	Breeze    BreezeConfig    `yaml:"breeze"`
	Influence InfluenceConfig `yaml:"influence"`
	Material  MaterialConfig  `yaml:"material"`
	Deform    DeformConfig    `yaml:"deform"`
	Camera    CameraConfig    `yaml:"camera"`
	Layout    LayoutConfig    `yaml:"layout"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Textures  TexturesConfig  `yaml:"textures"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bridge    BridgeConfig    `yaml:"bridge"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the demo window.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Surface pixel ratio cap
	Exposure      float64 `yaml:"exposure"`        // Tone mapping exposure
}

// RibbonConfig holds the structural ribbon parameters and the initial live values.
type RibbonConfig struct {
	Segments       int     `yaml:"segments"`        // Columns along the ribbon length
	HeightSegments int     `yaml:"height_segments"` // Rows across the ribbon width
	Width          float64 `yaml:"width"`           // Physical cross-section width
	Length         float64 `yaml:"length"`          // Physical ribbon length
	LengthScale    float64 `yaml:"length_scale"`    // Plane length = Length * LengthScale
	WidthScale     float64 `yaml:"width_scale"`     // Plane width = Width * WidthScale

	// Initial live values
	Speed          float64 `yaml:"speed"`
	TwistSpeed     float64 `yaml:"twist_speed"`
	TwistAmplitude float64 `yaml:"twist_amplitude"`
	FlowFrequency  float64 `yaml:"flow_frequency"`
}

// BreezeConfig holds the autonomous breeze parameters.
type BreezeConfig struct {
	PhaseRateX float64 `yaml:"phase_rate_x"` // Radians per second
	PhaseRateY float64 `yaml:"phase_rate_y"`

	GustDurationMin float64 `yaml:"gust_duration_min"`
	GustDurationMax float64 `yaml:"gust_duration_max"`
	GustStrengthMin float64 `yaml:"gust_strength_min"`
	GustStrengthMax float64 `yaml:"gust_strength_max"`
	GustIntervalMin float64 `yaml:"gust_interval_min"`
	GustIntervalMax float64 `yaml:"gust_interval_max"`
	InitialDelayMin float64 `yaml:"initial_delay_min"` // First gust delay after reset
	InitialDelayMax float64 `yaml:"initial_delay_max"`
	DriftSpread     float64 `yaml:"drift_spread"`  // Gust drift resampled in [-spread, spread]
	InitialDrift    float64 `yaml:"initial_drift"` // Reset drift in [-initial, initial]
	GustWeightX     float64 `yaml:"gust_weight_x"` // Envelope contribution to x
	GustWeightY     float64 `yaml:"gust_weight_y"` // Envelope contribution to y
	DriftWeightX    float64 `yaml:"drift_weight_x"`
	DriftWeightY    float64 `yaml:"drift_weight_y"`
}

// InfluenceConfig holds the smoothing rates of the influence blender.
type InfluenceConfig struct {
	PointerAlphaX float64 `yaml:"pointer_alpha_x"`
	PointerAlphaY float64 `yaml:"pointer_alpha_y"`
	ScrollAlpha   float64 `yaml:"scroll_alpha"`
}

// MaterialConfig holds the palette and approach rate of the material controller.
type MaterialConfig struct {
	BaseColor      string  `yaml:"base_color"`      // Resting silk colour
	HighlightColor string  `yaml:"highlight_color"` // Silk colour at full energy
	GlowColor      string  `yaml:"glow_color"`      // Resting glow colour
	AccentColor    string  `yaml:"accent_color"`    // Glow colour at full energy
	ApproachRate   float64 `yaml:"approach_rate"`   // Fraction of remaining distance per frame
}

// DeformConfig holds geometry deformer timing parameters.
type DeformConfig struct {
	TimeScaleBase   float64 `yaml:"time_scale_base"` // time += dt * (base + speed*gain)
	TimeScaleGain   float64 `yaml:"time_scale_gain"`
	MaxFrameDelta   float64 `yaml:"max_frame_delta"`   // Seconds; clamps a single step
	FirstFrameDelta float64 `yaml:"first_frame_delta"` // Seconds assumed for the first frame
}

// CameraConfig holds perspective camera parameters.
type CameraConfig struct {
	FovY           float64 `yaml:"fov_y"` // Degrees
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	Distance       float64 `yaml:"distance"` // Camera z on wide viewports
	MobileDistance float64 `yaml:"mobile_distance"`
	ParallaxX      float64 `yaml:"parallax_x"`
	ParallaxY      float64 `yaml:"parallax_y"`
	OffsetY        float64 `yaml:"offset_y"`
}

// LayoutConfig holds the responsive breakpoints and per-breakpoint base transforms.
type LayoutConfig struct {
	MobileMaxWidth float64         `yaml:"mobile_max_width"` // Viewport width below this is mobile
	TabletMaxWidth float64         `yaml:"tablet_max_width"` // Viewport width below this is tablet
	Mobile         TransformConfig `yaml:"mobile"`
	Tablet         TransformConfig `yaml:"tablet"`
	Desktop        TransformConfig `yaml:"desktop"`
}

// TransformConfig is a base rotation and position. Rotation is given as
// divisors of pi (0 means no rotation on that axis).
type TransformConfig struct {
	RotationDivX float64    `yaml:"rotation_div_x"`
	RotationDivY float64    `yaml:"rotation_div_y"`
	RotationDivZ float64    `yaml:"rotation_div_z"`
	Position     [3]float64 `yaml:"position"`
}

// FallbackConfig holds capability fallback parameters.
type FallbackConfig struct {
	Policy       string   `yaml:"policy"`         // "heuristic" or "surface-only"
	LowPowerCPUs int      `yaml:"low_power_cpus"` // CPU count at or below this falls back
	SlowNetworks []string `yaml:"slow_networks"`
	NetworkClass string   `yaml:"network_class"` // Overrides SILK_NETWORK_CLASS when set
}

// TexturesConfig toggles the optional procedural textures.
type TexturesConfig struct {
	Environment     bool    `yaml:"environment"`
	EnvironmentSize int     `yaml:"environment_size"`
	NormalMap       bool    `yaml:"normal_map"`
	NormalMapSize   int     `yaml:"normal_map_size"`
	NormalMapSeed   int64   `yaml:"normal_map_seed"`
	NormalScale     float64 `yaml:"normal_scale"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Frames averaged by the perf collector
	StatsEvery int `yaml:"stats_every"` // Frames between stats rows (0 = disabled)
}

// BridgeConfig holds host bridge parameters.
type BridgeConfig struct {
	Path      string `yaml:"path"`
	QueueSize int    `yaml:"queue_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Columns     int     // Ribbon.Segments + 1
	Rows        int     // Ribbon.HeightSegments + 1
	VertexCount int     // Columns * Rows
	PlaneLength float64 // Ribbon.Length * Ribbon.LengthScale
	PlaneWidth  float64 // Ribbon.Width * Ribbon.WidthScale
	FovYRadians float64
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// validate rejects configurations the renderer cannot build a mesh from.
func (c *Config) validate() error {
	if c.Ribbon.Segments < 1 || c.Ribbon.HeightSegments < 1 {
		return fmt.Errorf("ribbon: segments and height_segments must be positive (got %d, %d)",
			c.Ribbon.Segments, c.Ribbon.HeightSegments)
	}
	// Indices are uint16
	if (c.Ribbon.Segments+1)*(c.Ribbon.HeightSegments+1) > math.MaxUint16 {
		return fmt.Errorf("ribbon: %dx%d grid exceeds %d vertices",
			c.Ribbon.Segments, c.Ribbon.HeightSegments, math.MaxUint16)
	}
	if c.Deform.MaxFrameDelta <= 0 {
		return fmt.Errorf("deform: max_frame_delta must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Columns = c.Ribbon.Segments + 1
	c.Derived.Rows = c.Ribbon.HeightSegments + 1
	c.Derived.VertexCount = c.Derived.Columns * c.Derived.Rows
	c.Derived.PlaneLength = c.Ribbon.Length * c.Ribbon.LengthScale
	c.Derived.PlaneWidth = c.Ribbon.Width * c.Ribbon.WidthScale
	c.Derived.FovYRadians = c.Camera.FovY * math.Pi / 180
}

// Rotation returns the base rotation in radians.
func (t TransformConfig) Rotation() [3]float64 {
	return [3]float64{piOver(t.RotationDivX), piOver(t.RotationDivY), piOver(t.RotationDivZ)}
}

func piOver(div float64) float64 {
	if div == 0 {
		return 0
	}
	return math.Pi / div
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
