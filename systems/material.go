package systems

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/silk/config"
)

// RibbonConfig is the runtime ribbon configuration. Structural fields are fixed
// for the lifetime of a mesh; the appearance fields chase a TargetConfig.
type RibbonConfig struct {
	// Structural
	Segments       int
	HeightSegments int
	Width          float64
	Length         float64

	// Live appearance
	Speed          float64
	TwistSpeed     float64
	TwistAmplitude float64
	FlowFrequency  float64
	BaseColor      colorful.Color
	GlowColor      colorful.Color
}

// TargetConfig is the appearance the live config is pulled toward each frame.
type TargetConfig struct {
	Speed          float64
	TwistSpeed     float64
	TwistAmplitude float64
	FlowFrequency  float64
	BaseColor      colorful.Color
	GlowColor      colorful.Color
}

// Palette is the four-colour silk palette.
type Palette struct {
	Base      colorful.Color
	Highlight colorful.Color
	Glow      colorful.Color
	Accent    colorful.Color
}

// ParsePalette parses the hex colours of a material config.
func ParsePalette(cfg config.MaterialConfig) (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"base_color", cfg.BaseColor, &p.Base},
		{"highlight_color", cfg.HighlightColor, &p.Highlight},
		{"glow_color", cfg.GlowColor, &p.Glow},
		{"accent_color", cfg.AccentColor, &p.Accent},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("material %s %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Material recomputes appearance targets from energy and eases the live
// ribbon config toward them.
type Material struct {
	palette Palette
	rate    float64
}

// NewMaterial creates a material controller from config.
func NewMaterial(cfg config.MaterialConfig) (*Material, error) {
	p, err := ParsePalette(cfg)
	if err != nil {
		return nil, err
	}
	return &Material{palette: p, rate: cfg.ApproachRate}, nil
}

// Palette returns the parsed palette.
func (m *Material) Palette() Palette {
	return m.palette
}

// NewRibbonConfig builds the initial live config from the ribbon section.
func (m *Material) NewRibbonConfig(cfg config.RibbonConfig) RibbonConfig {
	return RibbonConfig{
		Segments:       cfg.Segments,
		HeightSegments: cfg.HeightSegments,
		Width:          cfg.Width,
		Length:         cfg.Length,
		Speed:          cfg.Speed,
		TwistSpeed:     cfg.TwistSpeed,
		TwistAmplitude: cfg.TwistAmplitude,
		FlowFrequency:  cfg.FlowFrequency,
		BaseColor:      m.palette.Base,
		GlowColor:      m.palette.Glow,
	}
}

// Targets computes the appearance targets for the given energy.
// Twist widens and flow quickens as scroll and pointer energy rise; colours
// move toward the highlight palette in proportion to the energy mix.
func (m *Material) Targets(e Energy) TargetConfig {
	return TargetConfig{
		Speed:          0.11 + e.Scroll*0.08,
		TwistSpeed:     0.04 + e.Pointer*0.03,
		TwistAmplitude: 0.6 + e.Scroll*0.28 + e.Pointer*0.15,
		FlowFrequency:  0.32 + e.Scroll*0.24,
		BaseColor:      m.palette.Base.BlendRgb(m.palette.Highlight, e.Mix*0.6),
		GlowColor:      m.palette.Glow.BlendRgb(m.palette.Accent, 0.35+e.Mix*0.4),
	}
}

// Approach moves every live field a fixed fraction of the remaining distance
// toward its target.
func (m *Material) Approach(live *RibbonConfig, target TargetConfig) {
	if live == nil {
		return
	}
	live.Speed = approach(live.Speed, target.Speed, m.rate)
	live.TwistSpeed = approach(live.TwistSpeed, target.TwistSpeed, m.rate)
	live.TwistAmplitude = approach(live.TwistAmplitude, target.TwistAmplitude, m.rate)
	live.FlowFrequency = approach(live.FlowFrequency, target.FlowFrequency, m.rate)
	live.BaseColor = live.BaseColor.BlendRgb(target.BaseColor, clamp01(m.rate))
	live.GlowColor = live.GlowColor.BlendRgb(target.GlowColor, clamp01(m.rate))
}

// Update recomputes targets from energy and applies one approach step.
func (m *Material) Update(live *RibbonConfig, e Energy) TargetConfig {
	target := m.Targets(e)
	m.Approach(live, target)
	return target
}
