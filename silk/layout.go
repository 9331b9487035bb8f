package silk

import (
	"github.com/pthm-cable/silk/config"
	"github.com/pthm-cable/silk/renderer"
)

// Breakpoint is a responsive layout class.
type Breakpoint int

const (
	Desktop Breakpoint = iota
	Tablet
	Mobile
)

func (b Breakpoint) String() string {
	switch b {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// BreakpointFor classifies a viewport width.
func BreakpointFor(viewportW float64, cfg config.LayoutConfig) Breakpoint {
	switch {
	case viewportW < cfg.MobileMaxWidth:
		return Mobile
	case viewportW < cfg.TabletMaxWidth:
		return Tablet
	default:
		return Desktop
	}
}

// BaseTransform returns the resting ribbon transform for a viewport width.
func BaseTransform(viewportW float64, cfg config.LayoutConfig) renderer.Transform {
	var t config.TransformConfig
	switch BreakpointFor(viewportW, cfg) {
	case Mobile:
		t = cfg.Mobile
	case Tablet:
		t = cfg.Tablet
	default:
		t = cfg.Desktop
	}
	return renderer.Transform{Rotation: t.Rotation(), Position: t.Position}
}

// PointerTransform offsets the base transform by the smoothed pointer.
func PointerTransform(base renderer.Transform, cx, cy float64) renderer.Transform {
	return renderer.Transform{
		Rotation: [3]float64{
			base.Rotation[0] + cy*0.12,
			base.Rotation[1] + cx*0.08,
			base.Rotation[2] + cx*0.05,
		},
		Position: [3]float64{
			base.Position[0] + cx*0.85,
			base.Position[1] + cy*0.5,
			base.Position[2],
		},
	}
}
