package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/silk/telemetry"
)

// HUDData holds the status line data.
type HUDData struct {
	Title      string
	State      string
	Breakpoint string
	Frame      int64
	FPS        int32
	Reduced    bool
	Fallback   bool
	Bridge     string // Listen address, empty when disabled

	// Projected ribbon origin in screen pixels
	AnchorX, AnchorY float64
	AnchorVisible    bool
}

// HUD renders the status heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme
	rl.DrawText(data.Title, 10, 10, 20, theme.ValueColor)

	rl.DrawText(
		fmt.Sprintf("State: %s | Layout: %s | Frame: %d | FPS: %d", data.State, data.Breakpoint, data.Frame, data.FPS),
		10, 35, 16, theme.LabelColor,
	)

	var flags string
	switch {
	case data.Fallback:
		flags = "Static fallback"
	case data.Reduced:
		flags = "Reduced motion"
	}
	if flags != "" {
		rl.DrawText(flags, 10, 55, 16, theme.SectionHeader)
	}
	if data.Bridge != "" {
		rl.DrawText("Bridge: "+data.Bridge, 10, 75, 14, theme.LabelColor)
	}

	if data.AnchorVisible {
		ax, ay := int32(data.AnchorX), int32(data.AnchorY)
		rl.DrawLine(ax-6, ay, ax+6, ay, theme.SectionHeader)
		rl.DrawLine(ax, ay-6, ax, ay+6, theme.SectionHeader)
		rl.DrawText(fmt.Sprintf("(%d, %d)", ax, ay), ax+8, ay+4, 12, theme.LabelColor)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.LabelColor)
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the timing panel with phases in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	theme := p.renderer.Theme
	x, y := p.x, p.y

	p.renderer.DrawPanel(x-6, y-6, 270, int32(len(telemetry.Phases))*14+62)

	rl.DrawText("Frame Timing", x, y, 16, theme.ValueColor)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s  FPS: %.0f",
		stats.AvgFrameDuration.Round(time.Microsecond),
		stats.MaxFrameDuration.Round(time.Microsecond),
		stats.FPS), x, y, 12, theme.SectionHeader)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		c := theme.LabelColor
		if pct > 40 {
			c = theme.BarFillHigh
		} else if pct > 20 {
			c = theme.BarFillMedium
		}
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, c)
		y += 14
	}
}
