package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HostState is the simulated host input edited by the controls panel.
type HostState struct {
	PinPointer     bool // Use the sliders instead of the mouse
	PointerX       float32
	PointerY       float32
	Scroll         float32
	ReducedMotion  bool
	SimulateLowEnd bool // Forces the capability probe to report a weak device
}

// ControlsAction reports what changed in one Draw.
type ControlsAction struct {
	MotionChanged   bool
	LowEndChanged   bool
	ScrollChanged   bool
	SnapshotPressed bool
	ResetPressed    bool
}

// ControlsPanel renders the overlay toggles and simulated host inputs.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel, applies widget edits to host and reports the
// changes the caller must forward to the renderer.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, host *HostState) ControlsAction {
	var act ControlsAction
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	items := 0
	for _, cat := range categories {
		items += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(items)*lineHeight + padding*3 + lineHeight + 300
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Panels", c.x+padding, y, 16, r.Theme.ValueColor)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(category, c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	y += 6
	rl.DrawText("Host input", c.x+padding, y, 16, r.Theme.ValueColor)
	y += lineHeight + 6

	px := float32(c.x + padding)
	sliderWidth := float32(c.width - padding*2 - 60)

	if gui.Button(rl.Rectangle{X: px, Y: float32(y), Width: 120, Height: 24}, toggleText(host.PinPointer, "Follow Mouse", "Pin Pointer")) {
		host.PinPointer = !host.PinPointer
	}
	y += 32

	host.PointerX = c.slider(px, &y, sliderWidth, "Pointer X", host.PointerX, -1, 1)
	host.PointerY = c.slider(px, &y, sliderWidth, "Pointer Y", host.PointerY, -1, 1)

	scroll := c.slider(px, &y, sliderWidth, "Scroll", host.Scroll, 0, 1)
	if scroll != host.Scroll {
		host.Scroll = scroll
		act.ScrollChanged = true
	}

	if gui.Button(rl.Rectangle{X: px, Y: float32(y), Width: 120, Height: 24}, toggleText(host.ReducedMotion, "Allow Motion", "Reduce Motion")) {
		host.ReducedMotion = !host.ReducedMotion
		act.MotionChanged = true
	}
	if gui.Button(rl.Rectangle{X: px + 130, Y: float32(y), Width: 120, Height: 24}, toggleText(host.SimulateLowEnd, "Full Device", "Low-End Device")) {
		host.SimulateLowEnd = !host.SimulateLowEnd
		act.LowEndChanged = true
	}
	y += 32

	if gui.Button(rl.Rectangle{X: px, Y: float32(y), Width: 120, Height: 24}, "Snapshot") {
		act.SnapshotPressed = true
	}
	if gui.Button(rl.Rectangle{X: px + 130, Y: float32(y), Width: 120, Height: 24}, "Reset Input") {
		*host = HostState{ReducedMotion: host.ReducedMotion, SimulateLowEnd: host.SimulateLowEnd}
		act.ResetPressed = true
		act.ScrollChanged = true
	}

	return act
}

// slider draws a labelled slider bar and advances y.
func (c *ControlsPanel) slider(x float32, y *int32, width float32, label string, value, lo, hi float32) float32 {
	theme := c.renderer.Theme
	rl.DrawText(label, int32(x), *y, theme.FontSize, theme.LabelColor)
	*y += 14
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(*y), Width: width, Height: 16},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%+.2f", v), int32(x+width+8), *y+2, theme.FontSize, theme.ValueColor)
	*y += 24
	return v
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := r.Theme.BarBg
	if enabled {
		statusColor = r.Theme.BarFillHigh
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = r.Theme.ValueColor
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, r.Theme.LabelColor)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
