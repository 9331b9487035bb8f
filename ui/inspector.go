package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/silk/telemetry"
)

// InspectorData holds the state shown by the inspector panel.
type InspectorData struct {
	Snapshot *telemetry.Snapshot
	Energy   float64
	Gust     float64 // Current gust envelope
}

func swatch(hex string) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Blank
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func f32(v float64) float32 { return float32(v) }

// inspectorSections describes the inspector layout.
var inspectorSections = []SectionDescriptor[InspectorData]{
	{
		Title: "Influence",
		Fields: []FieldDescriptor[InspectorData]{
			{Label: "Pointer X", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Influence.CurrentX) }},
			{Label: "Pointer Y", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Influence.CurrentY) }},
			{Label: "Scroll", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Influence.ScrollCurrent) }},
			{Label: "Energy", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d InspectorData) float32 { return f32(d.Energy) }},
		},
	},
	{
		Title: "Breeze",
		Fields: []FieldDescriptor[InspectorData]{
			{Label: "Gust", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d InspectorData) float32 { return f32(d.Gust) }},
			{Label: "Next gust", Widget: WidgetText, Format: "%.1fs", Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Breeze.TimeUntilNext) }},
			{Label: "Drift X", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Breeze.DriftX) }},
			{Label: "Drift Y", Widget: WidgetCenteredBar, Range: CenteredRange(), Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Breeze.DriftY) }},
		},
	},
	{
		Title: "Material",
		Fields: []FieldDescriptor[InspectorData]{
			{Label: "Speed", Widget: WidgetText, Format: "%.3f", Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Ribbon.Speed) }},
			{Label: "Twist", Widget: WidgetText, Format: "%.3f", Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Ribbon.TwistAmplitude) }},
			{Label: "Flow freq", Widget: WidgetText, Format: "%.3f", Getter: func(d InspectorData) float32 { return f32(d.Snapshot.Ribbon.FlowFrequency) }},
			{Label: "Base", Widget: WidgetColorSwatch, ColorGetter: func(d InspectorData) rl.Color { return swatch(d.Snapshot.Ribbon.BaseColor) }},
			{Label: "Glow", Widget: WidgetColorSwatch, ColorGetter: func(d InspectorData) rl.Color { return swatch(d.Snapshot.Ribbon.GlowColor) }},
		},
	},
}

// Inspector renders the animation state panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector. A nil snapshot draws nothing.
func (ins *Inspector) Draw(data InspectorData) int32 {
	if data.Snapshot == nil {
		return ins.y
	}
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sd := range inspectorSections {
		height += SectionHeight(r, sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	rl.DrawText("Ribbon", ins.x+padding, y, 16, r.Theme.ValueColor)
	y += r.Theme.LineHeight + 4

	contentWidth := ins.width - padding*2
	for _, sd := range inspectorSections {
		y = DrawSection(r, ins.x+padding, y, sd, data, contentWidth)
	}
	return y
}
