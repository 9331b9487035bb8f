// Package ui draws the demo window's panels. Inspector content is described
// by field descriptors so panels can follow the animation state without
// hard-coded layouts.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Centered bar [-1, +1] or custom range
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// CenteredRange returns a [-1, +1] range.
func CenteredRange() FieldRange {
	return FieldRange{Min: -1, Max: 1}
}

// FieldDescriptor defines how to display a single value of D.
type FieldDescriptor[D any] struct {
	Label       string
	Widget      WidgetType
	Format      string // Printf format for numeric text
	Range       FieldRange
	Getter      func(D) float32
	TextGetter  func(D) string
	ColorGetter func(D) rl.Color
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor[D any] struct {
	Title   string
	Fields  []FieldDescriptor[D]
	Visible func(D) bool // nil = always visible
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillLow      rl.Color
	BarFillMedium   rl.Color
	BarFillHigh     rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns a light theme that reads over the ivory silk.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 255, G: 252, B: 246, A: 225},
		PanelBorder:     rl.Color{R: 214, G: 204, B: 190, A: 255},
		SectionHeader:   rl.Color{R: 150, G: 110, B: 60, A: 255},
		LabelColor:      rl.Color{R: 90, G: 84, B: 78, A: 255},
		ValueColor:      rl.Color{R: 50, G: 46, B: 42, A: 255},
		BarBg:           rl.Color{R: 230, G: 224, B: 214, A: 255},
		BarFill:         rl.Color{R: 196, G: 160, B: 110, A: 255},
		BarFillLow:      rl.Color{R: 170, G: 190, B: 210, A: 255},
		BarFillMedium:   rl.Color{R: 210, G: 186, B: 130, A: 255},
		BarFillHigh:     rl.Color{R: 226, G: 150, B: 90, A: 255},
		BarFillNegative: rl.Color{R: 150, G: 170, B: 210, A: 255},
		BarFillPositive: rl.Color{R: 220, G: 160, B: 100, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
