// Package render turns aggregated vote tables into chart and map artifacts.
package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Diverging palette for yes-percentages. 50% is the neutral midpoint: below
// it shades toward rejection red, above it toward acceptance green.
var (
	rejectColor  = drawing.Color{R: 202, G: 43, B: 43, A: 255}
	neutralColor = drawing.Color{R: 252, G: 245, B: 189, A: 255}
	acceptColor  = drawing.Color{R: 26, G: 135, B: 64, A: 255}
	noDataColor  = drawing.Color{R: 211, G: 211, B: 211, A: 255}
)

// colorFor maps a yes-percentage in [0,100] onto the diverging palette.
func colorFor(value float64) drawing.Color {
	switch {
	case value <= 0:
		return rejectColor
	case value >= 100:
		return acceptColor
	case value < 50:
		return lerpColor(rejectColor, neutralColor, value/50)
	default:
		return lerpColor(neutralColor, acceptColor, (value-50)/50)
	}
}

func lerpColor(a, b drawing.Color, t float64) drawing.Color {
	return drawing.Color{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: 255,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// svgColor renders a palette color as an SVG fill attribute value.
func svgColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
