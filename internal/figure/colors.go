package figure

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
)

// Chart accent colors, shared across renderers.
var (
	Blue   = color.RGBA{R: 0x4c, G: 0x78, B: 0xa8, A: 0xff}
	Orange = color.RGBA{R: 0xf5, G: 0x85, B: 0x18, A: 0xff}
	Green  = color.RGBA{R: 0x54, G: 0xa2, B: 0x4b, A: 0xff}
	Gray   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// DigitColors is a ten-entry categorical palette for digit preferences.
var DigitColors = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xff, 0x7f, 0x0e, 0xff},
	{0x2c, 0xa0, 0x2c, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
	{0x94, 0x67, 0xbd, 0xff},
	{0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff},
	{0x7f, 0x7f, 0x7f, 0xff},
	{0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

// BluesPalette returns the sequential blues used for confusion heatmaps,
// falling back to a Kindlmann-derived palette if brewer rejects the size.
func BluesPalette(n int) palette.Palette {
	p, err := brewer.GetPalette(brewer.TypeSequential, "Blues", n)
	if err != nil {
		return moreland.Kindlmann().Palette(n)
	}
	return p
}

// HeatColorMap is the continuous colormap for value-encoded scatters and
// the probe heatmap.
func HeatColorMap() palette.ColorMap {
	return moreland.ExtendedBlackBody()
}

// MapColors maps each value onto cm scaled to the data range. A constant
// series maps everything to the low end rather than dividing by zero.
func MapColors(values []float64, cm palette.ColorMap) []color.Color {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		max = min + 1
	}
	cm.SetMin(min)
	cm.SetMax(max)
	out := make([]color.Color, len(values))
	for i, v := range values {
		c, err := cm.At(v)
		if err != nil {
			c = Gray
		}
		out[i] = c
	}
	return out
}
