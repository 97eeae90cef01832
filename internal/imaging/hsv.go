package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in 8-bit HSV space using the convention the range tables
// are written in: hue halved to fit a byte (0-179, so 60 means 120 degrees),
// saturation and value scaled to 0-255.
type HSV struct {
	H uint8 `json:"h"` // Hue: 0-179 (degrees / 2)
	S uint8 `json:"s"` // Saturation: 0-255
	V uint8 `json:"v"` // Value: 0-255
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBToHSV converts 8-bit RGB components to 8-bit HSV.
//
// The conversion computes standard HSV (hue 0-360 degrees, saturation and
// value 0-1) and rescales: H/2 rounded to 0-179, S and V to 0-255. Gray
// pixels (max == min) have hue and saturation 0.
func RGBToHSV(r, g, b uint8) HSV {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := c.Hsv()

	hh := int(math.Round(h / 2.0))
	if hh > 179 {
		// Hues just below 360 degrees round up past the byte range.
		hh = 0
	}
	return HSV{
		H: uint8(hh),
		S: uint8(math.Round(s * 255.0)),
		V: uint8(math.Round(v * 255.0)),
	}
}

// HSVToRGB converts an 8-bit HSV color back to 8-bit RGB components.
// Inverse of RGBToHSV up to rounding.
func HSVToRGB(c HSV) RGBColor {
	col := colorful.Hsv(float64(c.H)*2.0, float64(c.S)/255.0, float64(c.V)/255.0)
	return RGBColor{
		R: uint8(math.Round(col.R * 255.0)),
		G: uint8(math.Round(col.G * 255.0)),
		B: uint8(math.Round(col.B * 255.0)),
	}
}

// PixelColor contains a sampled pixel in the representations the analysis
// tools need: hex for display, RGB as stored, HSV as thresholded.
type PixelColor struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSV HSV      `json:"hsv"` // 8-bit HSV (the classifier's space)
}

// SampleHSV extracts the color at a pixel coordinate in both RGB and 8-bit
// HSV. This is the tuning aid for range tables: point at a healthy or
// necrotic pixel and read off the HSV triple the range must cover.
//
// Coordinates are 0-based with origin at top-left. Returns an error if the
// coordinate lies outside the image bounds.
func SampleHSV(img image.Image, x, y int) (*PixelColor, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	return &PixelColor{
		Hex: fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSV: RGBToHSV(r8, g8, b8),
	}, nil
}
