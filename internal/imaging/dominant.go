package imaging

import (
	"fmt"
	"image"
	"sort"
)

// ColorFrequency represents a quantized color and how often it occurs.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
	HSV        HSV      `json:"hsv"`        // 8-bit HSV of the quantized color
}

// DominantColorsResult contains the most frequent colors in an image,
// sorted by frequency in descending order.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the N most common colors from an image or region.
//
// This is the second tuning aid alongside SampleHSV: run it over a batch of
// crops and the returned HSV triples show where the healthy greens, the
// yellowing tissue, and the necrotic browns actually sit, which is how the
// range tables were calibrated in the first place.
//
// To group similar colors, RGB components are quantized to multiples of 16
// before counting. If region is nil the entire image is analyzed.
func DominantColors(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	bounds := img.Bounds()
	if region != nil {
		rect := image.Rect(region.X1, region.Y1, region.X2, region.Y2)
		if !rect.In(bounds) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds",
				region.X1, region.Y1, region.X2, region.Y2)
		}
		bounds = rect
	}

	colorCounts := make(map[RGBColor]int)
	totalPixels := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// Quantize to reduce color space (group similar colors)
			q := RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			colorCounts[q]++
			totalPixels++
		}
	}

	if totalPixels == 0 {
		return &DominantColorsResult{Colors: []ColorFrequency{}}, nil
	}

	colors := make([]ColorFrequency, 0, len(colorCounts))
	for rgb, cnt := range colorCounts {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B),
			Percentage: float64(cnt) / float64(totalPixels) * 100,
			RGB:        rgb,
			HSV:        RGBToHSV(rgb.R, rgb.G, rgb.B),
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}
