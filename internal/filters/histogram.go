package filters

import "image"

// HistogramResult contains a 256-bin intensity histogram per channel.
// For grayscale images the same histogram is reported on all three
// channels.
type HistogramResult struct {
	R [256]int `json:"r"`
	G [256]int `json:"g"`
	B [256]int `json:"b"`
}

// Histogram counts pixel intensities per channel. The companion to the
// filter bank: the inspection view plots it next to the filtered image.
// Pure function, no side effects.
func Histogram(img image.Image) *HistogramResult {
	bounds := img.Bounds()
	res := &HistogramResult{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			res.R[uint8(r>>8)]++
			res.G[uint8(g>>8)]++
			res.B[uint8(b>>8)]++
		}
	}

	return res
}
