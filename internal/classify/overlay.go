package classify

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
)

// DefaultOverlayAlpha is the blend weight applied to the category colors
// when rendering an overlay.
const DefaultOverlayAlpha = 0.6

// Overlay renders a classification result over its source image: pixels
// matched by a category are tinted with that category's display color at
// the given alpha, unmatched pixels pass through unchanged.
//
// Categories are painted in their fixed order, so a pixel matched by
// several ranges shows the last category's color. That ordering is the
// explicit priority list; mask membership itself stays independent.
//
// Alpha must be in (0, 1]; pass DefaultOverlayAlpha for the standard look.
// The result dimensions must match the image.
func Overlay(img image.Image, res *Result, alpha float64) (*image.RGBA, error) {
	if img == nil || res == nil {
		return nil, fmt.Errorf("%w: nil image or result", ErrInvalidImage)
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("overlay alpha %v out of range (0, 1]", alpha)
	}

	bounds := img.Bounds()
	if bounds.Dx() != res.Width || bounds.Dy() != res.Height {
		return nil, fmt.Errorf("result dimensions %dx%d do not match image %dx%d",
			res.Width, res.Height, bounds.Dx(), bounds.Dy())
	}

	// Paint category colors onto a copy of the source, then blend the copy
	// back over the source. Matched pixels end up alpha-weighted toward
	// their category color, unmatched pixels are blended with themselves.
	painted := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
			for _, cat := range Categories {
				if res.Masks[cat].At(x, y) {
					dc := cat.DisplayColor()
					c = color.RGBA{R: dc.R, G: dc.G, B: dc.B, A: 255}
				}
			}
			painted.SetRGBA(x, y, c)
		}
	}

	base := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			base.SetRGBA(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
		}
	}

	return blend.Opacity(base, painted, alpha), nil
}
