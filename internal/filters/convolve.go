package filters

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
	prewittX = [3][3]float64{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}
	prewittY = [3][3]float64{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	}
)

// toGray converts an image to a float64 luminance grid using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B), scaled to 0-255.
func toGray(img image.Image) ([][]float64, int, int) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return gray, width, height
}

// convolve3x3 applies a 3x3 kernel over a float64 grid. Border pixels use
// clamped (replicated) edge values.
func convolve3x3(src [][]float64, width, height int, kernel [3][3]float64) [][]float64 {
	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += src[py][px] * kernel[ky+1][kx+1]
				}
			}
			out[y][x] = sum
		}
	}
	return out
}

// absClip replaces every value with its absolute value clipped to [0, 255],
// in place.
func absClip(grid [][]float64) {
	for y := range grid {
		for x := range grid[y] {
			v := math.Abs(grid[y][x])
			if v > 255 {
				v = 255
			}
			grid[y][x] = v
		}
	}
}

// gradient runs a directional first-derivative filter: the x kernel, the y
// kernel, or the magnitude of both.
func gradient(img image.Image, dir Direction, kx, ky [3][3]float64) (image.Image, error) {
	if !dir.valid() {
		return nil, fmt.Errorf("%w: direction %q must be x, y, or both", ErrInvalidParameter, dir)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}

	gray, w, h := toGray(img)

	var out [][]float64
	switch dir {
	case DirX:
		out = convolve3x3(gray, w, h, kx)
	case DirY:
		out = convolve3x3(gray, w, h, ky)
	default:
		gx := convolve3x3(gray, w, h, kx)
		gy := convolve3x3(gray, w, h, ky)
		out = make([][]float64, h)
		for y := 0; y < h; y++ {
			out[y] = make([]float64, w)
			for x := 0; x < w; x++ {
				out[y][x] = math.Sqrt(gx[y][x]*gx[y][x] + gy[y][x]*gy[y][x])
			}
		}
	}

	absClip(out)
	return grayResponse(img, out, w, h), nil
}

// grayResponse packs a clipped float64 response grid back into an 8-bit
// image. Grayscale inputs stay grayscale; color inputs get the response
// replicated across the three channels.
func grayResponse(src image.Image, grid [][]float64, width, height int) image.Image {
	if _, ok := src.(*image.Gray); ok {
		out := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				out.SetGray(x, y, color.Gray{Y: uint8(grid[y][x])})
			}
		}
		return out
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(grid[y][x])
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// gaussianKernel1D builds a normalized one-dimensional Gaussian kernel of
// odd length size.
func gaussianKernel1D(size int, sigma float64) []float64 {
	kernel := make([]float64, size)
	mid := size / 2
	var sum float64
	for i := range kernel {
		d := float64(i - mid)
		kernel[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianSmooth applies a separable Gaussian blur per channel, preserving
// color. The kernel size is already validated odd.
func gaussianSmooth(img image.Image, size int, sigma float64) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	kernel := gaussianKernel1D(size, sigma)
	mid := size / 2

	// Channel planes in float64 so repeated passes lose no precision.
	planes := make([][][]float64, 3)
	for c := range planes {
		planes[c] = make([][]float64, height)
		for y := range planes[c] {
			planes[c][y] = make([]float64, width)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			planes[0][y][x] = float64(r >> 8)
			planes[1][y][x] = float64(g >> 8)
			planes[2][y][x] = float64(b >> 8)
		}
	}

	for c := range planes {
		// Horizontal pass.
		tmp := make([][]float64, height)
		for y := 0; y < height; y++ {
			tmp[y] = make([]float64, width)
			for x := 0; x < width; x++ {
				var sum float64
				for k := -mid; k <= mid; k++ {
					px := clamp(x+k, 0, width-1)
					sum += planes[c][y][px] * kernel[k+mid]
				}
				tmp[y][x] = sum
			}
		}
		// Vertical pass.
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				var sum float64
				for k := -mid; k <= mid; k++ {
					py := clamp(y+k, 0, height-1)
					sum += tmp[py][x] * kernel[k+mid]
				}
				planes[c][y][x] = sum
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: uint8(clampF(planes[0][y][x], 0, 255) + 0.5),
				G: uint8(clampF(planes[1][y][x], 0, 255) + 0.5),
				B: uint8(clampF(planes[2][y][x], 0, 255) + 0.5),
				A: 255,
			})
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max]. Used for
// boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
