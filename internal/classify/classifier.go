package classify

import (
	"errors"
	"fmt"
	"image"

	"github.com/greenscope/leaf-tools-mcp/internal/imaging"
)

// ErrInvalidImage reports input that cannot be classified at all: a nil
// image or a malformed pixel buffer. It is distinct from an image where no
// pixel matches any range, which is a valid result with zero counts.
var ErrInvalidImage = errors.New("invalid image")

// ChannelOrder states how the channels of a raw pixel buffer are laid out.
// Making the order an explicit parameter removes any implicit convention:
// there is exactly one interpretation per call and no conversion round
// trips.
type ChannelOrder int

const (
	// OrderRGB is red, green, blue, the order of Go's image types.
	OrderRGB ChannelOrder = iota
	// OrderBGR is blue, green, red, the order used by OpenCV-style
	// detector outputs.
	OrderBGR
)

// String returns "rgb" or "bgr".
func (o ChannelOrder) String() string {
	if o == OrderBGR {
		return "bgr"
	}
	return "rgb"
}

// Result holds the per-category masks and pixel counts for one classified
// image. Masks share the image's dimensions and are computed independently;
// overlapping ranges may set the same pixel in several masks.
type Result struct {
	Width  int
	Height int
	Masks  map[Category]*Mask
	Counts map[Category]int
}

// Classify maps every pixel of an image to health-category masks using the
// given range table.
//
// Pixels are converted to 8-bit HSV and tested against each category's
// inclusive range; a pixel sets the category's mask bit when it lies inside
// the range on all three channels. An image where nothing matches is a
// valid result with all-zero counts, not an error.
//
// A nil image or nil table returns ErrInvalidImage. A zero-area image
// yields empty masks.
func Classify(img image.Image, table RangeTable) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil range table", ErrInvalidImage)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	res := newResult(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			p := imaging.RGBToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			res.test(x, y, p, table)
		}
	}

	return res, nil
}

// ClassifyBuffer classifies a raw interleaved 3-byte-per-pixel buffer, as
// handed over by detectors that work on decoded frames rather than files.
// The channel order must be stated explicitly.
//
// The buffer length must be exactly width*height*3; anything else returns
// ErrInvalidImage.
func ClassifyBuffer(buf []byte, width, height int, order ChannelOrder, table RangeTable) (*Result, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if len(buf) != width*height*3 {
		return nil, fmt.Errorf("%w: buffer length %d does not match %dx%dx3",
			ErrInvalidImage, len(buf), width, height)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil range table", ErrInvalidImage)
	}

	res := newResult(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			var r, g, b uint8
			switch order {
			case OrderBGR:
				b, g, r = buf[i], buf[i+1], buf[i+2]
			default:
				r, g, b = buf[i], buf[i+1], buf[i+2]
			}
			p := imaging.RGBToHSV(r, g, b)
			res.test(x, y, p, table)
		}
	}

	return res, nil
}

func newResult(width, height int) *Result {
	res := &Result{
		Width:  width,
		Height: height,
		Masks:  make(map[Category]*Mask, len(Categories)),
		Counts: make(map[Category]int, len(Categories)),
	}
	for _, cat := range Categories {
		res.Masks[cat] = NewMask(width, height)
		res.Counts[cat] = 0
	}
	return res
}

// test checks one HSV pixel against every category range independently.
func (r *Result) test(x, y int, p imaging.HSV, table RangeTable) {
	for _, cat := range Categories {
		rng, ok := table[cat]
		if !ok {
			continue
		}
		if rng.Contains(p) {
			r.Masks[cat].Set(x, y)
			r.Counts[cat]++
		}
	}
}

// TotalClassified returns the sum of all category pixel counts. Overlapping
// pixels count once per category they matched, mirroring how the counts
// feed the percentage computation.
func (r *Result) TotalClassified() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}
