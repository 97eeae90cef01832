package filters

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

var (
	// ErrUnsupportedFilter reports a filter name Parse does not know.
	ErrUnsupportedFilter = errors.New("unsupported filter")

	// ErrInvalidParameter reports an out-of-range kernel size, sigma,
	// direction, or connectivity.
	ErrInvalidParameter = errors.New("invalid filter parameter")
)

// Default parameter values applied by Parse when an option is omitted.
const (
	DefaultKernelSize   = 5
	DefaultSigma        = 1.0
	DefaultConnectivity = 4
)

// DefaultDirection is the gradient direction used when none is requested.
const DefaultDirection = DirBoth

// Direction selects the gradient axis for Sobel and Prewitt.
type Direction string

const (
	DirX    Direction = "x"
	DirY    Direction = "y"
	DirBoth Direction = "both" // magnitude sqrt(gx²+gy²)
)

func (d Direction) valid() bool {
	return d == DirX || d == DirY || d == DirBoth
}

// Filter is one configured filter variant. Apply returns a new image and
// never mutates its input.
type Filter interface {
	Apply(img image.Image) (image.Image, error)
}

// Gaussian smooths with a separable Gaussian kernel. KernelSize must be at
// least 3; even sizes are rounded up to the next odd. Sigma must be
// positive.
type Gaussian struct {
	KernelSize int
	Sigma      float64
}

// Apply implements Filter.
func (f Gaussian) Apply(img image.Image) (image.Image, error) {
	k, err := normalizeKernel(f.KernelSize)
	if err != nil {
		return nil, err
	}
	if f.Sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %v must be positive", ErrInvalidParameter, f.Sigma)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}
	return gaussianSmooth(img, k, f.Sigma), nil
}

// Mean smooths with a box filter. KernelSize must be at least 3; even sizes
// are rounded up to the next odd.
type Mean struct {
	KernelSize int
}

// Apply implements Filter.
func (f Mean) Apply(img image.Image) (image.Image, error) {
	k, err := normalizeKernel(f.KernelSize)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}
	// bild's box blur takes the kernel radius; side length is 2*radius+1.
	return blur.Box(img, float64(k/2)), nil
}

// Median replaces each pixel with the median of its neighborhood, which
// removes salt-and-pepper noise without smearing edges. KernelSize must be
// at least 3; even sizes are rounded up to the next odd.
type Median struct {
	KernelSize int
}

// Apply implements Filter.
func (f Median) Apply(img image.Image) (image.Image, error) {
	k, err := normalizeKernel(f.KernelSize)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}
	// bild's median takes the window radius, like its box blur.
	return effect.Median(img, float64(k/2)), nil
}

// Laplacian computes the second-derivative edge response on grayscale.
// Connectivity selects the kernel: 4 uses the cross kernel, 8 the full
// 3x3 neighborhood.
type Laplacian struct {
	Connectivity int
}

// Apply implements Filter.
func (f Laplacian) Apply(img image.Image) (image.Image, error) {
	var kernel [3][3]float64
	switch f.Connectivity {
	case 4:
		kernel = [3][3]float64{
			{0, 1, 0},
			{1, -4, 1},
			{0, 1, 0},
		}
	case 8:
		kernel = [3][3]float64{
			{1, 1, 1},
			{1, -8, 1},
			{1, 1, 1},
		}
	default:
		return nil, fmt.Errorf("%w: connectivity %d must be 4 or 8", ErrInvalidParameter, f.Connectivity)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}

	gray, w, h := toGray(img)
	out := convolve3x3(gray, w, h, kernel)
	absClip(out)
	return grayResponse(img, out, w, h), nil
}

// Sobel computes the first-derivative gradient with weighted 3x3 kernels.
type Sobel struct {
	Direction Direction
}

// Apply implements Filter.
func (f Sobel) Apply(img image.Image) (image.Image, error) {
	return gradient(img, f.Direction, sobelX, sobelY)
}

// Prewitt computes the same gradient as Sobel with unweighted ±1 kernels.
type Prewitt struct {
	Direction Direction
}

// Apply implements Filter.
func (f Prewitt) Apply(img image.Image) (image.Image, error) {
	return gradient(img, f.Direction, prewittX, prewittY)
}

// Options carries the loosely-typed parameter surface of the tool layer.
// Nil fields fall back to the per-filter defaults.
type Options struct {
	KernelSize   *int     `json:"kernel_size,omitempty"`
	Sigma        *float64 `json:"sigma,omitempty"`
	Direction    *string  `json:"direction,omitempty"`
	Connectivity *int     `json:"connectivity,omitempty"`
}

// Parse resolves a filter name and options to a typed variant. Known names
// are "gaussian", "mean", "median", "laplacian", "sobel", and "prewitt".
// Unknown names return ErrUnsupportedFilter; invalid option values surface
// as ErrInvalidParameter when the filter is applied or, for direction,
// immediately.
func Parse(name string, opts Options) (Filter, error) {
	kernel := DefaultKernelSize
	if opts.KernelSize != nil {
		kernel = *opts.KernelSize
	}
	sigma := DefaultSigma
	if opts.Sigma != nil {
		sigma = *opts.Sigma
	}
	dir := DefaultDirection
	if opts.Direction != nil {
		dir = Direction(*opts.Direction)
	}
	connectivity := DefaultConnectivity
	if opts.Connectivity != nil {
		connectivity = *opts.Connectivity
	}

	switch name {
	case "gaussian":
		return Gaussian{KernelSize: kernel, Sigma: sigma}, nil
	case "mean":
		return Mean{KernelSize: kernel}, nil
	case "median":
		return Median{KernelSize: kernel}, nil
	case "laplacian":
		return Laplacian{Connectivity: connectivity}, nil
	case "sobel":
		if !dir.valid() {
			return nil, fmt.Errorf("%w: direction %q must be x, y, or both", ErrInvalidParameter, dir)
		}
		return Sobel{Direction: dir}, nil
	case "prewitt":
		if !dir.valid() {
			return nil, fmt.Errorf("%w: direction %q must be x, y, or both", ErrInvalidParameter, dir)
		}
		return Prewitt{Direction: dir}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFilter, name)
	}
}

// Names lists the filter names Parse accepts, in the order the original
// tool menu showed them.
func Names() []string {
	return []string{"gaussian", "laplacian", "mean", "median", "sobel", "prewitt"}
}

// normalizeKernel validates a kernel size and bumps even sizes to the next
// odd, so size 4 behaves exactly like size 5.
func normalizeKernel(k int) (int, error) {
	if k < 3 {
		return 0, fmt.Errorf("%w: kernel size %d must be at least 3", ErrInvalidParameter, k)
	}
	if k%2 == 0 {
		k++
	}
	return k, nil
}
