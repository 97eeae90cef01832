package filters

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func uniformRGBA(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// verticalEdgeImage is dark on the left half and bright on the right, so a
// horizontal (x) gradient fires and a vertical (y) gradient does not.
func verticalEdgeImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if x >= width/2 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func grayAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestParse_Defaults(t *testing.T) {
	tests := []struct {
		name string
		want Filter
	}{
		{"gaussian", Gaussian{KernelSize: 5, Sigma: 1.0}},
		{"mean", Mean{KernelSize: 5}},
		{"median", Median{KernelSize: 5}},
		{"laplacian", Laplacian{Connectivity: 4}},
		{"sobel", Sobel{Direction: DirBoth}},
		{"prewitt", Prewitt{Direction: DirBoth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name, Options{})
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParse_Options(t *testing.T) {
	got, err := Parse("gaussian", Options{KernelSize: intPtr(7), Sigma: floatPtr(2.5)})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != (Gaussian{KernelSize: 7, Sigma: 2.5}) {
		t.Errorf("Parse(gaussian) = %+v", got)
	}

	got, err = Parse("sobel", Options{Direction: strPtr("y")})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != (Sobel{Direction: DirY}) {
		t.Errorf("Parse(sobel) = %+v", got)
	}
}

func TestParse_UnknownName(t *testing.T) {
	if _, err := Parse("emboss", Options{}); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("got %v, want ErrUnsupportedFilter", err)
	}
}

func TestParse_InvalidDirection(t *testing.T) {
	for _, name := range []string{"sobel", "prewitt"} {
		if _, err := Parse(name, Options{Direction: strPtr("diagonal")}); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: got %v, want ErrInvalidParameter", name, err)
		}
	}
}

func TestApply_InvalidParameters(t *testing.T) {
	img := uniformRGBA(4, 4, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	tests := []struct {
		name   string
		filter Filter
	}{
		{"kernel too small", Gaussian{KernelSize: 2, Sigma: 1.0}},
		{"zero sigma", Gaussian{KernelSize: 5, Sigma: 0}},
		{"negative sigma", Gaussian{KernelSize: 5, Sigma: -1}},
		{"mean kernel too small", Mean{KernelSize: 1}},
		{"median kernel too small", Median{KernelSize: 0}},
		{"laplacian connectivity", Laplacian{Connectivity: 5}},
		{"sobel direction", Sobel{Direction: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.filter.Apply(img); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestGaussian_EvenKernelRoundsUp(t *testing.T) {
	img := verticalEdgeImage(8, 8)

	four, err := Gaussian{KernelSize: 4, Sigma: 1.0}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	five, err := Gaussian{KernelSize: 5, Sigma: 1.0}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if four.At(x, y) != five.At(x, y) {
				t.Fatalf("kernel 4 and 5 differ at (%d,%d): %v vs %v", x, y, four.At(x, y), five.At(x, y))
			}
		}
	}
}

func TestMeanMedian_EvenKernelRoundsUp(t *testing.T) {
	img := verticalEdgeImage(8, 8)

	filters := []struct {
		name      string
		even, odd Filter
	}{
		{"mean", Mean{KernelSize: 4}, Mean{KernelSize: 5}},
		{"median", Median{KernelSize: 4}, Median{KernelSize: 5}},
	}

	for _, tt := range filters {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.even.Apply(img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			b, err := tt.odd.Apply(img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					if a.At(x, y) != b.At(x, y) {
						t.Fatalf("kernel 4 and 5 differ at (%d,%d)", x, y)
					}
				}
			}
		})
	}
}

func TestMedian_WindowMatchesKernelSize(t *testing.T) {
	// A 3-pixel-wide white stripe on black. For the center pixel a 3x3
	// window sees only stripe pixels, so the stripe survives; a 7x7 window
	// is majority black and erases it. This pins the kernel size to the
	// requested neighborhood rather than a doubled window.
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 3; x <= 5; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	small, err := Median{KernelSize: 3}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if v := grayAt(t, small, 4, 4); v != 255 {
		t.Errorf("3x3 median at the stripe center: got %d, want 255", v)
	}

	large, err := Median{KernelSize: 7}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if v := grayAt(t, large, 4, 4); v != 0 {
		t.Errorf("7x7 median at the stripe center: got %d, want 0", v)
	}
}

func TestGradient_DirectionalDecomposition(t *testing.T) {
	img := verticalEdgeImage(8, 8)

	for _, name := range []string{"sobel", "prewitt"} {
		t.Run(name, func(t *testing.T) {
			fx, _ := Parse(name, Options{Direction: strPtr("x")})
			fy, _ := Parse(name, Options{Direction: strPtr("y")})
			fb, _ := Parse(name, Options{Direction: strPtr("both")})

			outX, err := fx.Apply(img)
			if err != nil {
				t.Fatalf("Apply x failed: %v", err)
			}
			outY, err := fy.Apply(img)
			if err != nil {
				t.Fatalf("Apply y failed: %v", err)
			}
			outB, err := fb.Apply(img)
			if err != nil {
				t.Fatalf("Apply both failed: %v", err)
			}

			// The edge column reacts strongly on the x axis.
			edgeX := 8 / 2
			if v := grayAt(t, outX, edgeX, 4); v < 200 {
				t.Errorf("x response at the edge: got %d, want strong", v)
			}

			// Every row is identical, so the y gradient vanishes everywhere.
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					if v := grayAt(t, outY, x, y); v != 0 {
						t.Fatalf("y response at (%d,%d): got %d, want 0", x, y, v)
					}
				}
			}

			// With gy zero the magnitude collapses to |gx|.
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					gx := grayAt(t, outX, x, y)
					gb := grayAt(t, outB, x, y)
					if gx != gb {
						t.Fatalf("magnitude at (%d,%d): got %d, want %d", x, y, gb, gx)
					}
				}
			}
		})
	}
}

func TestEdgeFilters_UniformImageIsZero(t *testing.T) {
	img := uniformRGBA(6, 6, color.RGBA{R: 120, G: 80, B: 40, A: 255})

	filters := []struct {
		name   string
		filter Filter
	}{
		{"sobel", Sobel{Direction: DirBoth}},
		{"prewitt", Prewitt{Direction: DirBoth}},
		{"laplacian-4", Laplacian{Connectivity: 4}},
		{"laplacian-8", Laplacian{Connectivity: 8}},
	}

	for _, tt := range filters {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.filter.Apply(img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			for y := 0; y < 6; y++ {
				for x := 0; x < 6; x++ {
					if v := grayAt(t, out, x, y); v != 0 {
						t.Fatalf("response at (%d,%d): got %d, want 0", x, y, v)
					}
				}
			}
		})
	}
}

func TestLaplacian_ConnectivityKernelsDiffer(t *testing.T) {
	// A single bright pixel: the 4-connected kernel does not see it from a
	// diagonal neighbor, the 8-connected one does.
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	img.SetGray(2, 2, color.Gray{Y: 255})

	four, err := Laplacian{Connectivity: 4}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	eight, err := Laplacian{Connectivity: 8}.Apply(img)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if v := grayAt(t, four, 1, 1); v != 0 {
		t.Errorf("4-connected diagonal response: got %d, want 0", v)
	}
	if v := grayAt(t, eight, 1, 1); v == 0 {
		t.Error("8-connected diagonal response: got 0, want nonzero")
	}
}

func TestEdgeFilters_GrayscaleStaysGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 200})

	filters := []Filter{
		Sobel{Direction: DirBoth},
		Prewitt{Direction: DirX},
		Laplacian{Connectivity: 4},
	}

	for _, f := range filters {
		out, err := f.Apply(img)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if _, ok := out.(*image.Gray); !ok {
			t.Errorf("%T: grayscale input should stay grayscale, got %T", f, out)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	img := verticalEdgeImage(6, 6)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	if _, err := (Gaussian{KernelSize: 5, Sigma: 1.0}).Apply(img); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := (Sobel{Direction: DirBoth}).Apply(img); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("filter mutated its input image")
		}
	}
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		if _, err := Parse(name, Options{}); err != nil {
			t.Errorf("Parse(%q) failed: %v", name, err)
		}
	}
}
