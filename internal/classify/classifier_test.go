package classify

import (
	"image"
	"image/color"
	"testing"

	"github.com/greenscope/leaf-tools-mcp/internal/imaging"
)

// setHSV paints a pixel from an 8-bit HSV triple
func setHSV(img *image.RGBA, x, y int, c imaging.HSV) {
	rgb := imaging.HSVToRGB(c)
	img.SetRGBA(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
}

// leafScenarioImage builds a 2x2 image with one pixel per outcome:
// healthy green, yellowing, necrotic brown, unclassified black.
func leafScenarioImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	setHSV(img, 0, 0, imaging.HSV{H: 60, S: 200, V: 200})
	setHSV(img, 1, 0, imaging.HSV{H: 25, S: 200, V: 200})
	setHSV(img, 0, 1, imaging.HSV{H: 10, S: 100, V: 50})
	setHSV(img, 1, 1, imaging.HSV{H: 0, S: 0, V: 0})
	return img
}

func uniformImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClassify_Scenario(t *testing.T) {
	img := leafScenarioImage()

	res, err := Classify(img, DefaultRanges())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if res.Width != 2 || res.Height != 2 {
		t.Fatalf("result dimensions: got %dx%d, want 2x2", res.Width, res.Height)
	}

	for _, cat := range Categories {
		if got := res.Counts[cat]; got != 1 {
			t.Errorf("%s count: got %d, want 1", cat, got)
		}
	}
	if res.TotalClassified() != 3 {
		t.Errorf("total classified: got %d, want 3", res.TotalClassified())
	}

	// Each category's single pixel is where it was painted.
	wantPixels := map[Category][2]int{
		Healthy: {0, 0},
		Mild:    {1, 0},
		Severe:  {0, 1},
	}
	for cat, p := range wantPixels {
		if !res.Masks[cat].At(p[0], p[1]) {
			t.Errorf("%s mask missing pixel (%d,%d)", cat, p[0], p[1])
		}
	}

	// The black pixel matches nothing.
	for _, cat := range Categories {
		if res.Masks[cat].At(1, 1) {
			t.Errorf("%s mask should not contain the background pixel", cat)
		}
	}
}

func TestClassify_NoMatchesIsValid(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
	}{
		{"all white", color.RGBA{255, 255, 255, 255}},
		{"all black", color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(uniformImage(8, 8, tt.c), DefaultRanges())
			if err != nil {
				t.Fatalf("Classify should not fail on unmatched pixels: %v", err)
			}
			if res.TotalClassified() != 0 {
				t.Errorf("total classified: got %d, want 0", res.TotalClassified())
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	img := leafScenarioImage()

	first, err := Classify(img, DefaultRanges())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	second, err := Classify(img, DefaultRanges())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	for _, cat := range Categories {
		for y := 0; y < first.Height; y++ {
			for x := 0; x < first.Width; x++ {
				if first.Masks[cat].At(x, y) != second.Masks[cat].At(x, y) {
					t.Fatalf("%s mask differs at (%d,%d) between identical runs", cat, x, y)
				}
			}
		}
	}
}

func TestClassify_ZeroAreaImage(t *testing.T) {
	res, err := Classify(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultRanges())
	if err != nil {
		t.Fatalf("Classify failed on zero-area image: %v", err)
	}
	if res.TotalClassified() != 0 {
		t.Errorf("total classified: got %d, want 0", res.TotalClassified())
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	if _, err := Classify(nil, DefaultRanges()); !errorsIsInvalidImage(err) {
		t.Errorf("nil image: got %v, want ErrInvalidImage", err)
	}
	if _, err := Classify(uniformImage(2, 2, color.RGBA{}), nil); !errorsIsInvalidImage(err) {
		t.Errorf("nil table: got %v, want ErrInvalidImage", err)
	}
}

func TestClassifyBuffer_OrderEquivalence(t *testing.T) {
	// A healthy green pixel next to a necrotic one, as RGB triplets.
	green := imaging.HSVToRGB(imaging.HSV{H: 60, S: 200, V: 200})
	brown := imaging.HSVToRGB(imaging.HSV{H: 10, S: 100, V: 50})

	rgb := []byte{green.R, green.G, green.B, brown.R, brown.G, brown.B}
	bgr := []byte{green.B, green.G, green.R, brown.B, brown.G, brown.R}

	fromRGB, err := ClassifyBuffer(rgb, 2, 1, OrderRGB, DefaultRanges())
	if err != nil {
		t.Fatalf("ClassifyBuffer(rgb) failed: %v", err)
	}
	fromBGR, err := ClassifyBuffer(bgr, 2, 1, OrderBGR, DefaultRanges())
	if err != nil {
		t.Fatalf("ClassifyBuffer(bgr) failed: %v", err)
	}

	for _, cat := range Categories {
		if fromRGB.Counts[cat] != fromBGR.Counts[cat] {
			t.Errorf("%s count differs between declared orders: rgb=%d bgr=%d",
				cat, fromRGB.Counts[cat], fromBGR.Counts[cat])
		}
	}
	if fromRGB.Counts[Healthy] != 1 || fromRGB.Counts[Severe] != 1 {
		t.Errorf("counts: got healthy=%d severe=%d, want 1 and 1",
			fromRGB.Counts[Healthy], fromRGB.Counts[Severe])
	}
}

func TestClassifyBuffer_Malformed(t *testing.T) {
	tests := []struct {
		name          string
		buf           []byte
		width, height int
	}{
		{"short buffer", make([]byte, 5), 2, 1},
		{"long buffer", make([]byte, 7), 2, 1},
		{"negative width", make([]byte, 6), -2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyBuffer(tt.buf, tt.width, tt.height, OrderRGB, DefaultRanges())
			if !errorsIsInvalidImage(err) {
				t.Errorf("got %v, want ErrInvalidImage", err)
			}
		})
	}
}
