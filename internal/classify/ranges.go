package classify

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/greenscope/leaf-tools-mcp/internal/imaging"
)

// Category is a leaf-health category. The set is closed and ordered:
// Healthy, Mild, Severe. Pixels matching no category's range count as
// unclassified background.
type Category int

const (
	// Healthy marks vibrant green tissue.
	Healthy Category = iota
	// Mild marks yellowing and pale tissue.
	Mild
	// Severe marks brown and necrotic tissue.
	Severe
)

// Categories lists all health categories in their fixed order.
var Categories = []Category{Healthy, Mild, Severe}

// String returns the JSON/config name of the category.
func (c Category) String() string {
	switch c {
	case Healthy:
		return "healthy"
	case Mild:
		return "mild"
	case Severe:
		return "severe"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps a config name back to a Category.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "healthy":
		return Healthy, nil
	case "mild":
		return Mild, nil
	case "severe":
		return Severe, nil
	default:
		return 0, fmt.Errorf("unknown category %q", name)
	}
}

// DisplayColor returns the fixed RGB color used when rendering the
// category in an overlay: green, yellow, dark brown.
func (c Category) DisplayColor() imaging.RGBColor {
	switch c {
	case Healthy:
		return imaging.RGBColor{R: 0, G: 255, B: 0}
	case Mild:
		return imaging.RGBColor{R: 255, G: 255, B: 0}
	default:
		return imaging.RGBColor{R: 128, G: 0, B: 0}
	}
}

// HSVRange is an inclusive per-channel range in 8-bit HSV space. A pixel p
// is inside the range when Lower.c <= p.c <= Upper.c for every channel c.
type HSVRange struct {
	Lower imaging.HSV `json:"lower"`
	Upper imaging.HSV `json:"upper"`
}

// Contains reports whether the pixel lies inside the range on every channel.
func (r HSVRange) Contains(p imaging.HSV) bool {
	return p.H >= r.Lower.H && p.H <= r.Upper.H &&
		p.S >= r.Lower.S && p.S <= r.Upper.S &&
		p.V >= r.Lower.V && p.V <= r.Upper.V
}

// RangeTable maps each health category to its HSV range. Tables are passed
// explicitly into Classify so that callers can tune thresholds per crop
// source without touching the classifier.
type RangeTable map[Category]HSVRange

// AnalyzerRanges returns the range table calibrated for the batch analyzer,
// the table behind the exported per-crop statistics. This is the default.
func AnalyzerRanges() RangeTable {
	return RangeTable{
		Healthy: {
			Lower: imaging.HSV{H: 35, S: 50, V: 50},
			Upper: imaging.HSV{H: 85, S: 255, V: 255},
		},
		Mild: {
			Lower: imaging.HSV{H: 20, S: 50, V: 50},
			Upper: imaging.HSV{H: 34, S: 255, V: 255},
		},
		Severe: {
			Lower: imaging.HSV{H: 5, S: 30, V: 20},
			Upper: imaging.HSV{H: 19, S: 255, V: 200},
		},
	}
}

// CropMaskRanges returns the looser table used when masking crops for
// visualization: wider value floors and a Severe band that reaches down to
// red hues with unbounded saturation.
func CropMaskRanges() RangeTable {
	return RangeTable{
		Healthy: {
			Lower: imaging.HSV{H: 40, S: 40, V: 40},
			Upper: imaging.HSV{H: 80, S: 255, V: 255},
		},
		Mild: {
			Lower: imaging.HSV{H: 15, S: 40, V: 40},
			Upper: imaging.HSV{H: 35, S: 255, V: 255},
		},
		Severe: {
			Lower: imaging.HSV{H: 0, S: 0, V: 0},
			Upper: imaging.HSV{H: 15, S: 255, V: 100},
		},
	}
}

// LiveViewRanges returns the table used for live single-image inspection,
// between the other two in strictness.
func LiveViewRanges() RangeTable {
	return RangeTable{
		Healthy: {
			Lower: imaging.HSV{H: 35, S: 40, V: 40},
			Upper: imaging.HSV{H: 80, S: 255, V: 255},
		},
		Mild: {
			Lower: imaging.HSV{H: 15, S: 40, V: 40},
			Upper: imaging.HSV{H: 35, S: 255, V: 255},
		},
		Severe: {
			Lower: imaging.HSV{H: 0, S: 0, V: 0},
			Upper: imaging.HSV{H: 19, S: 255, V: 200},
		},
	}
}

// DefaultRanges returns the table used when the caller does not choose one.
// It is the analyzer table: the one that produced the exported statistics
// in the source application.
func DefaultRanges() RangeTable {
	return AnalyzerRanges()
}

// RangesByName resolves a named built-in table: "analyzer", "crop-mask",
// or "live-view". The empty string resolves to the default table.
func RangesByName(name string) (RangeTable, error) {
	switch name {
	case "", "analyzer":
		return AnalyzerRanges(), nil
	case "crop-mask":
		return CropMaskRanges(), nil
	case "live-view":
		return LiveViewRanges(), nil
	default:
		return nil, fmt.Errorf("unknown range table %q", name)
	}
}

type rangeTableJSON map[string]struct {
	Lower [3]int `json:"lower"`
	Upper [3]int `json:"upper"`
}

// LoadRanges parses a JSON range table of the form
//
//	{"healthy": {"lower": [35,50,50], "upper": [85,255,255]}, ...}
//
// Every category must be present, hue bounds must be 0-179, saturation and
// value bounds 0-255, and each lower bound must not exceed its upper bound.
func LoadRanges(r io.Reader) (RangeTable, error) {
	var raw rangeTableJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse range table: %w", err)
	}

	table := make(RangeTable, len(Categories))
	for name, entry := range raw {
		cat, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		lower, err := boundsToHSV(entry.Lower)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		upper, err := boundsToHSV(entry.Upper)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		if lower.H > upper.H || lower.S > upper.S || lower.V > upper.V {
			return nil, fmt.Errorf("category %s: lower bound exceeds upper bound", name)
		}
		table[cat] = HSVRange{Lower: lower, Upper: upper}
	}

	for _, cat := range Categories {
		if _, ok := table[cat]; !ok {
			return nil, fmt.Errorf("range table missing category %s", cat)
		}
	}

	return table, nil
}

func boundsToHSV(b [3]int) (imaging.HSV, error) {
	if b[0] < 0 || b[0] > 179 {
		return imaging.HSV{}, fmt.Errorf("hue %d out of range 0-179", b[0])
	}
	if b[1] < 0 || b[1] > 255 || b[2] < 0 || b[2] > 255 {
		return imaging.HSV{}, fmt.Errorf("saturation/value out of range 0-255")
	}
	return imaging.HSV{H: uint8(b[0]), S: uint8(b[1]), V: uint8(b[2])}, nil
}
