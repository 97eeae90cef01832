package classify

import (
	"strings"
	"testing"

	"github.com/greenscope/leaf-tools-mcp/internal/imaging"
)

func TestRangesByName(t *testing.T) {
	tests := []struct {
		name        string
		wantHealthy HSVRange
	}{
		{"analyzer", HSVRange{
			Lower: imaging.HSV{H: 35, S: 50, V: 50},
			Upper: imaging.HSV{H: 85, S: 255, V: 255},
		}},
		{"crop-mask", HSVRange{
			Lower: imaging.HSV{H: 40, S: 40, V: 40},
			Upper: imaging.HSV{H: 80, S: 255, V: 255},
		}},
		{"live-view", HSVRange{
			Lower: imaging.HSV{H: 35, S: 40, V: 40},
			Upper: imaging.HSV{H: 80, S: 255, V: 255},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := RangesByName(tt.name)
			if err != nil {
				t.Fatalf("RangesByName(%q) failed: %v", tt.name, err)
			}
			if table[Healthy] != tt.wantHealthy {
				t.Errorf("healthy range: got %+v, want %+v", table[Healthy], tt.wantHealthy)
			}
			for _, cat := range Categories {
				if _, ok := table[cat]; !ok {
					t.Errorf("table %q missing category %s", tt.name, cat)
				}
			}
		})
	}
}

func TestRangesByName_Default(t *testing.T) {
	table, err := RangesByName("")
	if err != nil {
		t.Fatalf("RangesByName(\"\") failed: %v", err)
	}
	if table[Severe] != AnalyzerRanges()[Severe] {
		t.Error("empty name should resolve to the analyzer table")
	}
}

func TestRangesByName_Unknown(t *testing.T) {
	if _, err := RangesByName("strict"); err == nil {
		t.Error("RangesByName should fail for an unknown table name")
	}
}

func TestLoadRanges(t *testing.T) {
	input := `{
		"healthy": {"lower": [35, 50, 50], "upper": [85, 255, 255]},
		"mild":    {"lower": [20, 50, 50], "upper": [34, 255, 255]},
		"severe":  {"lower": [5, 30, 20],  "upper": [19, 255, 200]}
	}`

	table, err := LoadRanges(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadRanges failed: %v", err)
	}

	want := HSVRange{
		Lower: imaging.HSV{H: 5, S: 30, V: 20},
		Upper: imaging.HSV{H: 19, S: 255, V: 200},
	}
	if table[Severe] != want {
		t.Errorf("severe range: got %+v, want %+v", table[Severe], want)
	}
}

func TestLoadRanges_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"healthy":`},
		{"unknown category", `{"healthy": {"lower":[35,50,50],"upper":[85,255,255]},
			"mild": {"lower":[20,50,50],"upper":[34,255,255]},
			"severe": {"lower":[5,30,20],"upper":[19,255,200]},
			"crispy": {"lower":[0,0,0],"upper":[1,1,1]}}`},
		{"missing category", `{"healthy": {"lower":[35,50,50],"upper":[85,255,255]}}`},
		{"hue out of range", `{"healthy": {"lower":[35,50,50],"upper":[200,255,255]},
			"mild": {"lower":[20,50,50],"upper":[34,255,255]},
			"severe": {"lower":[5,30,20],"upper":[19,255,200]}}`},
		{"lower above upper", `{"healthy": {"lower":[90,50,50],"upper":[85,255,255]},
			"mild": {"lower":[20,50,50],"upper":[34,255,255]},
			"severe": {"lower":[5,30,20],"upper":[19,255,200]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRanges(strings.NewReader(tt.input)); err == nil {
				t.Error("LoadRanges should fail")
			}
		})
	}
}

func TestCategoryNames(t *testing.T) {
	for _, cat := range Categories {
		parsed, err := ParseCategory(cat.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q) failed: %v", cat.String(), err)
		}
		if parsed != cat {
			t.Errorf("round trip of %s gave %s", cat, parsed)
		}
	}

	if _, err := ParseCategory("wilted"); err == nil {
		t.Error("ParseCategory should fail for an unknown name")
	}
}
