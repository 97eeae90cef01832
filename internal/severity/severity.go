package severity

import "errors"

// ErrEmptyAggregation reports a rollup or bucket distribution requested
// over zero samples.
var ErrEmptyAggregation = errors.New("aggregation over zero samples")

// Counts holds per-category classified pixel counts for one image.
type Counts struct {
	Healthy int `json:"healthy"`
	Mild    int `json:"mild"`
	Severe  int `json:"severe"`
}

// Total returns the number of classified pixels.
func (c Counts) Total() int {
	return c.Healthy + c.Mild + c.Severe
}

// Breakdown holds the severity percentages for one image.
//
// When TotalPixels > 0 the three category percentages sum to 100. When no
// pixel matched any range, every field is zero; that is a valid result for
// an image with no recognizable plant tissue, not an error.
type Breakdown struct {
	Healthy          float64 `json:"healthy"`
	Mild             float64 `json:"mild"`
	Severe           float64 `json:"severe"`
	TotalAffectation float64 `json:"total_affectation"`
	TotalPixels      int     `json:"total_pixels"`
}

// Summarize reduces classified pixel counts to percentages. Total
// affectation is the combined Mild and Severe share, the primary severity
// signal.
func Summarize(c Counts) Breakdown {
	total := c.Total()
	if total == 0 {
		return Breakdown{}
	}

	healthy := 100 * float64(c.Healthy) / float64(total)
	mild := 100 * float64(c.Mild) / float64(total)
	severe := 100 * float64(c.Severe) / float64(total)

	return Breakdown{
		Healthy:          healthy,
		Mild:             mild,
		Severe:           severe,
		TotalAffectation: mild + severe,
		TotalPixels:      total,
	}
}
