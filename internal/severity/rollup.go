package severity

import "fmt"

// Sample is one classified crop attributed to a source image and a detector
// class. Label is the class the external detector assigned to the crop
// (e.g. "leaf", "stem"); it is an axis orthogonal to the health categories
// inside the Breakdown and the two must not be conflated.
type Sample struct {
	ImageID int    `json:"image_id"`
	Label   string `json:"label"`
	Breakdown
}

// GroupKey identifies a rollup group: one source image and one detector
// class.
type GroupKey struct {
	ImageID int    `json:"image_id"`
	Label   string `json:"label"`
}

// GroupSummary holds the arithmetic means of the severity fields across all
// samples in a group, plus the sample count.
type GroupSummary struct {
	ImageID          int     `json:"image_id"`
	Label            string  `json:"label"`
	Healthy          float64 `json:"healthy"`
	Mild             float64 `json:"mild"`
	Severe           float64 `json:"severe"`
	TotalAffectation float64 `json:"total_affectation"`
	Count            int     `json:"count"`
}

// Rollup groups samples by (image, detector class) and averages each
// severity field within the group. A detector typically produces several
// crops of the same class per image; the rollup is the per-image number the
// report shows.
//
// Grouping is order-independent, so partial results computed in parallel
// can be combined by concatenating sample slices. Zero samples return
// ErrEmptyAggregation.
func Rollup(samples []Sample) (map[GroupKey]GroupSummary, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples to roll up", ErrEmptyAggregation)
	}

	sums := make(map[GroupKey]*GroupSummary)
	for _, s := range samples {
		key := GroupKey{ImageID: s.ImageID, Label: s.Label}
		g, ok := sums[key]
		if !ok {
			g = &GroupSummary{ImageID: s.ImageID, Label: s.Label}
			sums[key] = g
		}
		g.Healthy += s.Healthy
		g.Mild += s.Mild
		g.Severe += s.Severe
		g.TotalAffectation += s.TotalAffectation
		g.Count++
	}

	out := make(map[GroupKey]GroupSummary, len(sums))
	for key, g := range sums {
		n := float64(g.Count)
		out[key] = GroupSummary{
			ImageID:          g.ImageID,
			Label:            g.Label,
			Healthy:          g.Healthy / n,
			Mild:             g.Mild / n,
			Severe:           g.Severe / n,
			TotalAffectation: g.TotalAffectation / n,
			Count:            g.Count,
		}
	}

	return out, nil
}
