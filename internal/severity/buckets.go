package severity

import "fmt"

// Bucket is a coarse qualitative severity band derived from total
// affectation. Buckets exist for reporting distributions only, never for
// decisions.
type Bucket int

const (
	// BucketNearHealthy covers total affectation below 10%.
	BucketNearHealthy Bucket = iota
	// BucketMild covers [10%, 30%).
	BucketMild
	// BucketModerate covers [30%, 70%).
	BucketModerate
	// BucketSevere covers 70% and above.
	BucketSevere
)

// Buckets lists all severity bands in ascending order.
var Buckets = []Bucket{BucketNearHealthy, BucketMild, BucketModerate, BucketSevere}

// String returns the report name of the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketNearHealthy:
		return "near-healthy"
	case BucketMild:
		return "mild"
	case BucketModerate:
		return "moderate"
	case BucketSevere:
		return "severe"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// Boundaries holds the lower bounds of the three non-trivial buckets.
// Every bound is closed on the lower side and open on the upper side, so a
// total affectation of exactly 10 lands in the mild bucket, 30 in moderate,
// and 70 in severe.
type Boundaries struct {
	MildMin     float64 `json:"mild_min"`
	ModerateMin float64 `json:"moderate_min"`
	SevereMin   float64 `json:"severe_min"`
}

// DefaultBoundaries returns the standard 10/30/70 severity bands.
func DefaultBoundaries() Boundaries {
	return Boundaries{MildMin: 10, ModerateMin: 30, SevereMin: 70}
}

// Valid reports whether the bounds are strictly increasing and nonnegative.
func (b Boundaries) Valid() bool {
	return b.MildMin >= 0 && b.MildMin < b.ModerateMin && b.ModerateMin < b.SevereMin
}

// BucketOf maps a total-affectation percentage to its severity band.
func (b Boundaries) BucketOf(totalAffectation float64) Bucket {
	switch {
	case totalAffectation >= b.SevereMin:
		return BucketSevere
	case totalAffectation >= b.ModerateMin:
		return BucketModerate
	case totalAffectation >= b.MildMin:
		return BucketMild
	default:
		return BucketNearHealthy
	}
}

// BucketStat is the membership of one severity band within a distribution.
type BucketStat struct {
	Bucket  string  `json:"bucket"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// BucketDistribution partitions a set of total-affectation values into the
// severity bands.
type BucketDistribution struct {
	Total   int          `json:"total"`
	Buckets []BucketStat `json:"buckets"`
}

// Distribution counts how many total-affectation values fall into each
// severity band and reports each band's share as a percentage of the total.
// Bands appear in ascending order. Zero values return ErrEmptyAggregation;
// the division is never performed on an empty set.
func Distribution(totals []float64, b Boundaries) (*BucketDistribution, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no affectation values", ErrEmptyAggregation)
	}
	if !b.Valid() {
		return nil, fmt.Errorf("bucket boundaries %+v are not strictly increasing", b)
	}

	counts := make(map[Bucket]int, len(Buckets))
	for _, t := range totals {
		counts[b.BucketOf(t)]++
	}

	dist := &BucketDistribution{
		Total:   len(totals),
		Buckets: make([]BucketStat, 0, len(Buckets)),
	}
	for _, bucket := range Buckets {
		dist.Buckets = append(dist.Buckets, BucketStat{
			Bucket:  bucket.String(),
			Count:   counts[bucket],
			Percent: 100 * float64(counts[bucket]) / float64(len(totals)),
		})
	}

	return dist, nil
}
