// Package severity reduces pixel classification counts into severity
// statistics: per-image percentages, cross-image rollups, and coarse
// severity buckets for reporting.
//
// All functions are pure arithmetic over their arguments. Percentages are
// plain floating point with no rounding; formatting is the caller's
// concern. Aggregations over zero samples are signaled with
// ErrEmptyAggregation rather than producing zeros or NaN.
package severity
