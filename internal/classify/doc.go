// Package classify maps leaf-image pixels to health categories using
// inclusive HSV range tests.
//
// Each pixel is converted to 8-bit HSV (hue 0-179) and tested against one
// inclusive range per category: Healthy (vibrant greens), Mild (yellowing
// and pale tissue), Severe (brown and necrotic tissue). Ranges may overlap
// and masks are computed independently, so a pixel can belong to more than
// one category; combining masks is always a plain order-independent union.
//
// Range tables are explicit configuration, never hard-coded into the
// classifier. Three calibrated tables ship with the package and custom
// tables load from JSON; see RangeTable.
//
// The package performs no I/O and no logging. All functions are pure:
// classifying the same image with the same table twice yields bit-identical
// masks.
package classify
