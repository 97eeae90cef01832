// Package imaging provides image loading and color-space support for the
// leaf analysis tools.
//
// This package owns everything that touches pixels but carries no plant
// semantics: decoding and caching image files, converting colors to the
// 8-bit HSV convention the classifier thresholds against, extracting
// detector-box crops, and summarizing dominant colors for range tuning.
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # HSV Convention
//
// Hue is stored halved (0-179) and saturation/value scaled to 0-255,
// matching the 8-bit convention the range tables in the classify package
// threshold against. See RGBToHSV for the exact conversion.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function in
// this package is stateless and can be called concurrently on different
// images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates or regions outside image bounds
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
