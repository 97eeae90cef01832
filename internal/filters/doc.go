// Package filters implements the preprocessing and inspection filter bank:
// Gaussian, mean, and median smoothing, and Laplacian, Sobel, and Prewitt
// edge detection, plus an intensity histogram.
//
// Each filter is a typed variant carrying its own parameter record; Parse
// maps the name-plus-options surface used by the tool layer onto those
// variants with documented defaults. Smoothing filters operate per channel
// and preserve color. Edge filters convert to grayscale first, compute in
// float64 to avoid 8-bit overflow, take the absolute response, clip to
// [0, 255], and replicate the result across three channels when the input
// was color.
//
// Every filter is a pure function of its input image and parameters.
package filters
