// Package enhance post-processes rectified documents: brightness and
// contrast adjustment, sharpening, color-mode conversion (color, grayscale,
// black-and-white), rotation, and white-balance correction.
//
// These operations consume the scan pipeline's output and never feed back
// into detection. Every function returns a new image; sources are not
// modified.
package enhance
