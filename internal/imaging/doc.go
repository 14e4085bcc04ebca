// Package imaging prepares raw photographs for document detection.
//
// The entry point is Preprocess, which normalizes an arbitrary input image
// into a binary edge map: it downscales for performance, converts to
// grayscale, blurs away sensor noise, and runs Canny-style dual-threshold
// edge detection. The original image is never modified; later stages warp
// the full-resolution source using the scale factors recorded on the edge
// map.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at top-left, X increasing
// rightward and Y increasing downward. Edge maps index as Edges[y][x].
//
// # Error Handling
//
// Preprocess fails with ErrInvalidImage for nil or zero-area inputs. All
// other operations are total: a uniform image simply yields an edge map
// with no set pixels.
package imaging
