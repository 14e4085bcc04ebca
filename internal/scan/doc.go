// Package scan wires preprocessing, contour detection, quadrilateral
// selection, corner ordering, and perspective rectification into the
// document scanning pipeline.
//
// Scanner is stateless: every call receives its inputs explicitly and
// returns independently owned results, so concurrent invocations on
// different images are safe. Session adds the per-scan lifecycle the
// interactive layer needs (Idle, Detecting, Rectified, Failed), including
// the manual-corner retry after a failed detection and protection against
// re-entering a scan while one is in flight.
//
// Cancellation is cooperative: the pipeline checks the context between
// stages, not inside resampling inner loops. Interactive-scale images make
// finer-grained interruption unnecessary.
package scan
