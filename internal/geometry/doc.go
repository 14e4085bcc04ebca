// Package geometry provides the planar primitives used by document detection
// and rectification: points, closed contours, and canonically ordered
// quadrilateral corners.
//
// # Coordinate System
//
// All coordinates are in pixel space with the standard image convention:
// origin (0, 0) at the top-left corner, X increasing rightward, Y increasing
// downward. Coordinates are floating point because contour approximation and
// corner scaling produce sub-pixel positions.
//
// # Corner Ordering
//
// OrderCorners imposes the canonical (top-left, top-right, bottom-right,
// bottom-left) labeling on four unordered points. The ordering is a pure
// relabeling: it never moves a point, so the area of the ordered
// quadrilateral always equals the area of the input set.
package geometry
