package rectify

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/papertrim/docscan/internal/geometry"
)

// homography is a row-major 3x3 projective transform with h[8] fixed to 1.
type homography [9]float64

// solveHomography computes the unique projective transform H with
// to[i] = H * from[i] for the four point correspondences.
//
// Each correspondence contributes two rows to an 8x8 linear system in the
// unknowns h00..h21 (h22 is pinned to 1):
//
//	x' = (h00 X + h01 Y + h02) / (h20 X + h21 Y + 1)
//	y' = (h10 X + h11 Y + h12) / (h20 X + h21 Y + 1)
//
// The system is solved with gonum's dense LU solver, which reports
// ill-conditioning for near-degenerate correspondences; such systems are
// rejected rather than letting numerical garbage through.
func solveHomography(from, to [4]geometry.Point) (homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		X, Y := from[i].X, from[i].Y
		x, y := to[i].X, to[i].Y
		r := 2 * i

		a.SetRow(r, []float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x})
		b.SetVec(r, x)

		a.SetRow(r+1, []float64{0, 0, 0, X, Y, 1, -X * y, -Y * y})
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return homography{}, fmt.Errorf("homography system is singular or near-singular: %w", err)
	}

	var H homography
	for i := 0; i < 8; i++ {
		H[i] = h.AtVec(i)
		if math.IsNaN(H[i]) || math.IsInf(H[i], 0) {
			return homography{}, fmt.Errorf("homography solve produced non-finite coefficient")
		}
	}
	H[8] = 1
	return H, nil
}

// apply maps (x, y) through the homography. ok is false when the point lies
// on the transform's horizon line (zero denominator) and has no finite
// image.
func (h homography) apply(x, y float64) (sx, sy float64, ok bool) {
	denom := h[6]*x + h[7]*y + h[8]
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	sx = (h[0]*x + h[1]*y + h[2]) / denom
	sy = (h[3]*x + h[4]*y + h[5]) / denom
	if math.IsNaN(sx) || math.IsNaN(sy) || math.IsInf(sx, 0) || math.IsInf(sy, 0) {
		return 0, 0, false
	}
	return sx, sy, true
}
