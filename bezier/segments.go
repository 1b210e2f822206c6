package bezier

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Z returns point k (0=start, 1=control, 2=end) of the viewed curve.
func (seg segment) Z(k int) r3.Vec {
	return seg.whole.points[seg.whole.curves[seg.index][k]].Pos
}

func (seg segment) at(t float64) r3.Vec {
	return QuadAt(seg.Z(0), seg.Z(1), seg.Z(2), t)
}

func (seg segment) dxdy(t float64) r3.Vec {
	return QuadDxDy(seg.Z(0), seg.Z(1), seg.Z(2), t)
}

func (seg segment) dxdy2() r3.Vec {
	return QuadDxDy2(seg.Z(0), seg.Z(1), seg.Z(2))
}

// Create a curve segment as a projection onto a parent spline.
func (spl *Spline) segment(i int) segment {
	return segment{whole: spl, index: i}
}

// Segment returns the start, control and end point of curve i.
func (spl *Spline) Segment(i int) (r3.Vec, r3.Vec, r3.Vec) {
	seg := spl.segment(i)
	return seg.Z(0), seg.Z(1), seg.Z(2)
}

// curveT takes t over the whole spline and computes the curve's index and
// the curve-local t. The spline's curves partition [0,1] into equally wide
// intervals.
func (spl *Spline) curveT(t float64) (int, float64) {
	if t <= 0 {
		return 0, 0
	}
	n := len(spl.curves)
	if t >= 1 {
		return n - 1, 1
	}
	f := float64(n) * t
	i := math.Floor(f)
	return int(i), f - i
}

// At returns position, first and second derivative of the spline at
// t ∈ [0,1]. t outside of [0,1] is clamped.
func (spl *Spline) At(t float64) (pos, dxdy, dxdy2 r3.Vec) {
	if len(spl.curves) == 0 {
		tracer().Errorf("evaluating spline: %v", ErrNoCurves)
		return
	}
	i, ct := spl.curveT(t)
	return spl.AtCurve(i, ct)
}

// AtCurve returns position, first and second derivative of curve i
// at curve-local t.
func (spl *Spline) AtCurve(i int, t float64) (pos, dxdy, dxdy2 r3.Vec) {
	if i < 0 || i >= len(spl.curves) {
		tracer().Errorf("evaluating curve %d of %d: index out of range", i, len(spl.curves))
		return
	}
	seg := spl.segment(i)
	return seg.at(t), seg.dxdy(t), seg.dxdy2()
}

// QuadAt evaluates the quadratic Bézier curve (p0, p1, p2) at t:
//
//	B(t) = (1-t)²·p0 + 2t(1-t)·p1 + t²·p2
func QuadAt(p0, p1, p2 r3.Vec, t float64) r3.Vec {
	mt := 1 - t
	a := r3.Scale(mt*mt, p0)
	b := r3.Scale(2*t*mt, p1)
	c := r3.Scale(t*t, p2)
	return r3.Add(a, r3.Add(b, c))
}

// QuadDxDy is the first derivative of the quadratic Bézier curve (p0, p1, p2) at t:
//
//	B'(t) = 2(1-t)·(p1-p0) + 2t·(p2-p1)
func QuadDxDy(p0, p1, p2 r3.Vec, t float64) r3.Vec {
	a := r3.Scale(2*(1-t), r3.Sub(p1, p0))
	b := r3.Scale(2*t, r3.Sub(p2, p1))
	return r3.Add(a, b)
}

// QuadDxDy2 is the (constant) second derivative of the quadratic Bézier curve (p0, p1, p2):
//
//	B'' = 2·(p2 - 2p1 + p0)
func QuadDxDy2(p0, p1, p2 r3.Vec) r3.Vec {
	return r3.Scale(2, r3.Add(r3.Sub(p2, r3.Scale(2, p1)), p0))
}
