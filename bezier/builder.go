package bezier

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewSpline creates a spline. If points are given, they form the initial
// curve (start, control, end), otherwise the spline is empty and must be
// initialized by a call to AppendCurve.
//
//	spl, err := NewSpline(V(0,0,0), V(1,2,0), V(2,0,0))
//	err = spl.AppendCurve(V(3,-2,0), V(4,0,0))   // second curve, starts at (2,0,0)
func NewSpline(points ...r3.Vec) (*Spline, error) {
	spl := &Spline{
		points: make([]Point, 0, 3),
		curves: make([]curve, 0, 1),
	}
	if len(points) == 0 {
		return spl, nil
	}
	if err := spl.AppendCurve(points...); err != nil {
		return nil, err
	}
	return spl, nil
}

// AppendCurve extends a spline. Part of builder functionality.
//
// On an empty spline, exactly 3 points (start, control, end) are required
// to create the first curve. Any later call requires pairs of (control, end)
// points; every pair adds one curve, starting at the current last point.
//
// If the constraints are violated, the spline is left unchanged and an error
// is returned.
func (spl *Spline) AppendCurve(pnts ...r3.Vec) error {
	if len(spl.curves) == 0 {
		if len(pnts) != 3 {
			tracer().Errorf("initializing spline needs 3 points, got %d", len(pnts))
			return fmt.Errorf("%w, got %d", ErrInitialCurve, len(pnts))
		}
		spl.points = append(spl.points[:0],
			Point{Pos: pnts[0], Kind: OnCurve, Index: 0},
			Point{Pos: pnts[1], Kind: Control, Index: 1},
			Point{Pos: pnts[2], Kind: OnCurve, Index: 2},
		)
		spl.curves = append(spl.curves, curve{0, 1, 2})
		return nil
	}
	if len(pnts) < 2 {
		tracer().Errorf("appending a curve requires at least 2 points")
		return fmt.Errorf("%w: appending a curve requires at least 2 points, got %d",
			ErrTooFewPoints, len(pnts))
	}
	if len(pnts)&1 != 0 {
		tracer().Errorf("appending a curve requires pairs of points")
		return fmt.Errorf("%w, got %d points", ErrOddPointCount, len(pnts))
	}
	for i := 0; i < len(pnts); i += 2 {
		start := len(spl.points) - 1 // new curve starts at the last point
		c := Point{Pos: pnts[i], Kind: Control, Index: start + 1}
		e := Point{Pos: pnts[i+1], Kind: OnCurve, Index: start + 2}
		spl.points = append(spl.points, c, e)
		spl.curves = append(spl.curves, curve{start, c.Index, e.Index})
	}
	return nil
}

// PointCount returns the number of points, including control points.
func (spl *Spline) PointCount() int {
	return len(spl.points)
}

// CurveCount returns the number of quadratic curves.
func (spl *Spline) CurveCount() int {
	return len(spl.curves)
}

// Point returns the point at index i. Negative indices count from the end,
// i.e. Point(-1) is the last point.
func (spl *Spline) Point(i int) (Point, error) {
	j, err := spl.pindex(i)
	if err != nil {
		return Point{}, err
	}
	return spl.points[j], nil
}

// Pos returns the position of point i, or the origin for an invalid index.
// Negative indices count from the end.
func (spl *Spline) Pos(i int) r3.Vec {
	p, err := spl.Point(i)
	if err != nil {
		tracer().Errorf("spline position: %v", err)
	}
	return p.Pos
}

// SetPos updates a point's position. Negative indices count from the end.
// Curves sharing the point all change shape.
func (spl *Spline) SetPos(i int, pos r3.Vec) error {
	j, err := spl.pindex(i)
	if err != nil {
		tracer().Errorf("cannot set position: %v", err)
		return err
	}
	spl.points[j].Pos = pos
	return nil
}

// Points returns a copy of all points, in order.
func (spl *Spline) Points() []Point {
	pts := make([]Point, len(spl.points))
	copy(pts, spl.points)
	return pts
}

func (spl *Spline) pindex(i int) (int, error) {
	j := i
	if j < 0 {
		j += len(spl.points)
	}
	if j < 0 || j >= len(spl.points) {
		return 0, fmt.Errorf("%w: %d of %d", ErrPointIndex, i, len(spl.points))
	}
	return j, nil
}
