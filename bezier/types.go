package bezier

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'geometry'
func tracer() tracing.Trace {
	return tracing.Select("geometry")
}

var (
	// ErrTooFewPoints indicates an insufficient number of points for an operation.
	ErrTooFewPoints = errors.New("too few points")
	// ErrOddPointCount indicates that points for extending a spline do not come in pairs.
	ErrOddPointCount = errors.New("points must come in pairs of control and end point")
	// ErrInitialCurve indicates a wrong number of points for the first curve of a spline.
	ErrInitialCurve = errors.New("initial curve needs exactly 3 points")
	// ErrPointIndex indicates a point index outside of the spline's points.
	ErrPointIndex = errors.New("point index out of range")
	// ErrNoCurves indicates an operation on a spline without curves.
	ErrNoCurves = errors.New("spline has no curves")
	// ErrParamCount indicates that points and curve parameters differ in number.
	ErrParamCount = errors.New("number of points and parameters differ")
	// ErrDegenerateFit indicates that no control point could be derived from the points.
	ErrDegenerateFit = errors.New("degenerate curve fit")
)

// PointKind discriminates on-curve points from off-curve control points.
type PointKind int8

const (
	// OnCurve points are interpolated by the spline.
	OnCurve PointKind = iota
	// Control points shape the curve between two on-curve points.
	Control
)

func (k PointKind) String() string {
	if k == Control {
		return "control"
	}
	return "point"
}

// Point is a position of a spline together with its kind. Index is the
// stable position of the point within its spline.
type Point struct {
	Pos   r3.Vec
	Kind  PointKind
	Index int
}

// curve is a quadratic Bézier segment: indices of start, control and end
// point within the spline's point arena. Consecutive curves share their
// boundary point index.
type curve [3]int

// Spline is a sequence of quadratic Bézier curves. Points are owned by
// the spline; curves refer to them by index, so moving a shared on-curve
// point moves both adjacent curves.
//
// Create an empty spline with NewSpline and extend it with AppendCurve.
type Spline struct {
	points []Point // flat list of all points, in order
	curves []curve // 3 point indices per curve
}

// A segment view onto a parent spline.
type segment struct {
	whole *Spline // parent spline
	index int     // curve index within parent spline
}
