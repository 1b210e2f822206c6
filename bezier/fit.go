package bezier

import (
	"fmt"
	"math"

	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/polyn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// CentripetalParams assigns a curve parameter t ∈ [0,1] to each of a sequence
// of points. Parameters grow with the square root of the distance between
// consecutive points, which reduces overshooting near points close to each other.
//
// The first parameter is always 0 and the last one always 1. If all points
// coincide, parameters are spread uniformly.
func CentripetalParams(pts []r3.Vec) []float64 {
	n := len(pts)
	if n < 2 {
		return []float64{0}
	}
	if n == 2 {
		return []float64{0, 1}
	}
	d := make([]float64, n)
	for i := 1; i < n; i++ {
		d[i] = math.Sqrt(splineik.Dist(pts[i-1], pts[i]))
	}
	params := floats.CumSum(make([]float64, n), d)
	sum := params[n-1]
	for i := range params {
		if sum > 0 {
			params[i] /= sum
		} else {
			params[i] = float64(i) / float64(n-1)
		}
	}
	params[0], params[n-1] = 0, 1
	return params
}

// OptimalControlPoint finds the control point p1 of a quadratic Bézier curve
// from pts[0] to pts[n-1] which fits all points best, in a least squares sense.
// params holds the curve parameter for each point, usually from CentripetalParams.
//
// With w(t) = 2t(1-t) and A(t) = (1-t)²·p0 + t²·pn, the curve is
// B(t) = A(t) + w(t)·p1. Minimizing Σ |B(tᵢ) - pᵢ|² over the interior points
// leads to the normal equations
//
//	(Σ wᵢ²) · p1 = Σ wᵢ·(pᵢ - A(tᵢ))
//
// which are solved per coordinate. Coordinates of the result are rounded
// to splineik.Epsilon.
func OptimalControlPoint(pts []r3.Vec, params []float64) (r3.Vec, error) {
	n := len(pts)
	if n != len(params) {
		return r3.Vec{}, fmt.Errorf("%w: %d points, %d parameters", ErrParamCount, n, len(params))
	}
	if n <= 2 {
		return r3.Vec{}, fmt.Errorf("%w: fitting a control point needs interior points, got %d points",
			ErrTooFewPoints, n)
	}
	p0, pn := pts[0], pts[n-1]
	var sumW2 float64 // Σ w(tᵢ)²
	var sumWD r3.Vec  // Σ w(tᵢ)·(pᵢ - A(tᵢ))
	for i := 1; i < n-1; i++ {
		t := params[i]
		ti := 1 - t
		w := 2 * t * ti
		a := r3.Add(r3.Scale(ti*ti, p0), r3.Scale(t*t, pn))
		sumW2 += w * w
		sumWD = r3.Add(sumWD, r3.Scale(w, r3.Sub(pts[i], a)))
	}
	if splineik.Is0(sumW2) {
		return r3.Vec{}, fmt.Errorf("%w: all interior parameters at curve ends", ErrDegenerateFit)
	}
	ctrl, err := solveNormalEquations(sumW2, sumWD)
	if err != nil {
		return r3.Vec{}, err
	}
	tracer().Infof("fitted control point %s for %d points", ptstring(ctrl, true), n)
	return ctrl, nil
}

// FitQuad creates a single-curve spline from pts[0] to pts[n-1], with its
// control point fitted to all the points in between.
func FitQuad(pts []r3.Vec) (*Spline, error) {
	ctrl, err := OptimalControlPoint(pts, CentripetalParams(pts))
	if err != nil {
		return nil, err
	}
	return NewSpline(pts[0], ctrl, pts[len(pts)-1])
}

// --- Normal equations ------------------------------------------------------

// Variable IDs of the control point's coordinates.
const (
	ctrlX = iota + 1
	ctrlY
	ctrlZ
)

// ctrlResolver names the control point's coordinates for tracing and
// collects solutions.
type ctrlResolver map[int]float64

func (r ctrlResolver) GetVariableName(i int) string {
	switch i {
	case ctrlX:
		return "ctrl.x"
	case ctrlY:
		return "ctrl.y"
	case ctrlZ:
		return "ctrl.z"
	}
	return fmt.Sprintf("x.%d", i)
}

func (r ctrlResolver) SetVariableSolved(i int, v float64) {
	r[i] = v
}

// Solve 0 = a·ctrl - b for each coordinate.
func solveNormalEquations(a float64, b r3.Vec) (r3.Vec, error) {
	eqs := make([]polyn.Polynomial, 0, 3)
	for i, c := range []float64{b.X, b.Y, b.Z} {
		p, err := polyn.New(-c, polyn.X{I: ctrlX + i, C: a})
		if err != nil {
			return r3.Vec{}, err
		}
		eqs = append(eqs, p)
	}
	leq := polyn.NewLinEqSolver()
	solution := make(ctrlResolver)
	leq.SetVariableResolver(solution)
	if _, err := leq.AddEqs(eqs); err != nil {
		return r3.Vec{}, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}
	for _, i := range []int{ctrlX, ctrlY, ctrlZ} {
		if _, ok := solution[i]; !ok {
			return r3.Vec{}, fmt.Errorf("%w: %s unsolved", ErrDegenerateFit, solution.GetVariableName(i))
		}
	}
	return r3.Vec{X: solution[ctrlX], Y: solution[ctrlY], Z: solution[ctrlZ]}, nil
}
