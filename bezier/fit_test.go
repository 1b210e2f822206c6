package bezier

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCentripetalParamsSmall(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	diff(t, []float64{0}, CentripetalParams(nil))
	diff(t, []float64{0}, CentripetalParams([]r3.Vec{V(1, 2, 3)}))
	diff(t, []float64{0, 1}, CentripetalParams([]r3.Vec{V(1, 2, 3), V(7, 7, 7)}))
}

func TestCentripetalParams(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []r3.Vec{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0)}
	diff(t, []float64{0, 0.5, 1}, CentripetalParams(pts), approx)
	// distances 1 and 4 → weights 1 and 2
	pts = []r3.Vec{V(0, 0, 0), V(0, 1, 0), V(0, 5, 0)}
	diff(t, []float64{0, 1.0 / 3.0, 1}, CentripetalParams(pts), approx)
	// coincident points
	pts = []r3.Vec{V(1, 1, 1), V(1, 1, 1), V(1, 1, 1)}
	diff(t, []float64{0, 0.5, 1}, CentripetalParams(pts), approx)
}

func TestCentripetalParamsMonotone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := make([]r3.Vec, 0, 12)
	for i := 0; i < 12; i++ {
		x := float64(i)
		pts = append(pts, V(x, math.Sin(x), 0.1*x*x))
	}
	params := CentripetalParams(pts)
	assert.Len(t, params, len(pts))
	assert.Equal(t, 0.0, params[0])
	assert.Equal(t, 1.0, params[len(params)-1])
	assert.True(t, sort.Float64sAreSorted(params), "parameters must be non-decreasing: %v", params)
}

func TestOptimalControlPointColinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []r3.Vec{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0)}
	ctrl, err := OptimalControlPoint(pts, CentripetalParams(pts))
	assert.NoError(t, err)
	diff(t, V(1, 0, 0), ctrl, approx)
}

func TestOptimalControlPointRecovers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1, p2 := V(0, 0, 0), V(1, 2, -1), V(3, 0, 1)
	params := []float64{0, 0.2, 0.35, 0.5, 0.8, 1}
	pts := make([]r3.Vec, len(params))
	for i, tt := range params {
		pts[i] = QuadAt(p0, p1, p2, tt)
	}
	ctrl, err := OptimalControlPoint(pts, params)
	assert.NoError(t, err)
	assert.InDelta(t, p1.X, ctrl.X, 1e-6)
	assert.InDelta(t, p1.Y, ctrl.Y, 1e-6)
	assert.InDelta(t, p1.Z, ctrl.Z, 1e-6)
}

func TestOptimalControlPointRounded(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// one interior point at t=½ between coinciding end points: ctrl = 2·p
	pts := []r3.Vec{V(0, 0, 0), V(1.0/6, 0, 0), V(0, 0, 0)}
	ctrl, err := OptimalControlPoint(pts, []float64{0, 0.5, 1})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0/3, ctrl.X, 1e-7)
	assert.NotEqual(t, 1.0/3, ctrl.X, "coordinates are rounded to ε")
	assert.Equal(t, 0.0, ctrl.Y)
}

func TestOptimalControlPointErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []r3.Vec{V(0, 0, 0), V(1, 0, 0)}
	_, err := OptimalControlPoint(pts, []float64{0, 1})
	assert.True(t, errors.Is(err, ErrTooFewPoints), "got %v", err)
	_, err = OptimalControlPoint(pts, []float64{0})
	assert.True(t, errors.Is(err, ErrParamCount), "got %v", err)
	pts = append(pts, V(2, 0, 0))
	_, err = OptimalControlPoint(pts, []float64{0, 1, 1})
	assert.True(t, errors.Is(err, ErrDegenerateFit), "got %v", err)
}

func TestFitQuad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []r3.Vec{V(0, 0, 0), V(1, 0.9, 0), V(2, 1.2, 0), V(3, 0.9, 0), V(4, 0, 0)}
	spl, err := FitQuad(pts)
	assert.NoError(t, err)
	assert.Equal(t, 1, spl.CurveCount())
	start, ctrl, end := spl.Segment(0)
	diff(t, pts[0], start)
	diff(t, pts[4], end)
	assert.Greater(t, ctrl.Y, 1.2, "control point must lie above the apex")
	assert.InDelta(t, 2, ctrl.X, 1e-6)
	//
	_, err = FitQuad(pts[:2])
	assert.True(t, errors.Is(err, ErrTooFewPoints))
}

func ExampleFitQuad() {
	pts := []r3.Vec{V(0, 0, 0), V(1, 1, 0), V(2, 0, 0)}
	spl, err := FitQuad(pts)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(AsString(spl))
	// Output:
	// (0,0,0) .. controls (1.0000,2.0000,0.0000)
	//   .. (2,0,0)
}
