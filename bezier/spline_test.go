package bezier

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splineik"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

var V = splineik.V

func wave(t *testing.T) *Spline {
	t.Helper()
	spl, err := NewSpline(V(0, 0, 0), V(1, 1, 0), V(2, 0, 0))
	if err != nil {
		t.Fatalf("cannot create spline: %v", err)
	}
	if err = spl.AppendCurve(V(3, -1, 0), V(4, 0, 0)); err != nil {
		t.Fatalf("cannot append curve: %v", err)
	}
	return spl
}

func TestEmptySpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl, err := NewSpline()
	assert.NoError(t, err)
	assert.Equal(t, 0, spl.CurveCount())
	pos, d1, d2 := spl.At(0.5)
	diff(t, r3.Vec{}, pos)
	diff(t, r3.Vec{}, d1)
	diff(t, r3.Vec{}, d2)
	assert.Equal(t, "<empty>", AsString(spl))
}

func TestAppendCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl, _ := NewSpline()
	err := spl.AppendCurve(V(0, 0, 0), V(1, 1, 0))
	assert.True(t, errors.Is(err, ErrInitialCurve), "expected initial curve error, got %v", err)
	assert.Equal(t, 0, spl.PointCount())
	//
	spl = wave(t)
	assert.Equal(t, 5, spl.PointCount())
	assert.Equal(t, 2, spl.CurveCount())
	err = spl.AppendCurve(V(5, 1, 0))
	assert.True(t, errors.Is(err, ErrTooFewPoints), "expected too few points, got %v", err)
	err = spl.AppendCurve(V(5, 1, 0), V(6, 0, 0), V(7, 0, 0))
	assert.True(t, errors.Is(err, ErrOddPointCount), "expected odd point count, got %v", err)
	assert.Equal(t, 5, spl.PointCount(), "spline must be unchanged after failed append")
	assert.Equal(t, 2, spl.CurveCount(), "spline must be unchanged after failed append")
}

func TestCurvesSharePoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl := wave(t)
	_, _, end0 := spl.Segment(0)
	start1, _, _ := spl.Segment(1)
	diff(t, end0, start1)
	//
	assert.NoError(t, spl.SetPos(2, V(2, 5, 0)))
	_, _, end0 = spl.Segment(0)
	start1, _, _ = spl.Segment(1)
	diff(t, V(2, 5, 0), end0)
	diff(t, V(2, 5, 0), start1)
}

func TestPointIndex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl := wave(t)
	p, err := spl.Point(-1)
	assert.NoError(t, err)
	diff(t, V(4, 0, 0), p.Pos)
	assert.Equal(t, OnCurve, p.Kind)
	assert.Equal(t, 4, p.Index)
	p, err = spl.Point(-2)
	assert.NoError(t, err)
	assert.Equal(t, Control, p.Kind)
	_, err = spl.Point(5)
	assert.True(t, errors.Is(err, ErrPointIndex))
	_, err = spl.Point(-6)
	assert.True(t, errors.Is(err, ErrPointIndex))
	assert.True(t, errors.Is(spl.SetPos(9, V(1, 1, 1)), ErrPointIndex))
	//
	assert.NoError(t, spl.SetPos(-1, V(4, 2, 0)))
	diff(t, V(4, 2, 0), spl.Pos(4))
	pts := spl.Points()
	pts[0].Pos = V(9, 9, 9)
	diff(t, V(0, 0, 0), spl.Pos(0), approx)
}

func TestCurveT(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl := wave(t)
	for _, tc := range []struct {
		t     float64
		curve int
		ct    float64
	}{
		{-1, 0, 0},
		{0, 0, 0},
		{0.25, 0, 0.5},
		{0.5, 1, 0},
		{0.75, 1, 0.5},
		{1, 1, 1},
		{2, 1, 1},
	} {
		i, ct := spl.curveT(tc.t)
		assert.Equal(t, tc.curve, i, "curve index for t=%g", tc.t)
		assert.InDelta(t, tc.ct, ct, 1e-12, "curve-local t for t=%g", tc.t)
	}
}

func TestSplineEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spl := wave(t)
	pos, _, _ := spl.At(0)
	diff(t, V(0, 0, 0), pos, approx)
	pos, _, _ = spl.At(1)
	diff(t, V(4, 0, 0), pos, approx)
	pos, _, _ = spl.At(0.5)
	diff(t, V(2, 0, 0), pos, approx)
	pos, d1, d2 := spl.At(0.25)
	diff(t, V(1, 0.5, 0), pos, approx)
	diff(t, V(2, 0, 0), d1, approx)
	diff(t, V(0, -4, 0), d2, approx)
	_, d1, _ = spl.At(0)
	diff(t, V(2, 2, 0), d1, approx)
}

func TestQuadDerivative(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1, p2 := V(0, 0, 0), V(1, 3, -1), V(4, 1, 2)
	const h = 1e-6
	for _, tt := range []float64{0.1, 0.4, 0.9} {
		a := QuadAt(p0, p1, p2, tt-h)
		b := QuadAt(p0, p1, p2, tt+h)
		numeric := r3.Scale(1/(2*h), r3.Sub(b, a))
		diff(t, numeric, QuadDxDy(p0, p1, p2, tt), cmpopts.EquateApprox(0, 1e-5))
	}
}

func TestAsString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := AsString(wave(t))
	want := "(0,0,0) .. controls (1.0000,1.0000,0.0000)\n" +
		"  .. (2,0,0) .. controls (3.0000,-1.0000,0.0000)\n" +
		"  .. (4,0,0)"
	assert.Equal(t, want, s)
	assert.Equal(t, 2, strings.Count(s, "controls"))
}
