package ik

import (
	"fmt"

	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/bezier"
	"github.com/npillmayer/splineik/sampling"
	"github.com/npillmayer/splineik/skeleton"
	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is a spline with a root, a pole and a target position.
type Curve interface {
	sampling.Curve
	RootPos() r3.Vec
	SetRootPos(r3.Vec)
	PolePos() r3.Vec
	SetPolePos(r3.Vec)
	TargetPos() r3.Vec
	SetTargetPos(r3.Vec)
	// Resolve is called after the target has updated root and target
	// positions from the pose.
	Resolve()
}

// SpineCurve is a single quadratic Bézier curve from a chain's root to its
// target, with the pole as control point.
type SpineCurve struct {
	spl *bezier.Spline
}

var _ Curve = (*SpineCurve)(nil)

// NewSpineCurve creates a spine curve with all points at the origin.
func NewSpineCurve() *SpineCurve {
	spl, _ := bezier.NewSpline(splineik.Origin, splineik.Origin, splineik.Origin)
	return &SpineCurve{spl: spl}
}

// Spline returns the underlying spline.
func (c *SpineCurve) Spline() *bezier.Spline { return c.spl }

// At evaluates the curve.
func (c *SpineCurve) At(t float64) (pos, dxdy, dxdy2 r3.Vec) { return c.spl.At(t) }

// RootPos returns the start point of the curve.
func (c *SpineCurve) RootPos() r3.Vec { return c.spl.Pos(0) }

// SetRootPos moves the start point of the curve.
func (c *SpineCurve) SetRootPos(v r3.Vec) { _ = c.spl.SetPos(0, v) }

// PolePos returns the control point of the curve.
func (c *SpineCurve) PolePos() r3.Vec { return c.spl.Pos(1) }

// SetPolePos moves the control point of the curve.
func (c *SpineCurve) SetPolePos(v r3.Vec) { _ = c.spl.SetPos(1, v) }

// TargetPos returns the end point of the curve.
func (c *SpineCurve) TargetPos() r3.Vec { return c.spl.Pos(-1) }

// SetTargetPos moves the end point of the curve.
func (c *SpineCurve) SetTargetPos(v r3.Vec) { _ = c.spl.SetPos(-1, v) }

// Resolve is a no-op: a single curve needs no update after its end points moved.
func (c *SpineCurve) Resolve() {}

// String returns the curve in the format of bezier.AsString.
func (c *SpineCurve) String() string { return bezier.AsString(c.spl) }

// SplineTarget is the IK target for a chain following a curve. Transforms,
// directions and distance are set by Resolve.
type SplineTarget struct {
	Curve  Curve
	PWorld splineik.Transform // world transform of the chain root's parent
	RWorld splineik.Transform // unmodified world transform of the chain root
	Swing  r3.Vec             // direction from root to target
	Twist  r3.Vec             // "up", orthogonal to Swing
	Dist   float64            // distance from root to target

	TwistRadA float64 // extra twist at the start of the curve
	TwistRadB float64 // extra twist at the end of the curve
}

// NewSplineTarget creates a target for curve c.
func NewSplineTarget(c Curve) *SplineTarget {
	return &SplineTarget{
		Curve:  c,
		PWorld: splineik.IdentityTransform(),
		RWorld: splineik.IdentityTransform(),
	}
}

// SetCurve replaces the target's curve.
func (tar *SplineTarget) SetCurve(c Curve) *SplineTarget {
	tar.Curve = c
	return tar
}

// SetPositions sets the target position and, if given, the pole position.
func (tar *SplineTarget) SetPositions(target r3.Vec, pole ...r3.Vec) *SplineTarget {
	tar.Curve.SetTargetPos(target)
	if len(pole) > 0 {
		tar.Curve.SetPolePos(pole[0])
	}
	return tar
}

// SetTargetPos sets the target position.
func (tar *SplineTarget) SetTargetPos(v r3.Vec) *SplineTarget {
	tar.Curve.SetTargetPos(v)
	return tar
}

// SetPolePos sets the pole position.
func (tar *SplineTarget) SetPolePos(v r3.Vec) *SplineTarget {
	tar.Curve.SetPolePos(v)
	return tar
}

// SetTwist sets extra twist angles for start and end of the curve.
func (tar *SplineTarget) SetTwist(aRad, bRad float64) *SplineTarget {
	tar.TwistRadA, tar.TwistRadB = aRad, bRad
	return tar
}

// Resolve updates the target from the current pose: the curve starts at
// the chain root's unmodified world position. Swing and Dist are computed
// from root and target position. Twist is derived from the pole by
// reflecting the pole→root direction at the swing direction and making it
// orthogonal to swing.
func (tar *SplineTarget) Resolve(chain *skeleton.Chain, pose Pose) error {
	if tar == nil || tar.Curve == nil {
		return ErrNoCurve
	}
	if chain == nil || chain.Count() == 0 {
		return fmt.Errorf("%w: cannot resolve spline target", ErrEmptyChain)
	}
	root := chain.Links[0]
	tar.PWorld = pose.WorldTransform(root.Parent)
	tar.RWorld = tar.PWorld.Combine(root.Bind)
	tar.Curve.SetRootPos(tar.RWorld.Pos)

	a, b := tar.Curve.RootPos(), tar.Curve.TargetPos()
	swing := r3.Sub(b, a)
	tar.Dist = r3.Norm(swing)
	tar.Swing = splineik.Unit(swing)

	v := splineik.Unit(r3.Sub(a, tar.Curve.PolePos()))
	twist := splineik.Reflect(v, tar.Swing)
	v = r3.Cross(twist, tar.Swing)
	tar.Twist = splineik.Unit(r3.Cross(tar.Swing, v))

	tar.Curve.Resolve()
	tracer().Debugf("spline target resolved: dist=%.4g swing=%s twist=%s",
		tar.Dist, splineik.VecString(tar.Swing), splineik.VecString(tar.Twist))
	return nil
}
