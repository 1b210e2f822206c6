package ik

import (
	"fmt"

	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/rmf"
	"github.com/npillmayer/splineik/sampling"
	"github.com/npillmayer/splineik/skeleton"
	"gonum.org/v1/gonum/spatial/r3"
)

// Result exposes the internals of a solve, e.g. for visualization.
type Result struct {
	Sampler *sampling.Sampler  // samples of the curve
	Joints  []*sampling.Sample // one frame per chain link
	Beyond  int                // index of the first joint beyond the curve's end, or -1
}

// Solve fits chain to the curve of a resolved spline target and writes the
// joints' local rotations to pose.
//
// The curve is sampled and a rotation minimizing frame is transported along
// the samples, starting at the root's twist axis. Joints are placed at their
// distance along the curve. Joints beyond the curve's end continue straight
// in the direction from the last joint on the curve to the curve's end. After
// tangents have been realigned to point from joint to joint, each bone is
// swung onto its joint's tangent and twisted onto its joint's normal.
func Solve(tar *SplineTarget, chain *skeleton.Chain, pose Pose, opts Options) (*Result, error) {
	if tar == nil || tar.Curve == nil {
		return nil, ErrNoCurve
	}
	if chain == nil || chain.Count() == 0 {
		return nil, fmt.Errorf("%w: nothing to solve", ErrEmptyChain)
	}
	n := chain.Count()
	smp := sampling.FromSpline(tar.Curve, opts.samples(n))
	rmf.TransportNormal(smp.Items, tar.RWorld.Rot.Rotate(chain.Links[0].Axes.Twist))
	if tar.TwistRadA != 0 || tar.TwistRadB != 0 {
		if opts.Twist == LinearTwist {
			rmf.ApplyLinearTwist(smp.Items, tar.TwistRadA, tar.TwistRadB)
		} else {
			rmf.ApplySmoothTwist(smp.Items, tar.TwistRadA, tar.TwistRadB)
		}
	}
	res := &Result{Sampler: smp, Joints: make([]*sampling.Sample, 0, n), Beyond: -1}
	travel := 0.0
	for i, lnk := range chain.Links {
		switch {
		case travel <= smp.ArcLength:
			res.Joints = append(res.Joints, smp.AtDist(travel))
		case res.Beyond < 0:
			res.Beyond = i
			res.Joints = append(res.Joints, beyondEnd(smp, res.Joints[i-1]))
		default: // same orientation as its predecessor, one bone further
			next := res.Joints[i-1].Clone()
			// spaced by the bone between both joints, not by the joint's own bone
			next.Pos = r3.Add(next.Pos, r3.Scale(chain.Links[i-1].Len, next.Tangent))
			res.Joints = append(res.Joints, next)
		}
		travel += lnk.Len
	}
	tracer().Debugf("spline solve: %d links, chain length %.4g, arc length %.4g",
		n, travel, smp.ArcLength)
	if travel <= smp.ArcLength {
		if opts.UseLastLook && n >= 3 {
			lastLook(tar, chain, res.Joints)
		}
		if opts.UseReach {
			iterateForward(tar, chain, res.Joints)
			iterateBackward(chain, res.Joints)
		}
	} else {
		tracer().Debugf("chain longer than curve, %d joints beyond curve end", n-res.Beyond)
	}
	rmf.RealignTangents(res.Joints)
	applySamplesToPose(chain, pose, res.Joints)
	return res, nil
}

// beyondEnd creates a frame at the curve's end, pointing away from prev.
func beyondEnd(smp *sampling.Sampler, prev *sampling.Sample) *sampling.Sample {
	s := prev.Clone()
	s.Pos = smp.Items[smp.Len()-1].Pos
	s.Tangent = splineik.Unit(r3.Sub(s.Pos, prev.Pos))
	if splineik.IsZero(s.Tangent) {
		s.Tangent = prev.Tangent
	}
	s.Normal = splineik.FromSwing(prev.Tangent, s.Tangent).Rotate(s.Normal)
	return s
}

// lastLook places the second to last joint at bone length from its
// predecessor and puts the last joint onto the target.
func lastLook(tar *SplineTarget, chain *skeleton.Chain, pts []*sampling.Sample) {
	n := len(pts)
	a, b := pts[n-3], pts[n-2]
	dir := splineik.Unit(r3.Sub(b.Pos, a.Pos))
	b.Pos = r3.Add(a.Pos, r3.Scale(chain.Links[n-3].Len, dir))
	pts[n-1].Pos = tar.Curve.TargetPos()
}

// applySamplesToPose rotates each joint's swing axis onto its frame's
// tangent and its twist axis onto the frame's normal.
func applySamplesToPose(chain *skeleton.Chain, pose Pose, pts []*sampling.Sample) {
	for i, lnk := range chain.Links {
		parent := pose.WorldTransform(lnk.Parent)
		world := parent.Combine(lnk.Bind) // unmodified joint
		from := splineik.Unit(world.Rot.Rotate(lnk.Axes.Swing))
		swing := splineik.FromSwing(from, pts[i].Tangent).Mul(world.Rot)
		from = splineik.Unit(swing.Rotate(lnk.Axes.Twist))
		rot := splineik.FromSwing(from, pts[i].Normal).Mul(swing).
			PreMulInvert(parent.Rot).
			Normalize()
		pose.SetLocalRotation(lnk.Index, rot)
	}
}
