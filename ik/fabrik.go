package ik

import (
	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/sampling"
	"github.com/npillmayer/splineik/skeleton"
	"gonum.org/v1/gonum/spatial/r3"
)

// One iteration of FABRIK consists of a forward pass from the tip to the
// root, followed by a backward pass from the root to the tip:
//
//   Aristidou, Lasenby: FABRIK: A fast, iterative solver for the Inverse
//   Kinematics problem. Graphical Models 73 (2011), 243–260.

// iterateForward moves the last joint onto the target and pulls its
// predecessors after it, keeping bone lengths. The root joint stays in place.
func iterateForward(tar *SplineTarget, chain *skeleton.Chain, pts []*sampling.Sample) {
	n := len(pts)
	pts[n-1].Pos = tar.Curve.TargetPos()
	for i := n - 1; i > 1; i-- {
		pts[i-1].Pos = toward(pts[i].Pos, pts[i-1].Pos, chain.Links[i-1].Len)
	}
}

// iterateBackward pulls every joint after its predecessor, starting at the
// root, keeping bone lengths.
func iterateBackward(chain *skeleton.Chain, pts []*sampling.Sample) {
	for i := 0; i < len(pts)-1; i++ {
		pts[i+1].Pos = toward(pts[i].Pos, pts[i+1].Pos, chain.Links[i].Len)
	}
}

// toward returns the point at distance d from anchor in the direction of p.
func toward(anchor, p r3.Vec, d float64) r3.Vec {
	return r3.Add(anchor, r3.Scale(d, splineik.Unit(r3.Sub(p, anchor))))
}
