/*
Package splineik implements 3D vectors, rotations and rigid transforms used by
the spline inverse kinematics packages of this module.

Sub-packages build on it:

	bezier    quadratic Bézier splines and curve fitting
	polyn     linear polynomials and a linear equations solver
	sampling  arc-length addressable samples of a spline
	rmf       rotation minimizing frames
	skeleton  a reference pose and bone chain
	ik        the spline IK target, solver and rig

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package splineik

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'splineik'
func tracer() tracing.Trace {
	return tracing.Select("splineik")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Vectors ===============================================================

// Frequently used constant vectors.
var (
	Origin = V(0, 0, 0)
	XAxis  = V(1, 0, 0)
	YAxis  = V(0, 1, 0)
	ZAxis  = V(0, 0, 1)
)

// V is a quick notation for constructing a vector from floats.
func V(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// Unit returns v scaled to length 1. Unlike r3.Unit, a vector of
// (almost) zero length is returned unchanged instead of becoming NaN.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n <= Epsilon {
		return v
	}
	return r3.Scale(1/n, v)
}

// IsZero is a predicate: is |v| = 0 ?
func IsZero(v r3.Vec) bool {
	return r3.Norm2(v) <= Epsilon*Epsilon
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	ti := 1 - t
	return r3.Vec{
		X: a.X*ti + b.X*t,
		Y: a.Y*ti + b.Y*t,
		Z: a.Z*ti + b.Z*t,
	}
}

// Reflect mirrors dir at the plane with normal n (n is expected to be of unit length).
func Reflect(dir, n r3.Vec) r3.Vec {
	return r3.Sub(dir, r3.Scale(2*r3.Dot(dir, n), n))
}

// Dist is the euclidean distance between a and b.
func Dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// Equal compares two vectors, tolerating differences up to ε.
func Equal(a, b r3.Vec) bool {
	return Is0(a.X-b.X) && Is0(a.Y-b.Y) && Is0(a.Z-b.Z)
}

// ZapVec rounds every component of v to 0, if it "means" to be zero.
func ZapVec(v r3.Vec) r3.Vec {
	return r3.Vec{X: Zap(v.X), Y: Zap(v.Y), Z: Zap(v.Z)}
}

// IsNaN is a predicate: does v contain a NaN component?
func IsNaN(v r3.Vec) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// VecString is a pretty Stringer for vectors.
func VecString(v r3.Vec) string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}
