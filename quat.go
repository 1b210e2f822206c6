package splineik

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// === Rotations =============================================================

// Quat is a rotation quaternion. Real is the scalar part, Imag, Jmag and Kmag
// carry the x, y and z parts of the vector.
type Quat quat.Number

// Identity rotation. Will rotate a vector onto itself.
func Identity() Quat {
	return Quat{Real: 1}
}

// FromAxisAngle creates a rotation of theta radians around axis.
func FromAxisAngle(axis r3.Vec, theta float64) Quat {
	axis = Unit(axis)
	if IsZero(axis) {
		return Identity()
	}
	s := math.Sin(theta / 2)
	return Quat{
		Real: math.Cos(theta / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// FromSwing creates the shortest arc rotation which turns direction a onto
// direction b. Zero vectors result in the identity rotation.
func FromSwing(a, b r3.Vec) Quat {
	a, b = Unit(a), Unit(b)
	if IsZero(a) || IsZero(b) {
		return Identity()
	}
	dot := r3.Dot(a, b)
	if dot < -0.999999 { // opposite directions: turn 180° around any orthogonal axis
		axis := r3.Cross(XAxis, a)
		if r3.Norm(axis) < 0.000001 {
			axis = r3.Cross(YAxis, a)
		}
		return FromAxisAngle(axis, math.Pi)
	}
	if dot > 0.999999 {
		return Identity()
	}
	c := r3.Cross(a, b)
	q := Quat{Real: 1 + dot, Imag: c.X, Jmag: c.Y, Kmag: c.Z}
	return q.Normalize()
}

// N returns q as a gonum quaternion number.
func (q Quat) N() quat.Number {
	return quat.Number(q)
}

// Mul combines two rotations, q·r. Applied to a vector, r rotates first.
func (q Quat) Mul(r Quat) Quat {
	return Quat(quat.Mul(q.N(), r.N()))
}

// PreMulInvert returns p⁻¹·q. It is used to move a world rotation q into
// the local space of a parent with world rotation p.
func (q Quat) PreMulInvert(p Quat) Quat {
	return p.Invert().Mul(q)
}

// Invert returns the inverse rotation. A zero quaternion inverts to identity.
func (q Quat) Invert() Quat {
	if Is0(quat.Abs(q.N())) {
		tracer().Debugf("inverting zero quaternion %s", q)
		return Identity()
	}
	return Quat(quat.Inv(q.N()))
}

// Normalize scales q to unit length. A zero quaternion becomes the identity.
func (q Quat) Normalize() Quat {
	l := quat.Abs(q.N())
	if Is0(l) {
		return Identity()
	}
	return Quat(quat.Scale(1/l, q.N()))
}

// Rotate applies rotation q to vector v. q is expected to be of unit length.
func (q Quat) Rotate(v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	p = quat.Mul(quat.Mul(q.N(), p), quat.Conj(q.N()))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// Dot is the 4D dot product of two quaternions.
func (q Quat) Dot(r Quat) float64 {
	return q.Real*r.Real + q.Imag*r.Imag + q.Jmag*r.Jmag + q.Kmag*r.Kmag
}

// SameRotation is a predicate: do q and r rotate vectors identically?
// q and -q describe the same rotation.
func (q Quat) SameRotation(r Quat) bool {
	return Is0(1 - math.Abs(q.Normalize().Dot(r.Normalize())))
}

// Debug Stringer for a rotation.
func (q Quat) String() string {
	return fmt.Sprintf("[%g|%g,%g,%g]", q.Real, q.Imag, q.Jmag, q.Kmag)
}
