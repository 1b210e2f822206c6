package splineik

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// === Rigid Transformations =================================================

// Transform is a rotation, translation and scale, applied in the order
// scale, rotate, translate.
type Transform struct {
	Rot Quat
	Pos r3.Vec
	Scl r3.Vec
}

// IdentityTransform will transform a point onto itself.
func IdentityTransform() Transform {
	return Transform{Rot: Identity(), Scl: V(1, 1, 1)}
}

// NewTransform creates a transform without scaling.
func NewTransform(rot Quat, pos r3.Vec) Transform {
	return Transform{Rot: rot, Pos: pos, Scl: V(1, 1, 1)}
}

// Combine appends child transform c to parent transform t and returns
// the result (t·c), without changing the arguments. The result transforms
// from the child's space into the parent's parent space.
func (t Transform) Combine(c Transform) Transform {
	return Transform{
		Rot: t.Rot.Mul(c.Rot),
		Pos: r3.Add(t.Pos, t.Rot.Rotate(mulComponents(t.Scl, c.Pos))),
		Scl: mulComponents(t.Scl, c.Scl),
	}
}

// Apply transforms a 3D-point. The argument is unchanged and a new point is returned.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.Rot.Rotate(mulComponents(t.Scl, p)), t.Pos)
}

// Direction rotates direction d by the rotation part of t.
func (t Transform) Direction(d r3.Vec) r3.Vec {
	return t.Rot.Rotate(d)
}

// Debug Stringer for a transform.
func (t Transform) String() string {
	return fmt.Sprintf("{rot=%s pos=%s scl=%s}", t.Rot, VecString(t.Pos), VecString(t.Scl))
}

func mulComponents(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}
