/*
Package rmf computes rotation minimizing frames along sampled curves.

Samples of a curve carry a position and a tangent. To orient anything along
the curve, each sample needs a full basis (tangent, normal, binormal). Deriving
"up" independently for every sample makes frames pop around the tangent. A
rotation minimizing frame instead carries the first normal along the curve
with as little rotation around the tangent as possible. This package uses the
double reflection method:

	Wang, Jüttler, Zheng, Liu: Computation of Rotation Minimizing Frames.
	ACM Transactions on Graphics, Vol. 27, No. 1, 2008.

Functions in this package never produce NaNs: degenerate vectors are passed
through or replaced by a stable fallback.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package rmf

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/sampling"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'geometry'
func tracer() tracing.Trace {
	return tracing.Select("geometry")
}

// Thresholds for degenerate vectors.
const (
	minProjection = 0.001  // minimum length of a projected reference axis
	minReflection = 0.0001 // minimum squared length of a reflection plane's normal
	minBinormal   = 1e-6   // minimum length of normal × tangent for unit vectors
	nudge         = 0.0001 // tangent offset to break up parallel tangent and normal
)

// WorldUp is the reference direction for StableNormal.
var WorldUp = splineik.YAxis

// StableNormal computes a normal orthogonal to tangent tan, by projecting
// reference vector up onto the plane perpendicular to tan. If tan is
// (almost) parallel to up, an alternative reference axis is used: -z for
// a vertical up, x otherwise, or the world axis least aligned with tan if
// that one is parallel to tan as well.
func StableNormal(tan, up r3.Vec) r3.Vec {
	proj := project(up, tan)
	if r3.Norm(proj) < minProjection {
		alt := splineik.XAxis
		if math.Abs(up.Y) > 0.9 {
			alt = r3.Vec{Z: -1}
		}
		proj = project(alt, tan)
		if r3.Norm(proj) < minProjection {
			proj = project(leastAligned(tan), tan)
		}
	}
	return splineik.Unit(proj)
}

// leastAligned returns the world axis for the smallest absolute component
// of v.
func leastAligned(v r3.Vec) r3.Vec {
	x, y, z := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case x <= y && x <= z:
		return splineik.XAxis
	case y <= z:
		return splineik.YAxis
	}
	return splineik.ZAxis
}

// project v onto the plane perpendicular to n.
func project(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(n, v), n))
}

// FixOrthogonal re-establishes an orthonormal basis for a sample after its
// tangent or normal have been modified. The tangent is kept (normalized),
// binormal = normal × tangent and normal = tangent × binormal.
//
// If tangent and normal are (almost) parallel, the tangent is nudged slightly
// towards the world axis least aligned with it before the binormal is
// computed. A zero normal is replaced by a stable normal.
func FixOrthogonal(s *sampling.Sample) {
	s.Tangent = splineik.Unit(s.Tangent)
	s.Normal = splineik.Unit(s.Normal)
	if splineik.IsZero(s.Normal) {
		s.Normal = StableNormal(s.Tangent, WorldUp)
	}
	b := r3.Cross(s.Normal, s.Tangent)
	if r3.Norm(b) < minBinormal {
		s.Tangent = splineik.Unit(r3.Add(s.Tangent, r3.Scale(nudge, leastAligned(s.Tangent))))
		b = r3.Cross(s.Normal, s.Tangent)
	}
	s.Binormal = splineik.Unit(b)
	s.Normal = splineik.Unit(r3.Cross(s.Tangent, s.Binormal))
}

// TransportNormal carries a normal across a sequence of samples. The first
// sample's normal is set to initDir or, if initDir is the zero vector, to a
// stable normal for the first tangent. Every following sample gets its basis
// by TransportSample from its predecessor.
func TransportNormal(items []*sampling.Sample, initDir r3.Vec) {
	if len(items) == 0 {
		return
	}
	if splineik.IsZero(initDir) {
		items[0].Normal = StableNormal(items[0].Tangent, WorldUp)
	} else {
		items[0].Normal = initDir
	}
	FixOrthogonal(items[0])
	for i := 1; i < len(items); i++ {
		TransportSample(items[i-1], items[i])
	}
	tracer().Debugf("transported normal %s across %d samples",
		splineik.VecString(items[0].Normal), len(items))
}

// TransportSample moves the normal of sample from onto sample to, using two
// reflections. The first one mirrors from's frame at the bisecting plane
// between both positions' tangents, the second one aligns the mirrored tangent
// with to's tangent. The resulting normal is additionally swung by the
// rotation between both tangents, which keeps it from flipping in sharp turns.
func TransportSample(from, to *sampling.Sample) {
	t1, r1, t2 := from.Tangent, from.Normal, to.Tangent
	ri, ti := r1, t1
	v1 := r3.Add(t1, t2)
	if c1 := r3.Norm2(v1); c1 > minReflection {
		ri = householder(r1, v1, c1)
		ti = householder(t1, v1, c1)
	}
	v2 := r3.Add(ti, t2)
	if c2 := r3.Norm2(v2); c2 > minReflection {
		to.Normal = splineik.Unit(householder(ri, v2, c2))
	} else {
		to.Normal = splineik.Unit(ri)
	}
	to.Normal = splineik.FromSwing(t1, t2).Rotate(to.Normal)
	FixOrthogonal(to)
}

// householder reflects r at the plane with normal v, c = |v|².
func householder(r, v r3.Vec, c float64) r3.Vec {
	return r3.Sub(r, r3.Scale(2/c*r3.Dot(v, r), v))
}

// RealignTangents turns each sample's tangent towards the position of the
// following sample. Normals are swung along with their tangents. The last
// sample copies the tangent of the second to last one.
func RealignTangents(items []*sampling.Sample) {
	if len(items) == 0 {
		return
	}
	for i := 1; i < len(items); i++ {
		s := items[i-1]
		v := splineik.Unit(r3.Sub(items[i].Pos, s.Pos))
		if splineik.IsZero(v) { // coincident positions: keep the tangent
			v = s.Tangent
		}
		s.Normal = splineik.FromSwing(s.Tangent, v).Rotate(s.Normal)
		s.Tangent = v
		FixOrthogonal(s)
	}
	if n := len(items); n > 1 {
		items[n-1].Tangent = items[n-2].Tangent
	}
	FixOrthogonal(items[len(items)-1])
}
