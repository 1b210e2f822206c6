/*
Package sampling converts a continuous curve into a sequence of discrete
frames, addressable by distance along the curve.

Arc length is approximated by the sum of chord lengths between consecutive
samples. Distance-based lookups interpolate linearly between the two samples
bracketing the requested distance.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sampling

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splineik"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'geometry'
func tracer() tracing.Trace {
	return tracing.Select("geometry")
}

// Curve is a parametric curve over t ∈ [0,1], returning position, first
// and second derivative. *bezier.Spline implements it.
type Curve interface {
	At(t float64) (pos, dxdy, dxdy2 r3.Vec)
}

// MinSamples is the smallest number of samples a sampler will take.
const MinSamples = 2

// Sampler holds samples of a curve, ordered by distance from the curve start.
type Sampler struct {
	Items     []*Sample // samples, Items[0] at t=0, last one at t=1
	ArcLength float64   // total length of the sampled curve
}

// FromSpline samples curve c at n uniform parameter steps i/(n-1).
// Each sample gets the position and the normalized tangent of the curve.
// n is raised to MinSamples if smaller.
func FromSpline(c Curve, n int) *Sampler {
	if n < MinSamples {
		n = MinSamples
	}
	smp := &Sampler{Items: make([]*Sample, 0, n)}
	last := n - 1
	for i := 0; i <= last; i++ {
		s := &Sample{Time: float64(i) / float64(last)}
		pos, dxdy, _ := c.At(s.Time)
		s.Pos, s.Tangent = pos, splineik.Unit(dxdy)
		if i > 0 {
			s.Inc = splineik.Dist(s.Pos, smp.Items[i-1].Pos)
			smp.ArcLength += s.Inc
			s.Dist = smp.ArcLength
		}
		smp.Items = append(smp.Items, s)
	}
	tracer().Debugf("sampled curve with %d samples, arc length = %.4g", n, smp.ArcLength)
	return smp
}

// Len returns the number of samples.
func (smp *Sampler) Len() int {
	return len(smp.Items)
}

// AtDist returns a sample at distance dist from the start of the curve,
// linearly interpolated from the two samples around dist. Distances ≤ 0
// result in the first sample, distances ≥ ArcLength in the last one.
//
// Basis vectors of the result are not re-normalized.
func (smp *Sampler) AtDist(dist float64) *Sample {
	n := len(smp.Items)
	if n == 0 {
		return &Sample{}
	}
	if n == 1 {
		return smp.Items[0].Clone()
	}
	var a, b *Sample
	var t float64
	switch {
	case dist <= 0:
		a, b, t = smp.Items[0], smp.Items[1], 0
	case dist >= smp.ArcLength:
		a, b, t = smp.Items[n-2], smp.Items[n-1], 1
	default:
		// first sample farther away than dist
		i := sort.Search(n, func(i int) bool { return dist < smp.Items[i].Dist })
		if i == 0 {
			i = 1
		}
		a, b = smp.Items[i-1], smp.Items[i]
		if span := b.Dist - a.Dist; span > 0 {
			t = (dist - a.Dist) / span
		}
	}
	return Lerp(a, b, t)
}
