package rmf

import (
	"math"

	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/sampling"
	"gonum.org/v1/gonum/spatial/r3"
)

// Easing maps t ∈ [0,1] onto [0,1], with ease(0)=0 and ease(1)=1.
type Easing func(t float64) float64

// Linear easing.
func Linear(t float64) float64 {
	return t
}

// SmoothStep is the cubic Hermite easing 3t² - 2t³.
func SmoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// SmootherStep is Perlin's quintic easing 6t⁵ - 15t⁴ + 10t³, which has
// zero second derivatives at both ends.
func SmootherStep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// ApplyLinearTwist rotates the normal and binormal of every sample around
// its tangent. The angle is interpolated linearly from aRad at the first
// sample to bRad at the last one.
func ApplyLinearTwist(items []*sampling.Sample, aRad, bRad float64) {
	ApplyTwist(items, aRad, bRad, Linear)
}

// ApplySmoothTwist is like ApplyLinearTwist, but eases the angle in and
// out with SmoothStep.
func ApplySmoothTwist(items []*sampling.Sample, aRad, bRad float64) {
	ApplyTwist(items, aRad, bRad, SmoothStep)
}

// ApplyTwist rotates the normal and binormal of every sample around its
// tangent by an angle between aRad and bRad, interpolated by ease over the
// samples' index.
func ApplyTwist(items []*sampling.Sample, aRad, bRad float64, ease Easing) {
	n := len(items)
	for i, s := range items {
		var t float64
		if n > 1 {
			t = ease(float64(i) / float64(n-1))
		}
		rad := aRad*(1-t) + bRad*t
		c, sn := math.Cos(rad), math.Sin(rad)
		s.Normal = splineik.Unit(r3.Add(r3.Scale(c, s.Normal), r3.Scale(sn, s.Binormal)))
		s.Binormal = splineik.Unit(r3.Cross(s.Normal, s.Tangent))
	}
	tracer().Debugf("twisted %d samples from %.4g to %.4g rad", n, aRad, bRad)
}
