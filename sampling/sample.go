package sampling

import (
	"fmt"

	"github.com/npillmayer/splineik"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sample is a frame on a curve: a position together with an orientation
// basis. Tangent points forward along the curve, Normal is "up" and
// Binormal is "right".
//
// Samples created by a Sampler carry position and tangent only. Normal and
// binormal are filled in by package rmf.
type Sample struct {
	Dist float64 // distance from start of curve
	Inc  float64 // distance from previous sample
	Time float64 // curve parameter t

	Pos      r3.Vec
	Tangent  r3.Vec
	Normal   r3.Vec
	Binormal r3.Vec
}

// Lerp returns a sample interpolated between a and b. All fields are
// interpolated linearly, including the basis vectors, which will in general
// not be of unit length afterwards.
func Lerp(a, b *Sample, t float64) *Sample {
	s := &Sample{}
	return s.FromLerp(a, b, t)
}

// FromLerp sets s to the interpolation between a and b and returns s.
func (s *Sample) FromLerp(a, b *Sample, t float64) *Sample {
	ti := 1 - t
	s.Dist = a.Dist*ti + b.Dist*t
	s.Inc = a.Inc*ti + b.Inc*t
	s.Time = a.Time*ti + b.Time*t
	s.Pos = splineik.Lerp(a.Pos, b.Pos, t)
	s.Tangent = splineik.Lerp(a.Tangent, b.Tangent, t)
	s.Normal = splineik.Lerp(a.Normal, b.Normal, t)
	s.Binormal = splineik.Lerp(a.Binormal, b.Binormal, t)
	return s
}

// Clone returns a copy of s.
func (s *Sample) Clone() *Sample {
	c := *s
	return &c
}

func (s *Sample) String() string {
	return fmt.Sprintf("sample@%.4g[pos=%s tan=%s nrm=%s]", s.Dist,
		splineik.VecString(s.Pos), splineik.VecString(s.Tangent), splineik.VecString(s.Normal))
}
