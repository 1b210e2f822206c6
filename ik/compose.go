package ik

import (
	"github.com/npillmayer/splineik/skeleton"
)

// TwistMode selects how extra twist is distributed along a curve.
type TwistMode int8

const (
	// SmoothTwist eases twist in and out (smoothstep).
	SmoothTwist TwistMode = iota
	// LinearTwist interpolates twist linearly.
	LinearTwist
)

// Options control a spline solve.
type Options struct {
	// UseReach applies one FABRIK iteration when the chain is shorter than
	// the curve, to pull the tip towards the target.
	UseReach bool
	// UseLastLook puts the tip on the target when the chain is shorter than
	// the curve, making the last bone look at the target.
	UseLastLook bool
	// Oversample is the number of curve samples per chain link.
	Oversample int
	// Twist selects the distribution of the target's extra twist.
	Twist TwistMode
}

// DefaultOptions returns options with both length corrections switched off.
func DefaultOptions() Options {
	return Options{Oversample: 2, Twist: SmoothTwist}
}

func (opts Options) samples(links int) int {
	if opts.Oversample < 1 {
		return links * DefaultOptions().Oversample
	}
	return links * opts.Oversample
}

// Compose resolves a spline target against the current pose and solves
// the chain for it.
func Compose(tar *SplineTarget, chain *skeleton.Chain, pose Pose, opts Options) (*Result, error) {
	if err := tar.Resolve(chain, pose); err != nil {
		return nil, err
	}
	return Solve(tar, chain, pose, opts)
}
