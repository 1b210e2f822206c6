/*
Package ik implements spline inverse kinematics for bone chains.

A spline IK target is a curve from the root of a chain to a target
position, bent by a pole position. Every solve call

  - resolves the target against the live pose (SplineTarget.Resolve),
  - samples the curve and transports a twist-free frame along it,
  - distributes the chain's joints over the samples by bone length,
  - and writes the joints' local rotations back to the pose.

Chains longer than the curve continue straight beyond the curve's end.
Chains shorter than the curve may optionally aim their last bone at the
target or be pulled towards it by one FABRIK pass.

Rig bundles several IK sets, spines and limbs, over one working pose.
Limb solving is delegated to a LimbSolver supplied by the client.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package ik

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/skeleton"
)

// tracer writes to trace with key 'ik'
func tracer() tracing.Trace {
	return tracing.Select("ik")
}

var (
	// ErrEmptyChain indicates an IK operation on a chain without links.
	ErrEmptyChain = skeleton.ErrEmptyChain
	// ErrNoCurve indicates a spline target without a curve.
	ErrNoCurve = errors.New("spline target has no curve")
	// ErrUnknownSet indicates an IK set name not configured for a rig.
	ErrUnknownSet = errors.New("unknown IK set")
)

// Pose is the part of a skeletal pose a solver needs: world transforms
// of bones and write access to local rotations. *skeleton.Pose implements it.
//
// WorldTransform must compute the transform from the current local
// transforms, so that rotations written for a parent bone are visible
// for its children. For negative indices it returns the identity.
type Pose interface {
	WorldTransform(i int) splineik.Transform
	SetLocalRotation(i int, q splineik.Quat)
}
