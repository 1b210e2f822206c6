/*
Package skeleton is a minimal reference implementation of an armature pose
and of bone chains, as consumed by the inverse kinematics solvers in
package ik.

A Pose is an ordered list of bones. Every bone has a local transform
relative to its parent and a cached world transform. Bones must be added
parents first. The pose remembers the local transforms it was built with
(the bind pose) and may be reset to them.

A Chain is an ordered list of links into a pose, from the chain's root
bone to its tip. Each link carries the bone's bind transform, its length
and the bone's local axes.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package skeleton

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splineik"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'ik'
func tracer() tracing.Trace {
	return tracing.Select("ik")
}

var (
	// ErrBoneIndex indicates a bone index outside of the pose.
	ErrBoneIndex = errors.New("bone index out of range")
	// ErrParentIndex indicates a parent which has not been added before its child.
	ErrParentIndex = errors.New("parent bone must precede child")
	// ErrDuplicateName indicates a bone name used twice within a pose.
	ErrDuplicateName = errors.New("duplicate bone name")
	// ErrUnknownBone indicates a bone name not present in a pose.
	ErrUnknownBone = errors.New("unknown bone")
)

// Bone is a joint of an armature.
type Bone struct {
	Name   string
	Index  int                // position within pose
	Parent int                // index of parent bone, -1 for root bones
	Len    float64            // distance to the bone's tip
	Local  splineik.Transform // transform relative to parent
	World  splineik.Transform // cached world transform, see Pose.UpdateWorld
}

// Pose is a configuration of bones.
type Pose struct {
	bones []*Bone
	bind  []splineik.Transform // local transforms at construction time
	names map[string]int
}

// NewPose creates an empty pose.
func NewPose() *Pose {
	return &Pose{names: make(map[string]int)}
}

// AddBone appends a bone with a local transform relative to parent, which
// must be an index of a bone already added or -1. Returns the new bone's
// index. The local transform becomes part of the bind pose.
func (p *Pose) AddBone(name string, parent int, local splineik.Transform, length float64) (int, error) {
	if _, exists := p.names[name]; exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if parent < -1 || parent >= len(p.bones) {
		return -1, fmt.Errorf("%w: bone %q, parent %d", ErrParentIndex, name, parent)
	}
	b := &Bone{
		Name:   name,
		Index:  len(p.bones),
		Parent: parent,
		Len:    length,
		Local:  local,
	}
	b.World = p.WorldTransform(parent).Combine(local)
	p.bones = append(p.bones, b)
	p.bind = append(p.bind, local)
	p.names[name] = b.Index
	return b.Index, nil
}

// Len returns the number of bones.
func (p *Pose) Len() int {
	return len(p.bones)
}

// Bone returns bone i, or nil for an invalid index.
func (p *Pose) Bone(i int) *Bone {
	if i < 0 || i >= len(p.bones) {
		return nil
	}
	return p.bones[i]
}

// BoneByName finds a bone by its name.
func (p *Pose) BoneByName(name string) (*Bone, error) {
	i, ok := p.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	return p.bones[i], nil
}

// Indices maps bone names to bone indices.
func (p *Pose) Indices(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		b, err := p.BoneByName(name)
		if err != nil {
			return nil, err
		}
		idx[i] = b.Index
	}
	return idx, nil
}

// Bind returns the bind pose's local transform of bone i.
func (p *Pose) Bind(i int) splineik.Transform {
	if i < 0 || i >= len(p.bind) {
		return splineik.IdentityTransform()
	}
	return p.bind[i]
}

// WorldTransform computes the world transform of bone i from the local
// transforms of the bone and its ancestors. It does not use or update cached
// world transforms. For i < 0 the identity transform is returned.
func (p *Pose) WorldTransform(i int) splineik.Transform {
	t := splineik.IdentityTransform()
	if i >= len(p.bones) {
		tracer().Errorf("world transform: %v: %d", ErrBoneIndex, i)
		return t
	}
	path := make([]int, 0, 8)
	for j := i; j >= 0; j = p.bones[j].Parent {
		path = append(path, j)
	}
	for k := len(path) - 1; k >= 0; k-- {
		t = t.Combine(p.bones[path[k]].Local)
	}
	return t
}

// SetLocalRotation sets the local rotation of bone i.
func (p *Pose) SetLocalRotation(i int, q splineik.Quat) {
	if i < 0 || i >= len(p.bones) {
		tracer().Errorf("set local rotation: %v: %d", ErrBoneIndex, i)
		return
	}
	p.bones[i].Local.Rot = q
}

// SetLocalPos sets the local position of bone i.
func (p *Pose) SetLocalPos(i int, pos r3.Vec) {
	if i < 0 || i >= len(p.bones) {
		tracer().Errorf("set local position: %v: %d", ErrBoneIndex, i)
		return
	}
	p.bones[i].Local.Pos = pos
}

// UpdateWorld recomputes the cached world transforms of all bones.
func (p *Pose) UpdateWorld() {
	for _, b := range p.bones {
		if b.Parent < 0 {
			b.World = b.Local
		} else {
			b.World = p.bones[b.Parent].World.Combine(b.Local)
		}
	}
}

// Reset restores the local transforms of the bind pose and updates world
// transforms.
func (p *Pose) Reset() {
	for i, b := range p.bones {
		b.Local = p.bind[i]
	}
	p.UpdateWorld()
}

// Clone creates a deep copy of p.
func (p *Pose) Clone() *Pose {
	c := &Pose{
		bones: make([]*Bone, len(p.bones)),
		bind:  append([]splineik.Transform(nil), p.bind...),
		names: make(map[string]int, len(p.names)),
	}
	for name, i := range p.names {
		c.names[name] = i
	}
	for i, b := range p.bones {
		bone := *b
		c.bones[i] = &bone
	}
	return c
}

// ComputeLengths sets the length of every bone with children to the
// distance to its first child, measured in the bind pose. Bones without
// children keep their length.
func (p *Pose) ComputeLengths() {
	seen := make(map[int]bool, len(p.bones))
	for _, b := range p.bones {
		if b.Parent < 0 || seen[b.Parent] {
			continue
		}
		seen[b.Parent] = true
		parent := p.bones[b.Parent]
		parent.Len = splineik.Dist(p.bindWorld(parent.Index).Pos, p.bindWorld(b.Index).Pos)
	}
}

func (p *Pose) bindWorld(i int) splineik.Transform {
	t := p.Bind(i)
	for j := p.bones[i].Parent; j >= 0; j = p.bones[j].Parent {
		t = p.bind[j].Combine(t)
	}
	return t
}
