package skeleton

import (
	"errors"
	"fmt"

	"github.com/npillmayer/splineik"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoneAxes names the local axes of a bone: Swing points along the bone
// towards its child, Twist is the bone's "up" for rolling around Swing,
// Ortho is the remaining axis.
type BoneAxes struct {
	Swing r3.Vec
	Twist r3.Vec
	Ortho r3.Vec
}

// Frequently used axis conventions, named by their swing, twist and ortho
// directions: U=up, D=down, L=left, R=right, F=forward, B=back.
var (
	UFR = BoneAxes{Swing: splineik.YAxis, Twist: splineik.ZAxis, Ortho: splineik.XAxis}
	RBD = BoneAxes{Swing: splineik.XAxis, Twist: r3.Vec{Z: -1}, Ortho: r3.Vec{Y: -1}}
	LBU = BoneAxes{Swing: r3.Vec{X: -1}, Twist: r3.Vec{Z: -1}, Ortho: splineik.YAxis}
	DFR = BoneAxes{Swing: r3.Vec{Y: -1}, Twist: splineik.ZAxis, Ortho: splineik.XAxis}
)

// Link is a bone as part of a chain.
type Link struct {
	Index  int                // bone index within the pose
	Parent int                // parent bone index within the pose
	Bind   splineik.Transform // local bind transform
	Len    float64
	Axes   BoneAxes
}

// ErrEmptyChain indicates an operation on a chain without links.
var ErrEmptyChain = errors.New("chain has no links")

// Chain is an ordered list of bones, from root to tip.
type Chain struct {
	Links []*Link
}

// NewChain creates a chain from the bones at indices of pose p. All links
// get the same bone axes.
func NewChain(p *Pose, axes BoneAxes, indices ...int) (*Chain, error) {
	c := &Chain{}
	if err := c.SetBones(p, axes, indices...); err != nil {
		return nil, err
	}
	return c, nil
}

// SetBones replaces the chain's links by the bones at indices of pose p.
// Links take their bind transforms from p's bind pose.
func (c *Chain) SetBones(p *Pose, axes BoneAxes, indices ...int) error {
	links := make([]*Link, 0, len(indices))
	for _, i := range indices {
		b := p.Bone(i)
		if b == nil {
			return fmt.Errorf("%w: %d", ErrBoneIndex, i)
		}
		links = append(links, &Link{
			Index:  b.Index,
			Parent: b.Parent,
			Bind:   p.Bind(b.Index),
			Len:    b.Len,
			Axes:   axes,
		})
	}
	c.Links = links
	tracer().Debugf("chain of %d links, length %.4g", len(links), c.Len())
	return nil
}

// Count returns the number of links.
func (c *Chain) Count() int {
	return len(c.Links)
}

// Len is the total length of the chain, the sum of the links' lengths.
func (c *Chain) Len() float64 {
	lens := make([]float64, len(c.Links))
	for i, l := range c.Links {
		lens[i] = l.Len
	}
	return floats.Sum(lens)
}

// First returns the root link.
func (c *Chain) First() *Link {
	if len(c.Links) == 0 {
		return nil
	}
	return c.Links[0]
}

// Last returns the tip link.
func (c *Chain) Last() *Link {
	if len(c.Links) == 0 {
		return nil
	}
	return c.Links[len(c.Links)-1]
}

// UsePlacementForSwing derives each link's swing axis from the placement of
// the following bone in pose p: the swing axis becomes the direction towards
// the child joint, in the link's local space. The twist axis is made
// orthogonal to the new swing axis.
//
// The last link has no following bone. If lastAxis is not the zero vector,
// it is used as the last link's swing axis (in local space), otherwise the
// last link keeps its axes.
func (c *Chain) UsePlacementForSwing(p *Pose, lastAxis r3.Vec) error {
	n := len(c.Links)
	if n == 0 {
		return ErrEmptyChain
	}
	for i := 0; i < n-1; i++ {
		a := p.WorldTransform(c.Links[i].Index)
		b := p.WorldTransform(c.Links[i+1].Index)
		dir := splineik.Unit(r3.Sub(b.Pos, a.Pos))
		if splineik.IsZero(dir) {
			continue
		}
		c.Links[i].Axes = realign(c.Links[i].Axes, a.Rot.Invert().Rotate(dir))
	}
	if !splineik.IsZero(lastAxis) {
		c.Links[n-1].Axes = realign(c.Links[n-1].Axes, splineik.Unit(lastAxis))
	}
	return nil
}

// realign axes to a new swing direction.
func realign(axes BoneAxes, swing r3.Vec) BoneAxes {
	twist := r3.Sub(axes.Twist, r3.Scale(r3.Dot(axes.Twist, swing), swing))
	if splineik.IsZero(twist) { // old twist parallel to new swing
		twist = splineik.FromSwing(axes.Swing, swing).Rotate(axes.Twist)
	}
	twist = splineik.Unit(twist)
	return BoneAxes{
		Swing: swing,
		Twist: twist,
		Ortho: splineik.Unit(r3.Cross(swing, twist)),
	}
}
