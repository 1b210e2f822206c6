package ik

import (
	"fmt"
	"sort"

	"github.com/npillmayer/splineik"
	"github.com/npillmayer/splineik/bezier"
	"github.com/npillmayer/splineik/skeleton"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind discriminates the IK sets of a rig.
type Kind int8

const (
	// Limb sets are solved by the rig's LimbSolver.
	Limb Kind = iota
	// Spine sets follow a spline.
	Spine
)

func (k Kind) String() string {
	if k == Spine {
		return "spine"
	}
	return "limb"
}

// SetConfig configures an IK set of a rig.
type SetConfig struct {
	Kind Kind
	Axes skeleton.BoneAxes
	Opts Options
}

// DefaultSetConfig returns the configuration for a humanoid rig: two arms,
// two legs and a spine.
func DefaultSetConfig() map[string]SetConfig {
	return map[string]SetConfig{
		"leftArm":  {Kind: Limb, Axes: skeleton.RBD, Opts: DefaultOptions()},
		"rightArm": {Kind: Limb, Axes: skeleton.LBU, Opts: DefaultOptions()},
		"leftLeg":  {Kind: Limb, Axes: skeleton.DFR, Opts: DefaultOptions()},
		"rightLeg": {Kind: Limb, Axes: skeleton.DFR, Opts: DefaultOptions()},
		"spine":    {Kind: Spine, Axes: skeleton.UFR, Opts: Options{UseReach: false, Oversample: 2}},
	}
}

// LimbTarget is a target position with a pole position to bend a limb
// towards.
type LimbTarget struct {
	Pos  r3.Vec
	Pole r3.Vec
}

// LimbSolver solves limb chains. Implementations write local rotations to
// the pose.
type LimbSolver interface {
	SolveLimb(tar *LimbTarget, chain *skeleton.Chain, pose Pose) error
}

// Set is a named IK set of a rig.
type Set struct {
	Name   string
	Kind   Kind
	Axes   skeleton.BoneAxes
	Opts   Options
	Chain  *skeleton.Chain // nil until set by Rig.SetChain
	Spline *SplineTarget   // target of spine sets
	Limb   *LimbTarget     // target of limb sets
}

// Rig runs IK sets over a working pose, derived from a reference pose.
type Rig struct {
	TPose     *skeleton.Pose // reference pose
	WPose     *skeleton.Pose // working pose, output of RunSolvers
	Limbs     LimbSolver     // may be nil; limb sets are skipped then
	SpineData []*Result      // results of spine solves, in set order; fresh per run
	sets      map[string]*Set
	order     []string // spines first, then limbs; by name
}

// NewRig creates a rig for reference pose tpose with IK sets configured
// by config. Chains have to be assigned by SetChain.
func NewRig(tpose *skeleton.Pose, config map[string]SetConfig, limbs LimbSolver) *Rig {
	rig := &Rig{
		TPose: tpose,
		WPose: tpose.Clone(),
		Limbs: limbs,
		sets:  make(map[string]*Set, len(config)),
	}
	for name, c := range config {
		rig.sets[name] = &Set{Name: name, Kind: c.Kind, Axes: c.Axes, Opts: c.Opts}
		rig.order = append(rig.order, name)
	}
	sort.Slice(rig.order, func(i, j int) bool {
		a, b := rig.sets[rig.order[i]], rig.sets[rig.order[j]]
		if a.Kind != b.Kind {
			return a.Kind == Spine
		}
		return a.Name < b.Name
	})
	return rig
}

// Set returns the IK set called name.
func (rig *Rig) Set(name string) (*Set, error) {
	s, ok := rig.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, name)
	}
	return s, nil
}

// SetChain assigns the bones named by bones to IK set name and initializes
// the set's target from the working pose. Spine chains derive their swing
// axes from the bones' placement.
func (rig *Rig) SetChain(name string, bones ...string) error {
	s, err := rig.Set(name)
	if err != nil {
		return err
	}
	idx, err := rig.TPose.Indices(bones...)
	if err != nil {
		return err
	}
	if s.Chain, err = skeleton.NewChain(rig.TPose, s.Axes, idx...); err != nil {
		return err
	}
	if s.Chain.Count() == 0 {
		return fmt.Errorf("%w: IK set %q", ErrEmptyChain, name)
	}
	if s.Kind == Spine {
		if err = s.Chain.UsePlacementForSwing(rig.TPose, r3.Vec{}); err != nil {
			return err
		}
		s.Spline = NewSplineTarget(NewSpineCurve())
	} else {
		s.Limb = &LimbTarget{}
	}
	pos, _ := rig.TargetPos(name)
	pole, _ := rig.PolePos(name)
	return rig.setPositions(s, pos, &pole)
}

// SetTargetPos moves the target of IK set name.
func (rig *Rig) SetTargetPos(name string, pos r3.Vec) error {
	s, err := rig.Set(name)
	if err != nil {
		return err
	}
	return rig.setPositions(s, pos, nil)
}

// SetPolePos moves the pole of IK set name.
func (rig *Rig) SetPolePos(name string, pos r3.Vec) error {
	s, err := rig.Set(name)
	if err != nil {
		return err
	}
	switch {
	case s.Spline != nil:
		s.Spline.SetPolePos(pos)
	case s.Limb != nil:
		s.Limb.Pole = pos
	default:
		return fmt.Errorf("%w: IK set %q has no chain", ErrEmptyChain, name)
	}
	return nil
}

func (rig *Rig) setPositions(s *Set, pos r3.Vec, pole *r3.Vec) error {
	switch {
	case s.Spline != nil:
		s.Spline.SetTargetPos(pos)
		if pole != nil {
			s.Spline.SetPolePos(*pole)
		}
	case s.Limb != nil:
		s.Limb.Pos = pos
		if pole != nil {
			s.Limb.Pole = *pole
		}
	default:
		return fmt.Errorf("%w: IK set %q has no chain", ErrEmptyChain, s.Name)
	}
	return nil
}

// TargetPos returns the world position of the last bone of IK set name,
// in the working pose.
func (rig *Rig) TargetPos(name string) (r3.Vec, error) {
	s, err := rig.chainOf(name)
	if err != nil {
		return r3.Vec{}, err
	}
	return rig.WPose.WorldTransform(s.Chain.Last().Index).Pos, nil
}

// PolePos computes a pole position for IK set name from the working pose.
//
// For limbs, the pole is the midpoint between first and last joint, moved
// along the first bone's twist axis. For spines, the pole is the control
// point of the quadratic curve fitting the joints best; for chains of two
// joints or less it is the midpoint between first and last joint.
func (rig *Rig) PolePos(name string) (r3.Vec, error) {
	s, err := rig.chainOf(name)
	if err != nil {
		return r3.Vec{}, err
	}
	first, last := s.Chain.First(), s.Chain.Last()
	a := rig.WPose.WorldTransform(first.Index)
	b := rig.WPose.WorldTransform(last.Index)
	mid := splineik.Lerp(a.Pos, b.Pos, 0.5)
	if s.Kind == Limb {
		return r3.Add(mid, r3.Scale(0.3, a.Rot.Rotate(first.Axes.Twist))), nil
	}
	pts := make([]r3.Vec, s.Chain.Count())
	for i, lnk := range s.Chain.Links {
		pts[i] = rig.WPose.WorldTransform(lnk.Index).Pos
	}
	pole, err := bezier.OptimalControlPoint(pts, bezier.CentripetalParams(pts))
	if err != nil {
		tracer().Debugf("spine pole for %q: %v, using midpoint", name, err)
		return mid, nil
	}
	return pole, nil
}

func (rig *Rig) chainOf(name string) (*Set, error) {
	s, err := rig.Set(name)
	if err != nil {
		return nil, err
	}
	if s.Chain == nil || s.Chain.Count() == 0 {
		return nil, fmt.Errorf("%w: IK set %q", ErrEmptyChain, name)
	}
	return s, nil
}

// RunSolvers resets the working pose to the bind pose and solves all IK
// sets with a chain, spines first. Finally world transforms of the working
// pose are updated.
func (rig *Rig) RunSolvers() error {
	rig.WPose.Reset()
	rig.SpineData = nil // results of earlier runs stay valid for their holders
	for _, name := range rig.order {
		s := rig.sets[name]
		if s.Chain == nil {
			continue
		}
		switch s.Kind {
		case Spine:
			res, err := Compose(s.Spline, s.Chain, rig.WPose, s.Opts)
			if err != nil {
				return fmt.Errorf("IK set %q: %w", name, err)
			}
			rig.SpineData = append(rig.SpineData, res)
		case Limb:
			if rig.Limbs == nil {
				tracer().Debugf("no limb solver, skipping IK set %q", name)
				continue
			}
			if err := rig.Limbs.SolveLimb(s.Limb, s.Chain, rig.WPose); err != nil {
				return fmt.Errorf("IK set %q: %w", name, err)
			}
		}
	}
	rig.WPose.UpdateWorld()
	return nil
}
