package polyn

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/splineik"
)

var (
	// ErrEmptyEquationList indicates no equations were supplied to AddEqs.
	ErrEmptyEquationList = errors.New("empty list of equations")
	// ErrInconsistentEquation indicates an equation reduced to 0 = c with c != 0.
	ErrInconsistentEquation = errors.New("inconsistent equation")
	// ErrUnsolved indicates a query for a variable which is not (yet) solved.
	ErrUnsolved = errors.New("variable is not solved")
)

/*
----------------------------------------------------------------------

Objects and interfaces for solving systems of linear equations (LEQ).

Inspired by Donald E. Knuth's MetaFont, John Hobby's MetaPost and by
a Lua project by John D. Ramsdell: http://luaforge.net/projects/lineqpp/
*/

// A VariableResolver links solver variable IDs to "real" variable names.
//
// Terms of a polynomial are keyed by ID i (a_i * x.i). Example: variable
// "ctrl.x" with ID=1 is represented as x.1 internally. The resolver maps
// x.1 to "ctrl.x", i.e., IDs to names.
type VariableResolver interface {
	GetVariableName(int) string     // get real-life name of x.i
	SetVariableSolved(int, float64) // message: x.i is solved
}

// EquationMap holds equations x.i = p(i), keyed by i.
type EquationMap map[int]Polynomial

// === System of linear equations =======================================

// LinEqSolver is a container for linear equations. Used to incrementally solve
// systems of linear equations.
//
// Every dependent variable x.i is kept as x.i = p(i), where p(i) contains
// independent variables only. A new equation is first stripped of all known
// variables, then activated towards its largest free coefficient and finally
// substituted into every other dependent equation.
type LinEqSolver struct {
	dependents  EquationMap      // dependent variable x.i = p(i)
	solved      map[int]float64  // map x.i => numeric
	varresolver VariableResolver // to resolve variable names from term positions
}

// NewLinEqSolver creates a new system of linear equations.
func NewLinEqSolver() *LinEqSolver {
	return &LinEqSolver{
		dependents: make(EquationMap),
		solved:     make(map[int]float64),
	}
}

// SetVariableResolver sets a variable resolver.
func (leq *LinEqSolver) SetVariableResolver(resolver VariableResolver) {
	leq.varresolver = resolver
}

// AddEq adds a
// new equation 0 = p (p is Polynomial) to a system of linear equations.
// Immediately starts to solve the -- possibly incomplete -- system, as
// far as possible.
func (leq *LinEqSolver) AddEq(p Polynomial) (*LinEqSolver, error) {
	return leq, leq.addEq(p)
}

// AddEqs adds a set of linear equations to the LEQ system.
// See AddEq.
func (leq *LinEqSolver) AddEqs(plist []Polynomial) (*LinEqSolver, error) {
	l := len(plist)
	if l == 0 {
		T().Errorf("given empty list of equations")
		return leq, ErrEmptyEquationList
	}
	for i, p := range plist {
		T().Debugf("adding equation %d/%d: 0 = %s", i+1, l, leq.PolynString(p))
		if err := leq.addEq(p); err != nil {
			return leq, err
		}
	}
	return leq, nil
}

func (leq *LinEqSolver) addEq(p Polynomial) error {
	p = leq.substituteKnown(p.CopyPolynomial().Zap())
	T().P("op", "new equation").Infof("0 = %s", leq.PolynString(p))
	if c, isconst := p.IsConstant(); isconst {
		if !splineik.Is0(c) {
			return fmt.Errorf("%w: 0 = %s (off by %g)", ErrInconsistentEquation, leq.PolynString(p), c)
		}
		return nil // redundant equation
	}
	i, a := p.maxCoeff()
	rhs := p.CopyPolynomial() // 0 = a x.i + r  ⇒  x.i = -r/a
	delete(rhs.terms, i)
	rhs = rhs.Scale(-1 / a)
	T().P("var", leq.VarString(i)).Infof("## %s = %s", leq.VarString(i), leq.PolynString(rhs))
	for _, j := range sortedKeys(leq.dependents) {
		leq.dependents[j] = leq.dependents[j].Substitute(i, rhs)
	}
	leq.dependents[i] = rhs
	leq.harvestSolved()
	return nil
}

// Replace every solved and every dependent variable within p.
func (leq *LinEqSolver) substituteKnown(p Polynomial) Polynomial {
	for _, i := range p.Exponents() {
		if i == 0 {
			continue
		}
		if c, ok := leq.solved[i]; ok {
			p = p.Substitute(i, NewConstantPolynomial(c))
		} else if q, ok := leq.dependents[i]; ok {
			p = p.Substitute(i, q)
		}
	}
	return p
}

// Move dependent variables with a constant RHS over to the set of solved variables.
func (leq *LinEqSolver) harvestSolved() {
	for _, i := range sortedKeys(leq.dependents) {
		if c, isconst := leq.dependents[i].IsConstant(); isconst {
			delete(leq.dependents, i)
			leq.setSolved(i, splineik.Round(c))
		}
	}
}

// Mark a variable as solved. Sends a message to the variable resolver.
func (leq *LinEqSolver) setSolved(i int, c float64) {
	T().P("var", leq.VarString(i)).Infof("#### %s = %g", leq.VarString(i), c)
	leq.solved[i] = c
	if leq.varresolver != nil {
		leq.varresolver.SetVariableSolved(i, c)
	}
}

// Value returns the value of a solved variable x.i.
func (leq *LinEqSolver) Value(i int) (float64, error) {
	if c, ok := leq.solved[i]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsolved, leq.VarString(i))
}

// IsSolved is a predicate: is x.i known?
func (leq *LinEqSolver) IsSolved(i int) bool {
	_, ok := leq.solved[i]
	return ok
}

// Dependency returns the current equation x.i = p(i) for a dependent variable.
func (leq *LinEqSolver) Dependency(i int) (Polynomial, bool) {
	p, ok := leq.dependents[i]
	return p, ok
}

// VarString returns a readable variable name for an internal variable.
// Uses a VariableResolver, if present.
func (leq *LinEqSolver) VarString(i int) string {
	return TraceStringVar(i, leq.varresolver)
}

// PolynString outputs a polynomial as string. Uses VariableResolver, if present.
func (leq *LinEqSolver) PolynString(p Polynomial) string {
	return p.TraceString(leq.varresolver)
}

func sortedKeys(m EquationMap) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
