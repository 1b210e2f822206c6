package polyn

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type res map[int]float64 // a variable resolver for testing purposes

func newResolver() res {
	return make(map[int]float64)
}

func (r res) GetVariableName(n int) string { // get real-life name of x.i
	return string(rune(n + 96)) // 'a', 'b', ...
}

func (r res) SetVariableSolved(n int, v float64) { // message: x.i is solved
	r[n] = v // remember the value to assert test conditions
}

func snapshotPolynomial(p Polynomial) map[int]float64 {
	snap := make(map[int]float64)
	for _, i := range p.Exponents() {
		snap[i] = p.GetCoeffForTerm(i)
	}
	return snap
}

func mustAddEq(t *testing.T, leq *LinEqSolver, p Polynomial) {
	t.Helper()
	_, err := leq.AddEq(p)
	assert.NoError(t, err)
}

func assertBefore(t *testing.T, s, first, second string) {
	t.Helper()
	iFirst := strings.Index(s, first)
	iSecond := strings.Index(s, second)
	assert.NotEqual(t, -1, iFirst, "missing substring %q", first)
	assert.NotEqual(t, -1, iSecond, "missing substring %q", second)
	assert.Less(t, iFirst, iSecond, "expected %q before %q", first, second)
}

// --- Tests -----------------------------------------------------------------

func TestPolynSimple(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	if p.TermCount() != 1 {
		t.Fail()
	}
	p.SetTerm(1, 3)
	if p.TermCount() != 2 {
		t.Fail()
	}
	_, isconst := p.IsConstant()
	assert.False(t, isconst, "did falsely recognize non-constant polynomial as constant")
}

func TestZapPolyn(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := NewConstantPolynomial(0.5)
	p.SetTerm(1, 0.0000000005)
	p = p.Zap()
	_, isconst := p.IsConstant()
	assert.True(t, isconst, "Expected polynomial to be of constant type, isn't")
}

func TestPolynArithmetic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(10, X{1, 7}, X{2, 2})
	q, _ := New(4, X{1, 2}, X{3, 9})
	pBefore, qBefore := snapshotPolynomial(p), snapshotPolynomial(q)
	r := p.Subtract(q)
	assert.InDelta(t, 6.0, r.GetCoeffForTerm(0), 1e-9)
	assert.InDelta(t, 5.0, r.GetCoeffForTerm(1), 1e-9)
	assert.InDelta(t, 2.0, r.GetCoeffForTerm(2), 1e-9)
	assert.InDelta(t, -9.0, r.GetCoeffForTerm(3), 1e-9)
	s := p.Add(q)
	assert.InDelta(t, 9.0, s.GetCoeffForTerm(1), 1e-9)
	assert.Equal(t, pBefore, snapshotPolynomial(p), "arithmetic mutated left operand")
	assert.Equal(t, qBefore, snapshotPolynomial(q), "arithmetic mutated right operand")
}

func TestPolynMulDiv(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(6, X{1, 4}, X{2, 2})
	pr, err := p.Multiply(NewConstantPolynomial(-2.0))
	assert.NoError(t, err)
	assert.InDelta(t, -8.0, pr.GetCoeffForTerm(1), 1e-9)
	pr, err = NewConstantPolynomial(3).Multiply(p)
	assert.NoError(t, err)
	assert.InDelta(t, 18.0, pr.GetConstantValue(), 1e-9)
	_, err = p.Multiply(p)
	assert.Error(t, err)
	pr, err = p.Divide(NewConstantPolynomial(2.0))
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, pr.GetCoeffForTerm(2), 1e-9)
	_, err = p.Divide(NewConstantPolynomial(0.0))
	assert.True(t, errors.Is(err, ErrIllegalDivisor), "expected error for division by zero")
}

func TestPolynSubst(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 10}, X{2, 20})
	p2, _ := New(2, X{3, 30}, X{4, 40})
	p = p.Substitute(1, p2)
	t.Logf("T -> p = %s\n", p.String())
	assert.InDelta(t, 300.0, p.GetCoeffForTerm(3), 1e-9)
	assert.InDelta(t, 21.0, p.GetConstantValue(), 1e-9)
	assert.InDelta(t, 0.0, p.GetCoeffForTerm(1), 1e-9)
}

func TestPolynMaxCoeff(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(1, X{1, 8}, X{2, 2}, X{3, -9})
	i, c := p.maxCoeff()
	assert.Equal(t, 3, i)
	assert.InDelta(t, -9.0, c, 1e-9)
	p, _ = New(0, X{1, 5}, X{2, -5}, X{4, 5})
	i, _ = p.maxCoeff()
	assert.Equal(t, 1, i, "tie should resolve to lowest ID in ascending scan")
}

func TestPolynVariable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := New(0, X{3, 1})
	pos, ok := p.IsVariable()
	assert.True(t, ok)
	assert.Equal(t, 3, pos)
	q, _ := New(1, X{3, 1})
	_, ok = q.IsVariable()
	assert.False(t, ok)
}

func TestTraceStringDeterministicOrdering(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := newResolver()
	assert.Equal(t, "x.3", TraceStringVar(3, nil))
	assert.Equal(t, "c", TraceStringVar(3, r))
	p, _ := New(0, X{8, 1}, X{2, 1}, X{5, -2})
	s := p.TraceString(r)
	assertBefore(t, s, "b", "e")
	assertBefore(t, s, "e", "h")
	assert.Equal(t, "b - 2e + h", s)
}

func TestLEQCharacterizationSimpleSystem(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	r := newResolver()
	leq.SetVariableResolver(r)
	p, _ := New(6, X{1, -1}, X{2, -1}) // a+b=6
	q, _ := New(2, X{1, 3}, X{2, -1})  // b=2+3a
	_, err := leq.AddEqs([]Polynomial{p, q})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, r[1], 1e-9, "unexpected solution for a")
	assert.InDelta(t, 5.0, r[2], 1e-9, "unexpected solution for b")
	v, err := leq.Value(1)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestAddEqsEmptyList(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	_, err := leq.AddEqs(nil)
	assert.True(t, errors.Is(err, ErrEmptyEquationList))
}

func TestLEQPartial(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	r := newResolver()
	leq.SetVariableResolver(r)
	p1, _ := New(100, X{1, -2})           // 2a=100   =>  0=100-2a
	p2, _ := New(100, X{2, -1}, X{3, -1}) // 100=b+c  =>  0=100-b-c
	mustAddEq(t, leq, p1)
	mustAddEq(t, leq, p2)
	assert.InDelta(t, 50.0, r[1], 1e-9)
	assert.False(t, leq.IsSolved(2))
	_, err := leq.Value(3)
	assert.True(t, errors.Is(err, ErrUnsolved))
}

func TestLEQInconsistent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	p1, _ := New(100, X{1, -1}) // a = 100
	p2, _ := New(99, X{1, -2})  // 2a = 99
	mustAddEq(t, leq, p1)
	_, err := leq.AddEq(p2)
	assert.True(t, errors.Is(err, ErrInconsistentEquation))
}

func TestLEQElimination(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	r := newResolver()
	leq.SetVariableResolver(r)
	p1, _ := New(100, X{1, -1})                          // a=100
	p2, _ := New(0, X{1, 2}, X{2, -1}, X{3, 1}, X{4, 4}) // 2a=b-c-4d
	p3, _ := New(0, X{2, 1}, X{3, -1})                   // b=c
	mustAddEq(t, leq, p1)
	mustAddEq(t, leq, p2)
	mustAddEq(t, leq, p3) // eliminates b and c from p2 => d solved
	d, found := r[4]
	assert.True(t, found, "d still unsolved")
	assert.InDelta(t, -50.0, d, 1e-9)
}

func TestLEQRedundant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	leq := NewLinEqSolver()
	r := newResolver()
	leq.SetVariableResolver(r)
	p1, _ := New(0, X{2, -1}, X{3, 1}) // b=c
	p2, _ := New(0, X{3, -1}, X{4, 1}) // c=d
	p3, _ := New(0, X{4, -1}, X{2, 1}) // d=b, redundant
	mustAddEq(t, leq, p1)
	mustAddEq(t, leq, p2)
	mustAddEq(t, leq, p3)
	p4, _ := New(0, X{1, -1}, X{2, 1}, X{3, 1}, X{4, 1}) // a=b+c+d
	mustAddEq(t, leq, p4)                                // now d=a/3
	p, ok := leq.Dependency(4)
	assert.True(t, ok)
	assert.Equal(t, 2, p.TermCount()) // d = 0 + 1/3a
	assert.InDelta(t, 1.0/3, p.GetCoeffForTerm(1), 1e-9)
}
