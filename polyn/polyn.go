// Package polyn is for arithmetic with linear polynomials and linear equations.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splineik"
)

// T traces to the equations tracer.
func T() tracing.Trace {
	return tracing.Select("equations")
}

// ErrIllegalDivisor indicates a division by zero or by a non-constant polynomial.
var ErrIllegalDivisor = errors.New("illegal divisor")

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅x[I]
//
// I > 0
type X struct {
	I int     // variable ID
	C float64 // coefficient
}

// New creates a polynomial, given the term coefficients and variable IDs.
//
// Use it as
//
//	polyn.New(8, polyn.X{2,5}, polyn.X{1,2/3} )
//
// to get
//
//	P(x) = 8 + 5b + 2/3a
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term variable ID must be at least 1, skipping it")
		} else {
			p.SetTerm(t.I, t.C)
		}
	}
	return p, err
}

// Polynomial is a type for linear polynomials
//
//	c + a.1 x.1 + a.2 x.2 + ... a.n x.n .
//
// We store the coefficients only. Index 0 is the constant term.
type Polynomial struct {
	terms map[int]float64
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{terms: make(map[int]float64)}
	p.terms[0] = c
	return p.Zap()
}

func (p *Polynomial) checkTerms() {
	if p.terms == nil {
		p.terms = map[int]float64{0: 0}
	}
}

// SetTerm sets the coefficient for a term a.i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, coeff float64) Polynomial {
	p.checkTerms()
	p.terms[i] = coeff
	return p
}

// GetCoeffForTerm gets the coefficient for term # i.
//
// Example:
//
//	p = x + 3x.2
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	return p.terms[i] // nil map yields 0
}

// GetConstantValue returns the constant term of a polynomial.
func (p Polynomial) GetConstantValue() float64 {
	return p.GetCoeffForTerm(0)
}

// TermCount returns the number of terms, including the constant term.
func (p Polynomial) TermCount() int {
	if p.terms == nil {
		return 1
	}
	return len(p.terms)
}

// Exponents returns the IDs of all terms in ascending order. 0 denotes the
// constant term.
func (p Polynomial) Exponents() []int {
	ids := make([]int, 0, len(p.terms))
	for i := range p.terms {
		ids = append(ids, i)
	}
	sort.Ints(ids)
	return ids
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	return p.GetCoeffForTerm(0), p.TermCount() == 1
}

// IsVariable checks wether
// a Polynomial is a variable?, i.e. a single term with coefficient = 1.
// Returns the ID of the variable and a flag.
func (p Polynomial) IsVariable() (int, bool) {
	if p.TermCount() == 2 && splineik.Is0(p.GetConstantValue()) {
		ids := p.Exponents()
		if splineik.Is1(p.GetCoeffForTerm(ids[1])) {
			return ids[1], true
		}
	}
	return -1, false
}

// CopyPolynomial makes a copy of a numeric Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := Polynomial{terms: make(map[int]float64, p.TermCount())}
	p1.terms[0] = 0
	for i, c := range p.terms {
		p1.terms[i] = c
	}
	return p1
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
// The constant term is always kept.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	for i, c := range p.terms {
		if i != 0 && splineik.Is0(c) {
			delete(p.terms, i)
		}
	}
	p.terms[0] = splineik.Zap(p.terms[0])
	return p
}

// Add adds two Polynomials. Returns a new Polynomial.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, 1)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial.
func (p Polynomial) Subtract(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, -1)
}

func (p Polynomial) addOrSub(p2 Polynomial, sign float64) Polynomial {
	p1 := p.CopyPolynomial()
	for i, c := range p2.terms {
		p1.terms[i] += sign * c
	}
	return p1.Zap()
}

// Scale multiplies every coefficient of p by c. Returns a new Polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.CopyPolynomial()
	for i, a := range p1.terms {
		p1.terms[i] = a * c
	}
	return p1.Zap()
}

// Multiply multiplies two Polynomials. One of both must be a constant.
func (p Polynomial) Multiply(p2 Polynomial) (Polynomial, error) {
	if c, isconst := p2.IsConstant(); isconst {
		return p.Scale(c), nil
	}
	if c, isconst := p.IsConstant(); isconst {
		return p2.Scale(c), nil
	}
	return Polynomial{}, fmt.Errorf("not implemented: <unknown> * <unknown>")
}

// Divide divides a polynomial by a numeric (not 0).
func (p Polynomial) Divide(p2 Polynomial) (Polynomial, error) {
	c, isconst := p2.IsConstant()
	if !isconst || splineik.Is0(c) {
		return Polynomial{}, fmt.Errorf("%w: %s", ErrIllegalDivisor, p2)
	}
	return p.Scale(1 / c), nil
}

// Substitute replaces variable x.i within p by polynomial q.
// If p does not contain x.i, a copy of p is returned.
func (p Polynomial) Substitute(i int, q Polynomial) Polynomial {
	a := p.GetCoeffForTerm(i)
	if i == 0 || splineik.Is0(a) {
		return p.CopyPolynomial()
	}
	p1 := p.CopyPolynomial()
	delete(p1.terms, i)
	return p1.Add(q.Scale(a))
}

// maxCoeff finds the variable with the coefficient of maximum absolute value.
// Returns 0 if p is constant.
func (p Polynomial) maxCoeff() (int, float64) {
	var maxi int
	var maxc float64
	for _, i := range p.Exponents() {
		if i == 0 {
			continue
		}
		if c := p.terms[i]; math.Abs(c) > math.Abs(maxc) {
			maxi, maxc = i, c
		}
	}
	return maxi, maxc
}

// String creates a readable string representation for a Polynomial.
// Uses internal variable representations x.<n> where n corresponds to
// the variable's real life ID.
func (p Polynomial) String() string {
	return p.TraceString(nil)
}

// TraceString creates a string representation for a Polynomial. Uses a variable name
// resolver to print 'real' variable identifiers. If no resolver is
// present, variables are printed in a generic form: +/- a.i x.i, where i is
// the position of the term.
func (p Polynomial) TraceString(resolv VariableResolver) string {
	var buffer bytes.Buffer
	for _, i := range p.Exponents() {
		c := p.terms[i]
		if i == 0 {
			if resolv == nil {
				buffer.WriteString(fmt.Sprintf("{ %g } ", splineik.Round(c)))
			} else if !splineik.Is0(c) || p.TermCount() == 1 {
				buffer.WriteString(fmt.Sprintf("%g", splineik.Round(c)))
			}
			continue
		}
		if resolv == nil {
			buffer.WriteString(fmt.Sprintf("{ %g x.%d } ", splineik.Round(c), i))
			continue
		}
		if buffer.Len() > 0 {
			if c < 0 {
				buffer.WriteString(" - ")
			} else {
				buffer.WriteString(" + ")
			}
		} else if c < 0 {
			buffer.WriteString("-")
		}
		if !splineik.Is1(math.Abs(c)) {
			buffer.WriteString(fmt.Sprintf("%g", math.Abs(c)))
		}
		buffer.WriteString(resolv.GetVariableName(i))
	}
	return buffer.String()
}

// TraceStringVar is a helper for tracing output. Parameter resolv may be nil.
func TraceStringVar(i int, resolv VariableResolver) string {
	if resolv == nil {
		return fmt.Sprintf("x.%d", i)
	}
	return resolv.GetVariableName(i)
}
