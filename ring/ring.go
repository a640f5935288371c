// Package ring implements RNS-accelerated modular arithmetic operations for polynomials, including:
// RNS basis extension, RNS rescaling, number theoretic transform (NTT), and other algebraic operations.
package ring

import (
	"fmt"
	"math/bits"
)

// MinimumRingDegreeForLoopUnrolledOperations is the minimum polynomial degree for which
// the unrolled-by-8 loops of the arithmetic operations in this package are valid.
const MinimumRingDegreeForLoopUnrolledOperations = 16

// Type is the type of ring used by the cyclotomic polynomial quotient.
type Type int

const (
	// Standard is the default ring type, computing polynomials modulo X^N+1.
	Standard Type = iota
	// ConjugateInvariant is the ring type corresponding to the quotient
	// Z[X+X^-1]/(X^2N+1), a closed sub-ring of Z[X]/(X^2N+1).
	ConjugateInvariant
)

// NTTTable stores the precomputation required to compute an NTT over a SubRing.
type NTTTable struct {
	NthRoot       uint64
	PrimitiveRoot uint64
	Factors       []uint64
	RootsForward  []uint64 // Montgomery form, bit-reversed order
	RootsBackward []uint64 // Montgomery form, bit-reversed order
	NInv          uint64   // [N^-1] mod Modulus, Montgomery form
}

// Ring is a fixed-degree cyclotomic ring Z[X]/(X^N+1) instantiated as a tower of
// SubRings, each SubRing carrying one of the moduli of an RNS modulus chain.
// A Ring is always usable at any level between 0 and its maximum level; the
// current working level is controlled by AtLevel.
type Ring struct {
	SubRings []*SubRing
	level    int

	// RescaleParams stores, for each level l in [1, MaxLevel], the Montgomery-form
	// inverse of the modulus q_l modulo each of the moduli q_0, ..., q_{l-1}.
	// RescaleParams[l-1][i] = (q_l)^-1 mod q_i, used by the DivByLastModulus family.
	RescaleParams [][]uint64
}

// NewRing creates a new Ring with the standard NTT, with N the ring degree and Moduli the modulus chain.
// Moduli must all be NTT-friendly primes for the given N (i.e. congruent to 1 modulo 2N).
func NewRing(N int, Moduli []uint64) (r *Ring, err error) {
	return NewRingWithCustomNTT(N, Moduli, NewNumberTheoreticTransformerStandard, 2*N)
}

// NewRingConjugateInvariant creates a new Ring with the conjugate-invariant NTT.
func NewRingConjugateInvariant(N int, Moduli []uint64) (r *Ring, err error) {
	return NewRingWithCustomNTT(N, Moduli, NewNumberTheoreticTransformerConjugateInvariant, 4*N)
}

// NewRingFromType creates a new Ring with the NTT variant matching the given Type.
func NewRingFromType(N int, Moduli []uint64, ringType Type) (r *Ring, err error) {
	switch ringType {
	case Standard:
		return NewRing(N, Moduli)
	case ConjugateInvariant:
		return NewRingConjugateInvariant(N, Moduli)
	default:
		return nil, fmt.Errorf("invalid ring type")
	}
}

// GaloisGen is an integer of order N=2^d modulo M=2N that spans Z_M together with -1.
// The j-th ring automorphism maps the root zeta to zeta^(GaloisGen^j).
const GaloisGen uint64 = 5

// NewRingWithCustomNTT creates a new Ring with degree N, modulus chain Moduli, and a user-defined NTT transform and primitive Nth root of unity.
func NewRingWithCustomNTT(N int, Moduli []uint64, ntt func(*SubRing, int) NumberTheoreticTransformer, NthRoot int) (r *Ring, err error) {

	if len(Moduli) == 0 {
		return nil, fmt.Errorf("invalid Moduli: length must be greater than 0")
	}

	r = &Ring{
		SubRings: make([]*SubRing, len(Moduli)),
		level:    len(Moduli) - 1,
	}

	for i, qi := range Moduli {

		if r.SubRings[i], err = NewSubRingWithCustomNTT(N, qi, ntt, NthRoot); err != nil {
			return nil, fmt.Errorf("invalid modulus[%d]: %w", i, err)
		}

		if err = r.SubRings[i].generateNTTConstants(); err != nil {
			return nil, fmt.Errorf("invalid modulus[%d]: %w", i, err)
		}
	}

	r.RescaleParams = make([][]uint64, len(Moduli)-1)
	for l := 1; l < len(Moduli); l++ {
		r.RescaleParams[l-1] = make([]uint64, l)
		for i, s := range r.SubRings[:l] {
			r.RescaleParams[l-1][i] = MForm(ModExp(Moduli[l]%s.Modulus, s.Modulus-2, s.Modulus), s.Modulus, s.BRedConstant)
		}
	}

	return r, nil
}

// AtLevel returns a shallow copy of the target Ring, configured to operate at the given level.
// The returned Ring shares the SubRings of the receiver: mutating one does not allocate a new
// set of moduli, it simply changes how many of them are active.
func (r *Ring) AtLevel(level int) *Ring {

	if level < 0 || level > r.MaxLevel() {
		panic(fmt.Errorf("invalid level: must be in [0, %d] but is %d", r.MaxLevel(), level))
	}

	return &Ring{
		SubRings:      r.SubRings,
		level:         level,
		RescaleParams: r.RescaleParams,
	}
}

// Level returns the current level of the target Ring, which is the number of moduli minus one.
func (r *Ring) Level() int {
	return r.level
}

// MaxLevel returns the maximum level, i.e. the number of moduli of the modulus chain minus one.
func (r *Ring) MaxLevel() int {
	return len(r.SubRings) - 1
}

// N returns the ring degree.
func (r *Ring) N() int {
	return r.SubRings[0].N
}

// NthRoot returns the multiplicative order of the primitive root used for the NTT.
func (r *Ring) NthRoot() uint64 {
	return r.SubRings[0].NthRoot
}

// Type returns the Type of the ring, either Standard or ConjugateInvariant.
func (r *Ring) Type() Type {
	return r.SubRings[0].Type()
}

// ModuliChainLength returns the number of active moduli, i.e. level+1.
func (r *Ring) ModuliChainLength() int {
	return r.level + 1
}

// ModuliChain returns the list of active moduli.
func (r *Ring) ModuliChain() (moduli []uint64) {
	moduli = make([]uint64, r.level+1)
	for i, s := range r.SubRings[:r.level+1] {
		moduli[i] = s.Modulus
	}
	return
}

// MRedConstants returns the slice of Montgomery reduction constants of the active moduli.
func (r *Ring) MRedConstants() (mredConstants []uint64) {
	mredConstants = make([]uint64, r.level+1)
	for i, s := range r.SubRings[:r.level+1] {
		mredConstants[i] = s.MRedConstant
	}
	return
}

// BRedConstants returns the slice of Barrett reduction constants of the active moduli.
func (r *Ring) BRedConstants() (bredConstants [][2]uint64) {
	bredConstants = make([][2]uint64, r.level+1)
	for i, s := range r.SubRings[:r.level+1] {
		bredConstants[i] = s.BRedConstant
	}
	return
}

// LogModuli returns the total bit size of the active modulus chain.
func (r *Ring) LogModuli() (logmod float64) {
	for _, s := range r.SubRings[:r.level+1] {
		logmod += float64(bits.Len64(s.Modulus))
	}
	return
}

// NewPoly creates a new polynomial with all coefficients set to zero, sized for the current level.
func (r *Ring) NewPoly() *Poly {
	return NewPoly(r.N(), r.level)
}

// Equal reports whether p1 and p2 hold identical coefficients up to the active level.
func (r *Ring) Equal(p1, p2 *Poly) bool {
	if p1 == p2 {
		return true
	}
	if p1 == nil || p2 == nil {
		return false
	}
	for i := 0; i < r.level+1; i++ {
		if len(p1.Coeffs[i]) != len(p2.Coeffs[i]) {
			return false
		}
		for j := range p1.Coeffs[i] {
			if p1.Coeffs[i][j] != p2.Coeffs[i][j] {
				return false
			}
		}
	}
	return true
}

// Add evaluates p3 = p1 + p2.
func (r *Ring) Add(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.Add(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// AddLazy evaluates p3 = p1 + p2 with p3 in [0, 2q-1].
func (r *Ring) AddLazy(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.AddLazy(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// Sub evaluates p3 = p1 - p2.
func (r *Ring) Sub(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.Sub(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// SubLazy evaluates p3 = p1 - p2 with p3 in [0, 2q-1].
func (r *Ring) SubLazy(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.SubLazy(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// Neg evaluates p2 = -p1.
func (r *Ring) Neg(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.Neg(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// Reduce evaluates p2 = p1 mod qi.
func (r *Ring) Reduce(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.Reduce(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// ReduceLazy evaluates p2 = p1 mod qi with p2 in [0, 2q-1].
func (r *Ring) ReduceLazy(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.ReduceLazy(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// MulCoeffs evaluates p3 = p1*p2 coefficient-wise.
func (r *Ring) MulCoeffs(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffs(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MulCoeffsMontgomery evaluates p3 = p1*p2 coefficient-wise, expecting p1 and p2 in the Montgomery domain.
func (r *Ring) MulCoeffsMontgomery(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffsMontgomery(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MulCoeffsMontgomeryLazy evaluates p3 = p1*p2 coefficient-wise, with p3 in [0, 2q-1].
func (r *Ring) MulCoeffsMontgomeryLazy(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffsMontgomeryLazy(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MulCoeffsMontgomeryThenAdd evaluates p3 = p3 + p1*p2 coefficient-wise.
func (r *Ring) MulCoeffsMontgomeryThenAdd(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffsMontgomeryThenAdd(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MulCoeffsMontgomeryThenSub evaluates p3 = p3 - p1*p2 coefficient-wise.
func (r *Ring) MulCoeffsMontgomeryThenSub(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffsMontgomeryThenSub(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MulCoeffsMontgomeryLazyThenAddLazy evaluates p3 = p3 + p1*p2 coefficient-wise, with p3 in [0, 3q-2].
func (r *Ring) MulCoeffsMontgomeryLazyThenAddLazy(p1, p2, p3 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulCoeffsMontgomeryLazyThenAddLazy(p1.Coeffs[i], p2.Coeffs[i], p3.Coeffs[i])
	}
}

// MForm switches p1 to the Montgomery domain and writes the result on p2.
func (r *Ring) MForm(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MForm(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// MFormLazy is identical to MForm, except that it returns a value in [0, 2q-1].
func (r *Ring) MFormLazy(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MFormLazy(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// InvMForm switches back p1 from the Montgomery domain and writes the result on p2.
func (r *Ring) InvMForm(p1, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.IMForm(p1.Coeffs[i], p2.Coeffs[i])
	}
}

// AddScalar evaluates p2 = p1 + scalar.
func (r *Ring) AddScalar(p1 *Poly, scalar uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.AddScalar(p1.Coeffs[i], scalar, p2.Coeffs[i])
	}
}

// SubScalar evaluates p2 = p1 - scalar.
func (r *Ring) SubScalar(p1 *Poly, scalar uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.SubScalar(p1.Coeffs[i], scalar, p2.Coeffs[i])
	}
}

// MulScalarMontgomery evaluates p2 = p1*scalarMont, assuming scalarMont is in the Montgomery domain.
func (r *Ring) MulScalarMontgomery(p1 *Poly, scalarMont uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		s.MulScalarMontgomery(p1.Coeffs[i], scalarMont, p2.Coeffs[i])
	}
}
