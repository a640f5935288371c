// Package ckks implements the leveled approximate-number (APX) homomorphic
// scheme: a CKKS/HEAAN-style cryptosystem layered over the generic
// rlwe.Parameters/rlwe.Ciphertext machinery, where a plaintext slot vector of
// complex (or real) numbers is packed via the canonical embedding and every
// ciphertext carries a floating-point scale that tracks its fixed-point
// magnification.
package ckks

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/ring/distribution"
	"github.com/tuneinsight/gofhe/rlwe"
)

// ParametersLiteral is a literal representation of APX parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. NewParametersFromLiteral generates the checked
// Parameters from it.
type ParametersLiteral struct {
	LogN            int
	Q               []uint64
	P               []uint64
	LogQ            []int `json:",omitempty"`
	LogP            []int `json:",omitempty"`
	Pow2Base        int
	Xe              distribution.Distribution
	Xs              distribution.Distribution
	RingType        ring.Type
	LogDefaultScale int // log2 of the default plaintext scale
}

// RLWEParametersLiteral returns the rlwe.ParametersLiteral of the target ParametersLiteral.
func (p ParametersLiteral) RLWEParametersLiteral() rlwe.ParametersLiteral {
	return rlwe.ParametersLiteral{
		LogN:           p.LogN,
		Q:              p.Q,
		P:              p.P,
		LogQ:           p.LogQ,
		LogP:           p.LogP,
		Pow2Base:       p.Pow2Base,
		Xe:             p.Xe,
		Xs:             p.Xs,
		RingType:       p.RingType,
		DefaultScale:   rlwe.NewScale(math.Exp2(float64(p.LogDefaultScale))),
		DefaultNTTFlag: true,
	}
}

// Parameters represents a parameter set for the APX (CKKS) cryptosystem. Its
// fields are private and immutable; see ParametersLiteral for user-specified
// parameters.
type Parameters struct {
	rlwe.Parameters
}

// NewParametersFromLiteral instantiates a set of APX parameters from a ParametersLiteral.
// See rlwe.NewParametersFromLiteral for the default values substituted for unset optional fields.
func NewParametersFromLiteral(pl ParametersLiteral) (Parameters, error) {
	rlweParams, err := rlwe.NewParametersFromLiteral(pl.RLWEParametersLiteral())
	if err != nil {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w", err)
	}
	if pl.LogDefaultScale <= 0 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: LogDefaultScale must be > 0")
	}
	return Parameters{Parameters: rlweParams}, nil
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN:            p.LogN(),
		Q:               p.Q(),
		P:               p.P(),
		Pow2Base:        p.Pow2Base(),
		Xe:              p.Xe(),
		Xs:              p.Xs(),
		RingType:        p.RingType(),
		LogDefaultScale: p.LogDefaultScale(),
	}
}

// LogDefaultScale returns log2 of the default plaintext scaling factor, rounded to the nearest integer.
func (p Parameters) LogDefaultScale() int {
	return int(math.Round(math.Log2(p.DefaultScale().Float64())))
}

// PlaintextDimensions returns the [rows, columns] dimensions of the matrix
// that can be SIMD-packed into a single plaintext, following the same
// [rows, cols] convention as bfv.Parameters.PlaintextDimensions.
func (p Parameters) PlaintextDimensions() [2]int {
	switch p.RingType() {
	case ring.Standard:
		return [2]int{1, p.N() >> 1}
	case ring.ConjugateInvariant:
		return [2]int{1, p.N()}
	default:
		panic("cannot PlaintextDimensions: invalid ring type")
	}
}

// PlaintextLogDimensions returns log2 of PlaintextDimensions.
func (p Parameters) PlaintextLogDimensions() [2]int {
	switch p.RingType() {
	case ring.Standard:
		return [2]int{0, p.LogN() - 1}
	case ring.ConjugateInvariant:
		return [2]int{0, p.LogN()}
	default:
		panic("cannot PlaintextLogDimensions: invalid ring type")
	}
}

// PlaintextSlots returns the total number of slots a full-width plaintext can pack.
func (p Parameters) PlaintextSlots() int {
	dims := p.PlaintextDimensions()
	return dims[0] * dims[1]
}

// MaxSlots implements rlwe.ParametersInterface.
func (p Parameters) MaxSlots() [2]int {
	return p.PlaintextDimensions()
}

// MaxLogSlots implements rlwe.ParametersInterface.
func (p Parameters) MaxLogSlots() [2]int {
	return p.PlaintextLogDimensions()
}

// GaloisElement returns the Galois element for a column rotation by k slots,
// implementing rlwe.ParametersInterface.
func (p Parameters) GaloisElement(k int) uint64 {
	return p.GaloisElementForColumnRotationBy(k)
}

// GaloisElements returns the Galois elements for the given column rotations.
func (p Parameters) GaloisElements(k []int) (galEls []uint64) {
	galEls = make([]uint64, len(k))
	for i, ki := range k {
		galEls[i] = p.GaloisElement(ki)
	}
	return
}

// SolveDiscreteLogGaloisElement returns k such that GaloisElement(k) == galEl.
func (p Parameters) SolveDiscreteLogGaloisElement(galEl uint64) int {
	return int(p.RotationFromGaloisElement(galEl))
}

// ModInvGaloisElement returns the Galois element of the inverse automorphism of galEl.
func (p Parameters) ModInvGaloisElement(galEl uint64) uint64 {
	return p.InverseGaloisElement(galEl)
}

// GaloisElementForComplexConjugation returns the Galois element X -> X^-1
// that swaps every slot with its complex conjugate.
func (p Parameters) GaloisElementForComplexConjugation() uint64 {
	return p.GaloisElementForRowRotation()
}

// GetOptimalScalingFactor returns a scale b such that Rescale(a*b) == c,
// i.e. b == c/a scaled up by the modulus consumed at the given level.
func (p Parameters) GetOptimalScalingFactor(a, c rlwe.Scale, level int) (b rlwe.Scale) {
	v := new(big.Float).SetPrec(rlwe.ScalePrecision).SetUint64(p.Q()[level])
	v.Mul(v, &c.Value)
	v.Quo(v, &a.Value)
	b = rlwe.NewScale(v)
	return
}

// Equal compares two Parameters for equality, implementing rlwe.ParametersInterface.
func (p Parameters) Equal(other rlwe.ParametersInterface) bool {
	switch other := other.(type) {
	case Parameters:
		return p.Parameters.Equal(other.Parameters)
	default:
		return false
	}
}

// MarshalBinary returns a []byte representation of the parameter set.
func (p Parameters) MarshalBinary() ([]byte, error) {
	return p.MarshalJSON()
}

// UnmarshalBinary decodes a []byte into the target Parameters.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	return p.UnmarshalJSON(data)
}

// MarshalJSON returns a JSON representation of the parameter set.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the target Parameters.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
