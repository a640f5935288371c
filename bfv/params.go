// Package bfv implements the leveled integer (INT) homomorphic scheme: a
// classical Brakerski/Fan-Vercauteren cryptosystem layered over the generic
// rlwe.Parameters/rlwe.Ciphertext machinery, using the BEHZ RNS pipeline
// (see behz.go) for ciphertext-ciphertext multiplication.
package bfv

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/ring/distribution"
	"github.com/tuneinsight/gofhe/rlwe"
	"github.com/tuneinsight/gofhe/utils"
)

// ParametersLiteral is a literal representation of BFV parameters. It has public
// fields and is used to express unchecked user-defined parameters literally into
// Go programs. NewParametersFromLiteral generates the checked Parameters from it.
type ParametersLiteral struct {
	LogN     int
	Q        []uint64
	P        []uint64
	LogQ     []int `json:",omitempty"`
	LogP     []int `json:",omitempty"`
	Pow2Base int
	Xe       distribution.Distribution
	Xs       distribution.Distribution
	RingType ring.Type
	T        uint64 // Plaintext modulus
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
		RingType:       ring.Standard,
		DefaultScale:   rlwe.NewScale(1),
		DefaultNTTFlag: false,
	}
}

// Parameters represents a parameter set for the INT (BFV) cryptosystem. Its
// fields are private and immutable; see ParametersLiteral for user-specified
// parameters.
type Parameters struct {
	rlwe.Parameters
	ringT *ring.Ring

	plainUpperHalfThreshold uint64
	plainUpperHalfIncrement []uint64
}

// NewParameters instantiates a set of BFV parameters from generic RLWE parameters
// and the plaintext modulus t. It returns a non-nil error if the parameters are invalid.
func NewParameters(rlweParams rlwe.Parameters, t uint64) (p Parameters, err error) {

	if rlweParams.DefaultNTTFlag() {
		return Parameters{}, fmt.Errorf("provided RLWE parameters are invalid for the INT scheme (DefaultNTTFlag must be false: INT ciphertexts are coefficient-domain by default)")
	}

	if t == 0 {
		return Parameters{}, fmt.Errorf("invalid parameters: t = 0")
	}

	if utils.IsInSliceUint64(t, rlweParams.Q()) {
		return Parameters{}, fmt.Errorf("insecure parameters: t|Q")
	}

	if rlweParams.Equal(rlwe.Parameters{}) {
		return Parameters{}, fmt.Errorf("provided RLWE parameters are invalid")
	}

	Q := rlweParams.Q()
	for _, qi := range Q {
		if t >= qi {
			return Parameters{}, fmt.Errorf("t=%d must be smaller than every modulus of Q (found %d)", t, qi)
		}
	}

	// Find the largest cyclotomic order enabled by T, mirroring the constraint
	// that the plaintext ring must itself support a negacyclic NTT.
	order := uint64(1 << bits.Len64(t))
	for t&(order-1) != 1 {
		order >>= 1
	}

	if order < 16 {
		return Parameters{}, fmt.Errorf("provided plaintext modulus t has cyclotomic order < 16 (ring degree of minimum 8 is required)")
	}

	var ringT *ring.Ring
	if ringT, err = ring.NewRing(utils.Min(rlweParams.N(), int(order>>1)), []uint64{t}); err != nil {
		return Parameters{}, fmt.Errorf("provided plaintext modulus t is invalid: %w", err)
	}

	// plainUpperHalfThreshold splits the unsigned residues [0,t) into a
	// "positive" half [0, threshold) and a "negative" half [threshold, t):
	// a raw plaintext coefficient at or above the threshold is understood to
	// represent v-t, and must be re-centered by plainUpperHalfIncrement[i]
	// (== q_i - t) before it is lifted into limb q_i, so that multiplying two
	// such lifted values does not blow up the noise budget the way lifting
	// the unsigned residue verbatim would.
	plainUpperHalfThreshold := (t + 1) >> 1
	plainUpperHalfIncrement := make([]uint64, len(Q))
	for i, qi := range Q {
		plainUpperHalfIncrement[i] = qi - t
	}

	return Parameters{
		Parameters:              rlweParams,
		ringT:                   ringT,
		plainUpperHalfThreshold: plainUpperHalfThreshold,
		plainUpperHalfIncrement: plainUpperHalfIncrement,
	}, nil
}

// NewParametersFromLiteral instantiates a set of BFV parameters from a ParametersLiteral.
// See rlwe.NewParametersFromLiteral for the default values substituted for unset optional fields.
func NewParametersFromLiteral(pl ParametersLiteral) (Parameters, error) {
	rlweParams, err := rlwe.NewParametersFromLiteral(pl.RLWEParametersLiteral())
	if err != nil {
		return Parameters{}, err
	}
	return NewParameters(rlweParams, pl.T)
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		LogN:     p.LogN(),
		Q:        p.Q(),
		P:        p.P(),
		Pow2Base: p.Pow2Base(),
		Xe:       p.Xe(),
		Xs:       p.Xs(),
		T:        p.T(),
		RingType: p.RingType(),
	}
}

// T returns the plaintext coefficient modulus t.
func (p Parameters) T() uint64 {
	return p.ringT.SubRings[0].Modulus
}

// LogT returns log2(t).
func (p Parameters) LogT() float64 {
	return math.Log2(float64(p.T()))
}

// RingT returns a pointer to the plaintext-space ring R_t.
func (p Parameters) RingT() *ring.Ring {
	return p.ringT
}

// Delta returns floor(Q/t), the scaling factor used to lift plaintext
// coefficients (in [0,t)) into the ciphertext-space ring modulo Q.
func (p Parameters) Delta() *big.Int {
	delta := new(big.Int).Div(p.QBigInt(), new(big.Int).SetUint64(p.T()))
	return delta
}

// PlainUpperHalfThreshold returns (t+1)/2: a raw plaintext coefficient at or
// above this value is understood to encode the negative residue v-t rather
// than the unsigned value v, under the classical BFV centered representation.
func (p Parameters) PlainUpperHalfThreshold() uint64 {
	return p.plainUpperHalfThreshold
}

// PlainUpperHalfIncrement returns, for each modulus q_i of Q (at the
// parameters' maximum level), the value q_i-t added to a plaintext
// coefficient at or above PlainUpperHalfThreshold before it is broadcast
// into limb q_i, so that it lifts to the same centered residue in every limb.
func (p Parameters) PlainUpperHalfIncrement() []uint64 {
	return p.plainUpperHalfIncrement
}

// PlaintextDimensions returns the [rows, columns] dimensions of the matrix that
// can be SIMD-packed into a single plaintext.
func (p Parameters) PlaintextDimensions() [2]int {
	switch p.RingType() {
	case ring.Standard:
		return [2]int{2, p.RingT().N() >> 1}
	case ring.ConjugateInvariant:
		return [2]int{1, p.RingT().N()}
	default:
		panic("cannot PlaintextDimensions: invalid ring type")
	}
}

// PlaintextLogDimensions returns log2 of PlaintextDimensions.
func (p Parameters) PlaintextLogDimensions() [2]int {
	switch p.RingType() {
	case ring.Standard:
		return [2]int{1, bits.Len64(uint64(p.RingT().N())) - 2}
	case ring.ConjugateInvariant:
		return [2]int{0, bits.Len64(uint64(p.RingT().N())) - 1}
	default:
		panic("cannot PlaintextLogDimensions: invalid ring type")
	}
}

// PlaintextSlots returns the total number of slots a plaintext can pack.
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

// Equal compares two Parameters for equality, implementing rlwe.ParametersInterface.
func (p Parameters) Equal(other rlwe.ParametersInterface) bool {
	switch other := other.(type) {
	case Parameters:
		return p.Parameters.Equal(other.Parameters) && p.T() == other.T()
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
