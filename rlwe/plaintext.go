package rlwe

import (
	"github.com/tuneinsight/gofhe/ring"
)

// Plaintext is a common base type for RLWE plaintexts.
type Plaintext struct {
	MetaData
	Value *ring.Poly
}

// NewPlaintext creates a new Plaintext at level `level` from the parameters.
func NewPlaintext(params ParametersInterface, level int) *Plaintext {
	return &Plaintext{
		Value: ring.NewPoly(params.N(), level),
		MetaData: MetaData{
			IsNTT: params.DefaultNTTFlag(),
		},
	}
}

// NewPlaintextAtLevelFromPoly constructs a new Plaintext at a specific level
// where the message is set to the passed poly. Only the level of poly is checked
// (it panics if it is smaller than level) and the returned Plaintext will share its backing array of coefficients.
func NewPlaintextAtLevelFromPoly(level int, poly *ring.Poly) *Plaintext {
	if poly.Level() < level {
		panic("cannot NewPlaintextAtLevelFromPoly: provided ring.Poly level is too small")
	}

	v0 := new(ring.Poly)
	v0.Coeffs = poly.Coeffs[:level+1]
	v0.Buff = poly.Buff[:poly.N()*(level+1)]

	return &Plaintext{Value: v0}
}

// Degree returns the degree of the target element.
func (pt *Plaintext) Degree() int {
	return 0
}

// Level returns the level of the target element.
func (pt *Plaintext) Level() int {
	return pt.Value.Level()
}

// Resize resizes the underlying polynomial to the given level.
func (pt *Plaintext) Resize(level int) {
	pt.Value.Resize(level)
}

// Copy copies the `other` plaintext value into the receiver plaintext.
func (pt *Plaintext) Copy(other *Plaintext) {
	if other != nil && other.Value != nil {
		pt.Value.Copy(other.Value)
		pt.MetaData = other.MetaData
	}
}

// CopyNew creates a new element as a copy of the target element.
func (pt *Plaintext) CopyNew() *Plaintext {
	return &Plaintext{
		Value:    pt.Value.CopyNew(),
		MetaData: pt.MetaData,
	}
}

// ModSwitchDropToNext truncates the plaintext to the next level by dropping
// its last RNS limb, without touching any coefficient or the scale: the
// lossless, NTT-domain-only level change a caller uses to align an APX
// plaintext with a ciphertext that has already been rescaled or dropped
// down the modulus chain. pt must be in the NTT domain.
func (pt *Plaintext) ModSwitchDropToNext() {
	if !pt.IsNTT {
		panic("cannot ModSwitchDropToNext: plaintext must be in the NTT domain")
	}
	level := pt.Level()
	if level == 0 {
		panic("cannot ModSwitchDropToNext: plaintext is already at the last level")
	}
	pt.Value.Resize(level - 1)
}
