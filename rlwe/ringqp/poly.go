package ringqp

import (
	"github.com/google/go-cmp/cmp"
	"github.com/tuneinsight/gofhe/ring"
)

// Poly represents a polynomial in the ring of polynomial modulo Q*P.
// This type is simply the union type between two ring.Poly, each one
// containing the modulus Q and P coefficients of that polynomial.
// The modulus Q represent the ciphertext modulus and the modulus P
// the special primes for the RNS decomposition during homomorphic
// operations involving keys.
type Poly struct {
	Q, P *ring.Poly
}

// NewPoly creates a new polynomial at the given levels.
// If levelQ or levelP are negative, the corresponding polynomial will be nil.
func NewPoly(N, levelQ, levelP int) *Poly {
	var Q, P *ring.Poly

	if levelQ >= 0 {
		Q = ring.NewPoly(N, levelQ)
	}

	if levelP >= 0 {
		P = ring.NewPoly(N, levelP)
	}

	return &Poly{Q, P}
}

// LevelQ returns the level of the polynomial modulo Q.
// Returns -1 if the modulus Q is absent.
func (p *Poly) LevelQ() int {
	if p.Q != nil {
		return p.Q.Level()
	}
	return -1
}

// LevelP returns the level of the polynomial modulo P.
// Returns -1 if the modulus P is absent.
func (p *Poly) LevelP() int {
	if p.P != nil {
		return p.P.Level()
	}
	return -1
}

// Equal returns true if the receiver Poly is equal to the provided other Poly.
func (p *Poly) Equal(other *Poly) (v bool) {
	return cmp.Equal(p.Q, other.Q) && cmp.Equal(p.P, other.P)
}

// Copy copies the coefficients of other on the target polynomial.
// This method simply calls the Copy method for each of its sub-polynomials.
func (p *Poly) Copy(other *Poly) {
	if p.Q != nil {
		copy(p.Q.Buff, other.Q.Buff)
	}

	if p.P != nil {
		copy(p.P.Buff, other.P.Buff)
	}
}

// CopyLvl copies the values of p1 on p2.
// The operation is performed at levelQ for the ringQ and levelP for the ringP.
func CopyLvl(levelQ, levelP int, p1, p2 *Poly) {

	if p1.Q != nil && p2.Q != nil {
		ring.CopyLvl(levelQ, p1.Q, p2.Q)
	}

	if p1.P != nil && p2.P != nil {
		ring.CopyLvl(levelP, p1.P, p2.P)
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (p *Poly) CopyNew() *Poly {
	if p == nil {
		return nil
	}

	var Q, P *ring.Poly
	if p.Q != nil {
		Q = p.Q.CopyNew()
	}

	if p.P != nil {
		P = p.P.CopyNew()
	}

	return &Poly{Q, P}
}

// MarshalBinarySize64 returns the number of bytes the polynomial will take when
// written to data by Encode64. Assumes that each coefficient takes 8 bytes.
func (p *Poly) MarshalBinarySize64() (cnt int) {
	if p.Q != nil {
		cnt += p.Q.MarshalBinarySize64()
	}

	if p.P != nil {
		cnt += p.P.MarshalBinarySize64()
	}

	return
}

// Encode64 writes the target polynomial to data, using 8 bytes per coefficient.
// It returns the number of bytes written, and the corresponding error, if any.
func (p *Poly) Encode64(data []byte) (ptr int, err error) {

	if p.Q != nil {
		var inc int
		if inc, err = p.Q.Encode64(data[ptr:]); err != nil {
			return
		}
		ptr += inc
	}

	if p.P != nil {
		var inc int
		if inc, err = p.P.Encode64(data[ptr:]); err != nil {
			return
		}
		ptr += inc
	}

	return
}

// Decode64 decodes data into the target polynomial and returns the number of bytes read.
// Assumes that each coefficient is encoded on 8 bytes.
func (p *Poly) Decode64(data []byte) (ptr int, err error) {

	if p.Q != nil {
		var inc int
		if inc, err = p.Q.Decode64(data[ptr:]); err != nil {
			return
		}
		ptr += inc
	}

	if p.P != nil {
		var inc int
		if inc, err = p.P.Decode64(data[ptr:]); err != nil {
			return
		}
		ptr += inc
	}

	return
}

// Resize resizes the levels of the target polynomial to the provided levels.
// If the provided level is larger than the current level, then allocates zero
// coefficients, otherwise dereferences the coefficients above the provided level.
// Nil polynmials are unafected.
func (p *Poly) Resize(levelQ, levelP int) {
	if p.Q != nil {
		p.Q.Resize(levelQ)
	}

	if p.P != nil {
		p.P.Resize(levelP)
	}
}

