package ring

import (
	"math/big"
	"math/bits"
)

//============================
//=== MONTGOMERY REDUCTION ===
//============================

// GenMRedConstant computes the constant qInv = (q^-1) mod 2^64 required for MRed.
func GenMRedConstant(q uint64) (qInv uint64) {
	qInv = 1
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return
}

// MForm returns a*2^64 mod q.
func MForm(a, q uint64, u [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, u[1])
	r = -(a*u[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// MFormConstant is identical to MForm, except that it runs in constant time
// and returns a value in [0, 2q-1).
func MFormConstant(a, q uint64, u [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, u[1])
	r = -(a*u[0] + mhi) * q
	return
}

// MFormLazy is identical to MForm, except that it returns a value in [0, 2q-1).
func MFormLazy(a, q uint64, u [2]uint64) (r uint64) {
	return MFormConstant(a, q, u)
}

// InvMForm returns a*(1/2^64) mod q.
func InvMForm(a, q, mredConstant uint64) (r uint64) {
	r, _ = bits.Mul64(a*mredConstant, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// InvMFormConstant is identical to InvMForm, except that it runs in constant time
// and returns a value in [0, 2q-1).
func InvMFormConstant(a, q, mredConstant uint64) (r uint64) {
	r, _ = bits.Mul64(a*mredConstant, q)
	r = q - r
	return
}

// MRed operates a 64x64 bit multiplication with a Montgomery reduction over a radix of 2^64.
func MRed(x, y, q, mredConstant uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * mredConstant
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	if r >= q {
		r -= q
	}
	return
}

// MRedLazy is identical to MRed except it runs in constant time and returns a value in [0, 2q-1).
func MRedLazy(x, y, q, mredConstant uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * mredConstant
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	return
}

//==========================
//=== BARRETT REDUCTION  ===
//==========================

// GenBRedConstant computes the constant floor(2^128/q) required for BRed.
func GenBRedConstant(q uint64) (u [2]uint64) {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Div(bigR, new(big.Int).SetUint64(q))
	u[0] = new(big.Int).Rsh(bigR, 64).Uint64()
	u[1] = bigR.Uint64()
	return
}

// BRedAdd reduces a 64 bit integer by q, assuming x <= 2^64-1.
func BRedAdd(x, q uint64, u [2]uint64) (r uint64) {
	s0, _ := bits.Mul64(x, u[0])
	r = x - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRedAddLazy is identical to BRedAdd, except that it returns a value in [0, 2q-1).
func BRedAddLazy(x, q uint64, u [2]uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	return x - s0*q
}

// BRed operates a 64x64 bit multiplication with a Barrett reduction.
func BRed(x, y, q uint64, u [2]uint64) (r uint64) {

	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, u[1])

	mhi, mlo = bits.Mul64(alo, u[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

// BRedLazy is identical to BRed, except that it returns a value in [0, 2q-1).
func BRedLazy(x, y, q uint64, u [2]uint64) (r uint64) {

	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	lhi, _ = bits.Mul64(alo, u[1])

	mhi, mlo = bits.Mul64(alo, u[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q

	return
}

//===============================
//==== CONDITIONAL REDUCTION ====
//===============================

// CRed returns a mod q, assuming a is in the range [0, 2q-1).
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
