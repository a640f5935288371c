package ring

import "math/big"

// MulScalar evaluates p2 = p1*scalar, where scalar is a plain (non-Montgomery) integer.
func (r *Ring) MulScalar(p1 *Poly, scalar uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		scalarMont := MForm(BRedAdd(scalar, s.Modulus, s.BRedConstant), s.Modulus, s.BRedConstant)
		s.MulScalarMontgomery(p1.Coeffs[i], scalarMont, p2.Coeffs[i])
	}
}

// MulScalarThenAdd evaluates p2 = p2 + p1*scalar, where scalar is a plain (non-Montgomery) integer.
func (r *Ring) MulScalarThenAdd(p1 *Poly, scalar uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		scalarMont := MForm(BRedAdd(scalar, s.Modulus, s.BRedConstant), s.Modulus, s.BRedConstant)
		s.MulScalarMontgomeryThenAdd(p1.Coeffs[i], scalarMont, p2.Coeffs[i])
	}
}

// MulScalarThenSub evaluates p2 = p2 - p1*scalar, where scalar is a plain (non-Montgomery) integer.
func (r *Ring) MulScalarThenSub(p1 *Poly, scalar uint64, p2 *Poly) {
	for i, s := range r.SubRings[:r.level+1] {
		scalarMont := MForm(BRedAdd(scalar, s.Modulus, s.BRedConstant), s.Modulus, s.BRedConstant)
		tmp := make([]uint64, len(p1.Coeffs[i]))
		s.MulScalarMontgomery(p1.Coeffs[i], scalarMont, tmp)
		s.Sub(p2.Coeffs[i], tmp, p2.Coeffs[i])
	}
}

// AddScalarBigint adds a big.Int scalar, reduced modulo each RNS modulus, to p1 and writes the result on p2.
func (r *Ring) AddScalarBigint(p1 *Poly, scalar *big.Int, p2 *Poly) {
	tmp := new(big.Int)
	for i, s := range r.SubRings[:r.level+1] {
		scalarQi := tmp.Mod(scalar, new(big.Int).SetUint64(s.Modulus)).Uint64()
		s.AddScalar(p1.Coeffs[i], scalarQi, p2.Coeffs[i])
	}
}

// MulScalarBigint multiplies p1 by a big.Int scalar, reduced modulo each RNS modulus, and writes the result on p2.
func (r *Ring) MulScalarBigint(p1 *Poly, scalar *big.Int, p2 *Poly) {
	tmp := new(big.Int)
	for i, s := range r.SubRings[:r.level+1] {
		scalarQi := tmp.Mod(scalar, new(big.Int).SetUint64(s.Modulus)).Uint64()
		scalarMont := MForm(BRedAdd(scalarQi, s.Modulus, s.BRedConstant), s.Modulus, s.BRedConstant)
		s.MulScalarMontgomery(p1.Coeffs[i], scalarMont, p2.Coeffs[i])
	}
}
