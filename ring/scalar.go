package ring

// RNSScalar represents a scalar value in the Ring (i.e., a degree-0 polynomial) in RNS form.
type RNSScalar []uint64

// NewRNSScalar creates a new Scalar value.
func (r *Ring) NewRNSScalar() RNSScalar {
	return make(RNSScalar, r.ModuliChainLength())
}

// NewRNSScalarFromUInt64 creates a new Scalar initialized with value v.
func (r *Ring) NewRNSScalarFromUInt64(v uint64) RNSScalar {
	s := make(RNSScalar, r.ModuliChainLength())
	for i, sub := range r.SubRings {
		s[i] = v % sub.Modulus
	}
	return s
}

// SubRNSScalar subtracts s2 from s1 and stores the result in sout.
func (r *Ring) SubRNSScalar(s1, s2, sout RNSScalar) {
	for i, sub := range r.SubRings {
		if s2[i] > s1[i] {
			sout[i] = s1[i] + sub.Modulus - s2[i]
		} else {
			sout[i] = s1[i] - s2[i]
		}
	}
}

// MulRNSScalar multiplies s1 and s2 and stores the result in sout.
// Multiplication is operated with Montgomery.
func (r *Ring) MulRNSScalar(s1, s2, sout RNSScalar) {
	for i, sub := range r.SubRings {
		sout[i] = MRed(s1[i], s2[i], sub.Modulus, sub.MRedConstant)
	}
}

// Inverse computes the modular inverse of a scalar a expressed in a CRT decomposition.
// The inversion is done in-place and assumes that a is in Montgomery form.
func (r *Ring) Inverse(a RNSScalar) {
	for i, sub := range r.SubRings {
		a[i] = ModexpMontgomery(a[i], int(sub.Modulus-2), sub.Modulus, sub.MRedConstant, sub.BRedConstant)
	}
}
