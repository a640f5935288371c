package ring

// DivFloorByLastModulusNTT divides (floored) the polynomial by its last modulus.
// The input must be in the NTT domain.
// Output poly level must be equal or one less than input level.
func (r *Ring) DivFloorByLastModulusNTT(p0, buff, p1 *Poly) {

	level := r.level
	last := r.SubRings[level]

	last.INTTLazy(p0.Coeffs[level], buff.Coeffs[level])

	for i, s := range r.SubRings[:level] {
		qi := s.Modulus
		reduced := buff.Coeffs[0]
		for j, x := range buff.Coeffs[level] {
			reduced[j] = BRedAdd(x, qi, s.BRedConstant)
		}
		s.NTTLazy(reduced, reduced)
		s.SubThenMulScalarMontgomeryTwoModulus(p0.Coeffs[i], reduced, r.RescaleParams[level-1][i], p1.Coeffs[i])
	}
}

// DivFloorByLastModulus divides (floored) the polynomial by its last modulus.
// Output poly level must be equal or one less than input level.
func (r *Ring) DivFloorByLastModulus(p0, p1 *Poly) {

	level := r.level

	last := p0.Coeffs[level]

	for i, s := range r.SubRings[:level] {
		qi := s.Modulus
		reduced := make([]uint64, len(last))
		for j, x := range last {
			reduced[j] = BRedAdd(x, qi, s.BRedConstant)
		}
		s.SubThenMulScalarMontgomeryTwoModulus(p0.Coeffs[i], reduced, r.RescaleParams[level-1][i], p1.Coeffs[i])
	}
}

// DivFloorByLastModulusManyNTT divides (floored) sequentially nbRescales times the polynomial by its last modulus. Input must be in the NTT domain.
// Output poly level must be equal or nbRescales less than input level.
func (r *Ring) DivFloorByLastModulusManyNTT(nbRescales int, p0, buff, p1 *Poly) {

	if nbRescales == 0 {

		if p0 != p1 {
			copy(p1.Buff, p0.Buff)
		}

	} else {

		rCpy := r.AtLevel(r.Level())

		rCpy.INTT(p0, buff)

		for i := 0; i < nbRescales; i++ {
			rCpy.DivFloorByLastModulus(buff, buff)
			rCpy = rCpy.AtLevel(rCpy.Level() - 1)
		}

		rCpy.NTT(buff, p1)
	}
}

// DivFloorByLastModulusMany divides (floored) sequentially nbRescales times the polynomial by its last modulus.
// Output poly level must be equal or nbRescales less than input level.
func (r *Ring) DivFloorByLastModulusMany(nbRescales int, p0, buff, p1 *Poly) {

	if nbRescales == 0 {

		if p0 != p1 {
			copy(p1.Buff, p0.Buff)
		}

	} else {

		if nbRescales > 1 {

			rCpy := r.AtLevel(r.Level())

			rCpy.DivFloorByLastModulus(p0, buff)
			rCpy = rCpy.AtLevel(rCpy.Level() - 1)

			for i := 1; i < nbRescales; i++ {

				if i == nbRescales-1 {
					rCpy.DivFloorByLastModulus(buff, p1)
				} else {
					rCpy.DivFloorByLastModulus(buff, buff)
				}

				rCpy = rCpy.AtLevel(rCpy.Level() - 1)
			}

		} else {
			r.DivFloorByLastModulus(p0, p1)
		}
	}
}

// DivRoundByLastModulusNTT divides (rounded) the polynomial by its last modulus. The input must be in the NTT domain.
// Output poly level must be equal or one less than input level.
func (r *Ring) DivRoundByLastModulusNTT(p0, buff, p1 *Poly) {

	level := r.level
	last := r.SubRings[level]

	last.INTTLazy(p0.Coeffs[level], buff.Coeffs[level])

	// Centers the last limb around zero by adding (q_last-1)/2 before rounding.
	pj := last.Modulus
	pHalf := (pj - 1) >> 1

	last.AddScalar(buff.Coeffs[level], pHalf, buff.Coeffs[level])

	for i, s := range r.SubRings[:level] {
		qi := s.Modulus

		corrected := make([]uint64, r.N())
		pHalfModQi := BRedAdd(pHalf, qi, s.BRedConstant)
		for j, x := range buff.Coeffs[level] {
			corrected[j] = CRed(BRedAdd(x, qi, s.BRedConstant)+qi-pHalfModQi, qi)
		}

		s.NTTLazy(corrected, corrected)
		s.SubThenMulScalarMontgomeryTwoModulus(p0.Coeffs[i], corrected, r.RescaleParams[level-1][i], p1.Coeffs[i])
	}
}

// DivRoundByLastModulus divides (rounded) the polynomial by its last modulus.
// Output poly level must be equal or one less than input level.
func (r *Ring) DivRoundByLastModulus(p0, p1 *Poly) {

	level := r.level
	last := r.SubRings[level]

	pj := last.Modulus
	pHalf := (pj - 1) >> 1

	last.AddScalar(p0.Coeffs[level], pHalf, p0.Coeffs[level])

	for i, s := range r.SubRings[:level] {
		qi := s.Modulus

		corrected := make([]uint64, r.N())
		pHalfModQi := BRedAdd(pHalf, qi, s.BRedConstant)
		for j, x := range p0.Coeffs[level] {
			corrected[j] = CRed(BRedAdd(x, qi, s.BRedConstant)+qi-pHalfModQi, qi)
		}

		s.SubThenMulScalarMontgomeryTwoModulus(p0.Coeffs[i], corrected, r.RescaleParams[level-1][i], p1.Coeffs[i])
	}
}

// DivRoundByLastModulusManyNTT divides (rounded) sequentially nbRescales times the polynomial by its last modulus. The input must be in the NTT domain.
// Output poly level must be equal or nbRescales less than input level.
func (r *Ring) DivRoundByLastModulusManyNTT(nbRescales int, p0, buff, p1 *Poly) {

	if nbRescales == 0 {

		if p0 != p1 {
			copy(p1.Buff, p0.Buff)
		}

	} else {

		if nbRescales > 1 {

			rCpy := r.AtLevel(r.Level())

			rCpy.INTT(p0, buff)
			for i := 0; i < nbRescales; i++ {
				rCpy.DivRoundByLastModulus(buff, buff)
				rCpy = rCpy.AtLevel(rCpy.Level() - 1)
			}

			rCpy.NTT(buff, p1)

		} else {
			r.DivRoundByLastModulusNTT(p0, buff, p1)
		}
	}
}

// DivRoundByLastModulusMany divides (rounded) sequentially nbRescales times the polynomial by its last modulus.
// Output poly level must be equal or nbRescales less than input level.
func (r *Ring) DivRoundByLastModulusMany(nbRescales int, p0, buff, p1 *Poly) {

	if nbRescales == 0 {

		if p0 != p1 {
			copy(p1.Buff, p0.Buff)
		}

	} else {

		if nbRescales > 1 {

			rCpy := r.AtLevel(r.Level())

			rCpy.DivRoundByLastModulus(p0, buff)
			rCpy = rCpy.AtLevel(rCpy.Level() - 1)

			for i := 1; i < nbRescales; i++ {

				if i == nbRescales-1 {
					rCpy.DivRoundByLastModulus(buff, p1)
				} else {
					rCpy.DivRoundByLastModulus(buff, buff)
				}

				rCpy = rCpy.AtLevel(rCpy.Level() - 1)
			}

		} else {
			r.DivRoundByLastModulus(p0, p1)
		}
	}
}
