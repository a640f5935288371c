package bfv

import (
	"github.com/tuneinsight/gofhe/ring"
)

// monomialMulNegacyclic multiplies p1 by the monomial scalar[i]*X^k, per RNS
// limb i, in the negacyclic ring Z_qi[X]/(X^N+1), and writes the result to
// p2. scalar holds one already-reduced coefficient per limb of the ring's
// current level. p1 and p2 must not alias.
func monomialMulNegacyclic(r *ring.Ring, p1 *ring.Poly, k int, scalar []uint64, p2 *ring.Poly) {
	N := r.N()
	moduli := r.ModuliChain()
	bredConstants := r.BRedConstants()

	for i, qi := range moduli {
		in := p1.Coeffs[i]
		out := p2.Coeffs[i]
		s := scalar[i]
		u := bredConstants[i]

		for j := 0; j < N; j++ {
			prod := ring.BRed(in[j], s, qi, u)

			dst := j + k
			if dst >= N {
				dst -= N
				if prod != 0 {
					prod = qi - prod
				}
			}
			out[dst] = prod
		}
	}
}
