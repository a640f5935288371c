package bfv

import (
	"github.com/tuneinsight/gofhe/ring"
)

// behz implements the RNS multiplication pipeline described by Bajard,
// Eynard, Hasan and Zucca ("A Full RNS Variant of FV like Somewhat
// Homomorphic Encryption Schemes"): ciphertext-ciphertext tensoring is
// carried out redundantly in the ciphertext basis Q and in an auxiliary
// basis Bsk large enough to absorb the tensor product without overflow,
// after which the t/Q rescaling is performed via a floor-rounding RNS base
// conversion from Q down to Bsk, followed by a final conversion of the
// rescaled result from Bsk back to Q.
//
// This mirrors the classical bfv package's Bsk/basis-extender pipeline,
// re-expressed on top of the shared ring.BasisExtender toolbox rather than
// a scheme-specific complex scaler: ModUpQtoP plays the role of the
// classical "fastbconv" (extend to Bsk), and ModDownQPtoP plays the role of
// the "fastbconv scale-by-t/Q, then reduce" step, since both operations are
// exactly a floor-rounded RNS base conversion at their core.
type behz struct {
	ringQ   *ring.Ring
	ringBsk *ring.Ring

	ext *ring.BasisExtender

	t uint64

	buffQ   [3]*ring.Poly
	buffBsk [3]*ring.Poly
}

// newBEHZ builds the Bsk auxiliary basis and the base-extension tables for
// the given ciphertext ring and plaintext modulus t. The Bsk basis is sized
// to len(Q)+1 NTT-friendly primes, one more limb than Q, giving enough room
// for the t-scaled tensor product to be reconstructed exactly.
func newBEHZ(ringQ *ring.Ring, t uint64) *behz {

	nbBsk := len(ringQ.ModuliChain()) + 1

	ringBsk, err := ring.NewRing(ringQ.N(), ring.GenerateNTTPrimesP(61, 2*ringQ.N(), nbBsk))
	if err != nil {
		panic(err)
	}

	ext := ring.NewBasisExtender(ringQ, ringBsk)

	newBuffs := func(r *ring.Ring) [3]*ring.Poly {
		return [3]*ring.Poly{r.NewPoly(), r.NewPoly(), r.NewPoly()}
	}

	return &behz{
		ringQ:   ringQ,
		ringBsk: ringBsk,
		ext:     ext,
		t:       t,
		buffQ:   newBuffs(ringQ),
		buffBsk: newBuffs(ringBsk),
	}
}

// tensor computes the degree-2 raw tensor product (c0*d0, c0*d1+c1*d0, c1*d1)
// of two degree-1 ciphertexts (c0,c1) and (d0,d1), scaled by t and divided
// (floored) by Q, and writes the three resulting Q-basis polynomials, in the
// coefficient domain, into e0, e1, e2.
//
// c0, c1, d0, d1 must be in the coefficient domain at level levelQ: BFV keeps
// ciphertexts coefficient-resident between operations, and tensor lifts to
// the NTT domain internally wherever the dyadic product needs it.
func (b *behz) tensor(levelQ int, c0, c1, d0, d1, e0, e1, e2 *ring.Poly) {

	ringQ := b.ringQ.AtLevel(levelQ)
	ringBsk := b.ringBsk

	// Extend the four ciphertext limbs from Q to Bsk, then NTT both copies
	// for the dyadic tensor product below. ModUpQtoP expects coefficient-domain input.
	liftAndExtend := func(polQCoeff *ring.Poly) (polQ, polBsk *ring.Poly) {
		polQ = ringQ.NewPoly()
		polBsk = ringBsk.NewPoly()
		b.ext.ModUpQtoP(levelQ, ringBsk.MaxLevel(), polQCoeff, polBsk)
		ringQ.NTT(polQCoeff, polQ)
		ringBsk.NTT(polBsk, polBsk)
		return
	}

	c0Q, c0Bsk := liftAndExtend(c0)
	c1Q, c1Bsk := liftAndExtend(c1)
	d0Q, d0Bsk := liftAndExtend(d0)
	d1Q, d1Bsk := liftAndExtend(d1)

	tensorInRing := func(r *ring.Ring, c0, c1, d0, d1, o0, o1, o2 *ring.Poly) {
		d0M, d1M := r.NewPoly(), r.NewPoly()
		r.MForm(d0, d0M)
		r.MForm(d1, d1M)

		r.MulCoeffsMontgomery(c0, d0M, o0)

		tmp := r.NewPoly()
		r.MulCoeffsMontgomery(c0, d1M, o1)
		r.MulCoeffsMontgomery(c1, d0M, tmp)
		r.Add(o1, tmp, o1)

		r.MulCoeffsMontgomery(c1, d1M, o2)
	}

	tensorInRing(ringQ, c0Q, c1Q, d0Q, d1Q, b.buffQ[0], b.buffQ[1], b.buffQ[2])
	tensorInRing(ringBsk, c0Bsk, c1Bsk, d0Bsk, d1Bsk, b.buffBsk[0], b.buffBsk[1], b.buffBsk[2])

	b.scaleAndSwitch(levelQ, b.buffQ[0], b.buffBsk[0], e0)
	b.scaleAndSwitch(levelQ, b.buffQ[1], b.buffBsk[1], e1)
	b.scaleAndSwitch(levelQ, b.buffQ[2], b.buffBsk[2], e2)
}

// scaleAndSwitch takes a tensor limb represented redundantly in bases Q
// (tQ, NTT domain) and Bsk (tBsk, NTT domain), multiplies it by t, divides
// it (floored) by Q via a base conversion down to Bsk, converts the
// quotient back up to Q, and writes the coefficient-domain result to out.
func (b *behz) scaleAndSwitch(levelQ int, tQ, tBsk, out *ring.Poly) {

	ringQ := b.ringQ.AtLevel(levelQ)
	ringBsk := b.ringBsk

	cQ, cBsk := ringQ.NewPoly(), ringBsk.NewPoly()
	ringQ.INTT(tQ, cQ)
	ringBsk.INTT(tBsk, cBsk)

	ringQ.MulScalar(cQ, b.t, cQ)
	ringBsk.MulScalar(cBsk, b.t, cBsk)

	scaledBsk := ringBsk.NewPoly()
	b.ext.ModDownQPtoP(levelQ, ringBsk.MaxLevel(), cQ, cBsk, scaledBsk)

	b.ext.ModUpPtoQ(ringBsk.MaxLevel(), levelQ, scaledBsk, out)
}
