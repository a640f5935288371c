// Package he collects the scheme-independent building blocks shared by the
// INT (bfv) and APX (ckks) evaluators, currently the Galois-based slot
// rotation planner.
package he

import (
	"fmt"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/rlwe"
	"github.com/tuneinsight/gofhe/rlwe/ringqp"
)

// RotationParameters is the subset of rlwe.ParametersInterface that the
// rotation planner needs: mapping a slot-shift count to a Galois element and
// back.
type RotationParameters interface {
	GaloisElement(k int) uint64
	SolveDiscreteLogGaloisElement(galEl uint64) int
	MaxSlots() [2]int
}

// HoistingParameters is the subset of rlwe.Parameters the batched rotation
// planner needs to run the key-switching digit decomposition by hand.
type HoistingParameters interface {
	RotationParameters
	RingQ() *ring.Ring
	RingP() *ring.Ring
	MaxLevelP() int
	DecompRNS(levelQ, levelP int) int
}

// Rotate applies a rotation by k slots to ctIn using eval's Galois keys, and
// writes the result to ctOut.
//
// If the Galois key for the direct rotation is present, it is applied once.
// Otherwise k is decomposed into non-adjacent form (NAF): signed digits in
// {-1,0,+1} of a binary expansion, so that k = sum(d_i * 2^i). The
// corresponding power-of-two rotations are then applied in sequence, each
// one folding into the accumulator. A NAF term whose absolute value equals
// the row size is a full rotation of that row and is skipped. If the
// decomposition leaves exactly one non-trivial term and its key is missing,
// Rotate reports that the Galois key is not present; a decomposition with
// several terms is instead applied one key at a time.
func Rotate(eval *rlwe.Evaluator, params RotationParameters, ctIn *rlwe.Ciphertext, k int, ctOut *rlwe.Ciphertext) error {

	rows := params.MaxSlots()[1]

	if galEl := params.GaloisElement(k); hasGaloisKey(eval, galEl) {
		eval.Automorphism(ctIn, galEl, ctOut)
		return nil
	}

	terms := make([]int, 0)
	for _, d := range naf(k) {
		if abs(d) == rows {
			// A rotation by the row size is a full rotation: no-op.
			continue
		}
		terms = append(terms, d)
	}

	if len(terms) == 0 {
		ctOut.Copy(ctIn)
		return nil
	}

	if len(terms) == 1 {
		galEl := params.GaloisElement(terms[0])
		if !hasGaloisKey(eval, galEl) {
			return fmt.Errorf("cannot Rotate: Galois key not present for rotation by %d", terms[0])
		}
	}

	cur := ctIn
	for i, d := range terms {
		galEl := params.GaloisElement(d)
		if !hasGaloisKey(eval, galEl) {
			return fmt.Errorf("cannot Rotate: Galois key not present for rotation by %d (term of NAF decomposition of %d)", d, k)
		}

		var dst *rlwe.Ciphertext
		if i == len(terms)-1 {
			dst = ctOut
		} else {
			dst = cur.CopyNew()
		}

		eval.Automorphism(cur, galEl, dst)
		cur = dst
	}

	return nil
}

// RotateHoisted rotates ctIn by each of the given slot shifts and writes the
// i-th result to ctOuts[i]. Unlike calling Rotate once per shift, it
// decomposes ctIn's second component into RNS/CRT key-switching digits a
// single time (DecomposeNTT) and reuses that decomposition across every
// requested rotation's key-switch (KeyswitchHoisted), amortizing the
// decomposition cost across the whole batch. Every shift must have a direct
// Galois key present: RotateHoisted does not fall back to a NAF
// decomposition, since hoisting a chain of dependent single-key rotations
// gives nothing to amortize.
func RotateHoisted(eval *rlwe.Evaluator, params HoistingParameters, ctIn *rlwe.Ciphertext, ks []int, ctOuts []*rlwe.Ciphertext) error {
	if len(ks) != len(ctOuts) {
		panic("cannot RotateHoisted: ks and ctOuts must have the same length")
	}
	if len(ks) == 0 {
		return nil
	}

	galEls := make([]uint64, len(ks))
	galKeys := make([]*rlwe.GaloisKey, len(ks))
	for i, k := range ks {
		galEls[i] = params.GaloisElement(k)
		var err error
		if galKeys[i], err = eval.CheckAndGetGaloisKey(galEls[i]); err != nil {
			return fmt.Errorf("cannot RotateHoisted: Galois key not present for rotation by %d", k)
		}
	}

	levelQ := ctIn.Level()
	levelP := params.MaxLevelP()
	nbPi := levelP + 1
	N := params.RingQ().N()

	ringQ := params.RingQ().AtLevel(levelQ)

	decompRNS := params.DecompRNS(levelQ, levelP)
	buffDecompQP := make([]ringqp.Poly, decompRNS)
	for i := range buffDecompQP {
		buffDecompQP[i] = *ringqp.NewPoly(N, levelQ, levelP)
	}

	eval.DecomposeNTT(levelQ, levelP, nbPi, &ctIn.Value[1], ctIn.IsNTT, buffDecompQP)

	ringP := params.RingP().AtLevel(levelP)

	for i, galEl := range galEls {
		c0Q, c1Q := ring.NewPoly(N, levelQ), ring.NewPoly(N, levelQ)
		c0P, c1P := ring.NewPoly(N, levelP), ring.NewPoly(N, levelP)

		if ctIn.IsNTT {
			eval.KeyswitchHoisted(levelQ, buffDecompQP, &galKeys[i].EvaluationKey, c0Q, c1Q, c0P, c1P)
		} else {
			// KeyswitchHoisted's mod-down assumes an NTT-resident ciphertext;
			// for a coefficient-domain one (INT), fall out of NTT first and
			// use the coefficient-domain mod-down, mirroring GadgetProduct.
			eval.KeyswitchHoistedLazy(levelQ, buffDecompQP, &galKeys[i].EvaluationKey, c0Q, c1Q, c0P, c1P)
			ringQ.INTTLazy(c0Q, c0Q)
			ringQ.INTTLazy(c1Q, c1Q)
			ringP.INTTLazy(c0P, c0P)
			ringP.INTTLazy(c1P, c1P)
			eval.BasisExtender.ModDownQPtoQ(levelQ, levelP, c0Q, c0P, c0Q)
			eval.BasisExtender.ModDownQPtoQ(levelQ, levelP, c1Q, c1P, c1Q)
		}

		ringQ.Add(c0Q, &ctIn.Value[0], c0Q)

		ctOuts[i].Resize(1, levelQ)
		if ctIn.IsNTT {
			ringQ.AutomorphismNTTWithIndex(c0Q, eval.AutomorphismIndex[galEl], &ctOuts[i].Value[0])
			ringQ.AutomorphismNTTWithIndex(c1Q, eval.AutomorphismIndex[galEl], &ctOuts[i].Value[1])
		} else {
			ringQ.Automorphism(c0Q, galEl, &ctOuts[i].Value[0])
			ringQ.Automorphism(c1Q, galEl, &ctOuts[i].Value[1])
		}
		ctOuts[i].MetaData = ctIn.MetaData
	}

	return nil
}

func hasGaloisKey(eval *rlwe.Evaluator, galEl uint64) bool {
	_, err := eval.CheckAndGetGaloisKey(galEl)
	return err == nil
}

// naf returns the non-adjacent form of k as a list of non-zero signed terms
// d_i * 2^i (each entry already shifted, e.g. -4 or 8), so that k equals
// their sum.
func naf(k int) []int {
	neg := false
	if k < 0 {
		neg = true
		k = -k
	}

	var terms []int
	shift := 0
	for k > 0 {
		if k&1 == 1 {
			d := 2 - (k & 3)
			k -= d
			terms = append(terms, d<<uint(shift))
		}
		k >>= 1
		shift++
	}

	if neg {
		for i := range terms {
			terms[i] = -terms[i]
		}
	}

	return terms
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
