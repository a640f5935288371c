package bfv

import (
	"fmt"

	"github.com/tuneinsight/gofhe/he"
	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/rlwe"
	"github.com/tuneinsight/gofhe/utils"
)

// Evaluator computes homomorphic operations on INT (BFV) ciphertexts. An
// Evaluator holds scratch buffers that its operations write to, so a single
// instance is not safe for concurrent calls, even on distinct ciphertexts;
// ShallowCopy returns an instance with its own buffers for use alongside
// the receiver (see rlwe.Evaluator for the shared key-switching machinery).
type Evaluator struct {
	*rlwe.Evaluator
	params Parameters
	behz   *behz

	buffQ  *ring.Poly
	buffCt *rlwe.Ciphertext
}

// NewEvaluator instantiates a new Evaluator from the given parameters and
// evaluation keys (relinearization and/or Galois keys). evk may be nil for
// an Evaluator that never relinearizes or rotates.
func NewEvaluator(params Parameters, evk rlwe.EvaluationKeySetInterface) *Evaluator {
	ringQ := params.RingQ()
	return &Evaluator{
		Evaluator: rlwe.NewEvaluator(params, evk),
		params:    params,
		behz:      newBEHZ(ringQ, params.T()),
		buffQ:     ringQ.NewPoly(),
		buffCt:    NewCiphertext(params, 2, params.MaxLevel()),
	}
}

// ShallowCopy creates a copy of this Evaluator in which the read-only
// data-structures are shared with the receiver, and the temporary buffers
// are reallocated. The result may be used concurrently with the receiver.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(eval.params, eval.EvaluationKeySet)
}

// WithKey creates a shallow copy of this Evaluator with a new evaluation key set.
func (eval *Evaluator) WithKey(evk rlwe.EvaluationKeySetInterface) *Evaluator {
	eval2 := eval.ShallowCopy()
	eval2.Evaluator = rlwe.NewEvaluator(eval.params, evk)
	return eval2
}

func minLevel(a, b int) int { return utils.MinInt(a, b) }

// Negate negates ctIn and writes the result to ctOut.
func (eval *Evaluator) Negate(ctIn, ctOut *rlwe.Ciphertext) {
	level := minLevel(ctIn.Level(), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)
	for i := range ctIn.Value {
		ringQ.Neg(&ctIn.Value[i], &ctOut.Value[i])
	}
	ctOut.MetaData = ctIn.MetaData
}

// NegateNew negates ctIn and returns the result in a new Ciphertext.
func (eval *Evaluator) NegateNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level())
	eval.Negate(ctIn, ctOut)
	return
}

func (eval *Evaluator) evaluateInPlace(level int, ct0, ct1, ctOut *rlwe.Ciphertext, op func(p1, p2, p3 *ring.Poly)) {
	smallest, largest, _ := rlwe.GetSmallestLargest(ct0.El(), ct1.El())
	ctOut.Resize(ctOut.Degree(), level)

	for i := 0; i < smallest.Degree()+1; i++ {
		op(&ct0.Value[i], &ct1.Value[i], &ctOut.Value[i])
	}

	if largest != nil && largest != ctOut.El() {
		for i := smallest.Degree() + 1; i < largest.Degree()+1; i++ {
			ctOut.Value[i].Copy(&largest.Value[i])
		}
	}

	ctOut.MetaData = ct0.MetaData
}

// Add adds ct1 to ct0 and writes the result to ctOut.
func (eval *Evaluator) Add(ct0, ct1, ctOut *rlwe.Ciphertext) {
	level := minLevel(minLevel(ct0.Level(), ct1.Level()), ctOut.Level())
	if ctOut.Degree() < utils.MaxInt(ct0.Degree(), ct1.Degree()) {
		ctOut.Resize(utils.MaxInt(ct0.Degree(), ct1.Degree()), level)
	}
	eval.evaluateInPlace(level, ct0, ct1, ctOut, eval.params.RingQ().AtLevel(level).Add)
}

// AddNew adds ct1 to ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) AddNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, utils.MaxInt(ct0.Degree(), ct1.Degree()), minLevel(ct0.Level(), ct1.Level()))
	eval.Add(ct0, ct1, ctOut)
	return
}

// Sub subtracts ct1 from ct0 and writes the result to ctOut.
func (eval *Evaluator) Sub(ct0, ct1, ctOut *rlwe.Ciphertext) {
	level := minLevel(minLevel(ct0.Level(), ct1.Level()), ctOut.Level())
	if ctOut.Degree() < utils.MaxInt(ct0.Degree(), ct1.Degree()) {
		ctOut.Resize(utils.MaxInt(ct0.Degree(), ct1.Degree()), level)
	}
	eval.evaluateInPlace(level, ct0, ct1, ctOut, eval.params.RingQ().AtLevel(level).Sub)

	if ct1.Degree() > ct0.Degree() {
		ringQ := eval.params.RingQ().AtLevel(level)
		for i := ct0.Degree() + 1; i < ct1.Degree()+1; i++ {
			ringQ.Neg(&ctOut.Value[i], &ctOut.Value[i])
		}
	}
}

// SubNew subtracts ct1 from ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) SubNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, utils.MaxInt(ct0.Degree(), ct1.Degree()), minLevel(ct0.Level(), ct1.Level()))
	eval.Sub(ct0, ct1, ctOut)
	return
}

// AddMany sums a slice of ciphertexts and returns the result in a new Ciphertext.
func (eval *Evaluator) AddMany(cts []*rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	if len(cts) == 0 {
		panic("cannot AddMany: input slice is empty")
	}
	ctOut = cts[0].CopyNew()
	for _, ct := range cts[1:] {
		eval.Add(ctOut, ct, ctOut)
	}
	return
}

// AddPlain adds the Delta-scaled plaintext pt to ct0 and writes the result to ctOut.
func (eval *Evaluator) AddPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) {
	level := minLevel(minLevel(ct0.Level(), pt.Level()), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)

	ctOut.Resize(ct0.Degree(), level)
	ringQ.Add(&ct0.Value[0], pt.Value, &ctOut.Value[0])

	if ct0 != ctOut {
		for i := 1; i < ct0.Degree()+1; i++ {
			ctOut.Value[i].Copy(&ct0.Value[i])
		}
		ctOut.MetaData = ct0.MetaData
	}
}

// AddPlainNew adds the Delta-scaled plaintext pt to ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) AddPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	eval.AddPlain(ct0, pt, ctOut)
	return
}

// SubPlain subtracts the Delta-scaled plaintext pt from ct0 and writes the result to ctOut.
func (eval *Evaluator) SubPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) {
	level := minLevel(minLevel(ct0.Level(), pt.Level()), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)

	ctOut.Resize(ct0.Degree(), level)
	ringQ.Sub(&ct0.Value[0], pt.Value, &ctOut.Value[0])

	if ct0 != ctOut {
		for i := 1; i < ct0.Degree()+1; i++ {
			ctOut.Value[i].Copy(&ct0.Value[i])
		}
		ctOut.MetaData = ct0.MetaData
	}
}

// SubPlainNew subtracts the Delta-scaled plaintext pt from ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) SubPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	eval.SubPlain(ct0, pt, ctOut)
	return
}

// MultiplyPlain multiplies ct0 by the raw (Delta-unscaled) plaintext pt and
// writes the result to ctOut. pt must have been produced by
// Encoder.EncodeRawNew: a ciphertext already carries one factor of Delta, so
// multiplying it by a Delta-scaled plaintext would double-scale the result.
//
// If ct0 is in the NTT domain (an explicitly-transformed INT ciphertext),
// pt must also be NTT-domain, and the two are multiplied pointwise per limb.
// Otherwise both are coefficient-domain, and MultiplyPlain looks for the
// special case of a monomial plaintext (a single non-zero coefficient): it
// re-centers that coefficient against PlainUpperHalfThreshold/Increment and
// applies it via a negacyclic monomial multiply, which is far cheaper than a
// full NTT round trip. This fast path is a timing side channel on the
// position and sign of the plaintext's non-zero coefficient, so use it only
// when pt is public.
//
// The general (non-monomial) coefficient-domain case lifts every plaintext
// coefficient with the same re-centering, forward-NTTs the lift once, then
// multiplies each ciphertext component into it pointwise via an
// NTT/Montgomery-product/inverse-NTT round trip.
func (eval *Evaluator) MultiplyPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) error {
	if ct0.IsNTT != pt.IsNTT {
		return fmt.Errorf("cannot MultiplyPlain: ct0 and pt must be in the same domain")
	}

	level := minLevel(minLevel(ct0.Level(), pt.Level()), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)
	ctOut.Resize(ct0.Degree(), level)

	if ct0.IsNTT {
		ptMForm := eval.buffQ
		ringQ.MForm(pt.Value, ptMForm)
		for i := 0; i < ct0.Degree()+1; i++ {
			ringQ.MulCoeffsMontgomery(&ct0.Value[i], ptMForm, &ctOut.Value[i])
		}
		ctOut.MetaData = ct0.MetaData
		return nil
	}

	// EncodeRawNew broadcasts the same unsigned residue, uncentered, into
	// every limb of Q, so limb 0 alone identifies both the non-zero
	// coefficients and their raw (pre-adjustment) magnitude.
	raw := pt.Value.Coeffs[0]
	threshold := eval.params.PlainUpperHalfThreshold()
	increment := eval.params.PlainUpperHalfIncrement()
	moduli := ringQ.ModuliChain()

	monoIdx, nonZero := -1, 0
	for j, v := range raw {
		if v != 0 {
			nonZero++
			if nonZero > 1 {
				break
			}
			monoIdx = j
		}
	}

	if nonZero <= 1 {
		scalar := make([]uint64, level+1)
		if monoIdx >= 0 {
			coeff := raw[monoIdx]
			for i, qi := range moduli {
				if coeff >= threshold {
					v := coeff + increment[i]
					if v >= qi {
						v -= qi
					}
					scalar[i] = v
				} else {
					scalar[i] = coeff
				}
			}
		}
		for i := 0; i < ct0.Degree()+1; i++ {
			if monoIdx < 0 {
				ctOut.Value[i].Zero()
			} else {
				monomialMulNegacyclic(ringQ, &ct0.Value[i], monoIdx, scalar, &ctOut.Value[i])
			}
		}
		ctOut.MetaData = ct0.MetaData
		return nil
	}

	lifted := eval.buffQ
	for i, qi := range moduli {
		row := lifted.Coeffs[i]
		for j, v := range raw {
			if v >= threshold {
				v += increment[i]
				if v >= qi {
					v -= qi
				}
			}
			row[j] = v
		}
	}
	ringQ.NTT(lifted, lifted)
	ringQ.MForm(lifted, lifted)

	tmp := ringQ.NewPoly()
	for i := 0; i < ct0.Degree()+1; i++ {
		ringQ.NTT(&ct0.Value[i], tmp)
		ringQ.MulCoeffsMontgomery(tmp, lifted, tmp)
		ringQ.INTT(tmp, &ctOut.Value[i])
	}

	ctOut.MetaData = ct0.MetaData
	return nil
}

// MultiplyPlainNew multiplies ct0 by the raw plaintext pt and returns the result in a new Ciphertext.
func (eval *Evaluator) MultiplyPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	err = eval.MultiplyPlain(ct0, pt, ctOut)
	return
}

// Multiply multiplies ct0 with ct1 and writes the degree-2 result to ctOut,
// via the BEHZ RNS tensoring pipeline (see behz.go). ct0 and ct1 must both
// be of degree 1, in the coefficient domain: unlike APX, INT ciphertexts are
// coefficient-resident between operations, and Multiply rejects operands
// that were explicitly transformed into the NTT domain (see TransformToNTT).
func (eval *Evaluator) Multiply(ct0, ct1, ctOut *rlwe.Ciphertext) error {
	if ct0.Degree() != 1 || ct1.Degree() != 1 {
		panic("cannot Multiply: both operands must be of degree 1")
	}
	if ct0.IsNTT || ct1.IsNTT {
		return fmt.Errorf("cannot Multiply: both operands must be in the coefficient domain")
	}

	level := minLevel(minLevel(ct0.Level(), ct1.Level()), ctOut.Level())
	if ctOut.Level() != level || ctOut.Degree() != 2 {
		ctOut.Resize(2, level)
	}

	eval.behz.tensor(level, &ct0.Value[0], &ct0.Value[1], &ct1.Value[0], &ct1.Value[1],
		&ctOut.Value[0], &ctOut.Value[1], &ctOut.Value[2])

	ctOut.MetaData = ct0.MetaData
	return nil
}

// MultiplyNew multiplies ct0 with ct1 and returns the degree-2 result in a new Ciphertext.
func (eval *Evaluator) MultiplyNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, 2, minLevel(ct0.Level(), ct1.Level()))
	err = eval.Multiply(ct0, ct1, ctOut)
	return
}

// MultiplyRelin multiplies ct0 with ct1 and relinearizes the result into ctOut.
func (eval *Evaluator) MultiplyRelin(ct0, ct1, ctOut *rlwe.Ciphertext) error {
	if err := eval.Multiply(ct0, ct1, eval.buffCt); err != nil {
		return fmt.Errorf("cannot MultiplyRelin: %w", err)
	}
	eval.Relinearize(eval.buffCt, ctOut)
	return nil
}

// MultiplyRelinNew multiplies ct0 with ct1 and returns the relinearized result in a new Ciphertext.
func (eval *Evaluator) MultiplyRelinNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, 1, minLevel(ct0.Level(), ct1.Level()))
	err = eval.MultiplyRelin(ct0, ct1, ctOut)
	return
}

// Square squares ctIn and writes the degree-2 result to ctOut.
//
// This reuses the general BEHZ tensoring path rather than the Karatsuba-like
// (c0^2, 2*c0*c1, c1^2) shortcut available for the same-operand case: it
// costs one redundant pair of Montgomery products but keeps the tensor
// implementation single-purpose.
func (eval *Evaluator) Square(ctIn, ctOut *rlwe.Ciphertext) error {
	return eval.Multiply(ctIn, ctIn, ctOut)
}

// SquareNew squares ctIn and returns the degree-2 result in a new Ciphertext.
func (eval *Evaluator) SquareNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, 2, ctIn.Level())
	err = eval.Square(ctIn, ctOut)
	return
}

// ModSwitchToNext divides ctIn's last RNS modulus out by round-to-nearest,
// mirroring INT's chain-shortening (not the message-preserving rescale used
// by APX): it moves the ciphertext to the next level without touching its
// Delta encoding, which is the classical BFV mod-switch used to shrink
// ciphertext size along the modulus chain. ctIn must not already be at the
// last level.
func (eval *Evaluator) ModSwitchToNext(ctIn, ctOut *rlwe.Ciphertext) {
	level := ctIn.Level()
	if level == 0 {
		panic("cannot ModSwitchToNext: ciphertext is already at the last level")
	}

	ringQ := eval.params.RingQ().AtLevel(level)
	degree := ctIn.Degree()

	// ctIn and ctOut may alias, and ctOut.Resize below would truncate that
	// shared backing array before the last limb has been read; compute every
	// component into a scratch poly first, then resize and copy.
	results := make([]*ring.Poly, degree+1)
	for i := 0; i <= degree; i++ {
		results[i] = ringQ.NewPoly()
		if ctIn.IsNTT {
			tmp := ringQ.NewPoly()
			ringQ.INTT(&ctIn.Value[i], tmp)
			ringQ.DivRoundByLastModulus(tmp, tmp)
			ringQ.AtLevel(level - 1).NTT(tmp, results[i])
		} else {
			ringQ.DivRoundByLastModulus(&ctIn.Value[i], results[i])
		}
	}

	ctOut.Resize(degree, level-1)
	for i := 0; i <= degree; i++ {
		ctOut.Value[i].Copy(results[i])
	}

	ctOut.MetaData = ctIn.MetaData
}

// ModSwitchToNextNew divides ctIn's last RNS modulus out and returns the result in a new Ciphertext.
func (eval *Evaluator) ModSwitchToNextNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level()-1)
	eval.ModSwitchToNext(ctIn, ctOut)
	return
}

// ModSwitchToLevel switches ctIn down to the target level, one step at a time.
func (eval *Evaluator) ModSwitchToLevel(ctIn *rlwe.Ciphertext, level int, ctOut *rlwe.Ciphertext) {
	if level > ctIn.Level() {
		panic("cannot ModSwitchToLevel: target level is higher than the input level")
	}

	ctOut.Resize(ctIn.Degree(), ctIn.Level())
	ctOut.Copy(ctIn)
	for ctOut.Level() > level {
		eval.ModSwitchToNext(ctOut, ctOut)
	}
}

// MultiplyMany multiplies together a slice of degree-1 ciphertexts via a
// balanced binary tree, relinearizing to degree 1 after every product, and
// returns the result in a new Ciphertext. len(cts) must be at least 1.
func (eval *Evaluator) MultiplyMany(cts []*rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	if len(cts) == 0 {
		panic("cannot MultiplyMany: input slice is empty")
	}

	work := make([]*rlwe.Ciphertext, len(cts))
	copy(work, cts)

	for len(work) > 1 {
		next := make([]*rlwe.Ciphertext, 0, (len(work)+1)/2)
		for i := 0; i+1 < len(work); i += 2 {
			prod, err := eval.MultiplyRelinNew(work[i], work[i+1])
			if err != nil {
				return nil, fmt.Errorf("cannot MultiplyMany: %w", err)
			}
			next = append(next, prod)
		}
		if len(work)%2 == 1 {
			next = append(next, work[len(work)-1])
		}
		work = next
	}

	return work[0], nil
}

// Exponentiate raises ctIn to the given power via repeated relinearized
// squarings and multiplications, and returns the result in a new
// Ciphertext. power must be at least 1.
func (eval *Evaluator) Exponentiate(ctIn *rlwe.Ciphertext, power int) (ctOut *rlwe.Ciphertext, err error) {
	if power < 1 {
		panic("cannot Exponentiate: power must be >= 1")
	}
	if power == 1 {
		return ctIn.CopyNew(), nil
	}

	base := ctIn.CopyNew()
	var acc *rlwe.Ciphertext
	first := true

	for power > 0 {
		if power&1 == 1 {
			if first {
				acc = base.CopyNew()
				first = false
			} else if acc, err = eval.MultiplyRelinNew(acc, base); err != nil {
				return nil, fmt.Errorf("cannot Exponentiate: %w", err)
			}
		}
		power >>= 1
		if power > 0 {
			if base, err = eval.MultiplyRelinNew(base, base); err != nil {
				return nil, fmt.Errorf("cannot Exponentiate: %w", err)
			}
		}
	}

	return acc, nil
}

// TransformToNTT forward-transforms ctIn's components into the NTT domain and writes the result to ctOut.
func (eval *Evaluator) TransformToNTT(ctIn, ctOut *rlwe.Ciphertext) {
	if ctIn.IsNTT {
		panic("cannot TransformToNTT: ciphertext is already in the NTT domain")
	}
	level := minLevel(ctIn.Level(), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)
	for i := 0; i < ctIn.Degree()+1; i++ {
		ringQ.NTT(&ctIn.Value[i], &ctOut.Value[i])
	}
	ctOut.MetaData = ctIn.MetaData
	ctOut.IsNTT = true
}

// TransformFromNTT inverse-transforms ctIn's components out of the NTT domain and writes the result to ctOut.
func (eval *Evaluator) TransformFromNTT(ctIn, ctOut *rlwe.Ciphertext) {
	if !ctIn.IsNTT {
		panic("cannot TransformFromNTT: ciphertext is not in the NTT domain")
	}
	level := minLevel(ctIn.Level(), ctOut.Level())
	ringQ := eval.params.RingQ().AtLevel(level)
	for i := 0; i < ctIn.Degree()+1; i++ {
		ringQ.INTT(&ctIn.Value[i], &ctOut.Value[i])
	}
	ctOut.MetaData = ctIn.MetaData
	ctOut.IsNTT = false
}

// ApplyGalois applies the automorphism X -> X^galEl to ctIn and writes the result to ctOut.
func (eval *Evaluator) ApplyGalois(ctIn *rlwe.Ciphertext, galEl uint64, ctOut *rlwe.Ciphertext) {
	eval.Evaluator.Automorphism(ctIn, galEl, ctOut)
}

// Rotate rotates the columns of ctIn by k slots and writes the result to ctOut,
// applying a non-adjacent-form decomposition of k when no direct key is available.
func (eval *Evaluator) Rotate(ctIn *rlwe.Ciphertext, k int, ctOut *rlwe.Ciphertext) error {
	return he.Rotate(eval.Evaluator, eval.params, ctIn, k, ctOut)
}

// RotateNew rotates the columns of ctIn by k slots and returns the result in a new Ciphertext.
func (eval *Evaluator) RotateNew(ctIn *rlwe.Ciphertext, k int) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level())
	err = eval.Rotate(ctIn, k, ctOut)
	return
}

// RotateHoisted rotates ctIn by each of the given slot shifts, sharing one
// RNS decomposition of ctIn's key-switching digits across every rotation,
// and writes the i-th result into ctOuts[i]. Every shift must have a direct
// Galois key present.
func (eval *Evaluator) RotateHoisted(ctIn *rlwe.Ciphertext, ks []int, ctOuts []*rlwe.Ciphertext) error {
	return he.RotateHoisted(eval.Evaluator, eval.params, ctIn, ks, ctOuts)
}

// RotateRows swaps the two rows of ctIn's plaintext matrix and writes the result to ctOut.
func (eval *Evaluator) RotateRows(ctIn, ctOut *rlwe.Ciphertext) error {
	galEl := eval.params.GaloisElementForRowRotation()
	if _, err := eval.CheckAndGetGaloisKey(galEl); err != nil {
		return fmt.Errorf("cannot RotateRows: %w", err)
	}
	eval.ApplyGalois(ctIn, galEl, ctOut)
	return nil
}

// RotateRowsNew swaps the two rows of ctIn's plaintext matrix and returns the result in a new Ciphertext.
func (eval *Evaluator) RotateRowsNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level())
	err = eval.RotateRows(ctIn, ctOut)
	return
}
