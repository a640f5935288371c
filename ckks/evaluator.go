package ckks

import (
	"fmt"

	"github.com/tuneinsight/gofhe/he"
	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/rlwe"
	"github.com/tuneinsight/gofhe/utils"
)

// Evaluator computes homomorphic operations on APX (CKKS) ciphertexts. An
// Evaluator holds scratch buffers that its operations write to, so a single
// instance is not safe for concurrent calls, even on distinct ciphertexts;
// ShallowCopy returns an instance with its own buffers for use alongside
// the receiver (see rlwe.Evaluator for the shared key-switching machinery).
type Evaluator struct {
	*rlwe.Evaluator
	params Parameters

	buffQ  *ring.Poly
	buffCt *rlwe.Ciphertext
}

// NewEvaluator instantiates a new Evaluator from the given parameters and
// evaluation keys (relinearization and/or Galois keys). evk may be nil for
// an Evaluator that never relinearizes or rotates.
func NewEvaluator(params Parameters, evk rlwe.EvaluationKeySetInterface) *Evaluator {
	return &Evaluator{
		Evaluator: rlwe.NewEvaluator(params, evk),
		params:    params,
		buffQ:     params.RingQ().NewPoly(),
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

// checkScales requires two operands' scales to match, within the tolerance
// of exact floating-point equality: APX add/sub never rescales its inputs,
// so mismatched scales indicate a caller error rather than something the
// Evaluator should silently paper over.
func checkScales(a, b rlwe.Scale) error {
	if a.Cmp(b) != 0 {
		return fmt.Errorf("scale mismatch: %v != %v", a.Float64(), b.Float64())
	}
	return nil
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

// Add adds ct1 to ct0 and writes the result to ctOut. ct0 and ct1 must carry the same scale.
func (eval *Evaluator) Add(ct0, ct1, ctOut *rlwe.Ciphertext) error {
	if err := checkScales(ct0.Scale, ct1.Scale); err != nil {
		return fmt.Errorf("cannot Add: %w", err)
	}
	level := minLevel(minLevel(ct0.Level(), ct1.Level()), ctOut.Level())
	if ctOut.Degree() < utils.MaxInt(ct0.Degree(), ct1.Degree()) {
		ctOut.Resize(utils.MaxInt(ct0.Degree(), ct1.Degree()), level)
	}
	eval.evaluateInPlace(level, ct0, ct1, ctOut, eval.params.RingQ().AtLevel(level).Add)
	return nil
}

// AddNew adds ct1 to ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) AddNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, utils.MaxInt(ct0.Degree(), ct1.Degree()), minLevel(ct0.Level(), ct1.Level()))
	err = eval.Add(ct0, ct1, ctOut)
	return
}

// Sub subtracts ct1 from ct0 and writes the result to ctOut. ct0 and ct1 must carry the same scale.
func (eval *Evaluator) Sub(ct0, ct1, ctOut *rlwe.Ciphertext) error {
	if err := checkScales(ct0.Scale, ct1.Scale); err != nil {
		return fmt.Errorf("cannot Sub: %w", err)
	}
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
	return nil
}

// SubNew subtracts ct1 from ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) SubNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, utils.MaxInt(ct0.Degree(), ct1.Degree()), minLevel(ct0.Level(), ct1.Level()))
	err = eval.Sub(ct0, ct1, ctOut)
	return
}

// AddMany sums a slice of ciphertexts and returns the result in a new Ciphertext.
func (eval *Evaluator) AddMany(cts []*rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	if len(cts) == 0 {
		panic("cannot AddMany: input slice is empty")
	}
	ctOut = cts[0].CopyNew()
	for _, ct := range cts[1:] {
		if err = eval.Add(ctOut, ct, ctOut); err != nil {
			return nil, err
		}
	}
	return
}

// AddPlain adds the plaintext pt to ct0 and writes the result to ctOut. Both
// must be in the NTT domain at the same level and carry the same scale.
func (eval *Evaluator) AddPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) error {
	if !ct0.IsNTT || !pt.IsNTT {
		return fmt.Errorf("cannot AddPlain: both ct0 and pt must be in the NTT domain")
	}
	if err := checkScales(ct0.Scale, pt.Scale); err != nil {
		return fmt.Errorf("cannot AddPlain: %w", err)
	}

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
	return nil
}

// AddPlainNew adds the plaintext pt to ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) AddPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	err = eval.AddPlain(ct0, pt, ctOut)
	return
}

// SubPlain subtracts the plaintext pt from ct0 and writes the result to
// ctOut. Both must be in the NTT domain at the same level and carry the same scale.
func (eval *Evaluator) SubPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) error {
	if !ct0.IsNTT || !pt.IsNTT {
		return fmt.Errorf("cannot SubPlain: both ct0 and pt must be in the NTT domain")
	}
	if err := checkScales(ct0.Scale, pt.Scale); err != nil {
		return fmt.Errorf("cannot SubPlain: %w", err)
	}

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
	return nil
}

// SubPlainNew subtracts the plaintext pt from ct0 and returns the result in a new Ciphertext.
func (eval *Evaluator) SubPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	err = eval.SubPlain(ct0, pt, ctOut)
	return
}

// checkMulScale validates a product's combined scale against the level's
// total modulus bit count, mirroring the bound spec.md requires for both
// ciphertext-ciphertext and ciphertext-plaintext multiplication.
func (eval *Evaluator) checkMulScale(scale rlwe.Scale, level int) error {
	if scale.Cmp(rlwe.NewScale(0)) <= 0 {
		return fmt.Errorf("resulting scale is not strictly positive")
	}
	logScale := scale.Value.MantExp(nil)
	logQ := eval.params.RingQ().AtLevel(level).LogModuli()
	if float64(logScale) >= logQ {
		return fmt.Errorf("resulting scale (2^%d) meets or exceeds the modulus bit count (2^%.0f) at level %d", logScale, logQ, level)
	}
	return nil
}

// MultiplyPlain multiplies ct0 by pt and writes the result to ctOut. Both
// must be in the NTT domain; the destination scale is scale(ct0)*scale(pt).
func (eval *Evaluator) MultiplyPlain(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext, ctOut *rlwe.Ciphertext) error {
	if !ct0.IsNTT || !pt.IsNTT {
		return fmt.Errorf("cannot MultiplyPlain: both ct0 and pt must be in the NTT domain")
	}

	level := minLevel(minLevel(ct0.Level(), pt.Level()), ctOut.Level())
	newScale := ct0.Scale.Mul(pt.Scale)
	if err := eval.checkMulScale(newScale, level); err != nil {
		return fmt.Errorf("cannot MultiplyPlain: %w", err)
	}

	ringQ := eval.params.RingQ().AtLevel(level)
	ctOut.Resize(ct0.Degree(), level)

	ptMForm := eval.buffQ
	ringQ.MForm(pt.Value, ptMForm)

	for i := 0; i < ct0.Degree()+1; i++ {
		ringQ.MulCoeffsMontgomery(&ct0.Value[i], ptMForm, &ctOut.Value[i])
	}

	ctOut.MetaData = ct0.MetaData
	ctOut.Scale = newScale
	return nil
}

// MultiplyPlainNew multiplies ct0 by pt and returns the result in a new Ciphertext.
func (eval *Evaluator) MultiplyPlainNew(ct0 *rlwe.Ciphertext, pt *rlwe.Plaintext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ct0.Degree(), minLevel(ct0.Level(), pt.Level()))
	err = eval.MultiplyPlain(ct0, pt, ctOut)
	return
}

// Multiply multiplies ct0 with ct1 and writes the degree-2 result to ctOut:
// a direct NTT-domain dyadic tensor product, unlike INT's BEHZ envelope,
// since APX ciphertexts already live in NTT domain and carry no plaintext
// modulus to divide out. ct0 and ct1 must both be of degree 1, in the NTT
// domain; the destination scale is scale(ct0)*scale(ct1).
func (eval *Evaluator) Multiply(ct0, ct1, ctOut *rlwe.Ciphertext) error {
	if ct0.Degree() != 1 || ct1.Degree() != 1 {
		panic("cannot Multiply: both operands must be of degree 1")
	}
	if !ct0.IsNTT || !ct1.IsNTT {
		return fmt.Errorf("cannot Multiply: both operands must be in the NTT domain")
	}

	level := minLevel(minLevel(ct0.Level(), ct1.Level()), ctOut.Level())
	newScale := ct0.Scale.Mul(ct1.Scale)
	if err := eval.checkMulScale(newScale, level); err != nil {
		return fmt.Errorf("cannot Multiply: %w", err)
	}

	ringQ := eval.params.RingQ().AtLevel(level)
	if ctOut.Level() != level || ctOut.Degree() != 2 {
		ctOut.Resize(2, level)
	}

	c0M, c1M := ringQ.NewPoly(), ringQ.NewPoly()
	ringQ.MForm(&ct1.Value[0], c0M)
	ringQ.MForm(&ct1.Value[1], c1M)

	ringQ.MulCoeffsMontgomery(&ct0.Value[0], c0M, &ctOut.Value[0])

	tmp := ringQ.NewPoly()
	ringQ.MulCoeffsMontgomery(&ct0.Value[0], c1M, &ctOut.Value[1])
	ringQ.MulCoeffsMontgomery(&ct0.Value[1], c0M, tmp)
	ringQ.Add(&ctOut.Value[1], tmp, &ctOut.Value[1])

	ringQ.MulCoeffsMontgomery(&ct0.Value[1], c1M, &ctOut.Value[2])

	ctOut.MetaData = ct0.MetaData
	ctOut.Scale = newScale
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
		return err
	}
	eval.Relinearize(eval.buffCt, ctOut)
	ctOut.Scale = eval.buffCt.Scale
	return nil
}

// MultiplyRelinNew multiplies ct0 with ct1 and returns the relinearized result in a new Ciphertext.
func (eval *Evaluator) MultiplyRelinNew(ct0, ct1 *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, 1, minLevel(ct0.Level(), ct1.Level()))
	err = eval.MultiplyRelin(ct0, ct1, ctOut)
	return
}

// Square squares ctIn and writes the degree-2 result to ctOut, via the
// Karatsuba-like shortcut (c0^2, 2*c0*c1, c1^2), which spec.md §4.3.3 calls
// out specifically for the APX size-2 case.
func (eval *Evaluator) Square(ctIn, ctOut *rlwe.Ciphertext) error {
	if ctIn.Degree() != 1 {
		panic("cannot Square: input must be of degree 1")
	}
	if !ctIn.IsNTT {
		return fmt.Errorf("cannot Square: input must be in the NTT domain")
	}

	level := minLevel(ctIn.Level(), ctOut.Level())
	newScale := ctIn.Scale.Mul(ctIn.Scale)
	if err := eval.checkMulScale(newScale, level); err != nil {
		return fmt.Errorf("cannot Square: %w", err)
	}

	ringQ := eval.params.RingQ().AtLevel(level)
	if ctOut.Level() != level || ctOut.Degree() != 2 {
		ctOut.Resize(2, level)
	}

	c0M, c1M := ringQ.NewPoly(), ringQ.NewPoly()
	ringQ.MForm(&ctIn.Value[0], c0M)
	ringQ.MForm(&ctIn.Value[1], c1M)

	ringQ.MulCoeffsMontgomery(&ctIn.Value[0], c0M, &ctOut.Value[0])

	ringQ.MulCoeffsMontgomery(&ctIn.Value[0], c1M, &ctOut.Value[1])
	ringQ.Add(&ctOut.Value[1], &ctOut.Value[1], &ctOut.Value[1])

	ringQ.MulCoeffsMontgomery(&ctIn.Value[1], c1M, &ctOut.Value[2])

	ctOut.MetaData = ctIn.MetaData
	ctOut.Scale = newScale
	return nil
}

// SquareNew squares ctIn and returns the degree-2 result in a new Ciphertext.
func (eval *Evaluator) SquareNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, 2, ctIn.Level())
	err = eval.Square(ctIn, ctOut)
	return
}

// RescaleToNext divides ctIn's last RNS modulus out by divide-and-round in
// the NTT domain, and divides the destination scale by the dropped prime's
// value: the APX message-preserving analogue of INT's ModSwitchToNext.
// ctIn must be in the NTT domain and must not already be at the last level.
func (eval *Evaluator) RescaleToNext(ctIn, ctOut *rlwe.Ciphertext) {
	if !ctIn.IsNTT {
		panic("cannot RescaleToNext: ciphertext must be in the NTT domain")
	}
	level := ctIn.Level()
	if level == 0 {
		panic("cannot RescaleToNext: ciphertext is already at the last level")
	}

	ringQ := eval.params.RingQ().AtLevel(level)
	degree := ctIn.Degree()
	droppedModulus := ringQ.ModuliChain()[level]

	results := make([]*ring.Poly, degree+1)
	buff := ringQ.NewPoly()
	for i := 0; i <= degree; i++ {
		results[i] = ringQ.AtLevel(level - 1).NewPoly()
		ringQ.DivRoundByLastModulusNTT(&ctIn.Value[i], buff, results[i])
	}

	ctOut.Resize(degree, level-1)
	for i := 0; i <= degree; i++ {
		ctOut.Value[i].Copy(results[i])
	}

	ctOut.MetaData = ctIn.MetaData
	ctOut.Scale = ctIn.Scale.Div(rlwe.NewScale(droppedModulus))
}

// RescaleToNextNew divides ctIn's last RNS modulus out and returns the result in a new Ciphertext.
func (eval *Evaluator) RescaleToNextNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level()-1)
	eval.RescaleToNext(ctIn, ctOut)
	return
}

// RescaleToLevel rescales ctIn down to the target level, one step at a time.
func (eval *Evaluator) RescaleToLevel(ctIn *rlwe.Ciphertext, level int, ctOut *rlwe.Ciphertext) {
	if level > ctIn.Level() {
		panic("cannot RescaleToLevel: target level is higher than the input level")
	}
	ctOut.Resize(ctIn.Degree(), ctIn.Level())
	ctOut.Copy(ctIn)
	for ctOut.Level() > level {
		eval.RescaleToNext(ctOut, ctOut)
	}
}

// ModSwitchDropToNext truncates ctIn to the first level RNS limbs without
// touching the coefficients or the scale: the lossless APX level change,
// as opposed to RescaleToNext's divide-and-round.
func (eval *Evaluator) ModSwitchDropToNext(ctIn, ctOut *rlwe.Ciphertext) {
	level := ctIn.Level()
	if level == 0 {
		panic("cannot ModSwitchDropToNext: ciphertext is already at the last level")
	}
	scale := ctIn.Scale
	ctOut.Resize(ctIn.Degree(), level-1)
	for i := range ctOut.Value {
		ring.CopyLvl(level-1, &ctIn.Value[i], &ctOut.Value[i])
	}
	ctOut.MetaData = ctIn.MetaData
	ctOut.Scale = scale
}

// ModSwitchDropToNextNew truncates ctIn to the first level RNS limbs and returns the result in a new Ciphertext.
func (eval *Evaluator) ModSwitchDropToNextNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level()-1)
	eval.ModSwitchDropToNext(ctIn, ctOut)
	return
}

// ModSwitchDropToLevel drops ctIn to the target level, one step at a time.
func (eval *Evaluator) ModSwitchDropToLevel(ctIn *rlwe.Ciphertext, level int, ctOut *rlwe.Ciphertext) {
	if level > ctIn.Level() {
		panic("cannot ModSwitchDropToLevel: target level is higher than the input level")
	}
	ctOut.Resize(ctIn.Degree(), ctIn.Level())
	ctOut.Copy(ctIn)
	for ctOut.Level() > level {
		eval.ModSwitchDropToNext(ctOut, ctOut)
	}
}

// ModSwitchToNext drops ctIn to the next level: for APX this is always the
// lossless ModSwitchDropToNext (mirroring spec.md §4.5's INT->scale,
// APX->drop dispatch — the scale-consuming variant is RescaleToNext, called
// explicitly by a caller that wants to shed noise from a fresh product).
func (eval *Evaluator) ModSwitchToNext(ctIn, ctOut *rlwe.Ciphertext) {
	eval.ModSwitchDropToNext(ctIn, ctOut)
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

// Rotate rotates the slots of ctIn by k positions and writes the result to
// ctOut, applying a non-adjacent-form decomposition of k when no direct key
// is available.
func (eval *Evaluator) Rotate(ctIn *rlwe.Ciphertext, k int, ctOut *rlwe.Ciphertext) error {
	return he.Rotate(eval.Evaluator, eval.params, ctIn, k, ctOut)
}

// RotateNew rotates the slots of ctIn by k positions and returns the result in a new Ciphertext.
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

// ComplexConjugate replaces every slot of ctIn with its complex conjugate and writes the result to ctOut.
func (eval *Evaluator) ComplexConjugate(ctIn, ctOut *rlwe.Ciphertext) error {
	galEl := eval.params.GaloisElementForComplexConjugation()
	if _, err := eval.CheckAndGetGaloisKey(galEl); err != nil {
		return fmt.Errorf("cannot ComplexConjugate: %w", err)
	}
	eval.ApplyGalois(ctIn, galEl, ctOut)
	return nil
}

// ComplexConjugateNew replaces every slot of ctIn with its complex conjugate and returns the result in a new Ciphertext.
func (eval *Evaluator) ComplexConjugateNew(ctIn *rlwe.Ciphertext) (ctOut *rlwe.Ciphertext, err error) {
	ctOut = NewCiphertext(eval.params, ctIn.Degree(), ctIn.Level())
	err = eval.ComplexConjugate(ctIn, ctOut)
	return
}
