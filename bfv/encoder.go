package bfv

import (
	"math/big"
	"math/bits"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/rlwe"
	"github.com/tuneinsight/gofhe/utils"
)

// Encoder packs and unpacks integer vectors into the SIMD (CRT-batched) slots
// of a plaintext polynomial, and lifts/scales the result into the ciphertext
// ring modulo Q by the classical BFV factor Delta = floor(Q/t).
type Encoder struct {
	params Parameters

	indexMatrix []uint64

	buffT *ring.Poly
	buffQ *ring.Poly

	delta *big.Int
}

// NewEncoder creates a new Encoder from the provided parameters.
func NewEncoder(params Parameters) *Encoder {

	ringT := params.RingT()
	N := ringT.N()

	logN := bits.Len64(uint64(N)) - 1
	mask := uint64(2*N - 1)

	indexMatrix := make([]uint64, N)
	pow, pos := uint64(1), 0
	for i, j := 0, N>>1; i < N>>1; i, j = i+1, j+1 {
		pos = int(utils.BitReverse64(pow>>1, uint64(logN)))
		indexMatrix[i] = uint64(pos)
		indexMatrix[j] = uint64(N) - uint64(pos) - 1
		pow *= ring.GaloisGen
		pow &= mask
	}

	return &Encoder{
		params:      params,
		indexMatrix: indexMatrix,
		buffT:       ringT.NewPoly(),
		buffQ:       params.RingQ().NewPoly(),
		delta:       params.Delta(),
	}
}

// EncodeNew encodes values (a []uint64 or []int64 slice of length at most
// N(params)) into a newly allocated Plaintext at the given level.
func (ecd *Encoder) EncodeNew(values interface{}, level int) (pt *rlwe.Plaintext) {
	pt = NewPlaintext(ecd.params, level)
	ecd.Encode(values, pt)
	return
}

// EncodeRawNew encodes values into a newly allocated Plaintext without
// scaling by Delta = floor(Q/t): the result carries the plaintext values
// broadcast into every RNS limb of Q, unscaled. This is the representation
// expected by Evaluator.MultiplyPlain, since a ciphertext already carries a
// single factor of Delta and multiplying by a Delta-scaled plaintext would
// double it.
func (ecd *Encoder) EncodeRawNew(values interface{}, level int) (pt *rlwe.Plaintext) {
	pt = NewPlaintext(ecd.params, level)
	ecd.encode(values, pt, false)
	return
}

// Encode encodes values into the pre-allocated Plaintext pt, at pt's level.
func (ecd *Encoder) Encode(values interface{}, pt *rlwe.Plaintext) {
	ecd.encode(values, pt, true)
}

func (ecd *Encoder) encode(values interface{}, pt *rlwe.Plaintext, scaleByDelta bool) {

	ringT := ecd.params.RingT()
	buffT := ecd.buffT

	if len(buffT.Coeffs[0]) < ecd.numValues(values) {
		panic("cannot Encode: too many values for the ring degree")
	}

	ecd.placeSlots(values, buffT.Coeffs[0])

	ringT.INTT(buffT, buffT)

	level := pt.Level()
	ringQ := ecd.params.RingQ().AtLevel(level)

	// Broadcast the plaintext-ring coefficients into every RNS limb of Q, then
	// scale by Delta = floor(Q/t): this is the classical BFV plaintext embedding.
	for i := 0; i <= level; i++ {
		copy(pt.Value.Coeffs[i], buffT.Coeffs[0])
	}

	if scaleByDelta {
		delta := ecd.delta
		if level != ecd.params.MaxLevel() {
			delta = new(big.Int).SetUint64(1)
			for _, qi := range ringQ.ModuliChain() {
				delta.Mul(delta, new(big.Int).SetUint64(qi))
			}
			delta.Quo(delta, new(big.Int).SetUint64(ecd.params.T()))
		}
		ringQ.MulScalarBigint(pt.Value, delta, pt.Value)
	} else {
		ringQ.Reduce(pt.Value, pt.Value)
	}

	if pt.IsNTT {
		ringQ.NTT(pt.Value, pt.Value)
	}

	pt.MetaData.PlaintextLogDimensions = ecd.params.PlaintextLogDimensions()
}

// DecodeUintNew decodes pt into a new []uint64 slice.
func (ecd *Encoder) DecodeUintNew(pt *rlwe.Plaintext) (values []uint64) {
	values = make([]uint64, ecd.params.N())
	ecd.decode(pt, values)
	return
}

// DecodeIntNew decodes pt into a new []int64 slice, with values centered in (-t/2, t/2].
func (ecd *Encoder) DecodeIntNew(pt *rlwe.Plaintext) (values []int64) {
	values = make([]int64, ecd.params.N())
	ecd.decode(pt, values)
	return
}

func (ecd *Encoder) decode(pt *rlwe.Plaintext, values interface{}) {

	level := pt.Level()
	ringQ := ecd.params.RingQ().AtLevel(level)

	if pt.IsNTT {
		ringQ.INTT(pt.Value, ecd.buffQ)
	} else {
		ring.CopyLvl(level, pt.Value, ecd.buffQ)
	}

	t := ecd.params.T()
	moduli := ringQ.ModuliChain()
	Q := new(big.Int).SetUint64(1)
	for _, qi := range moduli {
		Q.Mul(Q, new(big.Int).SetUint64(qi))
	}

	buffT := ecd.buffT
	x := new(big.Int)
	num := new(big.Int)

	for j := 0; j < ecd.params.RingT().N(); j++ {
		x.SetUint64(0)
		reconstructCRT(x, ecd.buffQ, j, moduli)

		// round(x*t/Q) mod t
		num.Mul(x, new(big.Int).SetUint64(t))
		num.Mul(num, big.NewInt(2))
		num.Add(num, Q)
		den := new(big.Int).Mul(Q, big.NewInt(2))
		num.Div(num, den)
		num.Mod(num, new(big.Int).SetUint64(t))

		buffT.Coeffs[0][j] = num.Uint64()
	}

	ringT := ecd.params.RingT()
	ringT.NTT(buffT, buffT)

	ecd.extractSlots(buffT.Coeffs[0], values)
}

// reconstructCRT reconstructs, via Garner's incremental CRT algorithm, the
// integer x in [0,Q) represented by the j-th coefficient of poly across its
// active RNS limbs, and writes it to acc.
func reconstructCRT(acc *big.Int, poly *ring.Poly, j int, moduli []uint64) {
	acc.SetUint64(poly.Coeffs[0][j])
	Qpartial := new(big.Int).SetUint64(moduli[0])
	tmp := new(big.Int)
	qi := new(big.Int)
	for i := 1; i < len(moduli); i++ {
		qi.SetUint64(moduli[i])
		ri := poly.Coeffs[i][j]

		tmp.Mod(acc, qi)
		diff := (int64(ri) - tmp.Int64() + int64(moduli[i])) % int64(moduli[i])

		inv := new(big.Int).ModInverse(Qpartial, qi)
		if inv == nil {
			inv = big.NewInt(1)
		}
		inv.Mul(inv, big.NewInt(diff))
		inv.Mod(inv, qi)

		tmp.Mul(Qpartial, inv)
		acc.Add(acc, tmp)

		Qpartial.Mul(Qpartial, qi)
	}
}

func (ecd *Encoder) numValues(values interface{}) int {
	switch v := values.(type) {
	case []uint64:
		return len(v)
	case []int64:
		return len(v)
	default:
		panic("cannot Encode: values must be []uint64 or []int64")
	}
}

func (ecd *Encoder) placeSlots(values interface{}, dst []uint64) {
	t := ecd.params.T()
	indexMatrix := ecd.indexMatrix

	switch values := values.(type) {
	case []uint64:
		for i, v := range values {
			dst[indexMatrix[i]] = v % t
		}
		for i := len(values); i < len(indexMatrix); i++ {
			dst[indexMatrix[i]] = 0
		}
	case []int64:
		for i, v := range values {
			if v < 0 {
				dst[indexMatrix[i]] = t - (uint64(-v) % t)
			} else {
				dst[indexMatrix[i]] = uint64(v) % t
			}
		}
		for i := len(values); i < len(indexMatrix); i++ {
			dst[indexMatrix[i]] = 0
		}
	default:
		panic("cannot Encode: values must be []uint64 or []int64")
	}
}

func (ecd *Encoder) extractSlots(src []uint64, values interface{}) {
	indexMatrix := ecd.indexMatrix
	switch values := values.(type) {
	case []uint64:
		for i := range values {
			values[i] = src[indexMatrix[i]]
		}
	case []int64:
		t := int64(ecd.params.T())
		half := t >> 1
		for i := range values {
			v := int64(src[indexMatrix[i]])
			if v > half {
				v -= t
			}
			values[i] = v
		}
	default:
		panic("cannot Decode: values must be []uint64 or []int64")
	}
}
