package ckks

import (
	"math"
	"math/big"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/rlwe"
)

// Encoder packs and unpacks a vector of complex (or real) numbers into the
// canonical-embedding slots of a plaintext polynomial, scaling by the
// plaintext's floating-point Scale.
//
// Only full-width batching is supported: every plaintext carries exactly
// params.PlaintextSlots() values (MaxSlots), matching the maximum packing
// capacity of the ring; there is no support for encoding a shorter vector
// into a strided subset of slots the way the teacher's bootstrapping-capable
// encoder does; a vector with fewer values than slots is padded with zeros
// by the encoder.
type Encoder struct {
	params Parameters

	slots int
	m     uint64

	rotGroup []uint64
	roots    []complex128

	buffQ *ring.Poly
}

// NewEncoder creates a new Encoder from the provided parameters.
func NewEncoder(params Parameters) *Encoder {

	slots := params.PlaintextSlots()
	m := params.RingQ().NthRoot()

	rotGroup := make([]uint64, slots)
	fivePow := uint64(1)
	for i := 0; i < slots; i++ {
		rotGroup[i] = fivePow
		fivePow = (fivePow * ring.GaloisGen) % m
	}

	roots := make([]complex128, m)
	for i := uint64(0); i < m; i++ {
		angle := 2 * math.Pi * float64(i) / float64(m)
		roots[i] = complex(math.Cos(angle), math.Sin(angle))
	}

	return &Encoder{
		params:   params,
		slots:    slots,
		m:        m,
		rotGroup: rotGroup,
		roots:    roots,
		buffQ:    params.RingQ().NewPoly(),
	}
}

// root returns e^{2*pi*i*exponent/M}, with exponent taken modulo M.
func (ecd *Encoder) root(exponent int64) complex128 {
	m := int64(ecd.m)
	e := exponent % m
	if e < 0 {
		e += m
	}
	return ecd.roots[e]
}

// EncodeNew encodes values (a []complex128 or []float64 slice of length at
// most params.PlaintextSlots()) into a newly allocated Plaintext at the
// given level, scaled by params.DefaultScale().
func (ecd *Encoder) EncodeNew(values interface{}, level int) (pt *rlwe.Plaintext) {
	pt = NewPlaintext(ecd.params, level)
	ecd.Encode(values, pt)
	return
}

// Encode encodes values into the pre-allocated Plaintext pt, at pt's level and scale.
func (ecd *Encoder) Encode(values interface{}, pt *rlwe.Plaintext) {

	slotValues := ecd.toComplexSlots(values)

	// Inverse canonical embedding: a[j] = (2/N) * sum_k Re(root(-rotGroup[k]*j) * v[k]).
	N := ecd.params.N()
	coeffs := make([]float64, N)
	for j := 0; j < N; j++ {
		var acc float64
		for k, v := range slotValues {
			w := ecd.root(-int64(ecd.rotGroup[k]) * int64(j))
			acc += real(w) * real(v)
			acc -= imag(w) * imag(v)
		}
		coeffs[j] = 2 * acc / float64(N)
	}

	level := pt.Level()
	ringQ := ecd.params.RingQ().AtLevel(level)
	moduli := ringQ.ModuliChain()
	Q := ecd.params.QBigInt()

	scale := new(big.Float).SetPrec(rlwe.ScalePrecision)
	scale.Set(&pt.Scale.Value)

	tmp := new(big.Float).SetPrec(rlwe.ScalePrecision)
	bigInt := new(big.Int)
	for j := 0; j < N; j++ {
		tmp.SetFloat64(coeffs[j])
		tmp.Mul(tmp, scale)
		if tmp.Sign() >= 0 {
			tmp.Add(tmp, big.NewFloat(0.5))
		} else {
			tmp.Sub(tmp, big.NewFloat(0.5))
		}
		tmp.Int(bigInt)

		bigInt.Mod(bigInt, Q)
		if bigInt.Sign() < 0 {
			bigInt.Add(bigInt, Q)
		}

		for i, qi := range moduli {
			r := new(big.Int).Mod(bigInt, new(big.Int).SetUint64(qi))
			pt.Value.Coeffs[i][j] = r.Uint64()
		}
	}

	if pt.IsNTT {
		ringQ.NTT(pt.Value, pt.Value)
	}

	pt.EncodingDomain = rlwe.SlotsDomain
	pt.PlaintextLogDimensions = ecd.params.PlaintextLogDimensions()
}

// DecodeComplexNew decodes pt into a new []complex128 slice of length params.PlaintextSlots().
func (ecd *Encoder) DecodeComplexNew(pt *rlwe.Plaintext) (values []complex128) {
	return ecd.decode(pt)
}

// DecodeFloatNew decodes pt into a new []float64 slice, discarding the imaginary part of every slot.
func (ecd *Encoder) DecodeFloatNew(pt *rlwe.Plaintext) (values []float64) {
	cmplxValues := ecd.decode(pt)
	values = make([]float64, len(cmplxValues))
	for i, v := range cmplxValues {
		values[i] = real(v)
	}
	return
}

func (ecd *Encoder) decode(pt *rlwe.Plaintext) (values []complex128) {

	level := pt.Level()
	ringQ := ecd.params.RingQ().AtLevel(level)

	if pt.IsNTT {
		ringQ.INTT(pt.Value, ecd.buffQ)
	} else {
		ring.CopyLvl(level, pt.Value, ecd.buffQ)
	}

	moduli := ringQ.ModuliChain()
	Q := new(big.Int).SetUint64(1)
	for _, qi := range moduli {
		Q.Mul(Q, new(big.Int).SetUint64(qi))
	}
	half := new(big.Int).Rsh(Q, 1)

	N := ecd.params.N()
	coeffs := make([]float64, N)

	scale := new(big.Float).SetPrec(rlwe.ScalePrecision)
	scale.Set(&pt.Scale.Value)

	x := new(big.Int)
	tmp := new(big.Float).SetPrec(rlwe.ScalePrecision)
	for j := 0; j < N; j++ {
		reconstructCRT(x, ecd.buffQ, j, moduli)
		if x.Cmp(half) > 0 {
			x.Sub(x, Q)
		}
		tmp.SetInt(x)
		tmp.Quo(tmp, scale)
		coeffs[j], _ = tmp.Float64()
	}

	// Forward canonical embedding: v[k] = sum_j a[j] * root(rotGroup[k]*j).
	values = make([]complex128, ecd.slots)
	for k := range values {
		var acc complex128
		for j, a := range coeffs {
			if a == 0 {
				continue
			}
			acc += complex(a, 0) * ecd.root(int64(ecd.rotGroup[k])*int64(j))
		}
		values[k] = acc
	}

	return
}

func (ecd *Encoder) toComplexSlots(values interface{}) []complex128 {
	out := make([]complex128, ecd.slots)
	switch v := values.(type) {
	case []complex128:
		if len(v) > ecd.slots {
			panic("cannot Encode: too many values for the number of slots")
		}
		copy(out, v)
	case []float64:
		if len(v) > ecd.slots {
			panic("cannot Encode: too many values for the number of slots")
		}
		for i, f := range v {
			out[i] = complex(f, 0)
		}
	default:
		panic("cannot Encode: values must be []complex128 or []float64")
	}
	return out
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
