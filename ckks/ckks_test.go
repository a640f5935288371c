package ckks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/gofhe/rlwe"
)

type testContext struct {
	params Parameters
	ecd    *Encoder
	enc    *rlwe.Encryptor
	dec    *rlwe.Decryptor
	eval   *Evaluator
}

func newTestContext(t *testing.T, literal rlwe.ParametersLiteral, logDefaultScale int) *testContext {
	literal.DefaultScale = rlwe.NewScale(math.Exp2(float64(logDefaultScale)))
	literal.DefaultNTTFlag = true

	rlweParams, err := rlwe.NewParametersFromLiteral(literal)
	require.NoError(t, err)

	params := Parameters{Parameters: rlweParams}

	kgen := rlwe.NewKeyGenerator(params)
	sk, _ := kgen.GenKeyPair()

	rlk := kgen.GenRelinearizationKey(sk)
	galEls := params.GaloisElements([]int{1, -1})
	galEls = append(galEls, params.GaloisElementForComplexConjugation())
	gks := kgen.GenGaloisKeys(galEls, sk)

	evk := rlwe.NewEvaluationKeySet()
	evk.RelinearizationKey = rlk
	for _, gk := range gks {
		evk.GaloisKeys[gk.GaloisElement] = gk
	}

	return &testContext{
		params: params,
		ecd:    NewEncoder(params),
		enc:    rlwe.NewEncryptor(params, sk),
		dec:    rlwe.NewDecryptor(params, sk),
		eval:   NewEvaluator(params, evk),
	}
}

func testValues(tc *testContext) []complex128 {
	n := tc.params.PlaintextSlots()
	values := make([]complex128, n)
	for i := range values {
		values[i] = complex(float64(i)/float64(n), -float64(i)/float64(2*n))
	}
	return values
}

func requirePrecision(t *testing.T, want, have []complex128, minBits float64) {
	prec := GetPrecisionStats(want, have)
	require.GreaterOrEqualf(t, prec.MinPrecision, minBits, "precision report: %s", prec.String())
}

func TestCKKSEncodeDecode(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0], 40)
	values := testValues(tc)

	pt := tc.ecd.EncodeNew(values, tc.params.MaxLevel())
	have := tc.ecd.DecodeComplexNew(pt)

	requirePrecision(t, values, have, 20)
}

func TestCKKSEncryptDecrypt(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0], 40)
	values := testValues(tc)

	pt := tc.ecd.EncodeNew(values, tc.params.MaxLevel())
	ct := tc.enc.EncryptNew(pt)

	ptOut := tc.dec.DecryptNew(ct)
	have := tc.ecd.DecodeComplexNew(ptOut)

	requirePrecision(t, values, have, 20)
}

func TestCKKSAddSub(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0], 40)
	values0 := testValues(tc)
	values1 := testValues(tc)

	pt0 := tc.ecd.EncodeNew(values0, tc.params.MaxLevel())
	pt1 := tc.ecd.EncodeNew(values1, tc.params.MaxLevel())
	ct0 := tc.enc.EncryptNew(pt0)
	ct1 := tc.enc.EncryptNew(pt1)

	wantAdd := make([]complex128, len(values0))
	wantSub := make([]complex128, len(values0))
	for i := range values0 {
		wantAdd[i] = values0[i] + values1[i]
		wantSub[i] = values0[i] - values1[i]
	}

	ctAdd, err := tc.eval.AddNew(ct0, ct1)
	require.NoError(t, err)
	haveAdd := tc.ecd.DecodeComplexNew(tc.dec.DecryptNew(ctAdd))
	requirePrecision(t, wantAdd, haveAdd, 20)

	ctSub, err := tc.eval.SubNew(ct0, ct1)
	require.NoError(t, err)
	haveSub := tc.ecd.DecodeComplexNew(tc.dec.DecryptNew(ctSub))
	requirePrecision(t, wantSub, haveSub, 20)
}

func TestCKKSMultiplyRelinRescale(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[1], 40)
	values0 := testValues(tc)
	values1 := testValues(tc)

	pt0 := tc.ecd.EncodeNew(values0, tc.params.MaxLevel())
	pt1 := tc.ecd.EncodeNew(values1, tc.params.MaxLevel())
	ct0 := tc.enc.EncryptNew(pt0)
	ct1 := tc.enc.EncryptNew(pt1)

	want := make([]complex128, len(values0))
	for i := range values0 {
		want[i] = values0[i] * values1[i]
	}

	ctOut := NewCiphertext(tc.params, 1, tc.params.MaxLevel())
	require.NoError(t, tc.eval.MultiplyRelin(ct0, ct1, ctOut))
	require.InDelta(t, 80.0, math.Round(math.Log2(ctOut.Scale.Float64())), 1)

	rescaled := NewCiphertext(tc.params, 1, ctOut.Level()-1)
	tc.eval.RescaleToNext(ctOut, rescaled)

	have := tc.ecd.DecodeComplexNew(tc.dec.DecryptNew(rescaled))
	requirePrecision(t, want, have, 15)
}

func TestCKKSRotate(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0], 40)
	values := testValues(tc)

	pt := tc.ecd.EncodeNew(values, tc.params.MaxLevel())
	ct := tc.enc.EncryptNew(pt)

	ctOut, err := tc.eval.RotateNew(ct, 1)
	require.NoError(t, err)

	have := tc.ecd.DecodeComplexNew(tc.dec.DecryptNew(ctOut))

	want := make([]complex128, len(values))
	copy(want, values[1:])
	copy(want[len(want)-1:], values[:1])

	requirePrecision(t, want, have, 15)
}

func TestCKKSComplexConjugate(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0], 40)
	values := testValues(tc)

	pt := tc.ecd.EncodeNew(values, tc.params.MaxLevel())
	ct := tc.enc.EncryptNew(pt)

	ctOut, err := tc.eval.ComplexConjugateNew(ct)
	require.NoError(t, err)

	have := tc.ecd.DecodeComplexNew(tc.dec.DecryptNew(ctOut))

	want := make([]complex128, len(values))
	for i, v := range values {
		want[i] = complex(real(v), -imag(v))
	}

	requirePrecision(t, want, have, 15)
}
