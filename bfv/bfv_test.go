package bfv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/gofhe/rlwe"
)

type testContext struct {
	params Parameters
	kgen   *rlwe.KeyGenerator
	sk     *rlwe.SecretKey
	pk     *rlwe.PublicKey
	ecd    *Encoder
	enc    *rlwe.Encryptor
	dec    *rlwe.Decryptor
	eval   *Evaluator
}

func newTestContext(t *testing.T, literal rlwe.ParametersLiteral) *testContext {
	rlweParams, err := rlwe.NewParametersFromLiteral(literal)
	require.NoError(t, err)

	params, err := NewParameters(rlweParams, 65537)
	require.NoError(t, err)

	kgen := rlwe.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPair()

	rlk := kgen.GenRelinearizationKey(sk)
	galEls := params.GaloisElements([]int{1, -1, 2})
	gks := kgen.GenGaloisKeys(galEls, sk)

	evk := rlwe.NewEvaluationKeySet()
	evk.RelinearizationKey = rlk
	for _, gk := range gks {
		evk.GaloisKeys[gk.GaloisElement] = gk
	}

	return &testContext{
		params: params,
		kgen:   kgen,
		sk:     sk,
		pk:     pk,
		ecd:    NewEncoder(params),
		enc:    rlwe.NewEncryptor(params, sk),
		dec:    rlwe.NewDecryptor(params, sk),
		eval:   NewEvaluator(params, evk),
	}
}

func testValues(tc *testContext) []uint64 {
	n := tc.params.PlaintextSlots()
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(i) % tc.params.T()
	}
	return values
}

func (tc *testContext) encryptNew(t *testing.T, values []uint64) *rlwe.Ciphertext {
	pt := tc.ecd.EncodeNew(values, tc.params.MaxLevel())
	return tc.enc.EncryptNew(pt)
}

func (tc *testContext) decryptUint(t *testing.T, ct *rlwe.Ciphertext) []uint64 {
	pt := tc.dec.DecryptNew(ct)
	return tc.ecd.DecodeUintNew(pt)
}

func TestBFVEncryptDecrypt(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0])
	values := testValues(tc)

	ct := tc.encryptNew(t, values)
	have := tc.decryptUint(t, ct)

	require.Equal(t, values, have[:len(values)])
}

func TestBFVAddSub(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0])
	values0 := testValues(tc)
	values1 := testValues(tc)
	t_ := tc.params.T()

	ct0 := tc.encryptNew(t, values0)
	ct1 := tc.encryptNew(t, values1)

	ctAdd := tc.eval.AddNew(ct0, ct1)
	haveAdd := tc.decryptUint(t, ctAdd)
	for i := range values0 {
		require.Equal(t, (values0[i]+values1[i])%t_, haveAdd[i])
	}

	ctSub := tc.eval.SubNew(ct0, ct1)
	haveSub := tc.decryptUint(t, ctSub)
	for i := range values0 {
		require.Equal(t, (values0[i]+t_-values1[i])%t_, haveSub[i])
	}
}

func TestBFVMultiplyRelin(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0])
	t_ := tc.params.T()

	n := tc.params.PlaintextSlots()
	values0 := make([]uint64, n)
	values1 := make([]uint64, n)
	for i := range values0 {
		values0[i] = uint64(i%7) + 1
		values1[i] = uint64(i%5) + 1
	}

	ct0 := tc.encryptNew(t, values0)
	ct1 := tc.encryptNew(t, values1)

	ctOut := NewCiphertext(tc.params, 1, tc.params.MaxLevel())
	require.NoError(t, tc.eval.MultiplyRelin(ct0, ct1, ctOut))

	have := tc.decryptUint(t, ctOut)
	for i := range values0 {
		require.Equal(t, (values0[i]*values1[i])%t_, have[i])
	}
}

func TestBFVMultiplyPlain(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0])
	t_ := tc.params.T()

	n := tc.params.PlaintextSlots()
	values0 := make([]uint64, n)
	values1 := make([]uint64, n)
	for i := range values0 {
		values0[i] = uint64(i%7) + 1
		values1[i] = uint64(i%5) + 1
	}

	ct0 := tc.encryptNew(t, values0)
	pt1 := tc.ecd.EncodeRawNew(values1, tc.params.MaxLevel())

	ctOut, err := tc.eval.MultiplyPlainNew(ct0, pt1)
	require.NoError(t, err)
	have := tc.decryptUint(t, ctOut)
	for i := range values0 {
		require.Equal(t, (values0[i]*values1[i])%t_, have[i])
	}
}

func TestBFVRotate(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[0])
	values := testValues(tc)

	ct := tc.encryptNew(t, values)

	ctOut, err := tc.eval.RotateNew(ct, 1)
	require.NoError(t, err)

	have := tc.decryptUint(t, ctOut)
	rowSize := tc.params.PlaintextDimensions()[1]
	for i := 0; i < rowSize-1; i++ {
		require.Equal(t, values[i+1], have[i])
	}
}

func TestBFVRescaleChain(t *testing.T) {
	tc := newTestContext(t, rlwe.TestParametersLiteral[1])
	values := testValues(tc)

	ct := tc.encryptNew(t, values)
	require.Equal(t, tc.params.MaxLevel(), ct.Level())

	ctOut := tc.eval.ModSwitchToNextNew(ct)
	require.Equal(t, tc.params.MaxLevel()-1, ctOut.Level())

	have := tc.decryptUint(t, ctOut)
	require.Equal(t, values, have[:len(values)])
}
