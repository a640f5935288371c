package he_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/gofhe/bfv"
	"github.com/tuneinsight/gofhe/rlwe"
)

// TestRotateNAFFallback restricts the Galois key set to power-of-two column
// rotations only (no direct key for 3, 5, 6 or 7) and rotates by amounts that
// have no direct key, forcing he.Rotate through its non-adjacent-form
// decomposition into a chain of power-of-two rotations.
func TestRotateNAFFallback(t *testing.T) {
	rlweParams, err := rlwe.NewParametersFromLiteral(rlwe.TestParametersLiteral[0])
	require.NoError(t, err)

	params, err := bfv.NewParameters(rlweParams, 65537)
	require.NoError(t, err)

	kgen := rlwe.NewKeyGenerator(params)
	sk, _ := kgen.GenKeyPair()

	// Only powers of two (and their inverse) get a direct Galois key.
	galEls := params.GaloisElements([]int{1, -1, 2, -2, 4, -4, 8, -8})
	gks := kgen.GenGaloisKeys(galEls, sk)

	evk := rlwe.NewEvaluationKeySet()
	for _, gk := range gks {
		evk.GaloisKeys[gk.GaloisElement] = gk
	}

	ecd := bfv.NewEncoder(params)
	enc := rlwe.NewEncryptor(params, sk)
	dec := rlwe.NewDecryptor(params, sk)
	eval := bfv.NewEvaluator(params, evk)

	n := params.PlaintextSlots()
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(i) % params.T()
	}

	pt := ecd.EncodeNew(values, params.MaxLevel())
	ct := enc.EncryptNew(pt)

	rowSize := params.PlaintextDimensions()[1]

	for _, k := range []int{3, 5, 6, 7} {
		// None of these has a direct Galois key: params.GaloisElement(k) is
		// not among galEls above, so Rotate must fall back to NAF.
		require.False(t, hasDirectKey(evk, params, k))

		ctOut, err := eval.RotateNew(ct, k)
		require.NoError(t, err)

		have := ecd.DecodeUintNew(dec.DecryptNew(ctOut))
		for i := 0; i < rowSize-1; i++ {
			want := values[(i+k+rowSize)%rowSize]
			require.Equal(t, want, have[i], "rotation by %d, slot %d", k, i)
		}
	}
}

func hasDirectKey(evk *rlwe.EvaluationKeySet, params bfv.Parameters, k int) bool {
	_, ok := evk.GaloisKeys[params.GaloisElement(k)]
	return ok
}
