package rlwe

import (
	"fmt"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/ring/distribution"
	"github.com/tuneinsight/gofhe/rlwe/ringqp"
	"github.com/tuneinsight/gofhe/utils/sampling"
)

// KeyGenerator generates secret keys, public keys, relinearization keys and
// Galois keys for a given set of RLWE parameters.
type KeyGenerator struct {
	params           ParametersInterface
	prng             sampling.PRNG
	ternarySampler   ring.Sampler
	gaussianSamplerQ ring.Sampler
	basisExtender    *ring.BasisExtender
}

// NewKeyGenerator creates a new KeyGenerator for the given parameters.
func NewKeyGenerator(params ParametersInterface) *KeyGenerator {

	prng, err := sampling.NewPRNG()
	if err != nil {
		panic(err)
	}

	ternary, err := ring.NewSampler(prng, params.RingQ(), toRingDistributionParameters(params.Xs()), false)
	if err != nil {
		panic(err)
	}

	gaussian, err := ring.NewSampler(prng, params.RingQ(), toRingDistributionParameters(params.Xe()), false)
	if err != nil {
		panic(err)
	}

	var be *ring.BasisExtender
	if params.RingP() != nil {
		be = ring.NewBasisExtender(params.RingQ(), params.RingP())
	}

	return &KeyGenerator{
		params:           params,
		prng:             prng,
		ternarySampler:   ternary,
		gaussianSamplerQ: gaussian,
		basisExtender:    be,
	}
}

// toRingDistributionParameters converts a ring/distribution.Distribution literal
// (used to describe a Parameters instance) into the ring.DistributionParameters
// used to instantiate a concrete ring.Sampler.
func toRingDistributionParameters(d distribution.Distribution) ring.DistributionParameters {
	switch d := d.(type) {
	case *distribution.Ternary:
		return ring.Ternary{P: d.P, H: d.H}
	case *distribution.DiscreteGaussian:
		return ring.DiscreteGaussian{Sigma: float64(d.Sigma), Bound: float64(d.Bound)}
	default:
		panic(fmt.Sprintf("unsupported distribution type %T", d))
	}
}

// GenSecretKey generates a new SecretKey sampled from the parameters' secret distribution.
func (keygen *KeyGenerator) GenSecretKey() (sk *SecretKey) {
	return keygen.genSecretKeyFromSampler(keygen.ternarySampler)
}

// GenSecretKeyGaussian generates a new SecretKey sampled from the parameters' error distribution.
func (keygen *KeyGenerator) GenSecretKeyGaussian() (sk *SecretKey) {
	return keygen.genSecretKeyFromSampler(keygen.gaussianSamplerQ)
}

func (keygen *KeyGenerator) genSecretKeyFromSampler(sampler ring.Sampler) (sk *SecretKey) {
	params := keygen.params
	sk = NewSecretKey(params)

	levelQ, levelP := sk.Value.LevelQ(), sk.Value.LevelP()

	sampler.Read(*sk.Value.Q)

	if levelP > -1 {
		keygen.basisExtender.ModUpQtoP(levelQ, levelP, sk.Value.Q, sk.Value.P)
		params.RingP().AtLevel(levelP).NTT(sk.Value.P, sk.Value.P)
		params.RingP().AtLevel(levelP).MForm(sk.Value.P, sk.Value.P)
	}

	params.RingQ().AtLevel(levelQ).NTT(sk.Value.Q, sk.Value.Q)
	params.RingQ().AtLevel(levelQ).MForm(sk.Value.Q, sk.Value.Q)

	return
}

// GenPublicKey generates a new PublicKey from the provided SecretKey.
func (keygen *KeyGenerator) GenPublicKey(sk *SecretKey) (pk *PublicKey) {
	pk = NewPublicKey(keygen.params)
	keygen.encryptZeroQP(pk.LevelQ(), pk.LevelP(), sk, &pk.Value[0], &pk.Value[1])
	return
}

// GenKeyPair generates a new SecretKey and its corresponding PublicKey.
func (keygen *KeyGenerator) GenKeyPair() (sk *SecretKey, pk *PublicKey) {
	sk = keygen.GenSecretKey()
	return sk, keygen.GenPublicKey(sk)
}

// GenRelinearizationKey generates the RelinearizationKey used to relinearize
// a degree-2 ciphertext (one that decrypts under sk^2) back to a degree-1
// ciphertext (one that decrypts under sk).
func (keygen *KeyGenerator) GenRelinearizationKey(sk *SecretKey) (rlk *RelinearizationKey) {

	params := keygen.params
	levelQ, levelP := params.MaxLevelQ(), params.MaxLevelP()

	sk2 := ringqp.Poly{Q: sk.Value.Q.CopyNew()}
	params.RingQ().AtLevel(levelQ).MulCoeffsMontgomery(sk2.Q, sk.Value.Q, sk2.Q)

	rlk = NewRelinearizationKey(params)
	keygen.genEvaluationKey(levelQ, levelP, sk2, sk.Value, &rlk.EvaluationKey.GadgetCiphertext)

	return
}

// GenGaloisKey generates the GaloisKey enabling the homomorphic evaluation
// of the automorphism associated with the Galois element galEl.
func (keygen *KeyGenerator) GenGaloisKey(galEl uint64, sk *SecretKey) (gk *GaloisKey) {

	params := keygen.params
	levelQ, levelP := params.MaxLevelQ(), params.MaxLevelP()

	skPermuted := ringqp.Poly{Q: params.RingQ().NewPoly()}
	if levelP > -1 {
		skPermuted.P = params.RingP().NewPoly()
	}

	// skPermuted = pi_k^{-1}(sk): Evaluator.Automorphism key-switches before applying pi_k.
	index := ring.AutomorphismNTTIndex(params.N(), params.RingQ().NthRoot(), params.ModInvGaloisElement(galEl))
	params.RingQ().AtLevel(levelQ).PermuteNTTWithIndex(sk.Value.Q, index, skPermuted.Q)
	if levelP > -1 {
		params.RingP().AtLevel(levelP).PermuteNTTWithIndex(sk.Value.P, index, skPermuted.P)
	}

	gk = NewGaloisKey(params)
	gk.GaloisElement = galEl
	keygen.genEvaluationKey(levelQ, levelP, sk.Value, skPermuted, &gk.EvaluationKey.GadgetCiphertext)

	return
}

// GenGaloisKeys generates the GaloisKeys for every Galois element in galEls.
func (keygen *KeyGenerator) GenGaloisKeys(galEls []uint64, sk *SecretKey) (gks []*GaloisKey) {
	gks = make([]*GaloisKey, len(galEls))
	for i, galEl := range galEls {
		gks[i] = keygen.GenGaloisKey(galEl, sk)
	}
	return
}

// genEvaluationKey encrypts skIn under skOut, filling evk with the gadget encryptions.
func (keygen *KeyGenerator) genEvaluationKey(levelQ, levelP int, skIn, skOut ringqp.Poly, evk *GadgetCiphertext) {

	params := keygen.params
	ringQP := *params.RingQP()

	*evk = *NewGadgetCiphertext(levelQ, levelP, params.DecompRNS(levelQ, levelP), params.DecompPw2(levelQ, levelP), ringQP)

	decompRNS := len(evk.Value)
	decompPw2 := len(evk.Value[0])

	for i := 0; i < decompRNS; i++ {
		for j := 0; j < decompPw2; j++ {
			keygen.encryptZeroQP(levelQ, levelP, &SecretKey{Value: skOut}, &evk.Value[i][j].Value[0], &evk.Value[i][j].Value[1])
		}
	}

	buff := params.RingQ().NewPoly()
	cts := []GadgetCiphertext{*evk}
	AddPolyTimesGadgetVectorToGadgetCiphertext(skIn.Q, cts, ringQP.AtLevel(levelQ, levelP), params.Pow2Base(), buff)
	*evk = cts[0]
}

// encryptZeroQP writes a fresh RLWE encryption of zero under sk into (c0, c1): c1 is
// uniform in R_QP and c0 = -c1*sk + e mod QP, with e sampled small in R_Q only.
func (keygen *KeyGenerator) encryptZeroQP(levelQ, levelP int, sk *SecretKey, c0, c1 *ringqp.Poly) {

	params := keygen.params
	ringQP := params.RingQP().AtLevel(levelQ, levelP)

	ring.NewUniformSampler(keygen.prng, params.RingQ()).AtLevel(levelQ).Read(*c1.Q)
	if levelP > -1 {
		ring.NewUniformSampler(keygen.prng, params.RingP()).AtLevel(levelP).Read(*c1.P)
	}

	ringQP.MulCoeffsMontgomeryLazy(*c1, sk.Value, *c0)
	ringQP.Reduce(*c0, *c0)

	params.RingQ().AtLevel(levelQ).Neg(c0.Q, c0.Q)
	if levelP > -1 {
		params.RingP().AtLevel(levelP).Neg(c0.P, c0.P)
	}

	e := params.RingQ().AtLevel(levelQ).NewPoly()
	keygen.gaussianSamplerQ.AtLevel(levelQ).Read(*e)
	params.RingQ().AtLevel(levelQ).NTT(e, e)
	params.RingQ().AtLevel(levelQ).Add(c0.Q, e, c0.Q)
}
