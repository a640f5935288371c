package rlwe

import (
	"fmt"

	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/utils/sampling"
)

// Encryptor encrypts Plaintext into Ciphertext, either using a PublicKey or a SecretKey.
type Encryptor struct {
	params ParametersInterface
	prng   sampling.PRNG

	uSampler ring.Sampler
	eSampler ring.Sampler

	pk *PublicKey
	sk *SecretKey
}

// NewEncryptor creates a new Encryptor from either a PublicKey or a SecretKey.
// key must be either *rlwe.PublicKey or *rlwe.SecretKey.
func NewEncryptor(params ParametersInterface, key interface{}) *Encryptor {

	prng, err := sampling.NewPRNG()
	if err != nil {
		panic(err)
	}

	uSampler, err := ring.NewSampler(prng, params.RingQ(), toRingDistributionParameters(params.Xs()), false)
	if err != nil {
		panic(err)
	}

	eSampler, err := ring.NewSampler(prng, params.RingQ(), toRingDistributionParameters(params.Xe()), false)
	if err != nil {
		panic(err)
	}

	enc := &Encryptor{
		params:   params,
		prng:     prng,
		uSampler: uSampler,
		eSampler: eSampler,
	}

	switch key := key.(type) {
	case *PublicKey:
		enc.pk = key
	case *SecretKey:
		enc.sk = key
	case nil:
	default:
		panic(fmt.Errorf("cannot NewEncryptor: key must be *rlwe.PublicKey, *rlwe.SecretKey or nil but is %T", key))
	}

	return enc
}

// EncryptZeroNew generates a fresh encryption of zero at the given level and returns it in a new Ciphertext.
func (enc *Encryptor) EncryptZeroNew(level int) (ct *Ciphertext) {
	ct = NewCiphertext(enc.params, 1, level)
	enc.EncryptZero(ct)
	return
}

// EncryptZero writes a fresh encryption of zero into ct, at ct's level.
func (enc *Encryptor) EncryptZero(ct *Ciphertext) {
	switch {
	case enc.sk != nil:
		enc.encryptZeroSk(ct)
	case enc.pk != nil:
		enc.encryptZeroPk(ct)
	default:
		panic("cannot EncryptZero: Encryptor has no key")
	}
}

// EncryptNew encrypts pt and returns the result in a new Ciphertext.
func (enc *Encryptor) EncryptNew(pt *Plaintext) (ct *Ciphertext) {
	ct = NewCiphertext(enc.params, 1, pt.Level())
	enc.Encrypt(pt, ct)
	return
}

// Encrypt encrypts pt and writes the result into ct.
func (enc *Encryptor) Encrypt(pt *Plaintext, ct *Ciphertext) {

	level := ct.Level()
	ringQ := enc.params.RingQ().AtLevel(level)

	enc.EncryptZero(ct)

	if pt == nil {
		return
	}

	if pt.IsNTT != ct.IsNTT {
		panic("cannot Encrypt: pt and ct do not agree on the NTT domain")
	}

	ringQ.Add(&ct.Value[0], pt.Value, &ct.Value[0])

	ct.MetaData = pt.MetaData
}

// encryptZeroSk produces (b, a) = (-a*sk + e, a) mod Q, an encryption of zero under sk.
func (enc *Encryptor) encryptZeroSk(ct *Ciphertext) {

	level := ct.Level()
	ringQ := enc.params.RingQ().AtLevel(level)

	a := &ct.Value[1]
	ring.NewUniformSampler(enc.prng, enc.params.RingQ()).AtLevel(level).Read(*a)

	if ct.IsNTT {
		ringQ.MulCoeffsMontgomery(a, enc.sk.Value.Q, &ct.Value[0])
	} else {
		aNTT := ringQ.NewPoly()
		ringQ.NTT(a, aNTT)
		ringQ.MulCoeffsMontgomery(aNTT, enc.sk.Value.Q, &ct.Value[0])
		ringQ.INTT(&ct.Value[0], &ct.Value[0])
	}

	ringQ.Neg(&ct.Value[0], &ct.Value[0])

	e := ringQ.NewPoly()
	enc.eSampler.AtLevel(level).Read(*e)
	if ct.IsNTT {
		ringQ.NTT(e, e)
	}
	ringQ.Add(&ct.Value[0], e, &ct.Value[0])

	ct.IsNTT = enc.params.DefaultNTTFlag()
}

// encryptZeroPk produces (b, a) = (u*pk0 + e0, u*pk1 + e1) mod Q, an encryption of zero under pk.
func (enc *Encryptor) encryptZeroPk(ct *Ciphertext) {

	level := ct.Level()
	ringQ := enc.params.RingQ().AtLevel(level)

	u := ringQ.NewPoly()
	enc.uSampler.AtLevel(level).Read(*u)
	ringQ.NTT(u, u)
	ringQ.MForm(u, u)

	ringQ.MulCoeffsMontgomery(u, enc.pk.Value[0].Q, &ct.Value[0])
	ringQ.MulCoeffsMontgomery(u, enc.pk.Value[1].Q, &ct.Value[1])

	e0, e1 := ringQ.NewPoly(), ringQ.NewPoly()
	enc.eSampler.AtLevel(level).Read(*e0)
	enc.eSampler.AtLevel(level).Read(*e1)
	ringQ.NTT(e0, e0)
	ringQ.NTT(e1, e1)

	ringQ.Add(&ct.Value[0], e0, &ct.Value[0])
	ringQ.Add(&ct.Value[1], e1, &ct.Value[1])

	ct.IsNTT = true

	if !enc.params.DefaultNTTFlag() {
		ringQ.INTT(&ct.Value[0], &ct.Value[0])
		ringQ.INTT(&ct.Value[1], &ct.Value[1])
		ct.IsNTT = false
	}
}

// ShallowCopy creates a shallow copy of Encryptor in which all the read-only data-structures are
// shared with the receiver and the temporary structures are reallocated. The receiver and the
// returned Encryptor can be used concurrently.
func (enc *Encryptor) ShallowCopy() *Encryptor {
	var key interface{}
	if enc.sk != nil {
		key = enc.sk
	} else if enc.pk != nil {
		key = enc.pk
	}
	return NewEncryptor(enc.params, key)
}

// WithKey creates a shallow copy of Encryptor with a new encryption key.
func (enc *Encryptor) WithKey(key interface{}) *Encryptor {
	return NewEncryptor(enc.params, key)
}
