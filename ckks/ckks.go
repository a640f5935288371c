package ckks

import (
	"github.com/tuneinsight/gofhe/rlwe"
)

// NewPlaintext allocates a new rlwe.Plaintext at the given level, with its
// scale set to the parameters' default scale and its dimensions set to the
// maximum slot count.
func NewPlaintext(params Parameters, level int) (pt *rlwe.Plaintext) {
	pt = rlwe.NewPlaintext(params, level)
	pt.Scale = params.DefaultScale()
	pt.PlaintextLogDimensions = params.PlaintextLogDimensions()
	pt.EncodingDomain = rlwe.SlotsDomain
	return
}

// NewCiphertext allocates a new rlwe.Ciphertext of the given degree and
// level, with its scale set to the parameters' default scale.
func NewCiphertext(params Parameters, degree, level int) (ct *rlwe.Ciphertext) {
	ct = rlwe.NewCiphertext(params, degree, level)
	ct.Scale = params.DefaultScale()
	ct.PlaintextLogDimensions = params.PlaintextLogDimensions()
	ct.EncodingDomain = rlwe.SlotsDomain
	return
}

// NewKeyGenerator instantiates a new rlwe.KeyGenerator for the given parameters.
func NewKeyGenerator(params Parameters) *rlwe.KeyGenerator {
	return rlwe.NewKeyGenerator(params)
}

// NewEncryptor instantiates a new rlwe.Encryptor from either a *rlwe.SecretKey or a *rlwe.PublicKey.
func NewEncryptor(params Parameters, key interface{}) *rlwe.Encryptor {
	return rlwe.NewEncryptor(params, key)
}

// NewDecryptor instantiates a new rlwe.Decryptor for the given parameters and secret key.
func NewDecryptor(params Parameters, key *rlwe.SecretKey) *rlwe.Decryptor {
	return rlwe.NewDecryptor(params, key)
}
