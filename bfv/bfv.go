package bfv

import (
	"github.com/tuneinsight/gofhe/rlwe"
)

// NewPlaintext allocates a new rlwe.Plaintext at the given level.
func NewPlaintext(params Parameters, level int) (pt *rlwe.Plaintext) {
	return rlwe.NewPlaintext(params, level)
}

// NewCiphertext allocates a new rlwe.Ciphertext of the given degree and level.
func NewCiphertext(params Parameters, degree, level int) (ct *rlwe.Ciphertext) {
	return rlwe.NewCiphertext(params, degree, level)
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
