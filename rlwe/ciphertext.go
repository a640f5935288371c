package rlwe

import (
	"github.com/tuneinsight/gofhe/ring"
	"github.com/tuneinsight/gofhe/utils/sampling"
)

// Ciphertext is a generic type for RLWE ciphertexts.
type Ciphertext struct {
	OperandQ
}

// NewCiphertext returns a new Ciphertext with zero values and an associated
// MetaData set to the Parameters default value.
func NewCiphertext(params ParametersInterface, degree, level int) (ct *Ciphertext) {
	return &Ciphertext{OperandQ: *NewOperandQ(params, degree, level)}
}

// NewCiphertextAtLevelFromPoly constructs a new Ciphertext at a specific level
// where the message is set to the passed poly. No checks are performed on poly and
// the returned Ciphertext will share its backing array of coefficients.
// Returned Ciphertext's MetaData is empty.
func NewCiphertextAtLevelFromPoly(level int, poly []ring.Poly) (ct *Ciphertext) {
	return &Ciphertext{OperandQ: *NewOperandQAtLevelFromPoly(level, poly)}
}

// NewCiphertextRandom generates a new uniformly distributed Ciphertext of degree, level.
func NewCiphertextRandom(prng sampling.PRNG, params ParametersInterface, degree, level int) (ciphertext *Ciphertext) {
	ciphertext = NewCiphertext(params, degree, level)
	PopulateElementRandom(prng, params, &ciphertext.OperandQ)
	return
}

// CopyNew creates a new element as a copy of the target element.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{OperandQ: *ct.OperandQ.CopyNew()}
}

// Copy copies the input element and its parameters on the target element.
func (ct *Ciphertext) Copy(ctxCopy *Ciphertext) {
	ct.OperandQ.Copy(&ctxCopy.OperandQ)
}

// El returns a pointer to the underlying OperandQ of this Ciphertext.
func (ct *Ciphertext) El() *OperandQ {
	return &ct.OperandQ
}
