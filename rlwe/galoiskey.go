package rlwe

// GaloisKey is a type of evaluation key used to evaluate automorphisms on ciphertexts.
// An automorphism pi_k: X^{i} -> X^{i*k mod 2N} acting on the underlying plaintext of
// a ciphertext encrypted under sk produces a new ciphertext encrypted under pi_k(sk).
// A GaloisKey re-encrypts a ciphertext from sk to pi_k^{-1}(sk); Evaluator.Automorphism
// applies it before pi_k, so that the result decrypts under sk again.
type GaloisKey struct {
	EvaluationKey
	GaloisElement uint64
	NthRoot       uint64
}

// NewGaloisKey allocates a new GaloisKey with zero coefficients.
func NewGaloisKey(params ParametersInterface) *GaloisKey {
	return &GaloisKey{
		EvaluationKey: *NewEvaluationKey(params, params.MaxLevelQ(), params.MaxLevelP()),
		NthRoot:       params.RingQ().NthRoot(),
	}
}

// CopyNew creates a deep copy of the object and returns it.
func (gk *GaloisKey) CopyNew() *GaloisKey {
	if gk == nil {
		return nil
	}
	return &GaloisKey{
		EvaluationKey: *gk.EvaluationKey.CopyNew(),
		GaloisElement: gk.GaloisElement,
		NthRoot:       gk.NthRoot,
	}
}

// Equal performs a deep equal.
func (gk *GaloisKey) Equal(other *GaloisKey) bool {
	if gk == other {
		return true
	}
	if (gk == nil) != (other == nil) {
		return false
	}
	return gk.GaloisElement == other.GaloisElement &&
		gk.NthRoot == other.NthRoot &&
		gk.GadgetCiphertext.Equals(&other.GadgetCiphertext)
}

// BinarySize returns the length in bytes of the target GaloisKey, including its
// GaloisElement and NthRoot fields.
func (gk *GaloisKey) BinarySize() int {
	return gk.EvaluationKey.MarshalBinarySize() + 16
}

// MarshalBinarySize returns the length in bytes of the target GaloisKey.
func (gk *GaloisKey) MarshalBinarySize() int {
	return gk.BinarySize()
}
