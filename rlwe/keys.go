package rlwe

import (
	"github.com/tuneinsight/gofhe/rlwe/ringqp"
)

// SecretKey is a type for generic RLWE secret keys. The Value field stores the
// polynomial in NTT and Montgomery form.
type SecretKey struct {
	Value ringqp.Poly
}

// NewSecretKey generates a new SecretKey with zero values.
func NewSecretKey(params ParametersInterface) *SecretKey {
	ringQP := params.RingQP().AtLevel(params.MaxLevelQ(), params.MaxLevelP())
	return &SecretKey{Value: *ringQP.NewPoly()}
}

// CopyNew creates a deep copy of the receiver SecretKey and returns it.
func (sk *SecretKey) CopyNew() *SecretKey {
	if sk == nil {
		return nil
	}
	return &SecretKey{Value: *sk.Value.CopyNew()}
}

// Equal checks two SecretKey structs for equality.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	if sk == other {
		return true
	}
	if (sk == nil) != (other == nil) {
		return false
	}
	return sk.Value.Equal(&other.Value)
}
