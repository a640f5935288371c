package factorization

import (
	"math/big"
)

// IsPrime returns true if n is (probabilistically) prime.
func IsPrime(n *big.Int) bool {
	return n.ProbablyPrime(20)
}
