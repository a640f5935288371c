package ring

import (
	"fmt"

	"github.com/tuneinsight/gofhe/utils/sampling"
)

const (
	discreteGaussianName = "DiscreteGaussian"
	ternaryDistName      = "Ternary"
	uniformDistName      = "Uniform"
)

// Sampler is an interface for random polynomial samplers.
// It has a single Read method which takes as argument the polynomial to be
// populated according to the Sampler's distribution.
type Sampler interface {
	Read(pol Poly)
	ReadNew() (pol Poly)
	ReadAndAdd(pol Poly)
	AtLevel(level int) Sampler
}

// DistributionParameters is an interface for distribution parameters in the ring.
// There are three implementations of this interface:
//   - DiscreteGaussian for sampling polynomials with discretized gaussian
//     coefficients of a given standard deviation and bound.
//   - Ternary for sampling polynomials with coefficients in [-1, 1].
//   - Uniform for sampling polynomials with uniformly random coefficients.
type DistributionParameters interface {
	Type() string
	mustBeDist()
}

// DiscreteGaussian represents the parameters of a discrete Gaussian distribution
// with standard deviation Sigma and bounds [-Bound, Bound].
type DiscreteGaussian struct {
	Sigma float64
	Bound float64
}

func (d DiscreteGaussian) Type() string { return discreteGaussianName }
func (d DiscreteGaussian) mustBeDist()  {}

// Ternary represents the parameters of a distribution with coefficients in [-1, 0, 1].
// Only one of its fields must be set to a non-zero value:
//
//   - If P is set, each coefficient is sampled in [-1, 0, 1] with probabilities
//     [0.5*P, 1-P, 0.5*P].
//   - If H is set, the coefficients are sampled uniformly among ternary polynomials
//     of Hamming weight H.
type Ternary struct {
	P float64
	H int
}

func (d Ternary) Type() string { return ternaryDistName }
func (d Ternary) mustBeDist()  {}

// Uniform represents the parameters of a uniform distribution, i.e. with
// coefficients uniformly distributed in the given ring.
type Uniform struct{}

func (d Uniform) Type() string { return uniformDistName }
func (d Uniform) mustBeDist()  {}

// NewSampler instantiates the Sampler matching the provided distribution parameters.
func NewSampler(prng sampling.PRNG, baseRing *Ring, X DistributionParameters, montgomery bool) (Sampler, error) {
	switch X := X.(type) {
	case DiscreteGaussian:
		return NewGaussianSampler(prng, baseRing, X, montgomery), nil
	case Ternary:
		return NewTernarySampler(prng, baseRing, X, montgomery)
	case Uniform:
		return NewUniformSampler(prng, baseRing), nil
	default:
		return nil, fmt.Errorf("invalid distribution: want ring.DiscreteGaussian, ring.Ternary or ring.Uniform but have %T", X)
	}
}

type baseSampler struct {
	prng     sampling.PRNG
	baseRing *Ring
}

type randomBuffer struct {
	randomBufferN []byte
	ptr           int
}

func newRandomBuffer() *randomBuffer {
	return &randomBuffer{
		randomBufferN: make([]byte, 1024),
	}
}

// AtLevel returns an instance of the target base sampler that operates at the target level.
// This instance is not thread safe and cannot be used concurrently to the base instance.
func (b baseSampler) AtLevel(level int) *baseSampler {
	return &baseSampler{
		prng:     b.prng,
		baseRing: b.baseRing.AtLevel(level),
	}
}
