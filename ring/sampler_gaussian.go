package ring

import (
	"encoding/binary"
	"math"

	"github.com/tuneinsight/gofhe/utils/sampling"
)

// GaussianSampler keeps the state of a truncated discrete Gaussian polynomial sampler.
type GaussianSampler struct {
	*baseSampler
	Xe         DiscreteGaussian
	montgomery bool
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG, the ring definition
// and the distribution parameters. If montgomery is set, polynomials read from this sampler are
// in Montgomery form.
func NewGaussianSampler(prng sampling.PRNG, baseRing *Ring, Xe DiscreteGaussian, montgomery bool) (gs *GaussianSampler) {
	gs = new(GaussianSampler)
	gs.baseSampler = &baseSampler{prng: prng, baseRing: baseRing}
	gs.Xe = Xe
	gs.montgomery = montgomery
	return
}

// AtLevel returns an instance of the target GaussianSampler that operates at the target level.
// This instance is not thread safe and cannot be used concurrently to the base instance.
func (gs *GaussianSampler) AtLevel(level int) Sampler {
	return &GaussianSampler{
		baseSampler: gs.baseSampler.AtLevel(level),
		Xe:          gs.Xe,
		montgomery:  gs.montgomery,
	}
}

// Read samples a truncated discrete Gaussian polynomial on pol.
func (gs *GaussianSampler) Read(pol Poly) {
	gs.read(pol, func(a, b, c uint64) uint64 {
		return b
	})
}

// ReadNew allocates and samples a polynomial at the sampler's level.
func (gs *GaussianSampler) ReadNew() (pol Poly) {
	pol = *gs.baseRing.NewPoly()
	gs.Read(pol)
	return
}

// ReadAndAdd samples a truncated discrete Gaussian polynomial and adds it on pol.
func (gs *GaussianSampler) ReadAndAdd(pol Poly) {
	gs.read(pol, func(a, b, c uint64) uint64 {
		return CRed(a+b, c)
	})
}

// normFloat draws a standard normal sample from two uniform draws taken from the PRNG,
// using the Box-Muller transform.
func normFloat(prng sampling.PRNG) float64 {
	var buf [16]byte
	var u1, u2 float64
	for u1 == 0 {
		if _, err := prng.Read(buf[:8]); err != nil {
			panic(err)
		}
		if _, err := prng.Read(buf[8:]); err != nil {
			panic(err)
		}
		u1 = float64(binary.BigEndian.Uint64(buf[:8])>>11) / (1 << 53)
		u2 = float64(binary.BigEndian.Uint64(buf[8:])>>11) / (1 << 53)
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func (gs *GaussianSampler) read(pol Poly, f func(a, b, c uint64) uint64) {

	level := gs.baseRing.Level()

	sigma := gs.Xe.Sigma
	bound := gs.Xe.Bound

	moduli := gs.baseRing.ModuliChain()[:level+1]

	N := gs.baseRing.N()

	coeffsAbs := make([]uint64, N)
	coeffsSign := make([]uint64, N)

	for i := 0; i < N; i++ {

		var v float64
		for {
			v = normFloat(gs.prng) * sigma
			if math.Abs(v) <= bound {
				break
			}
		}

		if v < 0 {
			coeffsSign[i] = 1
			v = -v
		}

		coeffsAbs[i] = uint64(v + 0.5)
	}

	for j, qi := range moduli {

		var brc [2]uint64
		if gs.montgomery {
			brc = gs.baseRing.SubRings[j].BRedConstant
		}

		for i := 0; i < N; i++ {

			var v uint64
			if coeffsSign[i] == 1 {
				v = qi - coeffsAbs[i]%qi
			} else {
				v = coeffsAbs[i] % qi
			}

			if gs.montgomery {
				v = MForm(v, qi, brc)
			}

			pol.Coeffs[j][i] = f(pol.Coeffs[j][i], v, qi)
		}
	}
}
