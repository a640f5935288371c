package ckks

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/montanaflynn/stats"
)

// PrecisionStats summarizes, in log2 bits, how closely a decoded/decrypted
// slot vector matches the values it was expected to carry: the number a
// caller checks against spec.md §8's approximate-correctness property,
// since APX arithmetic is expected to accumulate a bounded amount of
// rounding noise rather than reproduce its operands exactly.
type PrecisionStats struct {
	MinPrecision  float64
	MaxPrecision  float64
	MeanPrecision float64
	StdPrecision  float64

	MinLog2Error  float64
	MaxLog2Error  float64
	MeanLog2Error float64
}

func (p PrecisionStats) String() string {
	return fmt.Sprintf(
		"precision (log2 bits): min=%.2f max=%.2f mean=%.2f std=%.2f | error (log2): min=%.2f max=%.2f mean=%.2f",
		p.MinPrecision, p.MaxPrecision, p.MeanPrecision, p.StdPrecision,
		p.MinLog2Error, p.MaxLog2Error, p.MeanLog2Error)
}

// GetPrecisionStats compares the decoded/decrypted slot vector have against
// the reference vector want, slot by slot, and reports the log2 precision
// (bits of agreement) and log2 error (bits of magnitude) across all slots.
// want and have must have the same length.
func GetPrecisionStats(want, have []complex128) (prec PrecisionStats) {
	if len(want) != len(have) {
		panic("cannot GetPrecisionStats: want and have must have the same length")
	}

	precisions := make([]float64, len(want))
	log2Errors := make([]float64, len(want))

	for i := range want {
		err := cmplx.Abs(want[i] - have[i])
		if err == 0 {
			// A perfect match carries no useful log2(1/err) information;
			// treat it as machine-precision-limited rather than infinite.
			err = math.Exp2(-53)
		}
		log2Errors[i] = math.Log2(err)
		precisions[i] = -log2Errors[i]
	}

	prec.MinPrecision, _ = stats.Min(precisions)
	prec.MaxPrecision, _ = stats.Max(precisions)
	prec.MeanPrecision, _ = stats.Mean(precisions)
	prec.StdPrecision, _ = stats.StandardDeviation(precisions)

	prec.MinLog2Error, _ = stats.Min(log2Errors)
	prec.MaxLog2Error, _ = stats.Max(log2Errors)
	prec.MeanLog2Error, _ = stats.Mean(log2Errors)

	return
}
