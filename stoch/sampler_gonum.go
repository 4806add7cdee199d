package stoch

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// GonumSampler is the default variate engine, built on gonum's stat/distuv
// over a per-run PCG stream. It supports every family.
//
// All distuv parameter-order adaptation is centralized here: distuv speaks
// rate for exponentials and (K, Lambda) for Weibull, while the framework's
// canonical parameterizations are mean and (shape, scale). Keep any such
// mapping in this file only.
type GonumSampler struct {
	rng *rand.Rand
}

// NewGonumSampler creates the engine for one run, seeded from the master
// seed and the run key. Each run gets its own decorrelated stream; the
// instance must never be shared across runs.
func NewGonumSampler(masterSeed int64, key RunKey) *GonumSampler {
	return &GonumSampler{rng: runStream(masterSeed, key)}
}

// Supports reports true for every family.
func (s *GonumSampler) Supports(Family) bool {
	return true
}

func (s *GonumSampler) Normal(mean, stdDev float64) float64 {
	if stdDev == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.rng}.Rand()
}

func (s *GonumSampler) Uniform(min, max float64) float64 {
	if min == max {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: s.rng}.Rand()
}

func (s *GonumSampler) Exponential(mean float64) float64 {
	// distuv parameterizes by rate.
	return distuv.Exponential{Rate: 1 / mean, Src: s.rng}.Rand()
}

func (s *GonumSampler) Bernoulli(p float64) bool {
	// 1-based uniform scheme: success iff u <= p. distuv.Bernoulli is not
	// used because its boundary convention is unspecified for our contract.
	return s.rng.Float64() <= p
}

func (s *GonumSampler) Poisson(lambda float64) int {
	return int(distuv.Poisson{Lambda: lambda, Src: s.rng}.Rand())
}

func (s *GonumSampler) Geometric(p float64) int {
	// distuv carries no geometric family; inverse-CDF over the same stream.
	// Counts failures before the first success, support {0, 1, 2, ...}.
	if p >= 1 {
		return 0
	}
	u := s.rng.Float64()
	return int(math.Floor(math.Log1p(-u) / math.Log1p(-p)))
}

func (s *GonumSampler) NegativeBinomial(n int, p float64) int {
	// Sum of n independent geometric draws; exact for integer n.
	total := 0
	for i := 0; i < n; i++ {
		total += s.Geometric(p)
	}
	return total
}

func (s *GonumSampler) Triangular(min, mode, max float64) float64 {
	if min == max {
		return min
	}
	return distuv.NewTriangle(min, max, mode, s.rng).Rand()
}

func (s *GonumSampler) Weibull(shape, scale float64) float64 {
	return distuv.Weibull{K: shape, Lambda: scale, Src: s.rng}.Rand()
}

func (s *GonumSampler) IntRange(k int) int {
	return 1 + s.rng.IntN(k)
}
