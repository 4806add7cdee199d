package stoch

import "fmt"

// === Family ===

// Family enumerates the supported distribution families. It is the key used
// by the Sampler capability query and by parameter snapshots.
type Family int

const (
	FamilyNormal Family = iota
	FamilyUniform
	FamilyExponential
	FamilyBernoulli
	FamilyPoisson
	FamilyGeometric
	FamilyNegativeBinomial
	FamilyTriangular
	FamilyWeibull
	FamilyFixedContinuous
	FamilyCustomCategorical
	FamilyUniformDiscrete
	FamilyLookupByEnums
)

var familyNames = map[Family]string{
	FamilyNormal:            "normal",
	FamilyUniform:           "uniform",
	FamilyExponential:       "exponential",
	FamilyBernoulli:         "bernoulli",
	FamilyPoisson:           "poisson",
	FamilyGeometric:         "geometric",
	FamilyNegativeBinomial:  "negative_binomial",
	FamilyTriangular:        "triangular",
	FamilyWeibull:           "weibull",
	FamilyFixedContinuous:   "fixed",
	FamilyCustomCategorical: "custom_categorical",
	FamilyUniformDiscrete:   "uniform_discrete",
	FamilyLookupByEnums:     "lookup_by_enums",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// === Sampler ===

// Sampler is the variate engine boundary. One Sampler instance is exclusively
// owned by one run; it is stateless apart from the underlying RNG stream and
// never holds distribution parameters. Each method takes the family's
// canonical parameterization. Any translation to an engine's native parameter
// order (rate vs. mean, shape/scale naming) lives inside the engine adapter,
// never at distribution call sites.
//
// A host engine that cannot serve a family reports it through Supports; the
// framework rejects registration-time binding only at sample time, when the
// unsupported family is actually exercised.
type Sampler interface {
	// Supports reports whether this engine can produce variates for f.
	Supports(f Family) bool

	// Normal draws from N(mean, stdDev²).
	Normal(mean, stdDev float64) float64

	// Uniform draws from U[min, max).
	Uniform(min, max float64) float64

	// Exponential draws from Exp with the given mean (NOT rate).
	Exponential(mean float64) float64

	// Bernoulli reports success with probability p. The 1-based uniform
	// scheme applies: a uniform draw u succeeds iff u <= p.
	Bernoulli(p float64) bool

	// Poisson draws a count from Poisson(lambda).
	Poisson(lambda float64) int

	// Geometric draws the number of failures before the first success in
	// Bernoulli(p) trials (support 0, 1, 2, ...).
	Geometric(p float64) int

	// NegativeBinomial draws the total number of failures before the n-th
	// success in Bernoulli(p) trials.
	NegativeBinomial(n int, p float64) int

	// Triangular draws from the triangular distribution on [min, max] with
	// the given mode.
	Triangular(min, mode, max float64) float64

	// Weibull draws from Weibull(shape, scale).
	Weibull(shape, scale float64) float64

	// IntRange draws a uniform ordinal in 1..k inclusive.
	IntRange(k int) int
}
