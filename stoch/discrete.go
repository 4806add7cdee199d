package stoch

import "math"

// Discrete (count-valued) distribution families.

// === Bernoulli ===

// Bernoulli is the single-trial success/failure family.
type Bernoulli struct {
	stochItem
	p float64
}

// NewBernoulli constructs an unregistered Bernoulli distribution.
func NewBernoulli(p float64) (*Bernoulli, error) {
	d := &Bernoulli{}
	if err := d.SetP(p); err != nil {
		return nil, err
	}
	return d, nil
}

// SetP updates the success probability; must lie in [0, 1].
func (d *Bernoulli) SetP(p float64) error {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return invalidParamf("bernoulli p must be in [0, 1], got %v", p)
	}
	d.p = p
	return nil
}

func (d *Bernoulli) P() float64 { return d.p }

func (d *Bernoulli) Family() Family { return FamilyBernoulli }

// Sample reports success under the resolved mode. A normal draw succeeds
// iff the uniform draw u satisfies u <= p (1-based scheme). The collapsed
// outcome is success when p >= 0.5, failure otherwise: the p = 0.5 tie goes
// to success, everything strictly below collapses to failure.
func (d *Bernoulli) Sample() (bool, error) {
	mode, err := d.sampleMode(FamilyBernoulli)
	if err != nil {
		return false, err
	}
	if mode == ModeCollapseMid {
		return d.p >= 0.5, nil
	}
	return d.sampler.Bernoulli(d.p), nil
}

// SampleFloat widens the outcome: success is 1, failure is 0.
func (d *Bernoulli) SampleFloat() (float64, error) {
	ok, err := d.Sample()
	if err != nil {
		return 0, err
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

func (d *Bernoulli) Params() []Param {
	return []Param{{"p", d.p}}
}

func (d *Bernoulli) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyBernoulli, d.Params()...)
}

func (d *Bernoulli) UnregisteredCopy() *Bernoulli {
	return &Bernoulli{p: d.p}
}

func (d *Bernoulli) RegisteredCopy() *Bernoulli {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Poisson ===

// Poisson is the Poisson(lambda) count family.
type Poisson struct {
	stochItem
	lambda float64
}

// NewPoisson constructs an unregistered Poisson distribution.
func NewPoisson(lambda float64) (*Poisson, error) {
	d := &Poisson{}
	if err := d.SetLambda(lambda); err != nil {
		return nil, err
	}
	return d, nil
}

// SetLambda updates the rate; must be > 0.
func (d *Poisson) SetLambda(lambda float64) error {
	if !(lambda > 0) {
		return invalidParamf("poisson lambda must be > 0, got %v", lambda)
	}
	d.lambda = lambda
	return nil
}

func (d *Poisson) Lambda() float64 { return d.lambda }

func (d *Poisson) Family() Family { return FamilyPoisson }

// Sample draws a count under the resolved mode; the collapsed value is
// round(lambda).
func (d *Poisson) Sample() (int, error) {
	mode, err := d.sampleMode(FamilyPoisson)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return int(math.Round(d.lambda)), nil
	}
	return d.sampler.Poisson(d.lambda), nil
}

func (d *Poisson) SampleFloat() (float64, error) {
	n, err := d.Sample()
	return float64(n), err
}

func (d *Poisson) Params() []Param {
	return []Param{{"lambda", d.lambda}}
}

func (d *Poisson) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyPoisson, d.Params()...)
}

func (d *Poisson) UnregisteredCopy() *Poisson {
	return &Poisson{lambda: d.lambda}
}

func (d *Poisson) RegisteredCopy() *Poisson {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Geometric ===

// Geometric counts failures before the first success in Bernoulli(p) trials
// (support 0, 1, 2, ...).
type Geometric struct {
	stochItem
	p float64
}

// NewGeometric constructs an unregistered geometric distribution.
func NewGeometric(p float64) (*Geometric, error) {
	d := &Geometric{}
	if err := d.SetP(p); err != nil {
		return nil, err
	}
	return d, nil
}

// SetP updates the success probability; must lie in (0, 1].
func (d *Geometric) SetP(p float64) error {
	if !(p > 0) || p > 1 {
		return invalidParamf("geometric p must be in (0, 1], got %v", p)
	}
	d.p = p
	return nil
}

func (d *Geometric) P() float64 { return d.p }

func (d *Geometric) Family() Family { return FamilyGeometric }

// Sample draws a count under the resolved mode; the collapsed value is the
// rounded mean round((1-p)/p), which is 0 for p > 2/3.
func (d *Geometric) Sample() (int, error) {
	mode, err := d.sampleMode(FamilyGeometric)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return int(math.Round((1 - d.p) / d.p)), nil
	}
	return d.sampler.Geometric(d.p), nil
}

func (d *Geometric) SampleFloat() (float64, error) {
	n, err := d.Sample()
	return float64(n), err
}

func (d *Geometric) Params() []Param {
	return []Param{{"p", d.p}}
}

func (d *Geometric) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyGeometric, d.Params()...)
}

func (d *Geometric) UnregisteredCopy() *Geometric {
	return &Geometric{p: d.p}
}

func (d *Geometric) RegisteredCopy() *Geometric {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === NegativeBinomial ===

// NegativeBinomial counts total failures before the n-th success in
// Bernoulli(p) trials.
type NegativeBinomial struct {
	stochItem
	n int
	p float64
}

// NewNegativeBinomial constructs an unregistered negative-binomial
// distribution.
func NewNegativeBinomial(n int, p float64) (*NegativeBinomial, error) {
	d := &NegativeBinomial{}
	if err := d.SetN(n); err != nil {
		return nil, err
	}
	if err := d.SetP(p); err != nil {
		return nil, err
	}
	return d, nil
}

// SetN updates the required success count; must be >= 1.
func (d *NegativeBinomial) SetN(n int) error {
	if n < 1 {
		return invalidParamf("negative binomial n must be >= 1, got %d", n)
	}
	d.n = n
	return nil
}

// SetP updates the success probability; must lie in (0, 1].
func (d *NegativeBinomial) SetP(p float64) error {
	if !(p > 0) || p > 1 {
		return invalidParamf("negative binomial p must be in (0, 1], got %v", p)
	}
	d.p = p
	return nil
}

func (d *NegativeBinomial) N() int     { return d.n }
func (d *NegativeBinomial) P() float64 { return d.p }

func (d *NegativeBinomial) Family() Family { return FamilyNegativeBinomial }

// Sample draws a count under the resolved mode; the collapsed value is the
// rounded mean round(n·(1-p)/p).
func (d *NegativeBinomial) Sample() (int, error) {
	mode, err := d.sampleMode(FamilyNegativeBinomial)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return int(math.Round(float64(d.n) * (1 - d.p) / d.p)), nil
	}
	return d.sampler.NegativeBinomial(d.n, d.p), nil
}

func (d *NegativeBinomial) SampleFloat() (float64, error) {
	n, err := d.Sample()
	return float64(n), err
}

func (d *NegativeBinomial) Params() []Param {
	return []Param{{"n", float64(d.n)}, {"p", d.p}}
}

func (d *NegativeBinomial) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyNegativeBinomial, d.Params()...)
}

func (d *NegativeBinomial) UnregisteredCopy() *NegativeBinomial {
	return &NegativeBinomial{n: d.n, p: d.p}
}

func (d *NegativeBinomial) RegisteredCopy() *NegativeBinomial {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}
