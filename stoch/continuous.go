package stoch

import "math"

// Continuous distribution families. Every parameter mutator validates the
// family's domain constraints synchronously and leaves the previous state
// untouched on rejection.

// === Normal ===

// Normal is the N(mean, stdDev²) family.
type Normal struct {
	stochItem
	mean   float64
	stdDev float64
}

// NewNormal constructs an unregistered normal distribution.
func NewNormal(mean, stdDev float64) (*Normal, error) {
	d := &Normal{}
	d.SetMean(mean)
	if err := d.SetStdDev(stdDev); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMean updates the mean. Unconstrained.
func (d *Normal) SetMean(mean float64) {
	d.mean = mean
}

// SetStdDev updates the standard deviation; must be >= 0.
func (d *Normal) SetStdDev(stdDev float64) error {
	if stdDev < 0 || math.IsNaN(stdDev) {
		return invalidParamf("normal stdDev must be >= 0, got %v", stdDev)
	}
	d.stdDev = stdDev
	return nil
}

func (d *Normal) Mean() float64   { return d.mean }
func (d *Normal) StdDev() float64 { return d.stdDev }

func (d *Normal) Family() Family { return FamilyNormal }

// Sample draws under the resolved mode; the collapsed value is the mean.
func (d *Normal) Sample() (float64, error) {
	mode, err := d.sampleMode(FamilyNormal)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return d.mean, nil
	}
	return d.sampler.Normal(d.mean, d.stdDev), nil
}

func (d *Normal) SampleFloat() (float64, error) { return d.Sample() }

func (d *Normal) Params() []Param {
	return []Param{{"mean", d.mean}, {"stdDev", d.stdDev}}
}

func (d *Normal) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyNormal, d.Params()...)
}

// UnregisteredCopy duplicates parameters only.
func (d *Normal) UnregisteredCopy() *Normal {
	return &Normal{mean: d.mean, stdDev: d.stdDev}
}

// RegisteredCopy duplicates parameters and shares the receiver's run
// binding, so the copy obeys the same override without a second identity.
func (d *Normal) RegisteredCopy() *Normal {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Uniform ===

// Uniform is the continuous U[min, max) family.
type Uniform struct {
	stochItem
	min float64
	max float64
}

// NewUniform constructs an unregistered uniform distribution.
func NewUniform(min, max float64) (*Uniform, error) {
	d := &Uniform{}
	if err := d.SetBounds(min, max); err != nil {
		return nil, err
	}
	return d, nil
}

// SetBounds updates both bounds together; min must not exceed max. Bounds
// mutate jointly so no transiently-inverted interval is ever observable.
func (d *Uniform) SetBounds(min, max float64) error {
	if min > max || math.IsNaN(min) || math.IsNaN(max) {
		return invalidParamf("uniform bounds require min <= max, got [%v, %v]", min, max)
	}
	d.min = min
	d.max = max
	return nil
}

func (d *Uniform) Min() float64 { return d.min }
func (d *Uniform) Max() float64 { return d.max }

func (d *Uniform) Family() Family { return FamilyUniform }

// Sample draws under the resolved mode; the collapsed value is the interval
// midpoint (min+max)/2.
func (d *Uniform) Sample() (float64, error) {
	mode, err := d.sampleMode(FamilyUniform)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return (d.min + d.max) / 2, nil
	}
	return d.sampler.Uniform(d.min, d.max), nil
}

func (d *Uniform) SampleFloat() (float64, error) { return d.Sample() }

func (d *Uniform) Params() []Param {
	return []Param{{"min", d.min}, {"max", d.max}}
}

func (d *Uniform) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyUniform, d.Params()...)
}

func (d *Uniform) UnregisteredCopy() *Uniform {
	return &Uniform{min: d.min, max: d.max}
}

func (d *Uniform) RegisteredCopy() *Uniform {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Exponential ===

// Exponential is the exponential family, parameterized by its mean.
type Exponential struct {
	stochItem
	mean float64
}

// NewExponential constructs an unregistered exponential distribution.
func NewExponential(mean float64) (*Exponential, error) {
	d := &Exponential{}
	if err := d.SetMean(mean); err != nil {
		return nil, err
	}
	return d, nil
}

// SetMean updates the mean; must be > 0.
func (d *Exponential) SetMean(mean float64) error {
	if !(mean > 0) {
		return invalidParamf("exponential mean must be > 0, got %v", mean)
	}
	d.mean = mean
	return nil
}

func (d *Exponential) Mean() float64 { return d.mean }

func (d *Exponential) Family() Family { return FamilyExponential }

// Sample draws under the resolved mode; the collapsed value is the mean.
func (d *Exponential) Sample() (float64, error) {
	mode, err := d.sampleMode(FamilyExponential)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return d.mean, nil
	}
	return d.sampler.Exponential(d.mean), nil
}

func (d *Exponential) SampleFloat() (float64, error) { return d.Sample() }

func (d *Exponential) Params() []Param {
	return []Param{{"mean", d.mean}}
}

func (d *Exponential) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyExponential, d.Params()...)
}

func (d *Exponential) UnregisteredCopy() *Exponential {
	return &Exponential{mean: d.mean}
}

func (d *Exponential) RegisteredCopy() *Exponential {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Triangular ===

// Triangular is the triangular family on [min, max] with a mode point.
type Triangular struct {
	stochItem
	min  float64
	mode float64
	max  float64
}

// NewTriangular constructs an unregistered triangular distribution.
func NewTriangular(min, mode, max float64) (*Triangular, error) {
	d := &Triangular{}
	if err := d.SetShape(min, mode, max); err != nil {
		return nil, err
	}
	return d, nil
}

// SetShape updates all three points together; requires min <= mode <= max.
func (d *Triangular) SetShape(min, mode, max float64) error {
	if !(min <= mode && mode <= max) {
		return invalidParamf("triangular requires min <= mode <= max, got (%v, %v, %v)", min, mode, max)
	}
	d.min = min
	d.mode = mode
	d.max = max
	return nil
}

func (d *Triangular) Min() float64  { return d.min }
func (d *Triangular) Mode() float64 { return d.mode }
func (d *Triangular) Max() float64  { return d.max }

func (d *Triangular) Family() Family { return FamilyTriangular }

// Sample draws under the resolved mode.
//
// The collapsed value is round((min+mode+max)/3). This is an approximation:
// it is neither the true mean nor the median of a triangular distribution,
// and the rounding makes it integral. The formula is kept verbatim because
// collapsed-mode runs of existing models reproduce against it; changing it
// would silently alter their results.
func (d *Triangular) Sample() (float64, error) {
	mode, err := d.sampleMode(FamilyTriangular)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return math.Round((d.min + d.mode + d.max) / 3), nil
	}
	return d.sampler.Triangular(d.min, d.mode, d.max), nil
}

func (d *Triangular) SampleFloat() (float64, error) { return d.Sample() }

func (d *Triangular) Params() []Param {
	return []Param{{"min", d.min}, {"mode", d.mode}, {"max", d.max}}
}

func (d *Triangular) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyTriangular, d.Params()...)
}

func (d *Triangular) UnregisteredCopy() *Triangular {
	return &Triangular{min: d.min, mode: d.mode, max: d.max}
}

func (d *Triangular) RegisteredCopy() *Triangular {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === Weibull ===

// Weibull is the Weibull(shape, scale) family.
type Weibull struct {
	stochItem
	shape float64
	scale float64

	// Collapsed value scale·Γ(1+1/shape), computed lazily once per
	// parameter set since Γ is comparatively expensive.
	collapsed      float64
	collapsedValid bool
}

// NewWeibull constructs an unregistered Weibull distribution.
func NewWeibull(shape, scale float64) (*Weibull, error) {
	d := &Weibull{}
	if err := d.SetShape(shape); err != nil {
		return nil, err
	}
	if err := d.SetScale(scale); err != nil {
		return nil, err
	}
	return d, nil
}

// SetShape updates the shape; must be > 0.
func (d *Weibull) SetShape(shape float64) error {
	if !(shape > 0) {
		return invalidParamf("weibull shape must be > 0, got %v", shape)
	}
	d.shape = shape
	d.collapsedValid = false
	return nil
}

// SetScale updates the scale; must be > 0.
func (d *Weibull) SetScale(scale float64) error {
	if !(scale > 0) {
		return invalidParamf("weibull scale must be > 0, got %v", scale)
	}
	d.scale = scale
	d.collapsedValid = false
	return nil
}

func (d *Weibull) Shape() float64 { return d.shape }
func (d *Weibull) Scale() float64 { return d.scale }

func (d *Weibull) Family() Family { return FamilyWeibull }

// Sample draws under the resolved mode; the collapsed value is the
// distribution mean scale·Γ(1+1/shape), cached after the first request.
func (d *Weibull) Sample() (float64, error) {
	mode, err := d.sampleMode(FamilyWeibull)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		if !d.collapsedValid {
			d.collapsed = d.scale * math.Gamma(1+1/d.shape)
			d.collapsedValid = true
		}
		return d.collapsed, nil
	}
	return d.sampler.Weibull(d.shape, d.scale), nil
}

func (d *Weibull) SampleFloat() (float64, error) { return d.Sample() }

func (d *Weibull) Params() []Param {
	return []Param{{"shape", d.shape}, {"scale", d.scale}}
}

func (d *Weibull) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyWeibull, d.Params()...)
}

func (d *Weibull) UnregisteredCopy() *Weibull {
	return &Weibull{shape: d.shape, scale: d.scale}
}

func (d *Weibull) RegisteredCopy() *Weibull {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === FixedContinuous ===

// FixedContinuous is the degenerate family returning one fixed value. It
// exists so a model can swap a real distribution for a constant without
// changing the registration plumbing; both sample modes return the value.
type FixedContinuous struct {
	stochItem
	value float64
}

// NewFixedContinuous constructs an unregistered fixed-value distribution.
func NewFixedContinuous(value float64) *FixedContinuous {
	return &FixedContinuous{value: value}
}

// SetValue updates the fixed value. Unconstrained.
func (d *FixedContinuous) SetValue(value float64) {
	d.value = value
}

func (d *FixedContinuous) Value() float64 { return d.value }

func (d *FixedContinuous) Family() Family { return FamilyFixedContinuous }

// Sample returns the fixed value under either mode. Registration is still
// required: an unregistered fixed distribution fails like any other family.
func (d *FixedContinuous) Sample() (float64, error) {
	if _, err := d.sampleMode(FamilyFixedContinuous); err != nil {
		return 0, err
	}
	return d.value, nil
}

func (d *FixedContinuous) SampleFloat() (float64, error) { return d.Sample() }

func (d *FixedContinuous) Params() []Param {
	return []Param{{"value", d.value}}
}

func (d *FixedContinuous) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyFixedContinuous, d.Params()...)
}

func (d *FixedContinuous) UnregisteredCopy() *FixedContinuous {
	return &FixedContinuous{value: d.value}
}

func (d *FixedContinuous) RegisteredCopy() *FixedContinuous {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}
