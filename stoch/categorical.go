package stoch

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// pmfTolerance bounds the acceptable deviation of a PMF sum from 1.
const pmfTolerance = 1e-9

// === Lock state ===

// LockState is the edit state of a categorical distribution. Any parameter
// or range edit moves the distribution to Locked automatically; Unlock
// re-checks consistency (PMF sums to 1, range entries total K) and returns
// to Unlocked, the only sampleable state.
type LockState int

const (
	Unlocked LockState = iota
	Locked
)

func (s LockState) String() string {
	if s == Locked {
		return "LOCKED"
	}
	return "UNLOCKED"
}

// === Shared categorical core ===

// intRange is one contiguous remapping target for integer sampling.
type intRange struct {
	min, max int
}

func (r intRange) size() int { return r.max - r.min + 1 }

// categorical carries the state shared by CustomCategorical and
// UniformDiscrete: the outcome count K, the optional bound category
// dimension, the edit lock, and the ordered integer ranges that remap the
// raw 1..K ordinal onto model-level integer codes.
type categorical struct {
	stochItem
	k     int
	dim   *Dim
	state LockState

	ranges        []intRange
	rangesEntries int
}

// K returns the number of outcomes.
func (c *categorical) K() int { return c.k }

// BoundDim returns the category dimension, nil when sampling is purely
// ordinal/integer.
func (c *categorical) BoundDim() *Dim { return c.dim }

// LockState returns the current edit state.
func (c *categorical) LockState() LockState { return c.state }

// lockForEdit enters the mid-edit state. Idempotent.
func (c *categorical) lockForEdit() { c.state = Locked }

// AddRange appends a contiguous integer range [min, max] to the remapping
// list and locks the distribution. The running entry total may never exceed
// K; the edit is rejected before any state changes if it would.
func (c *categorical) AddRange(min, max int) error {
	if min > max {
		return invalidParamf("range [%d, %d] is inverted", min, max)
	}
	size := max - min + 1
	if c.rangesEntries+size > c.k {
		return invalidParamf("range [%d, %d] would bring range entries to %d, exceeding K=%d",
			min, max, c.rangesEntries+size, c.k)
	}
	c.lockForEdit()
	c.ranges = append(c.ranges, intRange{min: min, max: max})
	c.rangesEntries += size
	return nil
}

// ClearRanges drops all ranges and locks the distribution.
func (c *categorical) ClearRanges() {
	c.lockForEdit()
	c.ranges = nil
	c.rangesEntries = 0
}

// checkRanges verifies the range/K consistency invariant: either no ranges,
// or entry totals equal to K exactly.
func (c *categorical) checkRanges() error {
	if len(c.ranges) > 0 && c.rangesEntries != c.k {
		return invalidParamf("ranges cover %d entries, need exactly K=%d", c.rangesEntries, c.k)
	}
	return nil
}

// ensureSampleable rejects sampling in the Locked state before any mode or
// registration checks run.
func (c *categorical) ensureSampleable() error {
	if c.state == Locked {
		return protocolf("distribution %s is locked mid-edit; unlock before sampling", c.qualifiedID())
	}
	return nil
}

// mapOrdinal remaps a raw 1..K ordinal through the ordered range list:
// subtract each range's size until the remainder falls inside one, then
// return range.min + (remaining - 1). With no ranges the ordinal passes
// through unchanged.
func (c *categorical) mapOrdinal(ordinal int) (int, error) {
	if len(c.ranges) == 0 {
		return ordinal, nil
	}
	if c.rangesEntries != c.k {
		return 0, protocolf("integer sampling with %d range entries registered, need K=%d", c.rangesEntries, c.k)
	}
	remaining := ordinal
	for _, r := range c.ranges {
		if remaining <= r.size() {
			return r.min + remaining - 1, nil
		}
		remaining -= r.size()
	}
	// Unreachable while the entry total equals K and the ordinal is 1..K.
	return 0, protocolf("ordinal %d exceeds range entry total %d", ordinal, c.rangesEntries)
}

// category maps a raw 1..K ordinal onto the bound dimension's declared
// constant ordering.
func (c *categorical) category(ordinal int) (Cat, error) {
	if c.dim == nil {
		return Cat{}, protocolf("distribution %s has no bound category dimension", c.qualifiedID())
	}
	return c.dim.Cat(ordinal - 1)
}

// collapsedOrdinal is the deterministic midpoint ordinal (1+K)/2, truncated
// toward the lower outcome on even K.
func (c *categorical) collapsedOrdinal() int {
	return (1 + c.k) / 2
}

// rangeParams appends the range list to a parameter snapshot.
func (c *categorical) rangeParams(params []Param) []Param {
	for i, r := range c.ranges {
		params = append(params,
			Param{fmt.Sprintf("range%d.min", i+1), float64(r.min)},
			Param{fmt.Sprintf("range%d.max", i+1), float64(r.max)},
		)
	}
	return params
}

func (c *categorical) copyCore() categorical {
	cp := categorical{k: c.k, dim: c.dim, state: c.state, rangesEntries: c.rangesEntries}
	cp.ranges = append([]intRange(nil), c.ranges...)
	return cp
}

// === CustomCategorical ===

// CustomCategorical is the K-outcome family with an explicit PMF over the
// ordinals 1..K.
type CustomCategorical struct {
	categorical
	pmf []float64
}

// NewCustomCategorical constructs an unregistered categorical distribution
// over len(probs) outcomes. The PMF is validated in full: every entry in
// [0, 1] and the sum within tolerance of 1.
func NewCustomCategorical(probs ...float64) (*CustomCategorical, error) {
	d := &CustomCategorical{}
	d.k = len(probs)
	if err := validatePMF(probs); err != nil {
		return nil, err
	}
	d.pmf = append([]float64(nil), probs...)
	return d, nil
}

// NewCustomCategoricalFor additionally binds a category dimension; the PMF
// length must match the dimension arity.
func NewCustomCategoricalFor(dim *Dim, probs ...float64) (*CustomCategorical, error) {
	if len(probs) != dim.Len() {
		return nil, invalidParamf("dimension %s has arity %d, got %d probabilities", dim.Name(), dim.Len(), len(probs))
	}
	d, err := NewCustomCategorical(probs...)
	if err != nil {
		return nil, err
	}
	d.dim = dim
	return d, nil
}

func validatePMF(probs []float64) error {
	if len(probs) == 0 {
		return invalidParamf("categorical distribution needs at least one outcome")
	}
	sum := 0.0
	for i, p := range probs {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return invalidParamf("probability %d is %v, must be in [0, 1]", i+1, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > pmfTolerance {
		return invalidParamf("probabilities sum to %v, must be 1 within tolerance %v", sum, pmfTolerance)
	}
	return nil
}

// SetProb updates the probability of one 1-based outcome and locks the
// distribution. The entry domain is checked immediately; the sum invariant
// is deferred to Unlock so a batch of edits can pass through intermediate
// sums.
func (d *CustomCategorical) SetProb(outcome int, p float64) error {
	if outcome < 1 || outcome > d.k {
		return invalidParamf("outcome %d out of 1..%d", outcome, d.k)
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return invalidParamf("probability for outcome %d is %v, must be in [0, 1]", outcome, p)
	}
	d.lockForEdit()
	d.pmf[outcome-1] = p
	return nil
}

// Prob returns the probability of one 1-based outcome.
func (d *CustomCategorical) Prob(outcome int) float64 {
	return d.pmf[outcome-1]
}

// Unlock lifts the edit lock after re-checking consistency: PMF sum within
// tolerance of 1 and range entries totalling K. On failure the distribution
// stays locked.
func (d *CustomCategorical) Unlock() error {
	if err := validatePMF(d.pmf); err != nil {
		return err
	}
	if err := d.checkRanges(); err != nil {
		return err
	}
	d.state = Unlocked
	return nil
}

func (d *CustomCategorical) Family() Family { return FamilyCustomCategorical }

// SampleOrdinal draws a raw 1..K ordinal under the resolved mode: a
// cumulative-sum scan of the PMF against a uniform [0,1) draw, or the fixed
// midpoint ordinal (1+K)/2 under collapse.
func (d *CustomCategorical) SampleOrdinal() (int, error) {
	if err := d.ensureSampleable(); err != nil {
		return 0, err
	}
	mode, err := d.sampleMode(FamilyCustomCategorical)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return d.collapsedOrdinal(), nil
	}
	return d.ordinalForDraw(d.sampler.Uniform(0, 1)), nil
}

// ordinalForDraw resolves a uniform draw against the cumulative PMF. If
// floating-point rounding leaves the cumulative sum short of the draw, the
// last outcome is returned and a warning logged: a known, bounded-impact
// rounding artifact, the single condition this package recovers silently.
func (d *CustomCategorical) ordinalForDraw(u float64) int {
	cum := 0.0
	for i, p := range d.pmf {
		cum += p
		if u <= cum {
			return i + 1
		}
	}
	logrus.Warnf("categorical %s: cumulative PMF %v never reached draw %v; defaulting to last outcome %d",
		d.qualifiedID(), cum, u, d.k)
	return d.k
}

// SampleInt draws an ordinal and remaps it through the registered integer
// ranges (pass-through when no ranges are registered).
func (d *CustomCategorical) SampleInt() (int, error) {
	ordinal, err := d.SampleOrdinal()
	if err != nil {
		return 0, err
	}
	return d.mapOrdinal(ordinal)
}

// SampleCategory draws an ordinal and maps it onto the bound dimension's
// declared constant ordering.
func (d *CustomCategorical) SampleCategory() (Cat, error) {
	ordinal, err := d.SampleOrdinal()
	if err != nil {
		return Cat{}, err
	}
	return d.category(ordinal)
}

func (d *CustomCategorical) SampleFloat() (float64, error) {
	n, err := d.SampleInt()
	return float64(n), err
}

func (d *CustomCategorical) Params() []Param {
	params := []Param{{"k", float64(d.k)}}
	for i, p := range d.pmf {
		params = append(params, Param{fmt.Sprintf("p%d", i+1), p})
	}
	return d.rangeParams(params)
}

func (d *CustomCategorical) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyCustomCategorical, d.Params()...)
}

// UnregisteredCopy duplicates parameters, ranges and lock state only.
func (d *CustomCategorical) UnregisteredCopy() *CustomCategorical {
	return &CustomCategorical{
		categorical: d.copyCore(),
		pmf:         append([]float64(nil), d.pmf...),
	}
}

// RegisteredCopy additionally shares the run binding.
func (d *CustomCategorical) RegisteredCopy() *CustomCategorical {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}

// === UniformDiscrete ===

// UniformDiscrete is the equiprobable K-outcome family.
type UniformDiscrete struct {
	categorical
}

// NewUniformDiscrete constructs an unregistered uniform-discrete
// distribution over K outcomes.
func NewUniformDiscrete(k int) (*UniformDiscrete, error) {
	if k < 1 {
		return nil, invalidParamf("uniform discrete K must be >= 1, got %d", k)
	}
	d := &UniformDiscrete{}
	d.k = k
	return d, nil
}

// NewUniformDiscreteFor constructs the family over a category dimension's
// arity and binds the dimension for SampleCategory.
func NewUniformDiscreteFor(dim *Dim) *UniformDiscrete {
	d := &UniformDiscrete{}
	d.k = dim.Len()
	d.dim = dim
	return d
}

// SetK updates the outcome count and locks the distribution. Shrinking K
// below the registered range entry total is rejected outright.
func (d *UniformDiscrete) SetK(k int) error {
	if k < 1 {
		return invalidParamf("uniform discrete K must be >= 1, got %d", k)
	}
	if k < d.rangesEntries {
		return invalidParamf("K=%d is below the %d range entries already registered", k, d.rangesEntries)
	}
	if d.dim != nil && k != d.dim.Len() {
		return invalidParamf("K=%d conflicts with bound dimension %s arity %d", k, d.dim.Name(), d.dim.Len())
	}
	d.lockForEdit()
	d.k = k
	return nil
}

// Unlock lifts the edit lock after re-checking range consistency.
func (d *UniformDiscrete) Unlock() error {
	if err := d.checkRanges(); err != nil {
		return err
	}
	d.state = Unlocked
	return nil
}

func (d *UniformDiscrete) Family() Family { return FamilyUniformDiscrete }

// SampleOrdinal draws a uniform 1..K ordinal, or the fixed midpoint ordinal
// (1+K)/2 under collapse.
func (d *UniformDiscrete) SampleOrdinal() (int, error) {
	if err := d.ensureSampleable(); err != nil {
		return 0, err
	}
	mode, err := d.sampleMode(FamilyUniformDiscrete)
	if err != nil {
		return 0, err
	}
	if mode == ModeCollapseMid {
		return d.collapsedOrdinal(), nil
	}
	return d.sampler.IntRange(d.k), nil
}

// SampleInt draws an ordinal and remaps it through the registered integer
// ranges.
func (d *UniformDiscrete) SampleInt() (int, error) {
	ordinal, err := d.SampleOrdinal()
	if err != nil {
		return 0, err
	}
	return d.mapOrdinal(ordinal)
}

// SampleCategory draws an ordinal and maps it onto the bound dimension.
func (d *UniformDiscrete) SampleCategory() (Cat, error) {
	ordinal, err := d.SampleOrdinal()
	if err != nil {
		return Cat{}, err
	}
	return d.category(ordinal)
}

func (d *UniformDiscrete) SampleFloat() (float64, error) {
	n, err := d.SampleInt()
	return float64(n), err
}

func (d *UniformDiscrete) Params() []Param {
	params := []Param{{"k", float64(d.k)}}
	return d.rangeParams(params)
}

func (d *UniformDiscrete) Snapshot() []ItemState {
	return singleState(&d.stochItem, FamilyUniformDiscrete, d.Params()...)
}

func (d *UniformDiscrete) UnregisteredCopy() *UniformDiscrete {
	return &UniformDiscrete{categorical: d.copyCore()}
}

func (d *UniformDiscrete) RegisteredCopy() *UniformDiscrete {
	c := d.UnregisteredCopy()
	c.shareBinding(&d.stochItem)
	return c
}
