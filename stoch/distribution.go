package stoch

// === Item ===

// Item is anything registrable with a run's Registry: a single Distribution
// or a Lookup of distributions.
type Item interface {
	// Snapshot returns the stable, complete parameter view of the item for
	// run-settings auditing: one ItemState per underlying distribution.
	Snapshot() []ItemState

	// bindRun attaches the run's resolved identity and Sampler. Called by
	// the Registry exactly once per item per run.
	bindRun(info *AccessInfo, s Sampler) error

	// unbindRun detaches the binding at run termination.
	unbindRun()

	// boundInfo returns the attached identity, nil while unregistered.
	boundInfo() *AccessInfo
}

// Distribution is the common contract of all family variants. Family-typed
// sampling lives on the concrete structs (Normal.Sample returns float64,
// Bernoulli.Sample returns bool, ...); SampleFloat is the uniform numeric
// view used by lookups, snapshots and the CLI.
type Distribution interface {
	Item

	// Family identifies the variant.
	Family() Family

	// Params returns the family's parameters in a fixed declaration order.
	Params() []Param

	// SampleFloat samples under the resolved mode and widens the outcome to
	// float64 (booleans map to 1/0, counts to their float value).
	SampleFloat() (float64, error)
}

// === Registration core ===

// stochItem is the registration state embedded in every distribution: the
// bound per-run identity and the run's Sampler. Zero value is the
// unregistered state, in which the distribution is usable only for
// construction and parameter validation.
type stochItem struct {
	info    *AccessInfo
	sampler Sampler
}

// Registered reports whether the item has been bound to a run.
func (it *stochItem) Registered() bool {
	return it.info != nil && it.sampler != nil
}

// SampleMode returns the mode resolved for the bound run. Only meaningful
// once Registered.
func (it *stochItem) SampleMode() SampleMode {
	if it.info == nil {
		return ModeNormal
	}
	return it.info.Mode()
}

func (it *stochItem) bindRun(info *AccessInfo, s Sampler) error {
	if it.info != nil {
		return protocolf("item %s is already registered", it.info.QualifiedID())
	}
	it.info = info
	it.sampler = s
	return nil
}

func (it *stochItem) unbindRun() {
	it.info = nil
	it.sampler = nil
}

func (it *stochItem) boundInfo() *AccessInfo { return it.info }

// shareBinding copies the registration binding without re-registering a
// separate identity; the receiver behaves under the same override and draws
// from the same run stream. Backs the registered-copy operation.
func (it *stochItem) shareBinding(src *stochItem) {
	it.info = src.info
	it.sampler = src.sampler
}

// sampleMode gates a sample request: unregistered items fail, and a Sampler
// that opted out of the family fails when the mode actually needs it.
func (it *stochItem) sampleMode(f Family) (SampleMode, error) {
	if !it.Registered() {
		return ModeNormal, protocolf("unregistered item: %s distribution sampled before registration", f)
	}
	m := it.info.Mode()
	if m == ModeNormal && !it.sampler.Supports(f) {
		return ModeNormal, protocolf("sampler for %s does not support family %s", it.info.QualifiedID(), f)
	}
	return m, nil
}

// qualifiedID names the item in snapshots and log lines; unregistered items
// have no identity yet.
func (it *stochItem) qualifiedID() string {
	if it.info == nil {
		return "(unregistered)"
	}
	return it.info.QualifiedID()
}
