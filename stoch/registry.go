package stoch

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// SamplerFactory builds the variate engine for one run. Swapping the
// factory is how a host engine substitutes its own Sampler.
type SamplerFactory func(masterSeed int64, key RunKey) Sampler

// defaultSamplerFactory is the gonum-backed engine.
func defaultSamplerFactory(masterSeed int64, key RunKey) Sampler {
	return NewGonumSampler(masterSeed, key)
}

// runRegistries maps every live run to its Registry. Parallel runs create
// and close registries concurrently, so this is the second of the two
// run-keyed concurrent maps (the other lives inside each Accessor).
var runRegistries sync.Map // RunKey -> *Registry

// RegistryForRun returns the live registry for a run, if any.
func RegistryForRun(key RunKey) (*Registry, bool) {
	v, ok := runRegistries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Registry), true
}

// registration records one registered item for end-of-run cleanup.
type registration struct {
	item Item
	acc  *Accessor
}

// Registry is the per-run registration authority. The run's model
// initializer creates one, every stochastic item registers through it
// (resolving its sample mode from the loaded overrides and binding the
// run's Sampler), and the run's termination hook closes it, deregistering
// every item exactly once.
//
// Registration for a given run happens from that run's own initialization
// sequence; the Registry is deliberately not safe against concurrent
// registration of the same run, which would be a caller bug. Cross-run
// concurrency is confined to the run-keyed maps.
type Registry struct {
	run        RunKey
	masterSeed int64
	overrides  Overrides

	newSampler SamplerFactory
	sampler    Sampler // created lazily, once per run

	order     []registration
	seen      map[Item]struct{}
	finalized bool
	closed    bool
}

// NewRegistry creates the registry for one run with the default gonum
// Sampler. A second live registry for the same RunKey is rejected.
func NewRegistry(run RunKey, masterSeed int64, overrides Overrides) (*Registry, error) {
	return NewRegistryWithSampler(run, masterSeed, overrides, defaultSamplerFactory)
}

// NewRegistryWithSampler creates the registry with a host-specific Sampler
// factory.
func NewRegistryWithSampler(run RunKey, masterSeed int64, overrides Overrides, factory SamplerFactory) (*Registry, error) {
	r := &Registry{
		run:        run,
		masterSeed: masterSeed,
		overrides:  overrides,
		newSampler: factory,
		seen:       make(map[Item]struct{}),
	}
	if _, loaded := runRegistries.LoadOrStore(run, r); loaded {
		return nil, protocolf("a registry for %s is already live", run)
	}
	return r, nil
}

// Run returns the registry's run key.
func (r *Registry) Run() RunKey { return r.run }

// Sampler returns the run's variate engine, instantiating it on first use.
func (r *Registry) Sampler() Sampler {
	if r.sampler == nil {
		r.sampler = r.newSampler(r.masterSeed, r.run)
	}
	return r.sampler
}

// Register registers item under the qualified name Owner.id (an empty id
// becomes the ALL group name), resolves its sample mode from the overrides
// and binds the run's Sampler. The same item object may register only once
// per run, and not after Finalize.
func (r *Registry) Register(owner, id string, item Item) error {
	return r.register(NewAccessInfo(owner, id), nil, item)
}

// RegisterVia registers item under a shared Accessor's identity and records
// the item as the accessor's live instance for this run.
func (r *Registry) RegisterVia(acc *Accessor, item Item) error {
	return r.register(NewAccessInfo(acc.Owner(), acc.ID()), acc, item)
}

func (r *Registry) register(info *AccessInfo, acc *Accessor, item Item) error {
	if r.closed {
		return protocolf("registry for %s is closed", r.run)
	}
	if r.finalized {
		return protocolf("registrations for %s are finalized; %s came too late", r.run, info.QualifiedID())
	}
	if _, dup := r.seen[item]; dup {
		return protocolf("item %s is already registered for %s", info.QualifiedID(), r.run)
	}

	mode := r.overrides.Resolve(info.Owner(), info.ID())
	info.setMode(mode)

	if err := item.bindRun(info, r.Sampler()); err != nil {
		return err
	}
	if acc != nil {
		if err := acc.AddForRun(r.run, item); err != nil {
			item.unbindRun()
			return err
		}
	}

	r.seen[item] = struct{}{}
	r.order = append(r.order, registration{item: item, acc: acc})
	logrus.Debugf("%s: registered %s mode=%s", r.run, info.QualifiedID(), mode)
	return nil
}

// Finalize administratively closes registration for the run; later Register
// calls fail. Sampling items already registered is unaffected.
func (r *Registry) Finalize() {
	r.finalized = true
}

// Snapshot returns the stable parameter view of every registered item,
// sorted by qualified id, for the external run-settings persistence layer.
func (r *Registry) Snapshot() []ItemState {
	var out []ItemState
	for _, reg := range r.order {
		out = append(out, reg.item.Snapshot()...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close deregisters every recorded item exactly once and retires the
// registry. Called from the run's own termination hook; there is no other
// cancellation path. Closing twice is a programming error and panics, as
// does any accessor map inconsistency discovered while deregistering.
func (r *Registry) Close() {
	if r.closed {
		logrus.Panicf("registry for %s closed twice", r.run)
	}
	r.closed = true
	for _, reg := range r.order {
		if reg.acc != nil {
			reg.acc.removeForRun(r.run)
		}
		reg.item.unbindRun()
	}
	logrus.Debugf("%s: deregistered %d items", r.run, len(r.order))
	r.order = nil
	r.seen = nil
	runRegistries.Delete(r.run)
}
