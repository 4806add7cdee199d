// Package stoch provides the stochastic-item framework for multi-run
// simulation experiments: typed distributions, per-run registration with
// override-driven sample modes, and enum-indexed distribution lookups.
//
// # Reading Guide
//
// Start with these three files to understand the framework:
//   - distribution.go: the Distribution contract and the shared registration core
//   - registry.go: the per-run Registry, override resolution, and run cleanup
//   - sampler.go: the pluggable variate engine a run binds to its items
//
// # Architecture
//
// A simulation experiment executes many independent runs of the same model.
// Each run owns a Registry; model components construct distributions and
// register them (directly or through a shared Accessor) before sampling.
// Registration resolves the item's SampleMode from loaded Overrides
// (ALL < Owner.ALL < Owner.id precedence), binds the run's Sampler, and
// records the item so the run's termination hook can deregister everything.
//
// Run identity is always an explicit RunKey value passed through APIs.
// Nothing in this package consults goroutine-local state: a run may migrate
// across OS threads, and parallel runs share static Accessor objects, so the
// run-keyed maps are the only place concurrent access occurs.
//
// # Key Types
//
//   - Distribution: one struct per family (Normal, Bernoulli, Weibull, ...)
//     with validated parameter setters and mode-aware sampling
//   - CustomCategorical / UniformDiscrete: K-outcome distributions with
//     integer-range remapping and an edit-lock state machine
//   - Lookup: an N-dimensional, enum-indexed table of distributions
//   - Accessor: static identity mapping each RunKey to that run's item
//   - Registry: per-run registration, override resolution, and cleanup
//   - Sampler: the variate engine boundary; GonumSampler is the default
package stoch
