package stoch

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ModelFunc initializes and executes one run of the model: register every
// stochastic item against reg, then sample away. The driver owns the
// registry lifecycle; the model must not Close it.
type ModelFunc func(key RunKey, reg *Registry) error

// RunResult is the outcome of one replication: the run-settings snapshot
// captured after the model executed (for reproducibility auditing) and the
// model's error, if any.
type RunResult struct {
	Run      RunKey
	Snapshot []ItemState
	Err      error
}

// Experiment drives repeated independent runs of one model. Each
// replication gets its own RunKey, Registry and derived RNG stream;
// replications execute sequentially or across Parallelism goroutines. A run
// is a logical unit, not a thread: nothing here or below relies on which
// goroutine a run happens to execute on.
type Experiment struct {
	Name         string
	Replications int
	Parallelism  int // <= 1 runs sequentially
	MasterSeed   int64
	Overrides    Overrides

	// SamplerFactory substitutes a host-specific engine; nil selects the
	// gonum default.
	SamplerFactory SamplerFactory
}

// Run executes the experiment and returns one result per replication, in
// replication order. Every run's items are deregistered before Run returns,
// whether or not the model errored.
func (e *Experiment) Run(model ModelFunc) []RunResult {
	n := e.Replications
	results := make([]RunResult, n)

	parallelism := e.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			key := NewRunKey(int64(i + 1))
			results[i] = e.runOne(key, model)
		}(i)
	}
	wg.Wait()
	return results
}

func (e *Experiment) runOne(key RunKey, model ModelFunc) RunResult {
	factory := e.SamplerFactory
	if factory == nil {
		factory = defaultSamplerFactory
	}
	reg, err := NewRegistryWithSampler(key, e.MasterSeed, e.Overrides, factory)
	if err != nil {
		return RunResult{Run: key, Err: err}
	}
	defer reg.Close()

	logrus.Debugf("experiment %s: starting %s", e.Name, key)
	runErr := model(key, reg)
	return RunResult{Run: key, Snapshot: reg.Snapshot(), Err: runErr}
}
