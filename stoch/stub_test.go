package stoch

import "testing"

// stubSampler scripts the variate engine for deterministic tests. Uniform
// draws cycle through uniforms (default 0.5), ordinal draws through
// ordinals (default 1).
type stubSampler struct {
	uniforms    []float64
	ordinals    []int
	unsupported map[Family]bool

	ui, oi int
}

func (s *stubSampler) nextUniform() float64 {
	if len(s.uniforms) == 0 {
		return 0.5
	}
	v := s.uniforms[s.ui%len(s.uniforms)]
	s.ui++
	return v
}

func (s *stubSampler) nextOrdinal() int {
	if len(s.ordinals) == 0 {
		return 1
	}
	v := s.ordinals[s.oi%len(s.ordinals)]
	s.oi++
	return v
}

func (s *stubSampler) Supports(f Family) bool { return !s.unsupported[f] }

func (s *stubSampler) Normal(mean, stdDev float64) float64 {
	return mean + stdDev*s.nextUniform()
}

func (s *stubSampler) Uniform(min, max float64) float64 {
	return min + s.nextUniform()*(max-min)
}

func (s *stubSampler) Exponential(mean float64) float64 { return mean * s.nextUniform() }

func (s *stubSampler) Bernoulli(p float64) bool { return s.nextUniform() <= p }

func (s *stubSampler) Poisson(lambda float64) int { return s.nextOrdinal() }

func (s *stubSampler) Geometric(p float64) int { return s.nextOrdinal() }

func (s *stubSampler) NegativeBinomial(n int, p float64) int { return s.nextOrdinal() }

func (s *stubSampler) Triangular(min, mode, max float64) float64 { return mode }

func (s *stubSampler) Weibull(shape, scale float64) float64 { return scale * s.nextUniform() }

func (s *stubSampler) IntRange(k int) int { return s.nextOrdinal() }

// newStubRegistry creates a registry backed by stub and closes it with the
// test. Tests exercising Close themselves must build registries by hand.
func newStubRegistry(t *testing.T, run RunKey, overrides Overrides, stub *stubSampler) *Registry {
	t.Helper()
	reg, err := NewRegistryWithSampler(run, 1, overrides, func(int64, RunKey) Sampler { return stub })
	if err != nil {
		t.Fatalf("NewRegistryWithSampler(%v): %v", run, err)
	}
	t.Cleanup(reg.Close)
	return reg
}

// registerFor binds a distribution for sampling tests.
func registerFor(t *testing.T, run RunKey, overrides Overrides, stub *stubSampler, owner, id string, item Item) {
	t.Helper()
	reg := newStubRegistry(t, run, overrides, stub)
	if err := reg.Register(owner, id, item); err != nil {
		t.Fatalf("Register(%s.%s): %v", owner, id, err)
	}
}

var collapseAll = Overrides{AllGroup: ModeCollapseMid}
