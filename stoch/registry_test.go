package stoch

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridePrecedence(t *testing.T) {
	overrides := Overrides{
		"ALL":                 ModeCollapseMid,
		"MyClass.ALL":         ModeNormal,
		"MyClass.specialDist": ModeCollapseMid,
	}
	tests := []struct {
		owner, id string
		want      SampleMode
	}{
		{"MyClass", "specialDist", ModeCollapseMid},
		{"MyClass", "otherDist", ModeNormal},
		{"OtherClass", "x", ModeCollapseMid},
	}
	for _, tt := range tests {
		t.Run(tt.owner+"."+tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, overrides.Resolve(tt.owner, tt.id))
		})
	}
}

func TestRegistry_ResolvedModeReachesItem(t *testing.T) {
	overrides := Overrides{
		"MyClass.ALL":         ModeCollapseMid,
		"MyClass.specialDist": ModeNormal,
	}
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(501), overrides, stub)

	special, _ := NewBernoulli(0.9)
	other, _ := NewBernoulli(0.9)
	require.NoError(t, reg.Register("MyClass", "specialDist", special))
	require.NoError(t, reg.Register("MyClass", "otherDist", other))

	assert.Equal(t, ModeNormal, special.SampleMode())
	assert.Equal(t, ModeCollapseMid, other.SampleMode())
}

func TestRegistry_SameItemTwiceRejected(t *testing.T) {
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(502), Overrides{}, stub)

	d, _ := NewBernoulli(0.5)
	require.NoError(t, reg.Register("Dup", "d", d))
	err := reg.Register("Dup", "again", d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestRegistry_RegisterAfterFinalizeRejected(t *testing.T) {
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(503), Overrides{}, stub)

	first, _ := NewBernoulli(0.5)
	require.NoError(t, reg.Register("Late", "first", first))
	reg.Finalize()

	late, _ := NewBernoulli(0.5)
	err := reg.Register("Late", "late", late)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)

	// Items already registered keep sampling after finalization.
	_, err = first.Sample()
	assert.NoError(t, err)
}

func TestRegistry_EmptyIDBecomesAllGroup(t *testing.T) {
	overrides := Overrides{"Grouped.ALL": ModeCollapseMid}
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(504), overrides, stub)

	d, _ := NewBernoulli(0.9)
	require.NoError(t, reg.Register("Grouped", "", d))
	assert.Equal(t, ModeCollapseMid, d.SampleMode())
}

func TestRegistry_DuplicateRunKeyRejected(t *testing.T) {
	stub := &stubSampler{}
	newStubRegistry(t, NewRunKey(505), Overrides{}, stub)

	_, err := NewRegistry(NewRunKey(505), 1, Overrides{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestRegistry_CloseUnbindsAndRetires(t *testing.T) {
	stub := &stubSampler{}
	reg, err := NewRegistryWithSampler(NewRunKey(506), 1, Overrides{}, func(int64, RunKey) Sampler { return stub })
	require.NoError(t, err)

	d, _ := NewBernoulli(0.5)
	require.NoError(t, reg.Register("Cleanup", "d", d))

	_, ok := RegistryForRun(NewRunKey(506))
	assert.True(t, ok)

	reg.Close()

	_, ok = RegistryForRun(NewRunKey(506))
	assert.False(t, ok)
	assert.False(t, d.Registered())
	_, err = d.Sample()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestRegistry_DoubleClosePanics(t *testing.T) {
	reg, err := NewRegistry(NewRunKey(507), 1, Overrides{})
	require.NoError(t, err)
	reg.Close()
	assert.Panics(t, func() { reg.Close() })
}

func TestAccessor_PerRunIsolation(t *testing.T) {
	// The same logical id registers independently for two runs; each run's
	// lookup returns only its own instance.
	acc := NewAccessor("Shared", "growthRate")
	stubA := &stubSampler{}
	stubB := &stubSampler{}
	regA := newStubRegistry(t, NewRunKey(508), Overrides{}, stubA)
	regB := newStubRegistry(t, NewRunKey(509), collapseAll, stubB)

	itemA, _ := NewNormal(1, 0.1)
	itemB, _ := NewNormal(2, 0.2)
	require.NoError(t, regA.RegisterVia(acc, itemA))
	require.NoError(t, regB.RegisterVia(acc, itemB))

	gotA, err := acc.ForRun(NewRunKey(508))
	require.NoError(t, err)
	assert.Same(t, itemA, gotA.(*Normal))

	gotB, err := acc.ForRun(NewRunKey(509))
	require.NoError(t, err)
	assert.Same(t, itemB, gotB.(*Normal))

	// Each run's instance carries that run's resolved mode.
	assert.Equal(t, ModeNormal, itemA.SampleMode())
	assert.Equal(t, ModeCollapseMid, itemB.SampleMode())
}

func TestAccessor_DuplicateRunRejected(t *testing.T) {
	acc := NewAccessor("Shared", "dup")
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(510), Overrides{}, stub)

	first, _ := NewNormal(0, 1)
	second, _ := NewNormal(0, 1)
	require.NoError(t, reg.RegisterVia(acc, first))

	err := reg.RegisterVia(acc, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
	// The failed registration left the second item unbound.
	assert.False(t, second.Registered())
}

func TestAccessor_UnknownRunFails(t *testing.T) {
	acc := NewAccessor("Shared", "missing")
	_, err := acc.ForRun(NewRunKey(511))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestAccessor_CloseRemovesRunBinding(t *testing.T) {
	acc := NewAccessor("Shared", "closing")
	stub := &stubSampler{}
	reg, err := NewRegistryWithSampler(NewRunKey(512), 1, Overrides{}, func(int64, RunKey) Sampler { return stub })
	require.NoError(t, err)

	item, _ := NewNormal(0, 1)
	require.NoError(t, reg.RegisterVia(acc, item))
	reg.Close()

	_, err = acc.ForRun(NewRunKey(512))
	assert.ErrorIs(t, err, ErrProtocol)
}

// End to end: a Bernoulli(0.3) collapses to failure under ALL=COLLAPSE_MID,
// and under no override follows the engine's uniform draw with the
// success-iff-u<=p boundary.
func TestEndToEnd_BernoulliOverride(t *testing.T) {
	stub := &stubSampler{uniforms: []float64{0.2}}
	regCollapsed := newStubRegistry(t, NewRunKey(513), collapseAll, stub)

	collapsed, _ := NewBernoulli(0.3)
	require.NoError(t, regCollapsed.Register("EndToEnd", "b", collapsed))
	got, err := collapsed.Sample()
	require.NoError(t, err)
	assert.False(t, got, "0.3 < 0.5 collapses to failure")

	regNormal := newStubRegistry(t, NewRunKey(514), Overrides{}, stub)
	fresh, _ := NewBernoulli(0.3)
	require.NoError(t, regNormal.Register("EndToEnd", "b", fresh))
	got, err = fresh.Sample()
	require.NoError(t, err)
	assert.True(t, got, "draw 0.2 <= p 0.3 is a success")

	hopeless, _ := NewBernoulli(0.1)
	require.NoError(t, regNormal.Register("EndToEnd", "c", hopeless))
	got, err = hopeless.Sample()
	require.NoError(t, err)
	assert.False(t, got, "draw 0.2 > p 0.1 is a failure")
}

func TestRegistry_SnapshotSortedAndComplete(t *testing.T) {
	stub := &stubSampler{}
	reg := newStubRegistry(t, NewRunKey(515), Overrides{"Snap.b": ModeCollapseMid}, stub)

	b, _ := NewBernoulli(0.25)
	n, _ := NewNormal(4, 1)
	require.NoError(t, reg.Register("Snap", "b", b))
	require.NoError(t, reg.Register("Snap", "a", n))

	states := reg.Snapshot()
	require.Len(t, states, 2)
	assert.Equal(t, "Snap.a", states[0].ID)
	assert.Equal(t, "NORMAL", states[0].Mode)
	assert.Equal(t, "Snap.b", states[1].ID)
	assert.Equal(t, "COLLAPSE_MID", states[1].Mode)
	assert.Equal(t, []Param{{"p", 0.25}}, states[1].Params)
}

func TestRegistry_ConcurrentRunsRegisterIndependently(t *testing.T) {
	// Parallel runs register and deregister through shared static state
	// (the accessor map and the run-registry map) simultaneously.
	acc := NewAccessor("Parallel", "rate")
	const runs = 16

	var wg sync.WaitGroup
	errs := make([]error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := NewRunKey(int64(600 + i))
			reg, err := NewRegistry(key, 42, Overrides{})
			if err != nil {
				errs[i] = err
				return
			}
			defer reg.Close()

			item, err := NewExponential(float64(i + 1))
			if err != nil {
				errs[i] = err
				return
			}
			if err := reg.RegisterVia(acc, item); err != nil {
				errs[i] = err
				return
			}
			got, err := acc.ForRun(key)
			if err != nil {
				errs[i] = err
				return
			}
			if got.(*Exponential) != item {
				errs[i] = fmt.Errorf("run %d resolved a foreign instance", i)
				return
			}
			if _, err := item.Sample(); err != nil {
				errs[i] = err
			}
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "run %d", i)
	}
}
