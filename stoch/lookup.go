package stoch

import (
	"strings"
)

// Lookup is the lookup-by-enums stochastic item: an N-dimensional table,
// indexed by tuples of category values, holding one Distribution per cell
// (nil until explicitly inserted). It organizes families of related
// distributions: a probability-by-age-by-gender table registers and samples
// as one item.
//
// Cells live in a flat arena addressed by a row-major multi-radix index over
// the declared dimension arities. There is no nested map structure; adding a
// trailing dimension re-lays the arena.
//
// A Lookup registers like any other item. Binding cascades to every non-nil
// leaf distribution, and leaves inserted after registration are bound on
// insert, so all leaves behave under the lookup's resolved override.
type Lookup struct {
	dims  []*Dim
	cells []Distribution

	info    *AccessInfo
	sampler Sampler
}

// NewLookup declares a lookup over the given dimension order with every
// cell empty.
func NewLookup(dims ...*Dim) (*Lookup, error) {
	if len(dims) == 0 {
		return nil, invalidParamf("lookup needs at least one dimension")
	}
	n := 1
	for _, d := range dims {
		n *= d.Len()
	}
	return &Lookup{
		dims:  append([]*Dim(nil), dims...),
		cells: make([]Distribution, n),
	}, nil
}

// Dims returns the declared dimension order.
func (l *Lookup) Dims() []*Dim {
	return append([]*Dim(nil), l.dims...)
}

// Len returns the total cell count (the product of the arities).
func (l *Lookup) Len() int { return len(l.cells) }

// index validates a fully-specified coordinate tuple (length and
// per-position dimension identity) and computes the row-major cell index.
func (l *Lookup) index(cats []Cat) (int, error) {
	if len(cats) != len(l.dims) {
		return 0, invalidParamf("lookup has %d dimensions, got %d coordinates", len(l.dims), len(cats))
	}
	idx := 0
	for pos, c := range cats {
		want := l.dims[pos]
		if c.Dim() != want {
			return 0, invalidParamf("coordinate %d is %s, want a %s category", pos, c, want.Name())
		}
		idx = idx*want.Len() + c.Ordinal()
	}
	return idx, nil
}

// catsFor reconstructs the coordinate tuple of a flat cell index, in
// dimension-major order.
func (l *Lookup) catsFor(idx int) []Cat {
	cats := make([]Cat, len(l.dims))
	for pos := len(l.dims) - 1; pos >= 0; pos-- {
		d := l.dims[pos]
		cats[pos] = d.MustCat(idx % d.Len())
		idx /= d.Len()
	}
	return cats
}

// Get returns the distribution at the fully-specified coordinates, nil when
// the cell is still empty.
func (l *Lookup) Get(cats ...Cat) (Distribution, error) {
	idx, err := l.index(cats)
	if err != nil {
		return nil, err
	}
	return l.cells[idx], nil
}

// Put inserts (or overwrites) the distribution at the fully-specified
// coordinates. If the lookup is already registered, the incoming leaf is
// bound into the run immediately.
func (l *Lookup) Put(d Distribution, cats ...Cat) error {
	idx, err := l.index(cats)
	if err != nil {
		return err
	}
	if l.info != nil {
		if err := d.bindRun(l.info, l.sampler); err != nil {
			return err
		}
	}
	l.cells[idx] = d
	return nil
}

// Expand appends a trailing dimension. Every existing leaf slot becomes
// newDim.Len() fresh empty slots; existing leaf values are discarded, which
// is why lookups are expanded to their full dimensionality before being
// populated. This is how multi-dimension lookups are built incrementally as
// categorical dimensions are discovered.
func (l *Lookup) Expand(newDim *Dim) {
	l.dims = append(l.dims, newDim)
	l.cells = make([]Distribution, len(l.cells)*newDim.Len())
}

// Each visits every cell, empty or not, in depth-first dimension-major
// order. The order is deterministic so flattened prints and serializations
// are stable across runs.
func (l *Lookup) Each(visit func(cats []Cat, d Distribution)) {
	for idx := range l.cells {
		visit(l.catsFor(idx), l.cells[idx])
	}
}

// Flatten returns the non-empty leaves in iteration order.
func (l *Lookup) Flatten() []Distribution {
	out := make([]Distribution, 0, len(l.cells))
	for _, d := range l.cells {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

// SampleFor samples the leaf at the fully-specified coordinates under the
// leaf's resolved mode, as the uniform numeric view.
func (l *Lookup) SampleFor(cats ...Cat) (float64, error) {
	d, err := l.Get(cats...)
	if err != nil {
		return 0, err
	}
	if d == nil {
		return 0, protocolf("lookup %s has no distribution at [%s]", l.qualifiedID(), joinCats(cats))
	}
	return d.SampleFloat()
}

// === Item ===

// bindRun cascades the run binding to every non-nil leaf, then records it
// on the lookup itself for late Put calls.
func (l *Lookup) bindRun(info *AccessInfo, s Sampler) error {
	if l.info != nil {
		return protocolf("lookup %s is already registered", l.info.QualifiedID())
	}
	for _, d := range l.cells {
		if d == nil {
			continue
		}
		if err := d.bindRun(info, s); err != nil {
			return err
		}
	}
	l.info = info
	l.sampler = s
	return nil
}

func (l *Lookup) unbindRun() {
	for _, d := range l.cells {
		if d != nil {
			d.unbindRun()
		}
	}
	l.info = nil
	l.sampler = nil
}

func (l *Lookup) boundInfo() *AccessInfo { return l.info }

func (l *Lookup) qualifiedID() string {
	if l.info == nil {
		return "(unregistered)"
	}
	return l.info.QualifiedID()
}

// Snapshot dumps one ItemState per populated cell in iteration order, with
// the cell coordinates appended to the lookup's qualified id.
func (l *Lookup) Snapshot() []ItemState {
	var out []ItemState
	for idx, d := range l.cells {
		if d == nil {
			continue
		}
		states := d.Snapshot()
		for i := range states {
			states[i].ID = l.qualifiedID() + "[" + joinCats(l.catsFor(idx)) + "]"
			states[i].Family = FamilyLookupByEnums.String() + "/" + states[i].Family
		}
		out = append(out, states...)
	}
	return out
}

func joinCats(cats []Cat) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
