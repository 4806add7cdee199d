package stoch

import "fmt"

// === Dim ===

// Dim describes one enumerated dimension with a fixed arity: an ordered set
// of named categories (age band, gender, severity class, ...). Dims are
// compared by identity, so two dims with the same labels are still distinct
// dimensions; declare each as a package-level variable of the model that
// owns it.
type Dim struct {
	name   string
	labels []string
}

// NewDim declares a dimension with at least one category label.
func NewDim(name string, labels ...string) *Dim {
	if len(labels) == 0 {
		panic(fmt.Sprintf("dimension %s declared with no categories", name))
	}
	d := &Dim{name: name, labels: make([]string, len(labels))}
	copy(d.labels, labels)
	return d
}

// Name returns the dimension name.
func (d *Dim) Name() string { return d.name }

// Len returns the fixed arity.
func (d *Dim) Len() int { return len(d.labels) }

// Label returns the name of category i.
func (d *Dim) Label(i int) string { return d.labels[i] }

// Cat returns the category value at zero-based ordinal i.
func (d *Dim) Cat(i int) (Cat, error) {
	if i < 0 || i >= len(d.labels) {
		return Cat{}, invalidParamf("dimension %s has no ordinal %d (arity %d)", d.name, i, len(d.labels))
	}
	return Cat{dim: d, ordinal: i}, nil
}

// MustCat is Cat for statically-known ordinals; panics out of range.
func (d *Dim) MustCat(i int) Cat {
	c, err := d.Cat(i)
	if err != nil {
		panic(err)
	}
	return c
}

// CatOf returns the category value with the given label.
func (d *Dim) CatOf(label string) (Cat, error) {
	for i, l := range d.labels {
		if l == label {
			return Cat{dim: d, ordinal: i}, nil
		}
	}
	return Cat{}, invalidParamf("dimension %s has no category %q", d.name, label)
}

// Cats returns all category values in declared order.
func (d *Dim) Cats() []Cat {
	out := make([]Cat, len(d.labels))
	for i := range d.labels {
		out[i] = Cat{dim: d, ordinal: i}
	}
	return out
}

// === Cat ===

// Cat is one category value of one dimension. The zero Cat is invalid.
type Cat struct {
	dim     *Dim
	ordinal int
}

// Dim returns the owning dimension.
func (c Cat) Dim() *Dim { return c.dim }

// Ordinal returns the zero-based position within the dimension.
func (c Cat) Ordinal() int { return c.ordinal }

// Label returns the category name.
func (c Cat) Label() string { return c.dim.Label(c.ordinal) }

// String renders dim:label, the spelling used in snapshots and errors.
func (c Cat) String() string {
	if c.dim == nil {
		return "(no category)"
	}
	return c.dim.name + ":" + c.Label()
}
