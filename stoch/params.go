package stoch

// Parameter snapshots are the framework's obligation toward the external
// run-settings persistence layer: for every registered item, a stable and
// complete view of the identity, resolved mode and numeric parameters that
// governed the run. Families enumerate their parameters explicitly; nothing
// here inspects method names or struct tags.

// Param is one named numeric parameter of a distribution.
type Param struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// ItemState is the audited state of one registered distribution. Lookup
// items contribute one ItemState per populated cell, with the cell
// coordinates appended to the id.
type ItemState struct {
	ID     string  `yaml:"id"`
	Family string  `yaml:"family"`
	Mode   string  `yaml:"mode"`
	Params []Param `yaml:"params"`
}

// singleState builds the one-element snapshot shared by all scalar
// distribution families.
func singleState(it *stochItem, f Family, params ...Param) []ItemState {
	return []ItemState{{
		ID:     it.qualifiedID(),
		Family: f.String(),
		Mode:   it.SampleMode().String(),
		Params: params,
	}}
}
