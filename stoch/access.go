package stoch

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// === AccessInfo ===

// AllGroup is the auto-derived id for items registered as an anonymous group
// under their owning class, and the key prefix-less global override name.
const AllGroup = "ALL"

// AccessInfo is the per-run identity of one registered stochastic item: the
// immutable qualified name Owner.id plus the sample mode the Registry
// resolved for this run. The mode is set exactly once, at registration.
type AccessInfo struct {
	owner string
	id    string

	mode    SampleMode
	modeSet bool
}

// NewAccessInfo creates an identity for owner and id. An empty id maps to
// the auto-derived ALL group name under the owning class.
func NewAccessInfo(owner, id string) *AccessInfo {
	if id == "" {
		id = AllGroup
	}
	return &AccessInfo{owner: owner, id: id}
}

// Owner returns the owning class simple name.
func (a *AccessInfo) Owner() string { return a.owner }

// ID returns the item id under the owning class.
func (a *AccessInfo) ID() string { return a.id }

// QualifiedID returns the full Owner.id name used in override keys, log
// lines and run-settings snapshots.
func (a *AccessInfo) QualifiedID() string {
	return a.owner + "." + a.id
}

// Mode returns the sample mode resolved for this run.
func (a *AccessInfo) Mode() SampleMode { return a.mode }

// setMode records the resolved mode. Called exactly once per run by the
// Registry; a second call is a framework bug.
func (a *AccessInfo) setMode(m SampleMode) {
	if a.modeSet {
		logrus.Panicf("sample mode for %s set twice in one run", a.QualifiedID())
	}
	a.mode = m
	a.modeSet = true
}

// === Accessor ===

// Accessor is the static identity shared by all model-object instances of
// one stochastic item across parallel runs. It maps each RunKey to the item
// instance live for that run, so many runs of the same model class can
// address their own Distribution through one shared Accessor object.
//
// The run map is a sync.Map: parallel runs insert, look up and remove
// independent keys concurrently. Operations on a single run's key come from
// that run's own initialization/termination sequence and are not defended
// against concurrent use; that would be a caller bug.
type Accessor struct {
	owner string
	id    string
	byRun sync.Map // RunKey -> Item
}

// NewAccessor creates the shared identity for Owner.id. Typically a
// package-level variable of the model component that owns the item.
func NewAccessor(owner, id string) *Accessor {
	if id == "" {
		id = AllGroup
	}
	return &Accessor{owner: owner, id: id}
}

// Owner returns the owning class simple name.
func (a *Accessor) Owner() string { return a.owner }

// ID returns the item id under the owning class.
func (a *Accessor) ID() string { return a.id }

// QualifiedID returns the full Owner.id name.
func (a *Accessor) QualifiedID() string {
	return a.owner + "." + a.id
}

// AddForRun binds item as the live instance for key. A duplicate
// registration for the same run is rejected.
func (a *Accessor) AddForRun(key RunKey, item Item) error {
	if _, loaded := a.byRun.LoadOrStore(key, item); loaded {
		return protocolf("accessor %s already has an item for %s", a.QualifiedID(), key)
	}
	return nil
}

// ForRun returns the item instance live for key.
func (a *Accessor) ForRun(key RunKey) (Item, error) {
	v, ok := a.byRun.Load(key)
	if !ok {
		return nil, protocolf("accessor %s: no item registered for %s", a.QualifiedID(), key)
	}
	return v.(Item), nil
}

// removeForRun deletes the binding for key at run termination. Removing a
// key that was never added is a programming error, asserted rather than
// returned: the Registry is the only caller and it deregisters each
// recorded item exactly once.
func (a *Accessor) removeForRun(key RunKey) {
	if _, ok := a.byRun.Load(key); !ok {
		panic(fmt.Sprintf("accessor %s: deregistering unknown run %s", a.QualifiedID(), key))
	}
	a.byRun.Delete(key)
}
