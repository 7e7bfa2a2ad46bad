package graph

import (
	"reflect"

	"github.com/syssam/relink"
	"github.com/syssam/relink/resolve"
)

// Operation names used in contract errors.
const (
	opSetRef = "SetRef"
	opAdd    = "Add"
	opRemove = "Remove"
)

// Engine applies relationship mutations to live entity instances, driven by
// a resolved schema. One engine serves the whole schema; operations dispatch
// by (entity, property) descriptor lookup.
//
// The engine holds no state besides the immutable schema and is safe for
// concurrent use as long as the caller serializes mutations that touch
// overlapping graph regions.
type Engine struct {
	schema *resolve.Schema
}

// New returns an engine over the given resolved schema.
func New(s *resolve.Schema) *Engine {
	return &Engine{schema: s}
}

// Schema returns the resolved schema the engine was built with.
func (e *Engine) Schema() *resolve.Schema { return e.schema }

// SetRef assigns the owner-side reference property of owner to value and
// keeps the mirrors consistent: the owner is removed from the old value's
// inverse collection, added to the new value's, and the foreign-key scalar
// is set to the new identity (or its empty sentinel for a nil value).
//
// Assigning the current value is a no-op. A nil owner is a contract
// violation; a nil value clears a nullable reference.
func (e *Engine) SetRef(owner Node, name string, value Node) error {
	if isNil(owner) {
		return relink.NewContractError(opSetRef, "nil owner node")
	}
	r, err := e.schema.Lookup(owner.Type(), name)
	if err != nil {
		return err
	}
	if !r.IsOwner() {
		return relink.NewContractError(opSetRef, "relationship %q of entity %q is not an owning reference", name, owner.Type())
	}
	old := owner.Ref(name)
	if sameNode(old, value) {
		return nil
	}
	if !isNil(old) && r.HasInverse() {
		e.detachMirror(r, old, owner)
	}
	if isNil(value) {
		owner.SetRef(name, nil)
		if r.HasField() {
			owner.SetValue(r.Field, zeroOf(owner.Value(r.Field)))
		}
		return nil
	}
	owner.SetRef(name, value)
	if r.HasField() {
		owner.SetValue(r.Field, value.ID())
	}
	if r.HasInverse() {
		e.attachMirror(r, value, owner)
	}
	return nil
}

// Add inserts item into the collection property of owner, set-like: an item
// already present is not inserted twice. When the relationship resolved to a
// mirror, the item's mirror reference and the owner's identity in the
// foreign-key scalar are written together, guarded by an already-correct
// check, so repeating the call is a no-op.
func (e *Engine) Add(owner Node, name string, item Node) error {
	r, err := e.collection(opAdd, owner, name, item)
	if err != nil {
		return err
	}
	addToList(owner, name, item)
	switch {
	case !r.HasInverse():
		// Single-sided collection; nothing to mirror.
	case r.M2M():
		addToList(item, r.InverseName, owner)
	case !sameNode(item.Ref(r.InverseName), owner):
		item.SetRef(r.InverseName, owner)
		if r.OwnerField != "" {
			item.SetValue(r.OwnerField, owner.ID())
		}
	}
	return nil
}

// Remove deletes item from the collection property of owner, a no-op when
// absent. If the item's mirror reference points at the owner, the reference
// is cleared only when the owning property was resolved as nullable; a
// required reference is left unchanged while the foreign key, if any, is
// still cleared to its empty sentinel.
func (e *Engine) Remove(owner Node, name string, item Node) error {
	r, err := e.collection(opRemove, owner, name, item)
	if err != nil {
		return err
	}
	removeFromList(owner, name, item)
	switch {
	case !r.HasInverse():
	case r.M2M():
		removeFromList(item, r.InverseName, owner)
	case sameNode(item.Ref(r.InverseName), owner):
		if !r.OwnerRequired {
			item.SetRef(r.InverseName, nil)
		}
		if r.OwnerField != "" {
			item.SetValue(r.OwnerField, zeroOf(item.Value(r.OwnerField)))
		}
	}
	return nil
}

// collection validates the common contract of Add and Remove and returns
// the resolved collection end.
func (e *Engine) collection(op string, owner Node, name string, item Node) (*resolve.Relationship, error) {
	if isNil(owner) {
		return nil, relink.NewContractError(op, "nil owner node")
	}
	if isNil(item) {
		return nil, relink.NewContractError(op, "nil item node")
	}
	r, err := e.schema.Lookup(owner.Type(), name)
	if err != nil {
		return nil, err
	}
	if !r.IsCollection() {
		return nil, relink.NewContractError(op, "relationship %q of entity %q is not a collection", name, owner.Type())
	}
	return r, nil
}

// detachMirror removes owner from old's mirror end after a reference change.
func (e *Engine) detachMirror(r *resolve.Relationship, old, owner Node) {
	if r.M2O() {
		removeFromList(old, r.InverseName, owner)
		return
	}
	// O2O mirror is a single reference on the other side.
	if sameNode(old.Ref(r.InverseName), owner) {
		old.SetRef(r.InverseName, nil)
	}
}

// attachMirror adds owner to value's mirror end after a reference change.
func (e *Engine) attachMirror(r *resolve.Relationship, value, owner Node) {
	if r.M2O() {
		addToList(value, r.InverseName, owner)
		return
	}
	if !sameNode(value.Ref(r.InverseName), owner) {
		value.SetRef(r.InverseName, owner)
	}
}

// addToList inserts item into the named collection of n if not already a
// member, materializing the collection on first insert.
func addToList(n Node, name string, item Node) {
	items := n.List(name)
	for _, it := range items {
		if it == item {
			return
		}
	}
	n.SetList(name, append(items, item))
}

// removeFromList deletes item from the named collection of n, preserving
// order. The three-index append keeps the original backing array intact for
// other holders of the slice.
func removeFromList(n Node, name string, item Node) {
	items := n.List(name)
	for i, it := range items {
		if it == item {
			n.SetList(name, append(items[:i:i], items[i+1:]...))
			return
		}
	}
}

// zeroOf returns the empty sentinel for a foreign-key value: the zero value
// of its dynamic type, or nil when the scalar was never set.
func zeroOf(v any) any {
	if v == nil {
		return nil
	}
	return reflect.Zero(reflect.TypeOf(v)).Interface()
}
