package graph

import "reflect"

// Node is an addressable entity instance. The engine reads and mutates
// properties identified by the resolved schema; it never allocates nodes.
//
// Reference and collection properties hold other nodes; scalar properties
// hold foreign-key values. An implementation backed by pointer receivers
// gets the reference-equality semantics the engine relies on for free.
type Node interface {
	// Type returns the entity name of the node in the resolved schema.
	Type() string

	// ID returns the identity of the node, mirrored into foreign keys.
	ID() any

	// Ref returns the single-valued reference property, or nil when absent.
	Ref(name string) Node

	// SetRef assigns the single-valued reference property. A nil value
	// clears the reference.
	SetRef(name string, v Node)

	// List returns the collection property. A nil slice is an empty,
	// not-yet-materialized collection.
	List(name string) []Node

	// SetList replaces the collection property.
	SetList(name string, items []Node)

	// Value returns a scalar property (foreign keys), or nil when unset.
	Value(name string) any

	// SetValue assigns a scalar property.
	SetValue(name string, v any)
}

// Record is a map-backed Node implementation for callers without their own
// entity types, and for tests.
type Record struct {
	typ    string
	id     any
	refs   map[string]Node
	lists  map[string][]Node
	values map[string]any
}

// NewRecord returns a record of the given entity type with the given identity.
func NewRecord(typ string, id any) *Record {
	return &Record{
		typ:    typ,
		id:     id,
		refs:   make(map[string]Node),
		lists:  make(map[string][]Node),
		values: make(map[string]any),
	}
}

// Type returns the entity name of the record.
func (r *Record) Type() string { return r.typ }

// ID returns the identity of the record.
func (r *Record) ID() any { return r.id }

// Ref returns the reference property, or nil when absent.
func (r *Record) Ref(name string) Node { return r.refs[name] }

// SetRef assigns the reference property. A nil value clears it.
func (r *Record) SetRef(name string, v Node) {
	if isNil(v) {
		delete(r.refs, name)
		return
	}
	r.refs[name] = v
}

// List returns the collection property.
func (r *Record) List(name string) []Node { return r.lists[name] }

// SetList replaces the collection property.
func (r *Record) SetList(name string, items []Node) {
	if items == nil {
		delete(r.lists, name)
		return
	}
	r.lists[name] = items
}

// Value returns the scalar property, or nil when unset.
func (r *Record) Value(name string) any { return r.values[name] }

// SetValue assigns the scalar property.
func (r *Record) SetValue(name string, v any) { r.values[name] = v }

// isNil reports if the node is absent, including typed-nil implementations
// passed through the Node interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// sameNode reports reference equality between two possibly-absent nodes.
func sameNode(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a == b
}
