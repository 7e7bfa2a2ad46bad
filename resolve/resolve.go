// Package resolve builds the immutable, name-keyed relationship schema
// consumed by the graph package. Resolution runs once per schema: an index
// pass groups declarations by entity, and a link pass matches every inverse
// end's Ref (mappedBy) back to the owning property on the target entity.
// Owner and inverse ends are linked by name lookup rather than by pointer,
// so entities may be declared in any order.
package resolve

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/relink"
	"github.com/syssam/relink/load"
	"github.com/syssam/relink/schema/rel"
)

type (
	// Schema is the resolved relationship schema. It is built once by
	// Resolve, never mutated afterwards, and safe to share across
	// arbitrarily many concurrent readers.
	Schema struct {
		entities map[string]*Entity
		names    []string // Entity names in declaration order.
		// Warnings collected during the link pass. Non-fatal: each one
		// degrades a relationship to single-sided mirroring.
		Warnings []Warning
	}

	// Entity holds the resolved relationship ends declared on one entity.
	Entity struct {
		Name          string
		Relationships []*Relationship
		relationships map[string]*Relationship
	}

	// Relationship is one resolved relationship end. InverseName, and for
	// inverse ends OwnerRequired/OwnerField, are filled by the link pass;
	// the remaining fields come from the declaration unchanged.
	Relationship struct {
		// Entity is the name of the declaring entity.
		Entity string
		// Name is the property name on the declaring entity.
		Name string
		// Type is the target entity name.
		Type string
		// Rel is the cardinality of this end.
		Rel rel.Rel
		// RefName is the owning property on the target entity (mappedBy).
		// Present exactly on inverse ends.
		RefName string
		// Required reports that the single-valued reference may not be empty.
		Required bool
		// Field is the foreign-key scalar property mirroring the target's
		// identity. Empty when the relationship has no foreign-key mirror.
		Field string
		// Comment of the declaration, if any.
		Comment string
		// InverseName is the mirror property on the target entity. Left
		// empty for single-sided relationships.
		InverseName string
		// OwnerRequired records, on inverse ends, whether the owning
		// reference was declared required. It decides if removing an item
		// from the collection may clear the mirror reference.
		OwnerRequired bool
		// OwnerField records, on inverse ends, the owner's foreign-key
		// property so collection mutations can mirror identities into it.
		OwnerField string
	}

	// Warning is a non-fatal resolution diagnostic, surfaced so build-time
	// tooling can warn about relationships that degraded to single-sided.
	Warning struct {
		Entity   string
		Property string
		Message  string
	}
)

// String returns the warning in "Entity.property: message" form.
func (w Warning) String() string {
	return fmt.Sprintf("%s.%s: %s", w.Entity, w.Property, w.Message)
}

// Resolve builds a Schema from per-entity relationship declarations.
// Declaration errors (empty or duplicate names, unknown cardinalities,
// foreign keys on inverse ends) fail with a SchemaError; unmatched inverse
// declarations degrade to single-sided relationships and are reported as
// warnings on the returned schema.
func Resolve(entities []*load.Entity) (*Schema, error) {
	s := &Schema{entities: make(map[string]*Entity, len(entities))}
	// Index pass: group declarations by entity name. No cross-entity
	// knowledge is required here.
	for _, le := range entities {
		e, err := newEntity(le)
		if err != nil {
			return nil, err
		}
		if _, ok := s.entities[e.Name]; ok {
			return nil, &SchemaError{Entity: e.Name, Message: "entity redeclared"}
		}
		s.entities[e.Name] = e
		s.names = append(s.names, e.Name)
	}
	// Link pass: match every inverse end's Ref against the owning property
	// on the target entity.
	for _, name := range s.names {
		for _, r := range s.entities[name].Relationships {
			if r.IsInverse() {
				s.link(r)
			}
		}
	}
	return s, nil
}

// newEntity validates and converts one loaded entity.
func newEntity(le *load.Entity) (*Entity, error) {
	if le.Name == "" {
		return nil, &SchemaError{Message: "entity name cannot be empty"}
	}
	e := &Entity{
		Name:          le.Name,
		relationships: make(map[string]*Relationship, len(le.Relationships)),
	}
	for _, lr := range le.Relationships {
		rd, err := lr.Descriptor()
		if err != nil {
			return nil, &SchemaError{Entity: le.Name, Property: lr.Name, Message: "invalid declaration", Cause: err}
		}
		r, err := newRelationship(le.Name, rd)
		if err != nil {
			return nil, err
		}
		if _, ok := e.relationships[r.Name]; ok {
			return nil, &SchemaError{
				Entity:   le.Name,
				Property: r.Name,
				Message:  fmt.Sprintf("relationship %q redeclared for entity %q", r.Name, le.Name),
			}
		}
		e.relationships[r.Name] = r
		e.Relationships = append(e.Relationships, r)
	}
	return e, nil
}

// newRelationship validates and converts one declaration end.
func newRelationship(entity string, rd *rel.Descriptor) (*Relationship, error) {
	fail := func(msg string) (*Relationship, error) {
		return nil, &SchemaError{Entity: entity, Property: rd.Name, Message: msg}
	}
	switch {
	case rd.Name == "":
		return fail("relationship name cannot be empty")
	case rd.Type == "":
		return fail("target entity cannot be empty")
	case rd.Rel == rel.M2O && rd.RefName != "":
		return fail("many-to-one end cannot be inverse (mappedBy belongs on the collection side)")
	case rd.RefName != "" && rd.Field != "":
		return fail("inverse end cannot declare a foreign-key field")
	case rd.Rel.Collection() && rd.Required:
		return fail("collection end cannot be required")
	case rd.Rel.Collection() && rd.Field != "":
		return fail("collection end cannot declare a foreign-key field")
	}
	return &Relationship{
		Entity:   entity,
		Name:     rd.Name,
		Type:     rd.Type,
		Rel:      rd.Rel,
		RefName:  rd.RefName,
		Required: rd.Required,
		Field:    rd.Field,
		Comment:  rd.Comment,
	}, nil
}

// link matches the inverse end r against the owning property it names.
// Matching is by name: the owner lives on a different entity that may have
// been indexed in any order. A missing target entity is treated as external
// and left single-sided silently; a present target without a matching owner
// property is a dangling declaration and produces a warning.
func (s *Schema) link(r *Relationship) {
	target, ok := s.entities[r.Type]
	if !ok {
		return
	}
	owner := target.relationships[r.RefName]
	switch {
	case owner == nil:
		s.warn(r, fmt.Sprintf("mappedBy %q matches no property on entity %q", r.RefName, r.Type))
	case owner.IsInverse():
		s.warn(r, fmt.Sprintf("mappedBy %q names an inverse end, not an owner", r.RefName))
	case owner.Type != r.Entity:
		s.warn(r, fmt.Sprintf("mappedBy %q targets entity %q, not %q", r.RefName, owner.Type, r.Entity))
	case owner.Rel != ownerRel(r.Rel):
		s.warn(r, fmt.Sprintf("mappedBy %q is %s, expected %s", r.RefName, owner.Rel, ownerRel(r.Rel)))
	case owner.InverseName != "" && owner.InverseName != r.Name:
		s.warn(r, fmt.Sprintf("property %q is already mirrored by %q", r.RefName, owner.InverseName))
	default:
		owner.InverseName = r.Name
		r.InverseName = owner.Name
		r.OwnerRequired = owner.Required
		r.OwnerField = owner.Field
	}
}

func (s *Schema) warn(r *Relationship, msg string) {
	s.Warnings = append(s.Warnings, Warning{Entity: r.Entity, Property: r.Name, Message: msg})
}

// ownerRel returns the cardinality the owning end of an inverse end must have.
func ownerRel(r rel.Rel) rel.Rel {
	switch r {
	case rel.O2M:
		return rel.M2O
	case rel.O2O:
		return rel.O2O
	case rel.M2M:
		return rel.M2M
	default:
		return rel.Unk
	}
}

// Entities returns the resolved entities in declaration order.
func (s *Schema) Entities() []*Entity {
	es := make([]*Entity, 0, len(s.names))
	for _, name := range s.names {
		es = append(es, s.entities[name])
	}
	return es
}

// Entity returns the resolved entity with the given name, or nil.
func (s *Schema) Entity(name string) *Entity {
	return s.entities[name]
}

// Relationship returns the resolved end declared as property on entity,
// or nil if either is unknown.
func (s *Schema) Relationship(entity, property string) *Relationship {
	e, ok := s.entities[entity]
	if !ok {
		return nil
	}
	return e.relationships[property]
}

// Lookup returns the resolved end declared as property on entity. Unlike
// Relationship, it reports an unknown entity or property as a NotFoundError.
func (s *Schema) Lookup(entity, property string) (*Relationship, error) {
	e, ok := s.entities[entity]
	if !ok {
		return nil, relink.NewNotFoundError(entity)
	}
	r, ok := e.relationships[property]
	if !ok {
		return nil, relink.NewNotFoundErrorWithProperty(entity, property)
	}
	return r, nil
}

// Relationship returns the resolved end with the given property name, or nil.
func (e *Entity) Relationship(name string) *Relationship {
	return e.relationships[name]
}

// Label returns the label name of the entity (snake_case format).
func (e *Entity) Label() string {
	return inflect.Underscore(e.Name)
}

// Label returns the label name of the relationship end (entity_property format).
func (r *Relationship) Label() string {
	return fmt.Sprintf("%s_%s", inflect.Underscore(r.Entity), inflect.Underscore(r.Name))
}

// M2M indicates if this end is part of a M2M relationship.
func (r *Relationship) M2M() bool { return r.Rel == rel.M2M }

// M2O indicates if this end is a M2O reference.
func (r *Relationship) M2O() bool { return r.Rel == rel.M2O }

// O2M indicates if this end is an O2M collection.
func (r *Relationship) O2M() bool { return r.Rel == rel.O2M }

// O2O indicates if this end is part of an O2O relationship.
func (r *Relationship) O2O() bool { return r.Rel == rel.O2O }

// IsInverse returns if this end was declared with mappedBy.
func (r *Relationship) IsInverse() bool { return r.RefName != "" }

// IsOwner returns if this end holds the authoritative reference: a
// single-valued end without mappedBy.
func (r *Relationship) IsOwner() bool {
	return (r.Rel == rel.M2O || r.Rel == rel.O2O) && !r.IsInverse()
}

// IsCollection returns if this end holds a collection.
func (r *Relationship) IsCollection() bool { return r.Rel.Collection() }

// HasInverse reports if the link pass resolved a mirror property on the
// target entity. Single-sided relationships have no mirror to maintain.
func (r *Relationship) HasInverse() bool { return r.InverseName != "" }

// HasField reports if the relationship mirrors the target's identity into a
// foreign-key scalar.
func (r *Relationship) HasField() bool { return r.Field != "" }
