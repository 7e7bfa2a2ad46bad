package rel

import "fmt"

// Rel is the cardinality of a relationship end.
type Rel int

// Relationship cardinalities.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one / has one.
	O2M            // One to many / has many.
	M2O            // Many to one (inverse perspective for O2M).
	M2M            // Many to many.
)

// String returns the cardinality name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2O:
		s = "O2O"
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	}
	return s
}

// Parse returns the cardinality named by s. It accepts both the short form
// ("M2O") and the long form ("manyToOne") used in declaration files.
func Parse(s string) (Rel, error) {
	switch s {
	case "O2O", "oneToOne", "OneToOne":
		return O2O, nil
	case "O2M", "oneToMany", "OneToMany":
		return O2M, nil
	case "M2O", "manyToOne", "ManyToOne":
		return M2O, nil
	case "M2M", "manyToMany", "ManyToMany":
		return M2M, nil
	default:
		return Unk, fmt.Errorf("rel: unknown cardinality %q", s)
	}
}

// Collection reports if ends of this cardinality hold a collection
// rather than a single reference.
func (r Rel) Collection() bool {
	return r == O2M || r == M2M
}

// Descriptor holds one declared relationship end on one entity. Descriptors
// are produced by the builders in this package or decoded from declaration
// files by the load package, and consumed by resolve.Resolve.
type Descriptor struct {
	Name     string // Property name on the declaring entity.
	Type     string // Target entity name.
	Rel      Rel    // Cardinality of this end.
	RefName  string // Property on the target entity that owns the relationship (mappedBy).
	Required bool   // Single-valued reference that may not be empty.
	Field    string // Foreign-key scalar property on the owner entity.
	Comment  string // Optional comment.
	Err      error  // Deferred builder error, surfaced on load.
}

// IsInverse reports if this end mirrors an owning property on the target
// entity rather than owning the relationship itself.
func (d *Descriptor) IsInverse() bool { return d.RefName != "" }

// IsCollection reports if this end holds a collection.
func (d *Descriptor) IsCollection() bool { return d.Rel.Collection() }

// DefaultField returns the conventional foreign-key property name for a
// reference property: the property name with an "Id" suffix.
func DefaultField(name string) string { return name + "Id" }

// ReferenceBuilder builds single-valued relationship ends (M2O, O2O).
type ReferenceBuilder struct {
	desc *Descriptor
}

// ManyToOne returns a builder for a many-to-one reference from the declaring
// entity to the target entity. Many-to-one ends always own the relationship.
//
//	rel.ManyToOne("customer", "Customer").
//		Required().
//		Field(rel.DefaultField("customer"))
func ManyToOne(name, target string) *ReferenceBuilder {
	return &ReferenceBuilder{desc: &Descriptor{Name: name, Type: target, Rel: M2O}}
}

// OneToOne returns a builder for a one-to-one reference. The end owns the
// relationship unless Ref marks it as the mirror of the target's property.
func OneToOne(name, target string) *ReferenceBuilder {
	return &ReferenceBuilder{desc: &Descriptor{Name: name, Type: target, Rel: O2O}}
}

// Required marks the reference as non-nullable. The engine will not clear a
// required reference when its inverse collection drops the owner.
func (b *ReferenceBuilder) Required() *ReferenceBuilder {
	b.desc.Required = true
	return b
}

// Field names the foreign-key scalar property on the declaring entity that
// mirrors the target's identity. Only the owning side carries a foreign key.
func (b *ReferenceBuilder) Field(name string) *ReferenceBuilder {
	if b.desc.RefName != "" && b.desc.Err == nil {
		b.desc.Err = fmt.Errorf("rel: foreign-key field on inverse end %q", b.desc.Name)
	}
	b.desc.Field = name
	return b
}

// Ref marks this end as the inverse of the named property on the target
// entity. Valid for one-to-one ends only; a many-to-one end always owns the
// relationship.
func (b *ReferenceBuilder) Ref(name string) *ReferenceBuilder {
	switch {
	case b.desc.Rel == M2O && b.desc.Err == nil:
		b.desc.Err = fmt.Errorf("rel: Ref on many-to-one end %q", b.desc.Name)
	case b.desc.Field != "" && b.desc.Err == nil:
		b.desc.Err = fmt.Errorf("rel: foreign-key field on inverse end %q", b.desc.Name)
	}
	b.desc.RefName = name
	return b
}

// Comment sets the comment of the relationship end.
func (b *ReferenceBuilder) Comment(c string) *ReferenceBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the built descriptor.
func (b *ReferenceBuilder) Descriptor() *Descriptor { return b.desc }

// CollectionBuilder builds collection relationship ends (O2M, M2M).
type CollectionBuilder struct {
	desc *Descriptor
}

// OneToMany returns a builder for a one-to-many collection mirroring a
// many-to-one property on the target entity.
//
//	rel.OneToMany("orders", "Order").
//		Ref("customer")
func OneToMany(name, target string) *CollectionBuilder {
	return &CollectionBuilder{desc: &Descriptor{Name: name, Type: target, Rel: O2M}}
}

// ManyToMany returns a builder for a many-to-many collection. The end is the
// inverse side when Ref is set, the owning side otherwise.
func ManyToMany(name, target string) *CollectionBuilder {
	return &CollectionBuilder{desc: &Descriptor{Name: name, Type: target, Rel: M2M}}
}

// Ref marks this collection as the inverse of the named owning property on
// the target entity.
func (b *CollectionBuilder) Ref(name string) *CollectionBuilder {
	b.desc.RefName = name
	return b
}

// Comment sets the comment of the relationship end.
func (b *CollectionBuilder) Comment(c string) *CollectionBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the built descriptor.
func (b *CollectionBuilder) Descriptor() *Descriptor { return b.desc }
