// Package rel provides fluent builders for declaring entity relationship ends.
//
// Every relationship end is declared on the entity it belongs to. The owning
// side holds the authoritative reference and an optional foreign-key scalar;
// the inverse side names the owning property with Ref (the mappedBy link):
//
//	// Order declarations
//	rel.ManyToOne("customer", "Customer").
//	    Required().
//	    Field(rel.DefaultField("customer"))
//
//	// Customer declarations
//	rel.OneToMany("orders", "Order").
//	    Ref("customer")
//
// # Cardinality
//
//   - rel.ManyToOne: single reference, always the owning side
//   - rel.OneToOne: single reference, inverse when Ref is set
//   - rel.OneToMany: collection, inverse when Ref is set
//   - rel.ManyToMany: collection on both ends, inverse when Ref is set
//
// # Foreign keys
//
// Field names a scalar property on the owner mirroring the target's
// identity. By convention it is the property name with an "Id" suffix
// (rel.DefaultField). Omitting it disables foreign-key mirroring for the
// relationship without affecting reference or collection mirroring.
//
// Builders never fail eagerly: invalid combinations (Ref on a many-to-one
// end, Field on an inverse end) are recorded on the Descriptor and surfaced
// when the declarations are loaded.
package rel
