// Package graph mutates live entity instances through a resolved
// relationship schema, keeping both ends of every bidirectional
// relationship and the mirrored foreign-key scalars consistent.
//
// # Nodes
//
// The engine never allocates entities. Callers expose their records through
// the Node interface: an addressable instance with an identity, reference
// and collection properties, and scalar properties for foreign keys. The
// Record type is a ready-made map-backed implementation.
//
// # Engine
//
// An Engine wraps an immutable resolve.Schema and dispatches by relationship
// descriptor:
//
//	eng := graph.New(schema)
//
//	// Owner-side reference: updates order.customer, the customerId
//	// foreign key, and both the old and the new customer's orders
//	// collection in one step.
//	err := eng.SetRef(order, "customer", customer)
//
//	// Inverse-side collection: set-like insert plus mirror reference
//	// and foreign-key maintenance on the item.
//	err = eng.Add(customer, "orders", order)
//	err = eng.Remove(customer, "orders", order)
//
// All operations are idempotent: repeating a call with the same arguments
// leaves the entity graph unchanged. Removing an item whose owning reference
// was declared required leaves the reference in place and clears only the
// foreign key; a required slot cannot represent "no owner".
//
// # Validation
//
// Validate reports every divergence between a foreign-key scalar and the
// reference it mirrors, without failing fast. Graphs mutated only through
// the engine always validate clean; violations indicate direct scalar writes
// that bypassed the operations.
//
// # Concurrency
//
// The engine is synchronous and holds no locks. The resolved schema may be
// shared freely; mutations to overlapping graph regions must be serialized
// by the caller.
package graph
