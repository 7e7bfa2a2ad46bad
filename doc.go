// Package relink keeps both ends of bidirectional entity relationships
// consistent in memory.
//
// A schema of per-entity relationship declarations (see schema/rel and load)
// is resolved once by the resolve package into an immutable, name-keyed
// lookup that links owner sides to their inverse mirrors. The graph package
// then mutates live entity instances through that resolved schema: setting a
// reference updates the old and new inverse collections and the mirrored
// foreign-key scalar in one step, and a validator reports any drift between
// foreign keys and the references they mirror.
//
// The root package holds the error types shared by the sub-packages and the
// Cache interface used for storing resolved-schema snapshots.
package relink
