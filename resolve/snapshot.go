package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/relink"
	"github.com/syssam/relink/schema/rel"
)

// ErrSnapshotNotFound is returned by Load when the cache has no snapshot
// under the requested key.
var ErrSnapshotNotFound = errors.New("resolve: schema snapshot not found")

// Snapshot is the serializable form of a resolved schema. Build tooling
// stores it through a relink.Cache so later runs can restore the schema
// without re-reading and re-resolving the declarations.
type Snapshot struct {
	Entities []EntitySnapshot `msgpack:"entities"`
	Warnings []Warning        `msgpack:"warnings,omitempty"`
}

// EntitySnapshot represents an entity in the schema snapshot.
type EntitySnapshot struct {
	Name          string                 `msgpack:"name"`
	Relationships []RelationshipSnapshot `msgpack:"relationships,omitempty"`
}

// RelationshipSnapshot represents a resolved relationship end in the
// schema snapshot.
type RelationshipSnapshot struct {
	Name          string `msgpack:"name"`
	Type          string `msgpack:"type"`
	Rel           string `msgpack:"rel"`
	Ref           string `msgpack:"ref,omitempty"`
	Required      bool   `msgpack:"required,omitempty"`
	Field         string `msgpack:"field,omitempty"`
	Comment       string `msgpack:"comment,omitempty"`
	InverseName   string `msgpack:"inverse_name,omitempty"`
	OwnerRequired bool   `msgpack:"owner_required,omitempty"`
	OwnerField    string `msgpack:"owner_field,omitempty"`
}

// Snapshot returns the serializable form of the schema.
func (s *Schema) Snapshot() *Snapshot {
	snap := &Snapshot{Warnings: s.Warnings}
	for _, e := range s.Entities() {
		es := EntitySnapshot{Name: e.Name}
		for _, r := range e.Relationships {
			es.Relationships = append(es.Relationships, RelationshipSnapshot{
				Name:          r.Name,
				Type:          r.Type,
				Rel:           r.Rel.String(),
				Ref:           r.RefName,
				Required:      r.Required,
				Field:         r.Field,
				Comment:       r.Comment,
				InverseName:   r.InverseName,
				OwnerRequired: r.OwnerRequired,
				OwnerField:    r.OwnerField,
			})
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// RestoreSnapshot rebuilds a resolved schema from its snapshot. The restored
// schema is fully linked; no resolution pass runs again.
func RestoreSnapshot(snap *Snapshot) (*Schema, error) {
	s := &Schema{
		entities: make(map[string]*Entity, len(snap.Entities)),
		Warnings: snap.Warnings,
	}
	for _, es := range snap.Entities {
		e := &Entity{
			Name:          es.Name,
			relationships: make(map[string]*Relationship, len(es.Relationships)),
		}
		for _, rs := range es.Relationships {
			c, err := rel.Parse(rs.Rel)
			if err != nil {
				return nil, fmt.Errorf("resolve: snapshot entity %q: %w", es.Name, err)
			}
			r := &Relationship{
				Entity:        es.Name,
				Name:          rs.Name,
				Type:          rs.Type,
				Rel:           c,
				RefName:       rs.Ref,
				Required:      rs.Required,
				Field:         rs.Field,
				Comment:       rs.Comment,
				InverseName:   rs.InverseName,
				OwnerRequired: rs.OwnerRequired,
				OwnerField:    rs.OwnerField,
			}
			e.relationships[r.Name] = r
			e.Relationships = append(e.Relationships, r)
		}
		s.entities[e.Name] = e
		s.names = append(s.names, e.Name)
	}
	return s, nil
}

// EncodeSnapshot encodes the schema snapshot with msgpack.
func (s *Schema) EncodeSnapshot() ([]byte, error) {
	return msgpack.Marshal(s.Snapshot())
}

// DecodeSnapshot decodes a msgpack snapshot and restores the schema.
func DecodeSnapshot(buf []byte) (*Schema, error) {
	snap := &Snapshot{}
	if err := msgpack.Unmarshal(buf, snap); err != nil {
		return nil, fmt.Errorf("resolve: decoding snapshot: %w", err)
	}
	return RestoreSnapshot(snap)
}

// Store encodes the schema and stores it in the cache under the given key.
// A zero ttl stores the snapshot without expiry.
func (s *Schema) Store(ctx context.Context, c relink.Cache, key string, ttl time.Duration) error {
	buf, err := s.EncodeSnapshot()
	if err != nil {
		return err
	}
	return c.Set(ctx, key, buf, ttl)
}

// Load restores a schema previously stored in the cache under the given key.
// It returns ErrSnapshotNotFound if the key is absent.
func Load(ctx context.Context, c relink.Cache, key string) (*Schema, error) {
	buf, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, key)
	}
	return DecodeSnapshot(buf)
}
