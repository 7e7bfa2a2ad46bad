// Package load provides the serializable form of entity relationship
// declarations consumed by the resolve package. Declarations are produced by
// an external metadata extractor (attributes, config files, or the code-first
// builders in schema/rel) and can be marshaled to JSON or read from YAML
// declaration files.
package load

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/syssam/relink/schema/rel"
)

// Entity represents one entity and its declared relationship ends.
type Entity struct {
	Name          string          `json:"name" yaml:"name"`
	Relationships []*Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Relationship represents a rel.Descriptor that was loaded from a
// declaration file or marshaled from a builder.
type Relationship struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Rel      string `json:"rel" yaml:"rel"`
	Ref      string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// document is the top-level shape of a declaration file.
type document struct {
	Entities []*Entity `json:"entities" yaml:"entities"`
}

// NewRelationship creates a loaded relationship from a builder descriptor.
// It returns an error if the descriptor contains an error.
func NewRelationship(rd *rel.Descriptor) (*Relationship, error) {
	if rd.Err != nil {
		return nil, fmt.Errorf("relationship %q: %w", rd.Name, rd.Err)
	}
	switch {
	case rd.Name == "":
		return nil, fmt.Errorf("relationship name cannot be empty")
	case rd.Type == "":
		return nil, fmt.Errorf("relationship %q: target entity cannot be empty", rd.Name)
	case rd.Rel == rel.Unk:
		return nil, fmt.Errorf("relationship %q: unknown cardinality", rd.Name)
	}
	return &Relationship{
		Name:     rd.Name,
		Type:     rd.Type,
		Rel:      rd.Rel.String(),
		Ref:      rd.RefName,
		Required: rd.Required,
		Field:    rd.Field,
		Comment:  rd.Comment,
	}, nil
}

// NewEntity creates a loaded entity from builder descriptors.
func NewEntity(name string, descriptors ...*rel.Descriptor) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("entity name cannot be empty")
	}
	e := &Entity{Name: name}
	for _, rd := range descriptors {
		r, err := NewRelationship(rd)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
		e.Relationships = append(e.Relationships, r)
	}
	return e, nil
}

// Descriptor converts the loaded relationship back to its typed form.
func (r *Relationship) Descriptor() (*rel.Descriptor, error) {
	c, err := rel.Parse(r.Rel)
	if err != nil {
		return nil, fmt.Errorf("relationship %q: %w", r.Name, err)
	}
	return &rel.Descriptor{
		Name:     r.Name,
		Type:     r.Type,
		Rel:      c,
		RefName:  r.Ref,
		Required: r.Required,
		Field:    r.Field,
		Comment:  r.Comment,
	}, nil
}

// MarshalEntities encodes entity declarations as a JSON declaration document
// that can be decoded back with UnmarshalEntities.
func MarshalEntities(entities []*Entity) ([]byte, error) {
	return json.Marshal(document{Entities: entities})
}

// UnmarshalEntities decodes a JSON declaration document.
func UnmarshalEntities(buf []byte) ([]*Entity, error) {
	doc := document{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	return doc.Entities, nil
}

// UnmarshalEntitiesYAML decodes a YAML declaration document:
//
//	entities:
//	  - name: Customer
//	    relationships:
//	      - {name: orders, type: Order, rel: oneToMany, ref: customer}
//	  - name: Order
//	    relationships:
//	      - {name: customer, type: Customer, rel: manyToOne, field: customerId}
func UnmarshalEntitiesYAML(buf []byte) ([]*Entity, error) {
	doc := document{}
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	return doc.Entities, nil
}
