// Package dataset holds the immutable entity/relationship reference data the
// retrievers operate on. A dataset is loaded once at startup (from YAML, XLSX,
// or the built-in demo graph) and validated before any component sees it.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDanglingRelationship is returned by Validate when a relationship
	// endpoint does not name a loaded entity.
	ErrDanglingRelationship = errors.New("dataset: relationship references unknown entity")

	// ErrDuplicateEntity is returned by Validate when two entities share a
	// name (names are case-insensitive identifiers).
	ErrDuplicateEntity = errors.New("dataset: duplicate entity name")

	// ErrUnsupportedFormat is returned for file extensions no loader handles.
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
)

// Attribute is a single named value on an entity. Either Value (scalar) or
// Values (list) is set, never both. Attributes keep their declaration order
// so fact derivation is deterministic.
type Attribute struct {
	Key    string   `json:"key"`
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// IsList reports whether the attribute holds a list value.
func (a Attribute) IsList() bool { return a.Values != nil }

// String renders the attribute value for display and serialization.
func (a Attribute) String() string {
	if a.IsList() {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}

// Entity is a named domain object with a type tag and ordered attributes.
type Entity struct {
	Name  string      `json:"name"`
	Type  string      `json:"type,omitempty"`
	Attrs []Attribute `json:"attrs,omitempty"`
}

// Attr returns the value of the named attribute, or "" if absent.
func (e Entity) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.String()
		}
	}
	return ""
}

// Relationship is a typed connection between two entities. Directed controls
// only how the edge is rendered; traversal follows edges in both directions.
type Relationship struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Type     string `json:"type"`
	Directed bool   `json:"directed"`
}

// Dataset is the full reference graph: entities and relationships in their
// original load order. It is never mutated after Validate succeeds.
type Dataset struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Validate checks referential integrity: unique entity names and no
// relationship endpoint naming an unknown entity. It is called by every
// loader; a dataset that fails validation must not be used.
func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.Entities))
	for _, e := range d.Entities {
		key := strings.ToLower(e.Name)
		if key == "" {
			return fmt.Errorf("%w: entity with empty name", ErrDuplicateEntity)
		}
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateEntity, e.Name)
		}
		seen[key] = true
	}
	for _, r := range d.Relationships {
		if !seen[strings.ToLower(r.From)] {
			return fmt.Errorf("%w: %q -[%s]-> %q (from)", ErrDanglingRelationship, r.From, r.Type, r.To)
		}
		if !seen[strings.ToLower(r.To)] {
			return fmt.Errorf("%w: %q -[%s]-> %q (to)", ErrDanglingRelationship, r.From, r.Type, r.To)
		}
	}
	return nil
}

// EntityNames returns all entity names in load order.
func (d *Dataset) EntityNames() []string {
	names := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		names[i] = e.Name
	}
	return names
}

// Entity looks up an entity by name, case-insensitively.
func (d *Dataset) Entity(name string) (Entity, bool) {
	for _, e := range d.Entities {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entity{}, false
}
