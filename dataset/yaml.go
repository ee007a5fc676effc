package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk YAML layout:
//
//	entities:
//	  - name: Superman
//	    type: Hero
//	    attrs:
//	      real_name: Clark Kent
//	      powers: [super strength, flight]
//	relationships:
//	  - {from: Superman, to: Batman, type: ALLY, directed: true}
type yamlFile struct {
	Entities      []yamlEntity       `yaml:"entities"`
	Relationships []yamlRelationship `yaml:"relationships"`
}

type yamlEntity struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Attrs yaml.Node `yaml:"attrs"`
}

type yamlRelationship struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Type     string `yaml:"type"`
	Directed bool   `yaml:"directed"`
}

// LoadYAML reads and validates a dataset from a YAML file. Attribute order
// in the file is preserved, which keeps fact derivation deterministic.
func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses and validates dataset YAML.
func ParseYAML(data []byte) (*Dataset, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dataset yaml: %w", err)
	}

	d := &Dataset{}
	for _, ye := range f.Entities {
		attrs, err := attrsFromNode(&ye.Attrs)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", ye.Name, err)
		}
		d.Entities = append(d.Entities, Entity{
			Name:  ye.Name,
			Type:  ye.Type,
			Attrs: attrs,
		})
	}
	for _, yr := range f.Relationships {
		d.Relationships = append(d.Relationships, Relationship(yr))
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// attrsFromNode decodes a YAML mapping node into ordered attributes. A plain
// map[string]any would lose declaration order, so the node is walked directly:
// Content holds alternating key/value nodes.
func attrsFromNode(n *yaml.Node) ([]Attribute, error) {
	if n.Kind == 0 || n.IsZero() {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("attrs must be a mapping, got %s", n.Tag)
	}

	var attrs []Attribute
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			attrs = append(attrs, Attribute{Key: key.Value, Value: val.Value})
		case yaml.SequenceNode:
			items := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				items = append(items, item.Value)
			}
			attrs = append(attrs, Attribute{Key: key.Value, Values: items})
		default:
			return nil, fmt.Errorf("attr %q: unsupported value kind", key.Value)
		}
	}
	return attrs, nil
}
