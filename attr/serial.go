package attr

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// SaveAttributes dumps a target's file-mode attribute values. Values equal
// to their declared default are skipped to keep documents compact.
func SaveAttributes(t Target) (map[string]yaml.Node, error) {
	if t == nil || t.Attributes() == nil {
		return nil, nil
	}
	var out map[string]yaml.Node
	for _, info := range t.Attributes().Infos() {
		if info.Mode&ModeFile == 0 {
			continue
		}
		v, ok := t.Attribute(info.Name)
		if !ok || v == info.Default {
			continue
		}
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("attr: save %q: %w", info.Name, err)
		}
		if out == nil {
			out = make(map[string]yaml.Node)
		}
		out[info.Name] = node
	}
	return out, nil
}

// LoadAttributes restores attribute values from a saved document section.
// Names without a matching declaration are skipped with a log line, the way
// a document written by a newer object revision should degrade.
func LoadAttributes(t Target, values map[string]yaml.Node) error {
	if t == nil || len(values) == 0 {
		return nil
	}
	registry := t.Attributes()
	if registry == nil {
		return fmt.Errorf("attr: load: object has no attributes")
	}
	for name, node := range values {
		info := registry.Find(name)
		if info == nil {
			log.Printf("Attr: load skipping undeclared attribute %q", name)
			continue
		}
		v, err := ParseNode(info.Type, &node)
		if err != nil {
			return fmt.Errorf("attr: load %q: %w", name, err)
		}
		if err := t.SetAttribute(name, v); err != nil {
			return fmt.Errorf("attr: load %q: %w", name, err)
		}
	}
	return nil
}
