package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the decoded form of a generated PURL configuration file.
type Document struct {
	Idspace      string              `yaml:"idspace"`
	BaseURL      string              `yaml:"base_url"`
	Products     []map[string]string `yaml:"products"`
	TermBrowser  string              `yaml:"term_browser"`
	ExampleTerms []string            `yaml:"example_terms"`
	Entries      []DocumentEntry     `yaml:"entries"`
}

// DocumentEntry is one item of the entries list. Exactly one of the
// "exact" or "prefix" keys is expected; Kind is 0 when neither appears.
type DocumentEntry struct {
	Kind        RuleKind
	ID          string
	Replacement string
	// Keys lists every key seen in the mapping, in document order.
	Keys []string
	Line int
}

// UnmarshalYAML decodes an entry keeping track of which rule keys appeared,
// so "- exact:" with an empty identifier is distinguished from a missing key.
func (e *DocumentEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entry must be a mapping", node.Line)
	}
	e.Line = node.Line
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		e.Keys = append(e.Keys, key.Value)
		switch key.Value {
		case "exact", "prefix":
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: %s must be a scalar", value.Line, key.Value)
			}
			if e.Kind != 0 {
				return fmt.Errorf("line %d: entry has both exact and prefix", key.Line)
			}
			e.Kind = RuleKindExact
			if key.Value == "prefix" {
				e.Kind = RuleKindPrefix
			}
			if value.Tag != "!!null" {
				e.ID = value.Value
			}
		case "replacement":
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: replacement must be a scalar", value.Line)
			}
			if value.Tag != "!!null" {
				e.Replacement = value.Value
			}
		}
	}
	return nil
}
