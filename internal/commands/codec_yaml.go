package commands

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func decodeYAML(content []byte) (*Table, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return NewTable(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewTable(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of categories", root.Line)
	}

	table := NewTable()
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, catNode := root.Content[i], root.Content[i+1]
		category := keyNode.Value
		if catNode.Kind != yaml.MappingNode {
			if isNullNode(catNode) {
				table.resetCategory(category)
				continue
			}
			return nil, fmt.Errorf("line %d: category %q must be a mapping", catNode.Line, category)
		}
		table.resetCategory(category)

		for j := 0; j+1 < len(catNode.Content); j += 2 {
			phraseNode, entryNode := catNode.Content[j], catNode.Content[j+1]
			entry, err := yamlEntry(category, phraseNode.Value, entryNode)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", entryNode.Line, err)
			}
			table.Add(entry)
		}
	}
	return table, nil
}

func yamlEntry(category, phrase string, node *yaml.Node) (Entry, error) {
	if strings.TrimSpace(phrase) == "" {
		return Entry{}, fmt.Errorf("category %q contains an empty phrase", category)
	}
	if node.Kind != yaml.MappingNode {
		return Entry{}, fmt.Errorf("command %q must be a mapping", phrase)
	}

	var raw struct {
		Action      string      `yaml:"action"`
		Params      []yaml.Node `yaml:"params"`
		Description string      `yaml:"description"`
	}
	if err := node.Decode(&raw); err != nil {
		return Entry{}, fmt.Errorf("command %q: %w", phrase, err)
	}
	if strings.TrimSpace(raw.Action) == "" {
		return Entry{}, fmt.Errorf("command %q has no action", phrase)
	}

	params := make([]string, 0, len(raw.Params))
	for i, p := range raw.Params {
		if p.Kind != yaml.ScalarNode || p.Tag == "!!null" {
			return Entry{}, fmt.Errorf("command %q param %d: expected a scalar", phrase, i)
		}
		params = append(params, p.Value)
	}

	return Entry{
		Category:    category,
		Phrase:      phrase,
		Action:      strings.TrimSpace(raw.Action),
		Params:      params,
		Description: raw.Description,
	}, nil
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Value == "")
}

func encodeYAML(table *Table) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range table.Categories() {
		catNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range cat.Entries {
			params := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, p := range e.Params {
				params.Content = append(params.Content, stringNode(p))
			}
			entryNode := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
				stringNode("action"), stringNode(e.Action),
				stringNode("params"), params,
				stringNode("description"), stringNode(e.Description),
			}}
			catNode.Content = append(catNode.Content, stringNode(e.Phrase), entryNode)
		}
		root.Content = append(root.Content, stringNode(cat.Name), catNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
