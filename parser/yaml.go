package parser

import (
	"errors"
	"fmt"

	"legal-info/models"

	"gopkg.in/yaml.v3"
)

// MaxYAMLAliasNodes begrenzt die Knoten, die beim Auflösen von Aliasen entstehen dürfen.
const MaxYAMLAliasNodes = 10000

var ErrYAMLAliasBudget = errors.New("yaml alias expansion exceeds node budget")

// DecodeYAML dekodiert ein YAML-Dokument über yaml.Node, damit die Key-Reihenfolge erhalten bleibt.
// Aliase werden aufgelöst, aber nur bis MaxYAMLAliasNodes Knoten.
func DecodeYAML(data []byte) (models.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return models.Null, nil
	}
	d := &yamlDecoder{budget: MaxYAMLAliasNodes}
	return d.fromNode(doc.Content[0], false)
}

type yamlDecoder struct {
	budget int
}

func (d *yamlDecoder) fromNode(n *yaml.Node, inAlias bool) (models.Record, error) {
	if inAlias {
		d.budget--
		if d.budget < 0 {
			return nil, fmt.Errorf("parse yaml: %w (%d)", ErrYAMLAliasBudget, MaxYAMLAliasNodes)
		}
	}
	switch n.Kind {
	case yaml.AliasNode:
		return d.fromNode(n.Alias, true)
	case yaml.MappingNode:
		m := models.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := d.fromNode(n.Content[i+1], inAlias)
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := models.NewSequence()
		for _, c := range n.Content {
			v, err := d.fromNode(c, inAlias)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("parse yaml scalar at line %d: %w", n.Line, err)
		}
		return models.Scalar{Value: v}, nil
	}
	return nil, fmt.Errorf("parse yaml: unexpected node kind %d at line %d", n.Kind, n.Line)
}
