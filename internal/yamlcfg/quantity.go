package yamlcfg

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vk/cyclegrid/internal/units"
)

// textKeys hold free text and are never treated as quantities.
var textKeys = map[string]bool{
	"name":         true,
	"type":         true,
	"cycle":        true,
	"arrangement":  true,
	"connect_to":   true,
	"discharge_to": true,
}

const floatTag = "!!float"

// rewriteQuantities walks the document and replaces every quoted or plain
// string scalar of the form "<number> <unit>" with its SI float value. key is
// the mapping key the node is the value of. It returns the number of scalars
// rewritten.
func rewriteQuantities(n *yaml.Node, key string) (int, error) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		total := 0
		for _, c := range n.Content {
			k, err := rewriteQuantities(c, key)
			if err != nil {
				return 0, err
			}
			total += k
		}
		return total, nil

	case yaml.MappingNode:
		total := 0
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := rewriteQuantities(n.Content[i+1], n.Content[i].Value)
			if err != nil {
				return 0, err
			}
			total += k
		}
		return total, nil

	case yaml.ScalarNode:
		if textKeys[key] || n.ShortTag() != "!!str" {
			return 0, nil
		}
		v, ok, err := units.ParseQuantity(n.Value)
		if err != nil {
			return 0, fmt.Errorf("line %d: %s: %w", n.Line, key, err)
		}
		if !ok {
			return 0, nil
		}
		n.Tag = floatTag
		n.Style = 0
		n.Value = strconv.FormatFloat(v, 'g', -1, 64)
		return 1, nil
	}
	return 0, nil
}
