package reconcile

import (
	_ "embed"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/prowebkong/woosync/pkg/errors"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// Node is one declarative category. It carries its leaf display name and
// an ordered list of children; the list form keeps the depth-first walk
// deterministic. A Node is a pure specification and never holds remote ids.
type Node struct {
	Name     string `yaml:"name"`
	Children []Node `yaml:"children,omitempty"`
}

// DefaultTaxonomy returns the embedded category hierarchy.
func DefaultTaxonomy() ([]Node, error) {
	return ParseTaxonomy(defaultTaxonomyYAML)
}

// LoadTaxonomy reads a category hierarchy from a YAML file.
func LoadTaxonomy(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	nodes, err := ParseTaxonomy(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return nodes, nil
}

// ParseTaxonomy decodes a YAML category hierarchy.
func ParseTaxonomy(data []byte) ([]Node, error) {
	var nodes []Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
