package question

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var builtin []byte

type document struct {
	Questions []Question `yaml:"questions"`
}

// Load parses the built-in question set.
func Load() (Set, error) {
	return Parse(builtin)
}

// Parse decodes a YAML question document and validates every entry.
func Parse(data []byte) (Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, fmt.Errorf("decode questions: %w", err)
	}
	set, err := NewSet(doc.Questions)
	if err != nil {
		return Set{}, fmt.Errorf("load questions: %w", err)
	}
	return set, nil
}
