package s1_universe

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// List is the configured universe read from UNIVERSE_FILE
//
// Two YAML shapes are accepted:
//
//	- NVDA
//	- AAPL
//
// or
//
//	symbols: [NVDA, AAPL]
//	exclude: [SPY]
type List struct {
	Symbols []string `yaml:"symbols"`
	Exclude []string `yaml:"exclude"`
}

// LoadList reads a universe file. An empty path yields an empty list.
func LoadList(path string) (*List, error) {
	if path == "" {
		return &List{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	return ParseList(data)
}

// ParseList decodes universe YAML in either accepted shape
func ParseList(data []byte) (*List, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}

	list := &List{}
	if len(node.Content) == 0 {
		return list, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list.Symbols); err != nil {
			return nil, fmt.Errorf("decode universe list: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(list); err != nil {
			return nil, fmt.Errorf("decode universe mapping: %w", err)
		}
	default:
		return nil, errors.New("universe file must be a list or a mapping with symbols")
	}

	return list, nil
}
