package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// loadData decodes a context file chosen by extension. An empty path yields
// an empty context.
func loadData(path string) (map[string]any, error) {
	data := map[string]any{}
	if path == "" {
		return data, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	case ".toml":
		err = toml.Unmarshal(raw, &data)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode data file %s: %w", path, err)
	}
	return data, nil
}

// applySets merges key=value pairs into data. Dotted keys create nested maps.
func applySets(data map[string]any, sets []string) error {
	for _, set := range sets {
		key, value, found := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return fmt.Errorf("invalid --set %q, want key=value", set)
		}

		parts := strings.Split(key, ".")
		current := data
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = value
	}
	return nil
}
