package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-view/pkg/view"
)

// Paths decodes the "paths" key while keeping mapping order, which a plain
// map[string]any would lose. Accepted forms:
//
//	paths: templates
//
//	paths:
//	  - templates
//	  - mail: templates/mail
//
//	paths:
//	  0: templates
//	  mail: [templates/mail, shared/mail]
type Paths struct {
	view.PathSpec
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	spec, err := decodePathSpec(node)
	if err != nil {
		return err
	}
	p.PathSpec = spec
	return nil
}

// Resolve makes relative roots relative to base.
func (p Paths) Resolve(base string) view.PathSpec {
	if p.IsZero() || base == "" {
		return p.PathSpec
	}

	entries := p.Entries()
	for i, entry := range entries {
		if !filepath.IsAbs(entry.Path) {
			entries[i].Path = filepath.Join(base, entry.Path)
		}
	}
	if p.IsSingle() {
		return view.Single(entries[0].Path)
	}
	return view.Multiple(entries...)
}

func decodePathSpec(node *yaml.Node) (view.PathSpec, error) {
	node = deref(node)

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			return view.Single(node.Value), nil
		}
		return view.PathSpec{}, invalidNode(node)
	case yaml.SequenceNode:
		var entries []view.PathEntry
		for _, item := range node.Content {
			item = deref(item)
			switch {
			case isString(item):
				entries = append(entries, view.Root(item.Value))
			case item.Kind == yaml.MappingNode:
				mapped, err := decodeMapping(item)
				if err != nil {
					return view.PathSpec{}, err
				}
				entries = append(entries, mapped...)
			default:
				return view.PathSpec{}, invalidNode(item)
			}
		}
		return view.Multiple(entries...), nil
	case yaml.MappingNode:
		entries, err := decodeMapping(node)
		if err != nil {
			return view.PathSpec{}, err
		}
		return view.Multiple(entries...), nil
	default:
		return view.PathSpec{}, invalidNode(node)
	}
}

func decodeMapping(node *yaml.Node) ([]view.PathEntry, error) {
	var entries []view.PathEntry
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := deref(node.Content[i]).Value
		value := deref(node.Content[i+1])

		switch {
		case isString(value):
			entries = append(entries, view.EntryForKey(key, value.Value))
		case value.Kind == yaml.SequenceNode:
			for _, item := range value.Content {
				item = deref(item)
				if !isString(item) {
					return nil, invalidNode(item)
				}
				entries = append(entries, view.EntryForKey(key, item.Value))
			}
		default:
			return nil, invalidNode(value)
		}
	}
	return entries, nil
}

// invalidNode decodes node and lets view.ParsePathSpec report it, so the
// error names the Go type the value decodes to.
func invalidNode(node *yaml.Node) error {
	var value any
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("config: decode paths: %w", err)
	}
	if _, err := view.ParsePathSpec(value); err != nil {
		return err
	}
	return &view.InvalidArgumentError{Type: fmt.Sprintf("%T", value)}
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && (node.Kind == yaml.AliasNode || node.Kind == yaml.DocumentNode) {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
			continue
		}
		if len(node.Content) == 0 {
			break
		}
		node = node.Content[0]
	}
	return node
}

func isString(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!str"
}
