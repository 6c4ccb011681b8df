package view

import (
	"sort"
	"strconv"
	"strings"
)

// PathEntry binds a template root to a namespace. An empty Namespace selects
// the main namespace.
type PathEntry struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Path      string `json:"path" yaml:"path"`
}

// Root returns an entry for the main namespace.
func Root(path string) PathEntry {
	return PathEntry{Path: path}
}

// Namespaced returns an entry registered under namespace.
func Namespaced(namespace, path string) PathEntry {
	return PathEntry{Namespace: strings.TrimSpace(namespace), Path: path}
}

// PathSpec describes the template roots a renderer searches. It is either a
// single main-namespace root or an ordered list of entries; the zero value is
// neither and is rejected by constructors.
type PathSpec struct {
	entries  []PathEntry
	multiple bool
	set      bool
}

// Single returns a PathSpec with one main-namespace root.
func Single(path string) PathSpec {
	return PathSpec{entries: []PathEntry{Root(path)}, set: true}
}

// Multiple returns a PathSpec registering entries in order. Several entries
// may share a namespace.
func Multiple(entries ...PathEntry) PathSpec {
	out := make([]PathEntry, len(entries))
	copy(out, entries)
	return PathSpec{entries: out, multiple: true, set: true}
}

// IsZero reports whether the PathSpec was never constructed.
func (p PathSpec) IsZero() bool {
	return !p.set
}

// IsSingle reports whether the PathSpec was built with Single.
func (p PathSpec) IsSingle() bool {
	return p.set && !p.multiple
}

// Entries returns a copy of the registered entries in order.
func (p PathSpec) Entries() []PathEntry {
	out := make([]PathEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Validate returns an InvalidArgumentError for the zero PathSpec.
func (p PathSpec) Validate() error {
	if p.IsZero() {
		return newInvalidArgument(nil)
	}
	return nil
}

// ParsePathSpec converts decoded, loosely typed input into a PathSpec.
//
// Accepted shapes:
//   - string: a single main-namespace root
//   - []string, []any: roots in order; map elements contribute namespaced entries
//   - map[string]string, map[string]any: numeric keys are main-namespace roots,
//     other keys are namespaces; values may be a path or a list of paths
//   - PathEntry, []PathEntry, PathSpec
//
// Go maps carry no order, so map keys are applied numeric keys first (in
// numeric order) and then labels sorted. Callers that need a precise order
// across namespaces should pass a slice.
func ParsePathSpec(value any) (PathSpec, error) {
	switch v := value.(type) {
	case string:
		return Single(v), nil
	case PathSpec:
		if err := v.Validate(); err != nil {
			return PathSpec{}, err
		}
		return v, nil
	case PathEntry:
		return Multiple(v), nil
	case []PathEntry:
		return Multiple(v...), nil
	case []string:
		entries := make([]PathEntry, 0, len(v))
		for _, path := range v {
			entries = append(entries, Root(path))
		}
		return Multiple(entries...), nil
	case []any:
		var entries []PathEntry
		for _, item := range v {
			parsed, err := parseListItem(item)
			if err != nil {
				return PathSpec{}, err
			}
			entries = append(entries, parsed...)
		}
		return Multiple(entries...), nil
	case map[string]string:
		generic := make(map[string]any, len(v))
		for key, path := range v {
			generic[key] = path
		}
		entries, err := parseMapping(generic)
		if err != nil {
			return PathSpec{}, err
		}
		return Multiple(entries...), nil
	case map[string]any:
		entries, err := parseMapping(v)
		if err != nil {
			return PathSpec{}, err
		}
		return Multiple(entries...), nil
	default:
		return PathSpec{}, newInvalidArgument(value)
	}
}

// EntryForKey maps a mapping key to an entry: numeric keys (positional
// entries) select the main namespace, anything else is a namespace label.
func EntryForKey(key, path string) PathEntry {
	if IsPositionalKey(key) {
		return Root(path)
	}
	return Namespaced(key, path)
}

// IsPositionalKey reports whether key is a numeric (unlabelled) mapping key.
func IsPositionalKey(key string) bool {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return true
	}
	_, err := strconv.Atoi(trimmed)
	return err == nil
}

func parseListItem(item any) ([]PathEntry, error) {
	switch v := item.(type) {
	case string:
		return []PathEntry{Root(v)}, nil
	case PathEntry:
		return []PathEntry{v}, nil
	case map[string]any, map[string]string:
		spec, err := ParsePathSpec(v)
		if err != nil {
			return nil, err
		}
		return spec.entries, nil
	default:
		return nil, newInvalidArgument(item)
	}
}

func parseMapping(in map[string]any) ([]PathEntry, error) {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		pi, pj := IsPositionalKey(ki), IsPositionalKey(kj)
		if pi != pj {
			return pi
		}
		if pi {
			ni, _ := strconv.Atoi(strings.TrimSpace(ki))
			nj, _ := strconv.Atoi(strings.TrimSpace(kj))
			return ni < nj
		}
		return ki < kj
	})

	var entries []PathEntry
	for _, key := range keys {
		switch v := in[key].(type) {
		case string:
			entries = append(entries, EntryForKey(key, v))
		case []string:
			for _, path := range v {
				entries = append(entries, EntryForKey(key, path))
			}
		case []any:
			for _, item := range v {
				path, ok := item.(string)
				if !ok {
					return nil, newInvalidArgument(item)
				}
				entries = append(entries, EntryForKey(key, path))
			}
		default:
			return nil, newInvalidArgument(v)
		}
	}
	return entries, nil
}
