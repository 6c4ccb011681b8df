package view_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-view/pkg/view"
)

func TestParsePathSpec(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		single bool
		want   []view.PathEntry
	}{
		{
			name:   "string",
			in:     "/tpl",
			single: true,
			want:   []view.PathEntry{view.Root("/tpl")},
		},
		{
			name: "string slice",
			in:   []string{"/a", "/b"},
			want: []view.PathEntry{view.Root("/a"), view.Root("/b")},
		},
		{
			name: "labelled mapping",
			in:   map[string]string{"mail": "/mail", "admin": "/admin"},
			want: []view.PathEntry{view.Namespaced("admin", "/admin"), view.Namespaced("mail", "/mail")},
		},
		{
			name: "numeric keys come first in numeric order",
			in:   map[string]any{"test": "/t", "10": "/ten", "2": "/two"},
			want: []view.PathEntry{view.Root("/two"), view.Root("/ten"), view.Namespaced("test", "/t")},
		},
		{
			name: "mapping values may be lists",
			in:   map[string]any{"mail": []any{"/m1", "/m2"}},
			want: []view.PathEntry{view.Namespaced("mail", "/m1"), view.Namespaced("mail", "/m2")},
		},
		{
			name: "mixed list keeps item order",
			in:   []any{"/main", map[string]any{"test": "/t"}, view.Root("/other")},
			want: []view.PathEntry{view.Root("/main"), view.Namespaced("test", "/t"), view.Root("/other")},
		},
		{
			name: "entries",
			in:   []view.PathEntry{view.Namespaced(" x ", "/x")},
			want: []view.PathEntry{view.Namespaced("x", "/x")},
		},
		{
			name:   "path spec",
			in:     view.Single("/tpl"),
			single: true,
			want:   []view.PathEntry{view.Root("/tpl")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := view.ParsePathSpec(tt.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if spec.IsSingle() != tt.single {
				t.Fatalf("IsSingle = %v, want %v", spec.IsSingle(), tt.single)
			}
			if diff := cmp.Diff(tt.want, spec.Entries()); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePathSpec_InvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		in   any
		msg  string
	}{
		{"nil", nil, "view: path must be a string or a mapping; nil given"},
		{"bool", true, "view: path must be a string or a mapping; bool given"},
		{"int", 42, "view: path must be a string or a mapping; int given"},
		{"float", 1.5, "view: path must be a string or a mapping; float64 given"},
		{"struct", struct{}{}, "view: path must be a string or a mapping; struct {} given"},
		{"list item", []any{"/ok", 3}, "view: path must be a string or a mapping; int given"},
		{"mapping value", map[string]any{"x": false}, "view: path must be a string or a mapping; bool given"},
		{"zero spec", view.PathSpec{}, "view: path must be a string or a mapping; nil given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := view.ParsePathSpec(tt.in)
			if !errors.Is(err, view.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var invalid *view.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidArgumentError, got %T", err)
			}
			if err.Error() != tt.msg {
				t.Fatalf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestPathSpec_EntriesIsACopy(t *testing.T) {
	spec := view.Multiple(view.Root("/a"))
	entries := spec.Entries()
	entries[0].Path = "/changed"

	if got := spec.Entries()[0].Path; got != "/a" {
		t.Fatalf("spec mutated through Entries: %q", got)
	}
	if spec.IsZero() || spec.IsSingle() {
		t.Fatalf("unexpected flags for Multiple spec")
	}
	if !(view.PathSpec{}).IsZero() {
		t.Fatalf("zero spec should report IsZero")
	}
}

func TestEntryForKey(t *testing.T) {
	tests := []struct {
		key  string
		want view.PathEntry
	}{
		{"0", view.Root("/p")},
		{"", view.Root("/p")},
		{" 7 ", view.Root("/p")},
		{"mail", view.Namespaced("mail", "/p")},
	}

	for _, tt := range tests {
		if got := view.EntryForKey(tt.key, "/p"); got != tt.want {
			t.Errorf("EntryForKey(%q) = %+v, want %+v", tt.key, got, tt.want)
		}
	}
}
