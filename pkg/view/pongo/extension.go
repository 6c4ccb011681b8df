package pongo

import "github.com/flosch/pongo2/v6"

// Extension bundles filters, tags, functions or globals contributed to an
// Environment. Name identifies the extension and must be unique per
// environment. An extension contributes by implementing any of the provider
// interfaces below.
type Extension interface {
	Name() string
}

// FilterProvider contributes pongo2 filters. pongo2 keeps filters in a
// process-wide table, so they are visible to every environment.
type FilterProvider interface {
	Filters() map[string]pongo2.FilterFunction
}

// TagProvider contributes pongo2 tags. Like filters, tags are process-wide.
type TagProvider interface {
	Tags() map[string]pongo2.TagParser
}

// FunctionProvider contributes callables exposed to templates of one
// environment, e.g. {{ asset("app.css") }}.
type FunctionProvider interface {
	Functions() map[string]any
}

// GlobalProvider contributes variables visible to every template of one
// environment.
type GlobalProvider interface {
	Globals() map[string]any
}

// ExtensionFunc adapts a name and a set of functions into an Extension.
type ExtensionFunc struct {
	ExtensionName string
	Funcs         map[string]any
}

func (e ExtensionFunc) Name() string {
	return e.ExtensionName
}

func (e ExtensionFunc) Functions() map[string]any {
	return e.Funcs
}
