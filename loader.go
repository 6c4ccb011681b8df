package view

import "github.com/goliatone/go-view/pkg/view/pongo"

// NewLoader constructs a standalone namespaced template loader with the given
// main-namespace roots. Callers wiring their own pongo2 sets can pass it to
// pongo2.NewSet directly.
func NewLoader(paths ...string) (*pongo.Loader, error) {
	return pongo.NewLoader(paths...)
}

// NewEnvironment wraps a loader in a pongo2 set with extension support.
func NewEnvironment(loader *pongo.Loader, options ...Option) (*pongo.Environment, error) {
	return pongo.NewEnvironment(loader, options...)
}
