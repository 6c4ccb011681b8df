package extensions

import (
	"github.com/Masterminds/sprig/v3"
)

// SprigName identifies the sprig extension.
const SprigName = "sprig"

// Sprig exposes Masterminds/sprig helpers as template functions, e.g.
// {{ upper(name) }} or {{ trunc(5, title) }}.
type Sprig struct {
	funcs map[string]any
}

// NewSprig returns the extension. With names, only those helpers are exposed.
func NewSprig(names ...string) *Sprig {
	all := sprig.GenericFuncMap()
	if len(names) == 0 {
		return &Sprig{funcs: all}
	}

	funcs := make(map[string]any, len(names))
	for _, name := range names {
		if fn, ok := all[name]; ok {
			funcs[name] = fn
		}
	}
	return &Sprig{funcs: funcs}
}

func (s *Sprig) Name() string {
	return SprigName
}

func (s *Sprig) Functions() map[string]any {
	return s.funcs
}
