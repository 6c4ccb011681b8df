package pongo

import (
	"io"

	"github.com/goliatone/go-view/pkg/view"
)

// Renderer is a thin view over a pongo2 environment. Everything except the
// path registration is forwarded to the Environment, and engine errors are
// returned unchanged.
//
// Rendering is as concurrency-safe as pongo2 itself; AddExtension and changes
// made through Loader or Environment should happen during setup.
type Renderer struct {
	loader *Loader
	env    *Environment
}

var (
	_ view.View          = (*Renderer)(nil)
	_ view.BlockRenderer = (*Renderer)(nil)
)

// New registers the roots described by paths on a fresh Loader and builds an
// Environment over it. Entries without a namespace go to MainNamespace.
func New(paths view.PathSpec, options ...Option) (*Renderer, error) {
	if err := paths.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(options)

	loader, err := NewLoader()
	if err != nil {
		return nil, err
	}
	loader.logger = cfg.logger

	for _, entry := range paths.Entries() {
		if entry.Namespace != "" {
			err = loader.AddPath(entry.Path, entry.Namespace)
		} else {
			err = loader.AddPath(entry.Path)
		}
		if err != nil {
			return nil, err
		}
	}

	env, err := newEnvironment(loader, cfg)
	if err != nil {
		return nil, err
	}

	return &Renderer{loader: loader, env: env}, nil
}

// Render renders template with data.
func (r *Renderer) Render(template string, data any) (string, error) {
	ctx, err := ToContext(data)
	if err != nil {
		return "", err
	}
	tpl, err := r.env.Load(template)
	if err != nil {
		return "", err
	}
	return tpl.Execute(ctx)
}

// RenderWriter renders template with data into w.
func (r *Renderer) RenderWriter(w io.Writer, template string, data any) error {
	ctx, err := ToContext(data)
	if err != nil {
		return err
	}
	tpl, err := r.env.Load(template)
	if err != nil {
		return err
	}
	return tpl.ExecuteWriter(ctx, w)
}

// RenderBlock renders a single block of template with data.
func (r *Renderer) RenderBlock(template, block string, data any) (string, error) {
	ctx, err := ToContext(data)
	if err != nil {
		return "", err
	}
	tpl, err := r.env.Load(template)
	if err != nil {
		return "", err
	}
	return tpl.RenderBlock(block, ctx)
}

// AddExtension registers ext on the environment.
func (r *Renderer) AddExtension(ext Extension) error {
	return r.env.AddExtension(ext)
}

// Loader returns the loader for direct path management.
func (r *Renderer) Loader() *Loader {
	return r.loader
}

// Environment returns the environment for anything the renderer does not wrap.
func (r *Renderer) Environment() *Environment {
	return r.env
}
