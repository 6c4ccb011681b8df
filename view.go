package view

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-view/internal/config"
	pkgview "github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/pongo"
)

// View renders a named template with data; alias exported via the root
// package for convenience.
type View = pkgview.View

// BlockRenderer renders a single block of a template.
type BlockRenderer = pkgview.BlockRenderer

// PathSpec describes the template roots a renderer searches.
type PathSpec = pkgview.PathSpec

// PathEntry binds a template root to a namespace.
type PathEntry = pkgview.PathEntry

// Renderer is the pongo2 backed View.
type Renderer = pongo.Renderer

// Option configures a Renderer.
type Option = pongo.Option

// Extension contributes filters, tags, functions or globals.
type Extension = pongo.Extension

// NewRenderer builds a renderer from loosely typed path input: a single root
// string, a list of roots, a namespace mapping or a PathSpec. Anything else
// yields an error matching pkgview.ErrInvalidArgument.
func NewRenderer(paths any, options ...Option) (*Renderer, error) {
	spec, err := pkgview.ParsePathSpec(paths)
	if err != nil {
		return nil, err
	}
	return pongo.New(spec, options...)
}

// MustNewRenderer panics when NewRenderer fails. Useful for init-time wiring.
func MustNewRenderer(paths any, options ...Option) *Renderer {
	r, err := NewRenderer(paths, options...)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRenderer builds a renderer from a YAML config file. Relative roots are
// resolved against the file's directory and options are applied after the
// configured ones.
func LoadRenderer(configPath string, logger zerolog.Logger, options ...Option) (*Renderer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.NewRenderer(logger, options...)
}

// NewRegistry creates an empty registry for named views.
func NewRegistry() *pkgview.Registry {
	return pkgview.NewRegistry()
}
