package pongo

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"
)

// Environment owns a pongo2 template set bound to a Loader together with the
// extensions registered on it.
//
// Loading and rendering are safe for concurrent use as far as pongo2 allows.
// AddExtension and AddGlobal mutate shared state and are meant for setup.
//
// Compiled templates are dropped whenever the loader's roots change. With
// auto-reload on, a template is recompiled when any file read while compiling
// it (the template, its parents, static includes and imports) changed.
type Environment struct {
	mu         sync.Mutex
	set        *pongo2.TemplateSet
	loader     *Loader
	extensions []Extension
	byName     map[string]Extension
	autoReload bool
	generation uint64
	compiled   map[string]*compiledTemplate
	logger     zerolog.Logger
}

// compiledTemplate is an auto-reload cache entry with the modification times
// of every source file it was compiled from.
type compiledTemplate struct {
	tpl     *pongo2.Template
	sources map[string]time.Time
}

// NewEnvironment creates an environment reading templates through loader.
func NewEnvironment(loader *Loader, options ...Option) (*Environment, error) {
	return newEnvironment(loader, newConfig(options))
}

func newEnvironment(loader *Loader, cfg *config) (*Environment, error) {
	if loader == nil {
		return nil, errors.New("pongo: loader is required")
	}

	if cfg.absoluteNames {
		loader.AllowAbsoluteNames(true)
	}

	set := pongo2.NewSet(cfg.setName, loader)
	set.Debug = cfg.debug
	set.Options.TrimBlocks = cfg.trimBlocks
	set.Options.LStripBlocks = cfg.lstripBlocks

	env := &Environment{
		set:        set,
		loader:     loader,
		byName:     make(map[string]Extension),
		autoReload: cfg.autoReload,
		generation: loader.Generation(),
		compiled:   make(map[string]*compiledTemplate),
		logger:     cfg.logger,
	}

	for key, value := range cfg.globals {
		env.AddGlobal(key, value)
	}
	for _, ext := range cfg.extensions {
		if err := env.AddExtension(ext); err != nil {
			return nil, err
		}
	}
	for _, tag := range cfg.bannedTags {
		if err := set.BanTag(tag); err != nil {
			return nil, fmt.Errorf("pongo: ban tag %q: %w", tag, err)
		}
	}
	for _, filter := range cfg.bannedFilters {
		if err := set.BanFilter(filter); err != nil {
			return nil, fmt.Errorf("pongo: ban filter %q: %w", filter, err)
		}
	}

	return env, nil
}

// Load resolves name through the loader and returns the compiled template.
// Compiled templates are cached by the template set unless debug mode is on.
func (e *Environment) Load(name string) (*Template, error) {
	if _, err := e.loader.Find(name); err != nil {
		return nil, err
	}
	key := e.loader.Abs("", name)
	e.syncGeneration()

	if e.autoReload && !e.set.Debug {
		return e.loadTracked(key)
	}

	tpl, err := e.set.FromCache(key)
	if err != nil {
		return nil, err
	}
	return &Template{name: key, tpl: tpl}, nil
}

// AddExtension registers ext and everything it provides. Extensions are kept
// in registration order; a second extension with the same name is rejected.
//
// pongo2 reads filters, tags and set globals without locking while rendering,
// so AddExtension must not run concurrently with Render calls.
func (e *Environment) AddExtension(ext Extension) error {
	if ext == nil {
		return errors.New("pongo: extension is required")
	}
	name := strings.TrimSpace(ext.Name())
	if name == "" {
		return errors.New("pongo: extension name is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrExtensionExists, name)
	}

	if provider, ok := ext.(FilterProvider); ok {
		for filter, fn := range provider.Filters() {
			if err := e.registerFilter(filter, fn); err != nil {
				return fmt.Errorf("pongo: extension %q: register filter %q: %w", name, filter, err)
			}
		}
	}
	if provider, ok := ext.(TagProvider); ok {
		for tag, parser := range provider.Tags() {
			if err := e.registerTag(tag, parser); err != nil {
				return fmt.Errorf("pongo: extension %q: register tag %q: %w", name, tag, err)
			}
		}
	}
	if provider, ok := ext.(FunctionProvider); ok {
		for fn, callable := range provider.Functions() {
			e.set.Globals[fn] = callable
		}
	}
	if provider, ok := ext.(GlobalProvider); ok {
		for key, value := range provider.Globals() {
			e.set.Globals[key] = value
		}
	}

	e.extensions = append(e.extensions, ext)
	e.byName[name] = ext

	e.logger.Debug().Str("extension", name).Msg("extension registered")
	return nil
}

// Extensions returns registered extensions in registration order.
func (e *Environment) Extensions() []Extension {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Extension, len(e.extensions))
	copy(out, e.extensions)
	return out
}

// Extension returns the extension registered under name.
func (e *Environment) Extension(name string) (Extension, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ext, ok := e.byName[name]
	return ext, ok
}

// AddGlobal exposes value to every template as name. pongo2 reads globals
// without locking while rendering, so AddGlobal must not run concurrently with
// Render calls; register globals during setup.
func (e *Environment) AddGlobal(name string, value any) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.set.Globals[name] = value
}

// Globals returns a copy of the environment's global variables.
func (e *Environment) Globals() map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]any, len(e.set.Globals))
	for key, value := range e.set.Globals {
		out[key] = value
	}
	return out
}

// ClearCache drops compiled templates; with no names the whole cache is dropped.
func (e *Environment) ClearCache(names ...string) {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, e.loader.Abs("", name))
	}
	e.set.CleanCache(keys...)

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(keys) == 0 {
		e.compiled = make(map[string]*compiledTemplate)
		return
	}
	for _, key := range keys {
		delete(e.compiled, key)
	}
}

// Debug reports whether pongo2 debug mode is on.
func (e *Environment) Debug() bool {
	return e.set.Debug
}

// Loader returns the loader the environment reads templates through.
func (e *Environment) Loader() *Loader {
	return e.loader
}

// TemplateSet exposes the underlying pongo2 set.
func (e *Environment) TemplateSet() *pongo2.TemplateSet {
	return e.set
}

// syncGeneration drops every compiled template once the loader's roots changed.
func (e *Environment) syncGeneration() {
	generation := e.loader.Generation()

	e.mu.Lock()
	defer e.mu.Unlock()

	if generation == e.generation {
		return
	}
	e.set.CleanCache()
	e.compiled = make(map[string]*compiledTemplate)
	e.generation = generation
	e.logger.Debug().Uint64("generation", generation).Msg("template paths changed, cache cleared")
}

// loadTracked serves key from the auto-reload cache, recompiling it when one
// of its source files changed.
func (e *Environment) loadTracked(key string) (*Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, seen := e.compiled[key]
	if seen && entry.fresh() {
		return &Template{name: key, tpl: entry.tpl}, nil
	}

	stop := e.loader.track()
	tpl, err := e.set.FromFile(key)
	files := stop()
	if err != nil {
		delete(e.compiled, key)
		return nil, err
	}

	e.compiled[key] = newCompiledTemplate(tpl, files)
	if seen {
		e.logger.Debug().Str("template", key).Strs("sources", files).Msg("template changed, recompiled")
	}
	return &Template{name: key, tpl: tpl}, nil
}

func newCompiledTemplate(tpl *pongo2.Template, files []string) *compiledTemplate {
	sources := make(map[string]time.Time, len(files))
	for _, file := range files {
		if info, err := os.Stat(file); err == nil {
			sources[file] = info.ModTime()
		} else {
			sources[file] = time.Time{}
		}
	}
	return &compiledTemplate{tpl: tpl, sources: sources}
}

func (c *compiledTemplate) fresh() bool {
	for file, modTime := range c.sources {
		info, err := os.Stat(file)
		if err != nil || !info.ModTime().Equal(modTime) {
			return false
		}
	}
	return true
}

// registerFilter installs fn in pongo2's process-wide filter table,
// replacing an existing filter of the same name.
func (e *Environment) registerFilter(name string, fn pongo2.FilterFunction) error {
	if pongo2.FilterExists(name) {
		e.logger.Warn().Str("filter", name).Msg("replacing existing filter")
		return pongo2.ReplaceFilter(name, fn)
	}
	return pongo2.RegisterFilter(name, fn)
}

func (e *Environment) registerTag(name string, parser pongo2.TagParser) error {
	if err := pongo2.RegisterTag(name, parser); err != nil {
		e.logger.Warn().Str("tag", name).Msg("replacing existing tag")
		return pongo2.ReplaceTag(name, parser)
	}
	return nil
}
