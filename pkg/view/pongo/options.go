package pongo

import (
	"strings"

	"github.com/rs/zerolog"
)

// DefaultSetName names the pongo2 template set when WithSetName is not used.
const DefaultSetName = "view"

// Option configures an Environment (and the Renderer that owns it).
type Option func(*config)

type config struct {
	setName       string
	debug         bool
	autoReload    bool
	absoluteNames bool
	trimBlocks    bool
	lstripBlocks  bool
	globals       map[string]any
	bannedTags    []string
	bannedFilters []string
	extensions    []Extension
	logger        zerolog.Logger
}

func newConfig(options []Option) *config {
	cfg := &config{
		setName: DefaultSetName,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

// WithSetName names the underlying pongo2 template set.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.setName = trimmed
		}
	}
}

// WithDebug turns on pongo2 debug mode: templates are recompiled on every
// load and ExecutionContext.Logf output is enabled.
func WithDebug(enabled bool) Option {
	return func(cfg *config) {
		cfg.debug = enabled
	}
}

// WithAutoReload recompiles a cached template when its source file, a parent
// it extends or a template it statically includes or imports changed since it
// was compiled.
func WithAutoReload(enabled bool) Option {
	return func(cfg *config) {
		cfg.autoReload = enabled
	}
}

// WithAbsoluteNames lets templates be loaded by absolute filesystem path,
// outside of the registered roots.
func WithAbsoluteNames(enabled bool) Option {
	return func(cfg *config) {
		cfg.absoluteNames = enabled
	}
}

// WithTrimBlocks removes the first newline after a block tag.
func WithTrimBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.trimBlocks = enabled
	}
}

// WithLStripBlocks strips leading spaces and tabs before a block tag.
func WithLStripBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.lstripBlocks = enabled
	}
}

// WithGlobals seeds variables available to every template.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if len(globals) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithBannedTags forbids the named tags in templates of this environment.
func WithBannedTags(names ...string) Option {
	return func(cfg *config) {
		cfg.bannedTags = append(cfg.bannedTags, names...)
	}
}

// WithBannedFilters forbids the named filters in templates of this environment.
func WithBannedFilters(names ...string) Option {
	return func(cfg *config) {
		cfg.bannedFilters = append(cfg.bannedFilters, names...)
	}
}

// WithExtensions registers extensions at construction, in order.
func WithExtensions(extensions ...Extension) Option {
	return func(cfg *config) {
		cfg.extensions = append(cfg.extensions, extensions...)
	}
}

// WithLogger sets the logger used for path, extension and cache events.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
