package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/pongo"
	"github.com/goliatone/go-view/pkg/view/pongo/extensions"
)

// DefaultFile is looked up under the XDG config directories.
const DefaultFile = "view-render/config.yaml"

// Config is the on-disk description of a renderer.
type Config struct {
	Paths      Paths    `yaml:"paths"`
	Options    Options  `yaml:"options"`
	Extensions []string `yaml:"extensions"`

	// dir is the directory relative roots are resolved against.
	dir string
}

// Options mirrors the engine options accepted by pongo.New.
type Options struct {
	SetName       string         `yaml:"set_name"`
	Debug         bool           `yaml:"debug"`
	AutoReload    bool           `yaml:"auto_reload"`
	AbsoluteNames bool           `yaml:"absolute_names"`
	TrimBlocks    bool           `yaml:"trim_blocks"`
	LStripBlocks  bool           `yaml:"lstrip_blocks"`
	Globals       map[string]any `yaml:"globals"`
	BannedTags    []string       `yaml:"banned_tags"`
	BannedFilters []string       `yaml:"banned_filters"`
}

// DefaultPath returns the config file found in the XDG config directories.
func DefaultPath() (string, error) {
	path, err := xdg.SearchConfigFile(DefaultFile)
	if err != nil {
		return "", fmt.Errorf("config: locate %s: %w", DefaultFile, err)
	}
	return path, nil
}

// Load reads and parses a YAML config file. Relative roots are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML config bytes. Relative roots stay relative to the
// working directory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Paths.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PathSpec returns the configured roots with relative paths resolved.
func (c *Config) PathSpec() view.PathSpec {
	return c.Paths.Resolve(c.dir)
}

// RendererOptions translates the config into pongo options.
func (c *Config) RendererOptions(logger zerolog.Logger) ([]pongo.Option, error) {
	exts, err := BuildExtensions(c.Extensions)
	if err != nil {
		return nil, err
	}

	return []pongo.Option{
		pongo.WithLogger(logger),
		pongo.WithSetName(c.Options.SetName),
		pongo.WithDebug(c.Options.Debug),
		pongo.WithAutoReload(c.Options.AutoReload),
		pongo.WithAbsoluteNames(c.Options.AbsoluteNames),
		pongo.WithTrimBlocks(c.Options.TrimBlocks),
		pongo.WithLStripBlocks(c.Options.LStripBlocks),
		pongo.WithGlobals(c.Options.Globals),
		pongo.WithBannedTags(c.Options.BannedTags...),
		pongo.WithBannedFilters(c.Options.BannedFilters...),
		pongo.WithExtensions(exts...),
	}, nil
}

// NewRenderer builds a renderer from the config. Extra options are applied
// after the configured ones.
func (c *Config) NewRenderer(logger zerolog.Logger, extra ...pongo.Option) (*pongo.Renderer, error) {
	opts, err := c.RendererOptions(logger)
	if err != nil {
		return nil, err
	}
	return pongo.New(c.PathSpec(), append(opts, extra...)...)
}

// ErrUnknownExtension is returned for extension names with no built-in.
var ErrUnknownExtension = errors.New("config: unknown extension")

// BuildExtensions instantiates built-in extensions by name.
func BuildExtensions(names []string) ([]pongo.Extension, error) {
	out := make([]pongo.Extension, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case extensions.MarkdownName:
			out = append(out, extensions.NewMarkdown())
		case extensions.SanitizeName:
			out = append(out, extensions.NewSanitize(nil))
		case extensions.SprigName:
			out = append(out, extensions.NewSprig())
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
		}
	}
	return out, nil
}
