package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-view/internal/config"
	"github.com/goliatone/go-view/internal/logging"
	"github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/pongo"
)

type rootOptions struct {
	paths      []string
	configFile string
	dataFile   string
	sets       []string
	extensions []string
	verbosity  int
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "view-render",
		Short: "Render pongo2 templates from the command line",
		Long: `view-render renders templates (or single blocks of them) found under one or
more template roots. Roots can be namespaced with --path name=dir and
referenced as @name/template.html.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.paths, "path", "p", nil, "template root, optionally namespaced as name=dir (repeatable)")
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file (default: $XDG_CONFIG_HOME/"+config.DefaultFile+" when no --path is given)")
	flags.StringVarP(&opts.dataFile, "data", "d", "", "context data file (.json, .yaml, .yml or .toml)")
	flags.StringArrayVar(&opts.sets, "set", nil, "context value as key=value, dotted keys nest (repeatable)")
	flags.StringSliceVarP(&opts.extensions, "extension", "e", nil, "built-in extension to enable: markdown, sanitize, sprig")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.BoolVar(&opts.debug, "debug", false, "enable pongo2 debug mode")

	cmd.AddCommand(
		newRenderCmd(opts),
		newBlockCmd(opts),
		newPathsCmd(opts),
	)
	return cmd
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Render a whole template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, data, err := opts.prepare(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderWriter(cmd.OutOrStdout(), args[0], data)
		},
	}
}

func newBlockCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "block TEMPLATE BLOCK",
		Short: "Render a single block of a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, data, err := opts.prepare(cmd)
			if err != nil {
				return err
			}
			out, err := renderer.RenderBlock(args[0], args[1], data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List registered namespaces and their roots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			loader := renderer.Loader()
			for _, ns := range loader.Namespaces() {
				for _, root := range loader.Paths(ns) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ns, root)
				}
			}
			return nil
		},
	}
}

func (o *rootOptions) prepare(cmd *cobra.Command) (*pongo.Renderer, map[string]any, error) {
	renderer, err := o.renderer(cmd)
	if err != nil {
		return nil, nil, err
	}
	data, err := loadData(o.dataFile)
	if err != nil {
		return nil, nil, err
	}
	if err := applySets(data, o.sets); err != nil {
		return nil, nil, err
	}
	return renderer, data, nil
}

func (o *rootOptions) renderer(cmd *cobra.Command) (*pongo.Renderer, error) {
	logger := logging.Component(logging.New(cmd.ErrOrStderr(), o.verbosity), "view-render")

	exts, err := config.BuildExtensions(o.extensions)
	if err != nil {
		return nil, err
	}
	extra := []pongo.Option{pongo.WithExtensions(exts...)}
	if o.debug {
		extra = append(extra, pongo.WithDebug(true))
	}

	configFile := o.configFile
	if configFile == "" && len(o.paths) == 0 {
		if found, err := config.DefaultPath(); err == nil {
			configFile = found
		}
	}

	if configFile != "" {
		return o.fromConfig(configFile, logger, extra)
	}

	spec, err := pathSpecFromFlags(o.paths)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("roots", len(spec.Entries())).Msg("using roots from flags")
	return pongo.New(spec, append([]pongo.Option{pongo.WithLogger(logger)}, extra...)...)
}

func (o *rootOptions) fromConfig(path string, logger zerolog.Logger, extra []pongo.Option) (*pongo.Renderer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("config", path).Msg("config loaded")

	renderer, err := cfg.NewRenderer(logger, extra...)
	if err != nil {
		return nil, err
	}
	for _, raw := range o.paths {
		entry := parsePathFlag(raw)
		if err := renderer.Loader().AddPath(entry.Path, entry.Namespace); err != nil {
			return nil, err
		}
	}
	return renderer, nil
}

func pathSpecFromFlags(raw []string) (view.PathSpec, error) {
	if len(raw) == 0 {
		return view.PathSpec{}, errors.New("no template roots: pass --path or --config")
	}
	if len(raw) == 1 && !strings.Contains(raw[0], "=") {
		return view.Single(raw[0]), nil
	}
	entries := make([]view.PathEntry, 0, len(raw))
	for _, value := range raw {
		entries = append(entries, parsePathFlag(value))
	}
	return view.Multiple(entries...), nil
}

// parsePathFlag splits "name=dir"; values without "=" are main roots.
func parsePathFlag(value string) view.PathEntry {
	if ns, dir, found := strings.Cut(value, "="); found && !strings.ContainsAny(ns, `/\`) {
		return view.Namespaced(ns, dir)
	}
	return view.Root(value)
}
