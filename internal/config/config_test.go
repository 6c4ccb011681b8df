package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-view/pkg/testsupport"
	"github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/pongo/extensions"
)

func TestParse_PathForms(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		single bool
		want   []view.PathEntry
	}{
		{
			name:   "scalar",
			yaml:   "paths: templates\n",
			single: true,
			want:   []view.PathEntry{view.Root("templates")},
		},
		{
			name: "sequence",
			yaml: "paths:\n  - templates\n  - mail: templates/mail\n  - shared\n",
			want: []view.PathEntry{
				view.Root("templates"),
				view.Namespaced("mail", "templates/mail"),
				view.Root("shared"),
			},
		},
		{
			name: "mapping keeps document order",
			yaml: "paths:\n  zeta: z\n  0: main\n  alpha: [a1, a2]\n",
			want: []view.PathEntry{
				view.Namespaced("zeta", "z"),
				view.Root("main"),
				view.Namespaced("alpha", "a1"),
				view.Namespaced("alpha", "a2"),
			},
		},
		{
			name: "aliases",
			yaml: "shared: &shared common\npaths:\n  - *shared\n",
			want: []view.PathEntry{view.Root("common")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.single, cfg.Paths.IsSingle())
			assert.Equal(t, tt.want, cfg.Paths.Entries())
		})
	}
}

func TestParse_InvalidPaths(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		typ  string
	}{
		{"missing", "options:\n  debug: true\n", "nil"},
		{"null", "paths: ~\n", "nil"},
		{"integer", "paths: 42\n", "int"},
		{"boolean", "paths: true\n", "bool"},
		{"float item", "paths:\n  - 1.5\n", "float64"},
		{"mapping value", "paths:\n  mail: false\n", "bool"},
		{"nested list item", "paths:\n  mail: [ok, 3]\n", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, view.ErrInvalidArgument)

			var invalid *view.InvalidArgumentError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.typ, invalid.Type)
		})
	}
}

func TestParse_Options(t *testing.T) {
	cfg, err := Parse([]byte(`
paths: templates
extensions: [markdown, sprig]
options:
  set_name: site
  debug: true
  auto_reload: true
  absolute_names: true
  trim_blocks: true
  lstrip_blocks: true
  globals:
    site: Docs
  banned_tags: [include]
  banned_filters: [safe]
`))
	require.NoError(t, err)

	assert.Equal(t, Options{
		SetName:       "site",
		Debug:         true,
		AutoReload:    true,
		AbsoluteNames: true,
		TrimBlocks:    true,
		LStripBlocks:  true,
		Globals:       map[string]any{"site": "Docs"},
		BannedTags:    []string{"include"},
		BannedFilters: []string{"safe"},
	}, cfg.Options)
	assert.Equal(t, []string{"markdown", "sprig"}, cfg.Extensions)
}

func TestPaths_Resolve(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs")

	single := Paths{PathSpec: view.Single("templates")}
	resolved := single.Resolve("/etc/app")
	assert.True(t, resolved.IsSingle())
	assert.Equal(t, []view.PathEntry{view.Root("/etc/app/templates")}, resolved.Entries())

	multi := Paths{PathSpec: view.Multiple(view.Namespaced("mail", "mail"), view.Root(abs))}
	resolved = multi.Resolve("/etc/app")
	assert.False(t, resolved.IsSingle())
	assert.Equal(t, []view.PathEntry{
		view.Namespaced("mail", "/etc/app/mail"),
		view.Root(abs),
	}, resolved.Entries())

	assert.True(t, Paths{}.Resolve("/etc/app").IsZero())
}

func TestLoad_ResolvesAgainstConfigDir(t *testing.T) {
	dir := testsupport.TemplateDir(t, map[string]string{
		"templates/index.html":        "{{ site }}: {% include \"@mail/welcome.html\" %}",
		"templates/mail/welcome.html": "Welcome {{ name }}",
	})
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
paths:
  - templates
  - mail: templates/mail
options:
  globals:
    site: Docs
`), 0o644))

	cfg, err := Load(configFile)
	require.NoError(t, err)

	renderer, err := cfg.NewRenderer(zerolog.Nop())
	require.NoError(t, err)

	out, err := renderer.Render("index.html", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Docs: Welcome Ada", out)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultPath_UsesXDG(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	testsupport.WriteTemplates(t, home, map[string]string{DefaultFile: "paths: templates\n"})

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultFile), path)
}

func TestBuildExtensions(t *testing.T) {
	exts, err := BuildExtensions([]string{" Markdown ", "sanitize", "sprig"})
	require.NoError(t, err)
	require.Len(t, exts, 3)
	assert.Equal(t, extensions.MarkdownName, exts[0].Name())
	assert.Equal(t, extensions.SanitizeName, exts[1].Name())
	assert.Equal(t, extensions.SprigName, exts[2].Name())

	_, err = BuildExtensions([]string{"markdown", "pdf"})
	assert.ErrorIs(t, err, ErrUnknownExtension)
}
