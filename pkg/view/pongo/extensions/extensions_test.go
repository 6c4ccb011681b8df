package extensions_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-view/pkg/testsupport"
	"github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/pongo"
	"github.com/goliatone/go-view/pkg/view/pongo/extensions"
)

func render(t *testing.T, source string, data map[string]any, exts ...pongo.Extension) string {
	t.Helper()

	dir := testsupport.TemplateDir(t, map[string]string{"t.html": source})
	renderer, err := pongo.New(view.Single(dir), pongo.WithExtensions(exts...))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render("t.html", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestMarkdown(t *testing.T) {
	got := render(t, "{{ body|markdown }}", map[string]any{"body": "**x**"}, extensions.NewMarkdown())
	if got != "<p><strong>x</strong></p>\n" {
		t.Fatalf("unexpected markdown output %q", got)
	}
}

func TestMarkdown_SanitizesOutput(t *testing.T) {
	body := "hello <script>alert(1)</script>"
	got := render(t, "{{ body|markdown }}", map[string]any{"body": body}, extensions.NewMarkdown())
	if strings.Contains(got, "<script") || !strings.HasPrefix(got, "<p>hello ") {
		t.Fatalf("expected script to be stripped, got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	data := map[string]any{"html": `<b>ok</b><script>alert(1)</script>`}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"ugc", "{{ html|sanitize }}", "<b>ok</b>"},
		{"strict", "{{ html|sanitize_strict }}", "ok"},
		{"escaped without filter", "{{ html }}", "&lt;b&gt;ok&lt;/b&gt;&lt;script&gt;alert(1)&lt;/script&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.source, data, extensions.NewSanitize(nil))
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSprig(t *testing.T) {
	got := render(t, `{{ upper(name) }}`, map[string]any{"name": "ada"}, extensions.NewSprig())
	if got != "ADA" {
		t.Fatalf("got %q", got)
	}
}

func TestSprig_Subset(t *testing.T) {
	ext := extensions.NewSprig("upper", "lower", "does_not_exist")
	funcs := ext.Functions()
	if len(funcs) != 2 {
		t.Fatalf("expected 2 helpers, got %d", len(funcs))
	}
	if _, ok := funcs["upper"]; !ok {
		t.Fatalf("expected upper helper")
	}
	if ext.Name() != extensions.SprigName {
		t.Fatalf("unexpected name %q", ext.Name())
	}
}
