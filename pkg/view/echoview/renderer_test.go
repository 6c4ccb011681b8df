package echoview_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-view/pkg/testsupport"
	"github.com/goliatone/go-view/pkg/view"
	"github.com/goliatone/go-view/pkg/view/echoview"
	"github.com/goliatone/go-view/pkg/view/pongo"
)

type plainView struct{}

func (plainView) Render(template string, data any) (string, error) {
	return "plain:" + template, nil
}

func newEcho(t *testing.T, v view.View) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Renderer = echoview.New(v)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func pongoView(t *testing.T) view.View {
	t.Helper()

	dir := testsupport.TemplateDir(t, map[string]string{
		"page.html": "{% block title %}Hi {{ name }}{% endblock %}|{% block body %}body{% endblock %}",
	})
	renderer, err := pongo.New(view.Single(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderer_Render(t *testing.T) {
	_, c, rec := newEcho(t, pongoView(t))

	if err := c.Render(http.StatusOK, "page.html", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Body.String(); got != "Hi Ada|body" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestRenderer_RenderBlock(t *testing.T) {
	_, c, rec := newEcho(t, pongoView(t))

	if err := c.Render(http.StatusOK, "page.html#title", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := rec.Body.String(); got != "Hi Ada" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestRenderer_PlainView(t *testing.T) {
	_, c, rec := newEcho(t, plainView{})

	if err := c.Render(http.StatusOK, "x.html", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := rec.Body.String(); got != "plain:x.html" {
		t.Fatalf("unexpected body %q", got)
	}

	_, c, _ = newEcho(t, plainView{})
	if err := c.Render(http.StatusOK, "x.html#block", nil); err == nil {
		t.Fatalf("expected error for block rendering on a plain view")
	}
}

func TestRenderer_NilView(t *testing.T) {
	r := echoview.New(nil)
	if err := r.Render(httptest.NewRecorder(), "x.html", nil, nil); err == nil {
		t.Fatalf("expected error for nil view")
	}
}
