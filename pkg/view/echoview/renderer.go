package echoview

import (
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-view/pkg/view"
)

// BlockSeparator splits "template#block" names passed to Render.
const BlockSeparator = "#"

type writerView interface {
	RenderWriter(w io.Writer, template string, data any) error
}

// Renderer implements echo.Renderer over a view.View. A name of the form
// "page.html#content" renders only the "content" block when the view supports
// block rendering, which suits partial page updates.
type Renderer struct {
	view view.View
}

var _ echo.Renderer = (*Renderer)(nil)

// New wraps v for use as echo.Echo.Renderer.
func New(v view.View) *Renderer {
	return &Renderer{view: v}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	if r.view == nil {
		return errors.New("echoview: view is nil")
	}

	if template, block, found := strings.Cut(name, BlockSeparator); found {
		blocks, ok := r.view.(view.BlockRenderer)
		if !ok {
			return errors.New("echoview: view does not support block rendering")
		}
		out, err := blocks.RenderBlock(template, block, data)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	if wv, ok := r.view.(writerView); ok {
		return wv.RenderWriter(w, name, data)
	}

	out, err := r.view.Render(name, data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
