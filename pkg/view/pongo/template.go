package pongo

import (
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"
)

// Template is a compiled template returned by Environment.Load.
type Template struct {
	name string
	tpl  *pongo2.Template
}

// Name returns the normalized name the template was loaded under.
func (t *Template) Name() string {
	return t.name
}

// Execute renders the whole template.
func (t *Template) Execute(ctx pongo2.Context) (string, error) {
	return t.tpl.Execute(ctx)
}

// ExecuteWriter renders the whole template into w. Nothing is written on error.
func (t *Template) ExecuteWriter(ctx pongo2.Context, w io.Writer) error {
	return t.tpl.ExecuteWriter(ctx, w)
}

// RenderBlock renders only the named block. Blocks are looked up on the
// template itself; a block only defined by a parent template is not found.
func (t *Template) RenderBlock(block string, ctx pongo2.Context) (string, error) {
	out, err := t.tpl.ExecuteBlocks(ctx, []string{block})
	if err != nil {
		return "", err
	}
	rendered, ok := out[block]
	if !ok {
		return "", fmt.Errorf("%w: %q in template %q", ErrBlockNotFound, block, t.name)
	}
	return rendered, nil
}

// Pongo exposes the compiled pongo2 template.
func (t *Template) Pongo() *pongo2.Template {
	return t.tpl
}
