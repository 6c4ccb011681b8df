package extensions

import (
	"bytes"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownName identifies the markdown extension.
const MarkdownName = "markdown"

// Markdown contributes a "markdown" filter converting Markdown to HTML with
// goldmark (GitHub flavoured). Output is sanitised with bluemonday unless the
// extension is built with a nil policy through NewMarkdownWithPolicy.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewMarkdown returns the extension using bluemonday.UGCPolicy.
func NewMarkdown() *Markdown {
	return NewMarkdownWithPolicy(bluemonday.UGCPolicy())
}

// NewMarkdownWithPolicy returns the extension sanitising with policy; nil
// disables sanitising.
func NewMarkdownWithPolicy(policy *bluemonday.Policy) *Markdown {
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

func (m *Markdown) Name() string {
	return MarkdownName
}

func (m *Markdown) Filters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"markdown": m.filter,
	}
}

func (m *Markdown) filter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(in.String()), &buf); err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown", OrigError: err}
	}
	if m.policy != nil {
		return pongo2.AsSafeValue(m.policy.Sanitize(buf.String())), nil
	}
	return pongo2.AsSafeValue(buf.String()), nil
}
