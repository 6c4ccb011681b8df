package view

// View is the rendering contract shared by every view implementation. The
// pongo-backed adapter in pkg/view/pongo is the reference implementation.
type View interface {
	Render(template string, data any) (string, error)
}

// BlockRenderer is implemented by views that can render a single named block
// from a template without emitting the rest of it.
type BlockRenderer interface {
	RenderBlock(template, block string, data any) (string, error)
}
