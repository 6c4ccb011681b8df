// Package pongo implements view.View on top of the pongo2 template engine.
//
// pongo2 provides parsing, compilation, caching and execution. This package
// adds what a view layer needs around it: a Loader with namespaced search
// roots ("@mail/welcome.html"), an Environment that tracks registered
// extensions, and the Renderer that ties both to a view.PathSpec.
//
//	r, err := pongo.New(view.Multiple(
//		view.Root("templates"),
//		view.Namespaced("mail", "templates/mail"),
//	), pongo.WithAutoReload(true))
//	if err != nil {
//		return err
//	}
//	html, err := r.Render("@mail/welcome.html", map[string]any{"name": "Ada"})
package pongo
