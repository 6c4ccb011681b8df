// Package view defines the engine-agnostic view contract, the PathSpec used to
// configure template search roots and a registry for named views.
//
// A PathSpec is either a single default root or an ordered list of entries,
// each optionally bound to a namespace:
//
//	view.Single("templates")
//	view.Multiple(
//		view.Root("templates"),
//		view.Namespaced("mail", "templates/mail"),
//	)
//
// ParsePathSpec converts loosely typed input (decoded configuration) into a
// PathSpec and is the only place where an invalid path argument can surface.
package view
