// Package extensions holds ready-made pongo.Extension implementations:
// markdown rendering, HTML sanitising and the sprig function library.
package extensions
