package pongo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTemplateNotFound is returned when no registered root holds the template.
	ErrTemplateNotFound = errors.New("pongo: template not found")
	// ErrNamespaceNotFound is returned for @namespace names with no registered roots.
	ErrNamespaceNotFound = errors.New("pongo: namespace not found")
	// ErrInvalidTemplateName covers malformed names and names escaping their root.
	ErrInvalidTemplateName = errors.New("pongo: invalid template name")
	// ErrDirectoryNotFound is returned when a registered root is not a directory.
	ErrDirectoryNotFound = errors.New("pongo: directory not found")
	// ErrBlockNotFound is returned by RenderBlock when the template lacks the block.
	ErrBlockNotFound = errors.New("pongo: block not found")
	// ErrExtensionExists is returned when an extension name is registered twice.
	ErrExtensionExists = errors.New("pongo: extension already registered")
)

// LoaderError carries the template name and the roots that were searched.
type LoaderError struct {
	Name     string
	Searched []string
	Err      error
}

func (e *LoaderError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("%v: %q", e.Err, e.Name)
	}
	return fmt.Sprintf("%v: %q (looked into: %s)", e.Err, e.Name, strings.Join(e.Searched, ", "))
}

func (e *LoaderError) Unwrap() error {
	return e.Err
}
