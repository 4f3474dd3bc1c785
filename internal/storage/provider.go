// Package storage defines the documentation-tree file-system abstraction.
package storage

import "github.com/docmend/docmend/internal/models"

// Provider is the interface for docs-tree file operations. Paths are
// relative to the tree root unless noted otherwise.
type Provider interface {
	// Root returns the absolute path of the tree root.
	Root() string
	// List walks the tree and returns metadata for every matching document.
	List() ([]models.DocMeta, error)
	// Paths walks the tree and returns every matching document path without
	// reading file contents.
	Paths() ([]string, error)
	// Read returns the raw bytes of the document at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
	// Abs resolves path against the tree root, rejecting escapes.
	Abs(path string) (string, error)
	// Rel converts an absolute path back to a root-relative one, falling
	// back to the input when the path lies outside the tree.
	Rel(abs string) string
}

// Verify *Tree satisfies Provider at compile time.
var _ Provider = (*Tree)(nil)
