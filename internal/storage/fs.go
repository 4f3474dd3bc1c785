package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docmend/docmend/internal/checksum"
	"github.com/docmend/docmend/internal/models"
)

// Tree implements Provider backed by the local file system, filtered to
// documents carrying a single canonical extension.
type Tree struct {
	root string // absolute path to the docs root
	ext  string // document extension including the dot, e.g. ".md"
}

// NewTree creates a Tree rooted at the given directory. The directory must
// already exist. ext defaults to ".md" when empty.
func NewTree(root, ext string) (*Tree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	if ext == "" {
		ext = ".md"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Tree{root: abs, ext: ext}, nil
}

// Root returns the absolute docs root.
func (t *Tree) Root() string { return t.root }

// Ext returns the canonical document extension, including the dot.
func (t *Tree) Ext() string { return t.ext }

// Abs resolves a relative path against the docs root and rejects any result
// that escapes it (directory traversal).
func (t *Tree) Abs(rel string) (string, error) {
	if rel == "" {
		return t.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(t.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, t.root+string(os.PathSeparator)) && abs != t.root {
		return "", fmt.Errorf("storage: path escapes docs root: %s", rel)
	}
	return abs, nil
}

// Rel converts an absolute path back to a root-relative one. Paths outside
// the root are returned unchanged so callers can still report them.
func (t *Tree) Rel(abs string) string {
	rel, err := filepath.Rel(t.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return rel
}

// List walks the tree and returns metadata for every document matching the
// canonical extension.
func (t *Tree) List() ([]models.DocMeta, error) {
	var out []models.DocMeta
	err := filepath.WalkDir(t.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), t.ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(t.root, p)
		out = append(out, models.DocMeta{
			Path:      rel,
			Checksum:  checksum.Sum(data),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return out, nil
}

// Paths walks the tree and returns the root-relative path of every document
// matching the canonical extension, without touching file contents. Scanning
// uses this so a single unreadable document cannot abort enumeration; the
// caller decides what a failed read of an individual document means.
func (t *Tree) Paths() ([]string, error) {
	var out []string
	err := filepath.WalkDir(t.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), t.ext) {
			return nil
		}
		rel, _ := filepath.Rel(t.root, p)
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: paths: %w", err)
	}
	return out, nil
}

// Read returns the raw bytes of a document in the tree.
func (t *Tree) Read(path string) ([]byte, error) {
	abs, err := t.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Write atomically writes content to a document in the tree.
func (t *Tree) Write(path string, content []byte) error {
	abs, err := t.Abs(path)
	if err != nil {
		return err
	}
	return WriteFileAtomic(abs, content)
}

// Exists reports whether a regular file or directory exists at the given
// absolute path.
func Exists(abs string) bool {
	_, err := os.Stat(abs)
	return err == nil
}

// WriteFileAtomic writes content to an absolute path: tmp file → fsync →
// rename. Intermediate directories are created as needed. Remediators use
// this directly for targets that legitimately live outside the docs root
// (parent-relative link targets, the sample-project sibling).
func WriteFileAtomic(abs string, content []byte) error {
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docmend-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}
