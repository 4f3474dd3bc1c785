// Package testutil provides shared test helpers for setting up docs trees
// and history databases.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/docmend/docmend/internal/history"
	"github.com/docmend/docmend/internal/storage"
)

// Logger returns a quiet logger for tests (errors only, stderr).
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestTree creates a temporary docs directory with a *storage.Tree over it.
func TestTree(t *testing.T) (string, *storage.Tree) {
	t.Helper()
	// The docs root lives inside a parent dir so remediators that write to
	// the sibling sample-project directory stay inside the test sandbox.
	docsDir := filepath.Join(t.TempDir(), "docs")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	tree, err := storage.NewTree(docsDir, ".md")
	if err != nil {
		t.Fatal(err)
	}
	return docsDir, tree
}

// WriteDoc writes a document under root, creating parent directories.
func WriteDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestHistory creates a temporary SQLite history database that is
// automatically cleaned up.
func TestHistory(t *testing.T) *history.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "docmend-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := history.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
