package fix

import (
	"log/slog"
	"path/filepath"

	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/scan"
	"github.com/docmend/docmend/internal/storage"
)

// createStubs generates a templated target document for every missing_file
// record. Returns the number of stubs created (or, in dry-run mode, that
// would be created).
func (f *Fixer) createStubs(records []models.BrokenLink) int {
	created := 0
	for _, rec := range records {
		if f.createStub(rec) {
			created++
		}
	}
	f.logger.Info("fix: stub generation done", slog.Int("created", created))
	return created
}

// createStub writes one stub. It prefers the resolved path recorded during
// classification and falls back to recomputing from the source document. A
// target already remediated this run is skipped; that is a no-op, not an
// error. Write failures are logged and do not abort the remaining stubs.
func (f *Fixer) createStub(rec models.BrokenLink) bool {
	target := rec.ResolvedPath
	if target == "" || target == models.Unresolvable {
		docAbs := filepath.Join(f.tree.Root(), rec.File)
		resolved, ok := scan.Resolve(docAbs, rec.URL)
		if !ok {
			f.logger.Warn("fix: stub target unresolvable",
				slog.String("file", rec.File),
				slog.String("url", rec.URL))
			return false
		}
		target = resolved
	}

	// Force the canonical document extension on extension-less targets.
	if filepath.Ext(target) == "" {
		target += f.tree.Ext()
	}

	if _, dup := f.created[target]; dup {
		return false
	}

	content := renderStub(target, rec.URL)

	if f.dryRun {
		f.logger.Info("fix: [dry run] would create stub", slog.String("path", target))
		f.created[target] = struct{}{}
		return true
	}

	if err := storage.WriteFileAtomic(target, []byte(content)); err != nil {
		f.logger.Error("fix: create stub failed",
			slog.String("path", target),
			slog.String("error", err.Error()))
		return false
	}

	f.logger.Info("fix: created stub", slog.String("path", target))
	f.created[target] = struct{}{}
	return true
}
