package fix

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/storage"
)

// sampleADRs is the fixed set of placeholder decision records scaffolded
// when sample-project links are detected anywhere in the tree.
var sampleADRs = []struct {
	filename string
	title    string
}{
	{"001-database-architecture.md", "Database Architecture Decision"},
	{"002-api-authentication.md", "API Authentication Strategy"},
	{"003-legacy-data-migration.md", "Legacy Data Migration Approach"},
}

// scaffoldSamples creates the sample-project ADR placeholders in the sibling
// directory next to the docs root. The remediator does not inspect the
// individual link targets: any sample_project_link triggers the full set.
// Pre-existing files are left untouched. Returns the number of documents
// created (or, in dry-run mode, that would be created).
func (f *Fixer) scaffoldSamples(records []models.BrokenLink) int {
	if len(records) == 0 {
		return 0
	}

	dir := filepath.Join(filepath.Dir(f.tree.Root()), "sample-project", "docs", "adrs")

	created := 0
	for _, adr := range sampleADRs {
		path := filepath.Join(dir, adr.filename)
		if storage.Exists(path) {
			continue
		}
		number, _, _ := strings.Cut(adr.filename, "-")
		content := renderSampleADR(number, adr.title)

		if f.dryRun {
			f.logger.Info("fix: [dry run] would create sample ADR", slog.String("path", path))
			created++
			continue
		}
		if err := storage.WriteFileAtomic(path, []byte(content)); err != nil {
			f.logger.Error("fix: create sample ADR failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		f.logger.Info("fix: created sample ADR", slog.String("path", path))
		created++
	}

	f.logger.Info("fix: sample scaffolding done", slog.Int("created", created))
	return created
}
