// Package fix applies category-specific remediations to broken links found
// in a documentation tree: stub generation for missing files, inline-marker
// rewriting for dead research links, and sample-project scaffolding.
package fix

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/scan"
	"github.com/docmend/docmend/internal/storage"
)

// Fixer orchestrates one remediation run over a documentation tree. It owns
// the created/updated tracking sets for the run, so concurrent or repeated
// runs need a fresh Fixer each.
type Fixer struct {
	tree    *storage.Tree
	scanner *scan.Scanner
	logger  *slog.Logger
	dryRun  bool

	// created holds absolute paths of stub targets remediated this run.
	// Consulted before every write so a target is created at most once.
	created map[string]struct{}
	// updated holds absolute paths of documents rewritten this run.
	updated map[string]struct{}
}

// New creates a Fixer for the given tree. When dryRun is set, every
// remediation step runs except the actual writes; counts are still reported.
func New(tree *storage.Tree, dryRun bool, logger *slog.Logger) *Fixer {
	return &Fixer{
		tree:    tree,
		scanner: scan.NewScanner(tree, logger),
		logger:  logger,
		dryRun:  dryRun,
		created: make(map[string]struct{}),
		updated: make(map[string]struct{}),
	}
}

// Run performs the comprehensive fix: classify the tree, apply the three
// remediators, re-scan to measure what remains, and aggregate the summary.
// The remediators touch disjoint categories, so their relative order does
// not matter, but each completes before the validation re-scan begins.
func (f *Fixer) Run() (*models.FixSummary, error) {
	initial, err := f.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("fix: initial scan: %w", err)
	}

	counts := models.FixCounts{
		MissingFiles:  f.createStubs(initial.ByCategory[models.CategoryMissingFile]),
		ResearchLinks: f.rewriteResearchLinks(initial.ByCategory[models.CategoryResearchLink]),
		SampleLinks:   f.scaffoldSamples(initial.ByCategory[models.CategorySampleProjectLink]),
	}

	validation, err := f.validate()
	if err != nil {
		return nil, fmt.Errorf("fix: validation scan: %w", err)
	}

	summary := &models.FixSummary{
		InitialIssues: initial.Total(),
		FixesApplied:  counts,
		TotalFixes:    counts.Total(),
		Validation:    *validation,
		DryRun:        f.dryRun,
	}

	f.logger.Info("fix: run complete",
		slog.Int("initial_issues", summary.InitialIssues),
		slog.Int("total_fixes", summary.TotalFixes),
		slog.Int("remaining_issues", summary.Validation.RemainingIssues),
		slog.Bool("dry_run", f.dryRun))
	return summary, nil
}

// validate re-scans the tree and combines the result with this run's
// created/updated bookkeeping.
func (f *Fixer) validate() (*models.ValidationReport, error) {
	remaining, err := f.scanner.Scan()
	if err != nil {
		return nil, err
	}
	return &models.ValidationReport{
		FilesCreated:        len(f.created),
		FilesUpdated:        len(f.updated),
		RemainingIssues:     remaining.Total(),
		RemainingByCategory: remaining.Counts(),
		CreatedFiles:        sortedPaths(f.created),
		UpdatedFiles:        sortedPaths(f.updated),
	}, nil
}

func sortedPaths(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
