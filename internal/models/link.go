// Package models defines the domain types for Docmend.
package models

// Category is the remediation class assigned to a classified link.
type Category string

// Link categories, in classification priority order. BrokenAnchor and
// MalformedLink are declared for report-shape compatibility but no current
// rule produces them.
const (
	CategoryMissingFile       Category = "missing_file"
	CategoryBrokenAnchor      Category = "broken_anchor"
	CategoryResearchLink      Category = "research_link"
	CategorySampleProjectLink Category = "sample_project_link"
	CategoryMalformedLink     Category = "malformed_link"
)

// Categories returns every category in a fixed order, used when building
// per-category counts so report keys are stable.
func Categories() []Category {
	return []Category{
		CategoryMissingFile,
		CategoryBrokenAnchor,
		CategoryResearchLink,
		CategorySampleProjectLink,
		CategoryMalformedLink,
	}
}

// Unresolvable is the resolved-path placeholder for link targets that
// cannot be turned into a filesystem path (e.g. empty targets).
const Unresolvable = "unresolvable"

// BrokenLink is one classified non-ok link occurrence.
type BrokenLink struct {
	// File is the owning document, relative to the docs root.
	File string `json:"file"`
	// LinkText is the display text between the square brackets.
	LinkText string `json:"link_text"`
	// URL is the raw target string as written in the document.
	URL string `json:"url"`
	// ResolvedPath is the absolute candidate path, or Unresolvable.
	// Empty for categories that never resolve (research, sample).
	ResolvedPath string `json:"resolved_path,omitempty"`
	// LineContext is the first source line containing the raw target.
	LineContext string `json:"line_context"`
}

// ScanReport groups classified broken links by category.
type ScanReport struct {
	ByCategory map[Category][]BrokenLink `json:"by_category"`
}

// NewScanReport returns a report with every category present (possibly empty),
// so consumers can key off the full category set.
func NewScanReport() *ScanReport {
	by := make(map[Category][]BrokenLink, len(Categories()))
	for _, c := range Categories() {
		by[c] = nil
	}
	return &ScanReport{ByCategory: by}
}

// Add appends a broken link under its category.
func (r *ScanReport) Add(c Category, l BrokenLink) {
	r.ByCategory[c] = append(r.ByCategory[c], l)
}

// Total returns the number of broken links across all categories.
func (r *ScanReport) Total() int {
	n := 0
	for _, links := range r.ByCategory {
		n += len(links)
	}
	return n
}

// Counts returns the per-category link counts, with zero entries included.
func (r *ScanReport) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories()))
	for _, c := range Categories() {
		out[c] = len(r.ByCategory[c])
	}
	return out
}

// FixCounts holds the per-remediator fix counts of one run.
type FixCounts struct {
	MissingFiles  int `json:"missing_files"`
	ResearchLinks int `json:"research_links"`
	SampleLinks   int `json:"sample_links"`
}

// Total sums the per-remediator counts.
func (c FixCounts) Total() int {
	return c.MissingFiles + c.ResearchLinks + c.SampleLinks
}

// ValidationReport is the post-remediation re-scan summary.
type ValidationReport struct {
	FilesCreated        int              `json:"files_created"`
	FilesUpdated        int              `json:"files_updated"`
	RemainingIssues     int              `json:"remaining_issues"`
	RemainingByCategory map[Category]int `json:"remaining_by_category"`
	CreatedFiles        []string         `json:"created_files"`
	UpdatedFiles        []string         `json:"updated_files"`
}

// FixSummary is the aggregate result of one orchestrated fix run. Its JSON
// shape is the contract downstream report consumers rely on.
type FixSummary struct {
	InitialIssues int              `json:"initial_issues"`
	FixesApplied  FixCounts        `json:"fixes_applied"`
	TotalFixes    int              `json:"total_fixes"`
	Validation    ValidationReport `json:"validation"`
	DryRun        bool             `json:"dry_run"`
}
