package scan

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/storage"
)

// Target substrings recognised by the classifier.
const (
	// ResearchMarker identifies links emitted by the broken research-link
	// generator. Any target containing it is a research_link.
	ResearchMarker = "perform_research_research_"
	// SampleMarker identifies references into the sample project three
	// levels up from the docs tree.
	SampleMarker = "../../../sample-project/"
)

// verdict is the outcome of a matched rule. A zero category means the link
// is ok and needs no remediation.
type verdict struct {
	category models.Category
	resolved string
}

// rule inspects a (document, target) pair and reports whether it decides the
// link's fate. Rules are evaluated in a fixed priority order; the first match
// wins, so categories stay mutually exclusive.
type rule func(docAbs, target string) (verdict, bool)

// Scanner runs extraction and classification over a documentation tree.
type Scanner struct {
	tree   *storage.Tree
	logger *slog.Logger
	rules  []rule
}

// NewScanner creates a Scanner for the given tree.
func NewScanner(tree *storage.Tree, logger *slog.Logger) *Scanner {
	s := &Scanner{tree: tree, logger: logger}
	s.rules = []rule{
		s.externalRule,
		s.researchRule,
		s.sampleRule,
		s.existenceRule,
	}
	return s
}

// Scan walks the whole tree, extracts every link, and returns the classified
// report. A document that cannot be read is logged and skipped; only a
// failure to enumerate the tree itself is returned as an error.
func (s *Scanner) Scan() (*models.ScanReport, error) {
	paths, err := s.tree.Paths()
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	report := models.NewScanReport()
	for _, path := range paths {
		data, err := s.tree.Read(path)
		if err != nil {
			s.logger.Error("scan: read document failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		for _, m := range ExtractLinks(string(data)) {
			s.classify(report, path, m)
		}
	}

	s.logger.Info("scan: complete", slog.Int("broken_links", report.Total()))
	for _, c := range models.Categories() {
		if n := len(report.ByCategory[c]); n > 0 {
			s.logger.Info("scan: category",
				slog.String("category", string(c)),
				slog.Int("count", n))
		}
	}
	return report, nil
}

// classify runs the rule chain for one link occurrence and records the
// result when it is not ok.
func (s *Scanner) classify(report *models.ScanReport, docRel string, m LinkMatch) {
	docAbs, err := s.tree.Abs(docRel)
	if err != nil {
		return
	}
	for _, r := range s.rules {
		v, matched := r(docAbs, m.Target)
		if !matched {
			continue
		}
		if v.category == "" {
			return // ok, out of remediation scope
		}
		report.Add(v.category, models.BrokenLink{
			File:         docRel,
			LinkText:     m.Text,
			URL:          m.Target,
			ResolvedPath: v.resolved,
			LineContext:  s.lineContext(docRel, m.Target),
		})
		return
	}
}

// externalRule passes through URLs, mail references, and same-page anchors.
func (s *Scanner) externalRule(_, target string) (verdict, bool) {
	for _, prefix := range []string{"http", "https", "mailto:", "#"} {
		if strings.HasPrefix(target, prefix) {
			return verdict{}, true
		}
	}
	return verdict{}, false
}

func (s *Scanner) researchRule(_, target string) (verdict, bool) {
	if strings.Contains(target, ResearchMarker) {
		return verdict{category: models.CategoryResearchLink}, true
	}
	return verdict{}, false
}

func (s *Scanner) sampleRule(_, target string) (verdict, bool) {
	if strings.Contains(target, SampleMarker) {
		return verdict{category: models.CategorySampleProjectLink}, true
	}
	return verdict{}, false
}

// existenceRule is the terminal rule: it always matches. Unresolvable
// targets are reported as missing_file rather than raised as errors, and an
// extension-less target whose sibling-with-extension exists is treated as
// valid.
func (s *Scanner) existenceRule(docAbs, target string) (verdict, bool) {
	resolved, ok := Resolve(docAbs, target)
	if !ok {
		return verdict{category: models.CategoryMissingFile, resolved: models.Unresolvable}, true
	}
	if storage.Exists(resolved) {
		return verdict{}, true
	}
	if !strings.HasSuffix(target, s.tree.Ext()) && storage.Exists(resolved+s.tree.Ext()) {
		return verdict{}, true
	}
	// Normalise extension-less targets so the recorded path is the one the
	// stub generator will create.
	if filepath.Ext(resolved) == "" {
		resolved += s.tree.Ext()
	}
	return verdict{category: models.CategoryMissingFile, resolved: resolved}, true
}

// lineContext recovers the first source line containing the raw target.
func (s *Scanner) lineContext(docRel, target string) string {
	data, err := s.tree.Read(docRel)
	if err != nil {
		return "Error reading context"
	}
	for i, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, target) {
			return fmt.Sprintf("Line %d: %s", i+1, strings.TrimSpace(line))
		}
	}
	return "Context not found"
}
