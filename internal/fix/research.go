package fix

import (
	"log/slog"
	"regexp"

	"github.com/docmend/docmend/internal/models"
)

// inlineMarker is the comment that replaces a dead research link, embedding
// the original target so the reference is recoverable.
func inlineMarker(url string) string {
	return "<!-- TODO: Fix research link: " + url + " -->"
}

// rewriteResearchLinks replaces every flagged research link with an inline
// marker, processing one source document at a time. Returns the number of
// links rewritten (or, in dry-run mode, that would be rewritten).
func (f *Fixer) rewriteResearchLinks(records []models.BrokenLink) int {
	// Group by source document, preserving first-seen order.
	byFile := make(map[string][]models.BrokenLink)
	var order []string
	for _, rec := range records {
		if _, seen := byFile[rec.File]; !seen {
			order = append(order, rec.File)
		}
		byFile[rec.File] = append(byFile[rec.File], rec)
	}

	rewritten := 0
	for _, file := range order {
		if f.rewriteDoc(file, byFile[file]) {
			rewritten += len(byFile[file])
		}
	}
	f.logger.Info("fix: research links done", slog.Int("rewritten", rewritten))
	return rewritten
}

// rewriteDoc applies all substitutions for one document. Only link constructs
// whose target is byte-identical to a flagged one are rewritten; the match is
// exact-escaped, never prefix or substring. The document is written back only
// when its content actually changed. A read/write failure is logged and the
// remaining documents proceed.
func (f *Fixer) rewriteDoc(docRel string, links []models.BrokenLink) bool {
	data, err := f.tree.Read(docRel)
	if err != nil {
		f.logger.Error("fix: rewrite read failed",
			slog.String("path", docRel),
			slog.String("error", err.Error()))
		return false
	}

	content := string(data)
	original := content
	for _, l := range links {
		re, err := regexp.Compile(`\[([^\]]*)\]\(` + regexp.QuoteMeta(l.URL) + `\)`)
		if err != nil {
			continue
		}
		content = re.ReplaceAllLiteralString(content, inlineMarker(l.URL))
	}
	if content == original {
		return false
	}

	abs, err := f.tree.Abs(docRel)
	if err != nil {
		return false
	}

	if f.dryRun {
		f.logger.Info("fix: [dry run] would update", slog.String("path", docRel))
		f.updated[abs] = struct{}{}
		return true
	}

	if err := f.tree.Write(docRel, []byte(content)); err != nil {
		f.logger.Error("fix: rewrite write failed",
			slog.String("path", docRel),
			slog.String("error", err.Error()))
		return false
	}

	f.logger.Info("fix: updated research links", slog.String("path", docRel))
	f.updated[abs] = struct{}{}
	return true
}
