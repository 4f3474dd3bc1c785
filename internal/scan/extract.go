// Package scan locates Markdown-style links in a documentation tree and
// classifies each one as ok or as a remediation category.
package scan

import "regexp"

// linkRe matches [display text](target) constructs in a single pass.
// Display text excludes "]", target excludes ")". Unbalanced brackets simply
// produce no match.
var linkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// LinkMatch is one link occurrence inside a document.
type LinkMatch struct {
	Text   string // display text between the square brackets
	Target string // raw target string as written
}

// ExtractLinks returns every link occurrence in content, in order of first
// appearance.
func ExtractLinks(content string) []LinkMatch {
	matches := linkRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]LinkMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, LinkMatch{Text: m[1], Target: m[2]})
	}
	return out
}
