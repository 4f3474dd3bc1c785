package scan

import (
	"path/filepath"
	"strings"
)

// Resolve computes the candidate absolute filesystem path for a link target
// written inside the document at docAbs. It is pure path arithmetic and never
// touches the filesystem. The second return value is false when the target
// string is unusable (empty).
//
// Targets starting with "./" are joined to the document's directory with the
// marker stripped; "../" targets are joined whole (filepath.Join collapses
// the parent steps); anything else is treated as a plain same-directory
// relative path.
func Resolve(docAbs, target string) (string, bool) {
	if target == "" {
		return "", false
	}
	dir := filepath.Dir(docAbs)
	if strings.HasPrefix(target, "./") {
		return filepath.Join(dir, target[2:]), true
	}
	return filepath.Join(dir, target), true
}
