package fix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/testutil"
)

func TestCreateStub_FromResolvedPath(t *testing.T) {
	docsDir, f := newFixer(t, false)
	target := filepath.Join(docsDir, "reference", "api-reference.md")

	ok := f.createStub(models.BrokenLink{
		File:         "index.md",
		URL:          "./reference/api-reference.md",
		ResolvedPath: target,
	})
	if !ok {
		t.Fatal("createStub = false")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("stub missing: %v", err)
	}
	if !strings.Contains(string(data), "# 📚 Api Reference Reference") {
		t.Errorf("reference template heading missing:\n%s",
			strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestCreateStub_RecomputesWhenUnresolvable(t *testing.T) {
	docsDir, f := newFixer(t, false)
	testutil.WriteDoc(t, docsDir, "index.md", "[x](setup-guide)\n")

	ok := f.createStub(models.BrokenLink{
		File:         "index.md",
		URL:          "setup-guide",
		ResolvedPath: models.Unresolvable,
	})
	if !ok {
		t.Fatal("createStub = false")
	}
	if _, err := os.Stat(filepath.Join(docsDir, "setup-guide.md")); err != nil {
		t.Errorf("recomputed stub missing: %v", err)
	}
}

func TestCreateStub_DuplicateTargetSkipped(t *testing.T) {
	docsDir, f := newFixer(t, false)
	rec := models.BrokenLink{
		File:         "a.md",
		URL:          "./shared",
		ResolvedPath: filepath.Join(docsDir, "shared"),
	}
	if !f.createStub(rec) {
		t.Fatal("first create failed")
	}
	// Same target referenced from another document: silent no-op.
	rec.File = "b.md"
	if f.createStub(rec) {
		t.Error("duplicate target should be skipped")
	}
	if len(f.created) != 1 {
		t.Errorf("created set size = %d, want 1", len(f.created))
	}
}

func TestCreateStub_DryRunCountsWithoutWriting(t *testing.T) {
	docsDir, f := newFixer(t, true)
	target := filepath.Join(docsDir, "ghost")

	if !f.createStub(models.BrokenLink{File: "a.md", URL: "./ghost", ResolvedPath: target}) {
		t.Fatal("dry-run create should report success")
	}
	if _, err := os.Stat(target + ".md"); err == nil {
		t.Error("dry run wrote a file")
	}
	// Duplicate suppression also applies in dry-run mode.
	if f.createStub(models.BrokenLink{File: "b.md", URL: "./ghost", ResolvedPath: target}) {
		t.Error("dry-run duplicate should be skipped")
	}
}

func TestCreateStub_ForcesExtension(t *testing.T) {
	docsDir, f := newFixer(t, false)
	if !f.createStub(models.BrokenLink{
		File:         "index.md",
		URL:          "./tutorials/getting-started",
		ResolvedPath: filepath.Join(docsDir, "tutorials", "getting-started"),
	}) {
		t.Fatal("createStub = false")
	}
	data, err := os.ReadFile(filepath.Join(docsDir, "tutorials", "getting-started.md"))
	if err != nil {
		t.Fatalf("extension not forced: %v", err)
	}
	if !strings.Contains(string(data), "# 🎓 Tutorial: Getting Started") {
		t.Errorf("tutorial template heading missing")
	}
}

func TestCreateStubs_TemplateSelectionByMarker(t *testing.T) {
	docsDir, f := newFixer(t, false)

	cases := []struct {
		url     string
		heading string
	}{
		{"./how-to-guides/deploy.md", "# 🛠️ How-To: Deploy"},
		{"./reference/config.md", "# 📚 Config Reference"},
		{"./explanation/design.md", "# 🧠 Design"},
		{"./tutorials/first-steps.md", "# 🎓 Tutorial: First Steps"},
		{"./notes/other_page.md", "# Other Page"},
	}
	for _, c := range cases {
		abs := filepath.Join(docsDir, strings.TrimPrefix(c.url, "./"))
		if !f.createStub(models.BrokenLink{File: "index.md", URL: c.url, ResolvedPath: abs}) {
			t.Fatalf("createStub(%s) failed", c.url)
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			t.Fatalf("read %s: %v", abs, err)
		}
		first := strings.SplitN(string(data), "\n", 2)[0]
		if first != c.heading {
			t.Errorf("%s: heading = %q, want %q", c.url, first, c.heading)
		}
	}
}
