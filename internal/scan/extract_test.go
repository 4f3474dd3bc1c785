package scan

import "testing"

func TestExtractLinks_Basic(t *testing.T) {
	content := "See [guide](./guide.md) and [site](https://example.com).\n"
	links := ExtractLinks(content)
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	if links[0].Text != "guide" || links[0].Target != "./guide.md" {
		t.Errorf("first link = %+v", links[0])
	}
	if links[1].Text != "site" || links[1].Target != "https://example.com" {
		t.Errorf("second link = %+v", links[1])
	}
}

func TestExtractLinks_OrderOfAppearance(t *testing.T) {
	content := "[b](b.md) then [a](a.md) then [b](b.md)"
	links := ExtractLinks(content)
	if len(links) != 3 {
		t.Fatalf("len(links) = %d, want 3", len(links))
	}
	if links[0].Target != "b.md" || links[1].Target != "a.md" || links[2].Target != "b.md" {
		t.Errorf("links out of order: %+v", links)
	}
}

func TestExtractLinks_EmptyDisplayText(t *testing.T) {
	links := ExtractLinks("[](target.md)")
	if len(links) != 1 {
		t.Fatalf("len(links) = %d, want 1", len(links))
	}
	if links[0].Text != "" {
		t.Errorf("text = %q, want empty", links[0].Text)
	}
}

func TestExtractLinks_MalformedSkippedSilently(t *testing.T) {
	cases := []string{
		"[unclosed](target.md",
		"[text]no-parens",
		"just text with ] and ( scattered",
		"[]()",
	}
	for _, c := range cases {
		if links := ExtractLinks(c); links != nil {
			t.Errorf("ExtractLinks(%q) = %+v, want none", c, links)
		}
	}
}

func TestExtractLinks_None(t *testing.T) {
	if links := ExtractLinks("plain text"); links != nil {
		t.Errorf("expected nil, got %+v", links)
	}
}
