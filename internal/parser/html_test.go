package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsBecomeMarkdown(t *testing.T) {
	input := `<html><head><title>Guide</title><style>p{}</style></head><body>
<nav>skip me</nav>
<h1>Guide</h1>
<p>Intro   text.</p>
<h2>Install
  steps</h2>
<ul><li>one</li><li>two</li></ul>
<script>var x;</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Guide" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	want := "# Guide\n\nIntro   text.\n\n## Install steps\n\none\n\ntwo\n"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestHTMLParser_TitleFallsBackToFilename(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", doc.Title)
	}
	if doc.Text != "hi\n" {
		t.Errorf("expected %q, got %q", "hi\n", doc.Text)
	}
}
