package parser

import (
	"strings"
	"testing"
)

func TestCSVParser_BatchesUnderHeadings(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,age\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("bob,30\n")
	}

	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(sb.String()), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(doc.Text, "# people\n\nHeaders: name, age\n") {
		t.Errorf("unexpected preamble: %q", doc.Text[:40])
	}
	if !strings.Contains(doc.Text, "\n## Rows 2-21\n\nname: bob, age: 30\n") {
		t.Errorf("expected first batch heading, got %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "\n## Rows 22-26\n") {
		t.Errorf("expected second batch heading, got %q", doc.Text)
	}
	if n := strings.Count(doc.Text, "name: bob, age: 30\n"); n != 25 {
		t.Errorf("expected 25 rows, got %d", n)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}
