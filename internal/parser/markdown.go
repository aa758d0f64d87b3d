package parser

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Top-level headings,
// setext or ATX, are rewritten as single ATX lines; every other source line
// is kept verbatim.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	lines := strings.Split(string(src), "\n")
	starts := lineStarts(src)

	// replace maps a first line index to its rendered heading and the
	// number of source lines it consumes.
	type replacement struct {
		heading string
		span    int
	}
	replace := make(map[int]replacement)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		segs := h.Lines()
		var parts []string
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			if t := strings.TrimSpace(string(seg.Value(src))); t != "" {
				parts = append(parts, t)
			}
		}
		title := strings.Join(parts, " ")
		if title == "" {
			continue
		}

		first := lineIndex(starts, segs.At(0).Start)
		last := lineIndex(starts, segs.At(segs.Len()-1).Start)
		span := 1
		if !isATXLine(lines[first]) {
			span = last - first + 2 // text lines plus the underline
		}
		replace[first] = replacement{heading: headingLine(h.Level, title), span: span}
	}

	var sb strings.Builder
	for i := 0; i < len(lines); i++ {
		if rep, ok := replace[i]; ok {
			sb.WriteString(rep.heading)
			i += rep.span - 1
		} else {
			sb.WriteString(lines[i])
		}
		if i < len(lines)-1 {
			sb.WriteByte('\n')
		}
	}

	return &doctree.Document{
		Title: Stem(filename),
		Text:  sb.String(),
	}, nil
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineIndex returns the line containing byte offset off.
func lineIndex(starts []int, off int) int {
	return sort.SearchInts(starts, off+1) - 1
}

// isATXLine reports whether line opens with an ATX heading marker.
func isATXLine(line string) bool {
	s := strings.TrimLeft(line, " ")
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return false
	}
	return n == len(s) || s[n] == ' ' || s[n] == '\t'
}
