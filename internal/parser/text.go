package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docsplit/internal/doctree"
)

// TextParser handles plain text files.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// ScanLines drops the trailing '\r' of CRLF input.
	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &doctree.Document{
		Title: Stem(filename),
		Text:  sb.String(),
	}, nil
}
