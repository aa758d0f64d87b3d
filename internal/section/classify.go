package section

import (
	"regexp"
	"strings"
)

// tocKeywords are matched against the last word of a section's last heading.
// Multi-word entries never match a single word.
var tocKeywords = map[string]bool{
	"目录":                true,
	"contents":          true,
	"table of contents": true,
	"toc":               true,
}

// A TOC needs more body lines than this before the list heuristic applies.
const tocMinLines = 3

var (
	numberingPattern = regexp.MustCompile(`^(\p{Nd}+\.|[一二三四五六七八九十百千万零〇]+、)`)
	bulletPattern    = regexp.MustCompile(`^([-*]|\p{Nd}+\))`)
)

// HasContent reports whether text has at least one non-blank line that is
// not a heading.
func HasContent(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if _, ok := Recognize(t); !ok {
			return true
		}
	}
	return false
}

// IsTOC reports whether text looks like a table of contents.
//
// A TOC keyword as the last word of the last heading decides immediately.
// Otherwise the body must mix numbered and bulleted lines and have more
// than tocMinLines lines. Genuine mixed lists that long are misclassified.
func IsTOC(text string) bool {
	var lastHeading string
	var body []string
	for _, line := range strings.Split(text, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if _, ok := Recognize(t); ok {
			lastHeading = t
			continue
		}
		body = append(body, t)
	}

	if words := strings.Fields(lastHeading); len(words) > 0 {
		if tocKeywords[strings.ToLower(words[len(words)-1])] {
			return true
		}
	}

	var hasNumbering, hasBullets bool
	for _, line := range body {
		if numberingPattern.MatchString(line) {
			hasNumbering = true
		}
		if bulletPattern.MatchString(line) {
			hasBullets = true
		}
	}
	return hasNumbering && hasBullets && len(body) > tocMinLines
}

// Accept reports whether an assembled section should be emitted.
func Accept(text string) bool {
	return HasContent(text) && !IsTOC(text)
}
