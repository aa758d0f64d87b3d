package section

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLevel is the deepest heading level tracked.
const MaxLevel = 6

// Recognize reports the heading level of line, if it is one.
// A heading is 1-6 '#' characters, at least one whitespace rune,
// and a non-empty title, after trimming the line.
func Recognize(line string) (int, bool) {
	level, _, ok := parseHeading(line)
	return level, ok
}

// parseHeading returns the level and title of a heading line.
func parseHeading(line string) (int, string, bool) {
	s := strings.TrimSpace(line)
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > MaxLevel {
		return 0, "", false
	}
	rest := s[level:]
	r, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || !unicode.IsSpace(r) {
		return 0, "", false
	}
	title := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if title == "" {
		return 0, "", false
	}
	return level, title, true
}

// HeadingStack holds the nearest preceding raw heading line at each level.
// Index 0 is unused so levels index directly.
type HeadingStack struct {
	lines [MaxLevel + 1]string
	set   [MaxLevel + 1]bool
}

// Update records raw as the heading at level and clears every deeper level.
func (s *HeadingStack) Update(level int, raw string) {
	if level < 1 || level > MaxLevel {
		return
	}
	s.lines[level] = raw
	s.set[level] = true
	for l := level + 1; l <= MaxLevel; l++ {
		s.lines[l] = ""
		s.set[l] = false
	}
}

// At returns the raw heading line held at level.
func (s *HeadingStack) At(level int) (string, bool) {
	if level < 1 || level > MaxLevel || !s.set[level] {
		return "", false
	}
	return s.lines[level], true
}
