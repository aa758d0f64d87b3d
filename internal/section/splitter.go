// Package section splits a heading-annotated document into self-contained
// sections. Each emitted section carries the breadcrumb of its ancestor
// headings, and heading-only stubs and table-of-contents blocks are dropped.
package section

import (
	"io"
	"log/slog"
	"strings"
)

// Separator terminates every emitted section.
var Separator = "\n\n" + strings.Repeat("-", 40) + "\n"

// Splitter partitions documents into sections. The zero value is usable and
// silent. A Splitter holds no per-document state and is safe for concurrent
// use.
type Splitter struct {
	log *slog.Logger
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger reports progress to log.
func WithLogger(log *slog.Logger) Option {
	return func(s *Splitter) {
		s.log = log
	}
}

// NewSplitter returns a Splitter configured by opts.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var silent = slog.New(slog.NewTextHandler(io.Discard, nil))

// Split splits text with a silent Splitter.
func Split(text string) []string {
	return (&Splitter{}).Split(text)
}

// Split scans text once, line by line. Only heading lines open a new
// section; the previous one is assembled against the heading stack as it
// stood before the new heading. Accepted sections are returned in document
// order, each terminated by Separator. Split never fails: input with nothing
// worth keeping yields an empty result.
func (s *Splitter) Split(text string) []string {
	log := s.log
	if log == nil {
		log = silent
	}
	log.Info("splitting document into sections", "bytes", len(text))

	raw := s.scan(text)

	sections := make([]string, 0, len(raw))
	for _, sec := range raw {
		if !Accept(sec) {
			continue
		}
		sections = append(sections, sec+Separator)
	}

	log.Info("document split", "segments", len(raw), "sections", len(sections))
	return sections
}

// scan returns every assembled segment before filtering.
func (s *Splitter) scan(text string) []string {
	var (
		stack    HeadingStack
		segments []string
		current  []string
	)

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				current = append(current, line)
			}
			continue
		}
		if level, ok := Recognize(line); ok {
			if len(current) > 0 {
				segments = append(segments, Build(&stack, current))
				current = nil
			}
			stack.Update(level, line)
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		segments = append(segments, Build(&stack, current))
	}
	return segments
}

// Titles holds the heading title found at each level, indexed by level.
// Index 0 is unused; an empty string means no heading at that level.
type Titles [MaxLevel + 1]string

// Level returns the title at level.
func (t Titles) Level(level int) (string, bool) {
	if level < 1 || level > MaxLevel || t[level] == "" {
		return "", false
	}
	return t[level], true
}

// Map returns the titles keyed "level1" through "level6". Levels without a
// heading map to nil.
func (t Titles) Map() map[string]*string {
	m := make(map[string]*string, MaxLevel)
	for l := 1; l <= MaxLevel; l++ {
		key := "level" + string(rune('0'+l))
		if title, ok := t.Level(l); ok {
			m[key] = &title
		} else {
			m[key] = nil
		}
	}
	return m
}

// SectionInfo returns the heading titles present in section's own lines,
// markers and surrounding whitespace stripped. A later heading at the same
// level replaces an earlier one.
func SectionInfo(section string) Titles {
	var t Titles
	for _, line := range strings.Split(section, "\n") {
		if level, title, ok := parseHeading(line); ok {
			t[level] = title
		}
	}
	return t
}
