// Package sink writes split sections to the file system.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docsplit/internal/section"
)

// FileSink writes the sections of one document under Dir.
type FileSink struct {
	Dir        string
	PerSection bool // Also write one file per section
}

// CombinedName returns the name of the combined output file for stem.
func CombinedName(stem string) string {
	return stem + "_processed.txt"
}

// SectionName returns the name of the n-th (1-based) per-section file.
func SectionName(stem string, n int) string {
	return fmt.Sprintf("%s_%03d.txt", stem, n)
}

// Write stores sections and returns the paths written, combined file first.
func (s FileSink) Write(ctx context.Context, stem string, sections []string) ([]string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	combined := filepath.Join(dir, CombinedName(stem))
	if err := os.WriteFile(combined, []byte(strings.Join(sections, "\n")), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", combined, err)
	}
	paths := []string{combined}

	if !s.PerSection {
		return paths, nil
	}
	for i, sec := range sections {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		p := filepath.Join(dir, SectionName(stem, i+1))
		if err := os.WriteFile(p, []byte(sec), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ReadSections splits the contents of a combined file back into sections.
func ReadSections(text string) []string {
	parts := strings.Split(text, section.Separator)
	sections := make([]string, 0, len(parts))
	for i, p := range parts {
		if i > 0 {
			p = strings.TrimPrefix(p, "\n")
		}
		if i == len(parts)-1 && strings.TrimSpace(p) == "" {
			break
		}
		sections = append(sections, p+section.Separator)
	}
	return sections
}
