package structurize

import "strings"

// ExtractStructure returns the heading lines of text, trimmed, one per line.
// It is what a continuation chunk is told about the document so far.
func ExtractStructure(text string) string {
	var structure []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); strings.HasPrefix(t, "#") {
			structure = append(structure, t)
		}
	}
	return strings.Join(structure, "\n")
}

// MergeResults joins rewritten chunks into one document. The first result is
// kept as is. Later results contribute heading lines not seen before and
// every non-blank content line; their blank lines are dropped.
func MergeResults(results []string) string {
	if len(results) == 0 {
		return ""
	}

	merged := results[0]
	seen := make(map[string]bool)
	for _, h := range strings.Split(ExtractStructure(merged), "\n") {
		seen[h] = true
	}

	for _, result := range results[1:] {
		var lines []string
		for _, line := range strings.Split(result, "\n") {
			t := strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(t, "#"):
				if !seen[t] {
					seen[t] = true
					lines = append(lines, line)
				}
			case t != "":
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		if !strings.HasSuffix(merged, "\n") {
			merged += "\n"
		}
		if !strings.HasSuffix(merged, "\n\n") {
			merged += "\n"
		}
		merged += strings.Join(lines, "\n")
	}
	return merged
}
