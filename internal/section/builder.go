package section

import "strings"

// Build assembles one section from its raw lines. The section's own level is
// taken from its first heading line; the breadcrumb is every distinct stack
// entry from level 1 down to that level. Body lines repeating a breadcrumb
// heading verbatim (after trimming) are dropped.
//
// Heading-only input is assembled as usual; rejecting it is Accept's job.
func Build(stack *HeadingStack, content []string) string {
	level := 0
	for _, line := range content {
		if l, ok := Recognize(line); ok {
			level = l
			break
		}
	}
	if level == 0 {
		return strings.Join(content, "\n")
	}

	var breadcrumb []string
	seen := make(map[string]bool)
	for l := 1; l <= level; l++ {
		raw, ok := stack.At(l)
		if !ok {
			continue
		}
		key := strings.TrimSpace(raw)
		if seen[key] {
			continue
		}
		seen[key] = true
		breadcrumb = append(breadcrumb, raw)
	}

	filtered := make([]string, 0, len(content))
	for _, line := range content {
		if !seen[strings.TrimSpace(line)] {
			filtered = append(filtered, line)
		}
	}

	if len(breadcrumb) == 0 {
		return strings.Join(filtered, "\n")
	}
	out := make([]string, 0, len(breadcrumb)+1+len(filtered))
	out = append(out, breadcrumb...)
	out = append(out, "")
	out = append(out, filtered...)
	return strings.Join(out, "\n")
}
