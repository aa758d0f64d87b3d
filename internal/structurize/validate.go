package structurize

import (
	"errors"
	"strings"

	"github.com/dgallion1/docsplit/internal/section"
)

// ErrEmptyRewrite is returned when the rewrite service answers with no text.
var ErrEmptyRewrite = errors.New("empty rewrite")

// ValidateRewrite checks a rewritten chunk before it is used.
func ValidateRewrite(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyRewrite
	}
	return nil
}

// HasHeadings reports whether text contains at least one heading line.
func HasHeadings(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if _, ok := section.Recognize(line); ok {
			return true
		}
	}
	return false
}
