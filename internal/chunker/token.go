package chunker

import (
	"strings"
	"unicode"
)

// EstimateTokens gives a rough token count: one token per CJK character and
// ~1.33 tokens per remaining whitespace-separated word.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	cjk := 0
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			cjk++
		}
	}
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
	}))
	tokens := cjk + int(float64(words)*1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
