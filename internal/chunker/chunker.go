package chunker

import (
	"strings"
	"unicode/utf8"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize int // Maximum chunk size in characters (runes).
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 3000, // ~1000 CJK characters once rewritten with markup.
	}
}

// Split breaks text into pieces of at most cfg.ChunkSize characters for the
// rewrite service. Paragraphs are packed greedily; a paragraph that is too
// long on its own is split by sentences. Sentences longer than the limit are
// kept whole.
func Split(text string, cfg Config) []string {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}

	if runeLen(text) <= cfg.ChunkSize {
		return []string{text}
	}

	var result []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if t := strings.TrimSpace(current.String()); t != "" {
			result = append(result, t)
		}
		current.Reset()
		currentLen = 0
	}

	for _, para := range strings.Split(text, "\n\n") {
		paraLen := runeLen(para)

		// Oversized paragraph: flush, then split by sentences.
		if paraLen > cfg.ChunkSize {
			flush()
			result = append(result, packSentences(para, cfg.ChunkSize)...)
			continue
		}

		if currentLen+paraLen+2 > cfg.ChunkSize && currentLen > 0 {
			flush()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
		currentLen += paraLen + 2
	}
	flush()

	return result
}

// packSentences greedily packs the sentences of one paragraph.
func packSentences(para string, limit int) []string {
	var result []string
	var current strings.Builder
	currentLen := 0

	for _, sent := range splitSentences(para) {
		sentLen := runeLen(sent)
		if currentLen+sentLen > limit && currentLen > 0 {
			if t := strings.TrimSpace(current.String()); t != "" {
				result = append(result, t)
			}
			current.Reset()
			currentLen = 0
		}
		current.WriteString(sent)
		currentLen += sentLen
	}
	if t := strings.TrimSpace(current.String()); t != "" {
		result = append(result, t)
	}
	return result
}

// splitSentences cuts after 。！？ and after .!? followed by a space.
// Concatenating the result gives back the input.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i, r := range text {
		end := i + utf8.RuneLen(r)
		switch r {
		case '。', '！', '？':
		case '.', '!', '?':
			if end >= len(text) || text[end] != ' ' {
				continue
			}
			end++ // keep the space with its sentence
		default:
			continue
		}
		sentences = append(sentences, text[start:end])
		start = end
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
