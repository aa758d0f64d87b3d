package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_SmallTextFitsOneChunk(t *testing.T) {
	text := "Short text.\n\nStill short."
	chunks := Split(text, Config{ChunkSize: 100})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected untouched text %q, got %q", text, chunks[0])
	}
}

func TestSplit_PacksParagraphs(t *testing.T) {
	para := strings.Repeat("a", 40)
	text := strings.Join([]string{para, para, para, para}, "\n\n")

	// Two 40-char paragraphs plus separators fit in 90, three do not.
	chunks := Split(text, Config{ChunkSize: 90})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	want := para + "\n\n" + para
	for i, c := range chunks {
		if c != want {
			t.Errorf("chunk %d: expected %q, got %q", i, want, c)
		}
	}
}

func TestSplit_NoChunkExceedsLimit(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 300)
	text += "\n\n" + strings.Repeat("短句。", 400)

	cfg := Config{ChunkSize: 500}
	chunks := Split(text, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for large text, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > cfg.ChunkSize {
			t.Errorf("chunk %d: %d characters exceeds limit %d", i, n, cfg.ChunkSize)
		}
		if strings.TrimSpace(c) != c {
			t.Errorf("chunk %d: expected trimmed chunk, got %q", i, c)
		}
	}
}

func TestSplit_OversizedParagraphFlushesCurrent(t *testing.T) {
	small := "Intro paragraph."
	big := strings.Repeat("这是一个句子。", 20) // 140 characters
	text := small + "\n\n" + big + "\n\n" + "Outro."

	chunks := Split(text, Config{ChunkSize: 50})

	if chunks[0] != small {
		t.Errorf("expected first chunk %q, got %q", small, chunks[0])
	}
	if last := chunks[len(chunks)-1]; last != "Outro." {
		t.Errorf("expected last chunk %q, got %q", "Outro.", last)
	}
	joined := strings.Join(chunks[1:len(chunks)-1], "")
	if joined != big {
		t.Errorf("sentence chunks should reassemble the paragraph, got %q", joined)
	}
}

func TestSplit_CountsRunesNotBytes(t *testing.T) {
	// 30 CJK characters are 90 bytes but fit a 40-character limit.
	text := strings.Repeat("字", 30)
	chunks := Split(text, Config{ChunkSize: 40})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSplit_DefaultConfigFallback(t *testing.T) {
	text := strings.Repeat("word ", 100)
	chunks := Split(text, Config{})
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk with default size, got %d", len(chunks))
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"一。二！三？", []string{"一。", "二！", "三？"}},
		{"One. Two! Three", []string{"One. ", "Two! ", "Three"}},
		{"v1.2 is out.", []string{"v1.2 is out."}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitSentences(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("splitSentences(%q): expected %q, got %q", tt.in, tt.want, got)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("splitSentences(%q)[%d]: expected %q, got %q", tt.in, i, tt.want[i], got[i])
			}
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("expected 0 for empty text, got %d", got)
	}
	if got := EstimateTokens("   "); got != 1 {
		t.Errorf("expected floor of 1, got %d", got)
	}
	if got := EstimateTokens("中文字"); got != 3 {
		t.Errorf("expected 3 tokens for 3 CJK characters, got %d", got)
	}
	// 3 words * 1.33 = 3.99 -> 3
	if got := EstimateTokens("one two three"); got != 3 {
		t.Errorf("expected 3 tokens, got %d", got)
	}
}
