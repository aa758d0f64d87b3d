package structurize

import "testing"

func TestExtractStructure(t *testing.T) {
	text := "# Title\nintro\n  ## Sub  \n\nbody\n#hashtag"
	want := "# Title\n## Sub\n#hashtag"
	if got := ExtractStructure(text); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractStructure_NoHeadings(t *testing.T) {
	if got := ExtractStructure("just text"); got != "" {
		t.Errorf("expected empty structure, got %q", got)
	}
}

func TestMergeResults_Single(t *testing.T) {
	if got := MergeResults([]string{"# A\n\nbody"}); got != "# A\n\nbody" {
		t.Errorf("expected single result unchanged, got %q", got)
	}
}

func TestMergeResults_Empty(t *testing.T) {
	if got := MergeResults(nil); got != "" {
		t.Errorf("expected empty merge, got %q", got)
	}
}

func TestMergeResults_DropsRepeatedHeadings(t *testing.T) {
	first := "# Book\n\n## Part 1\n\nText one."
	second := "# Book\n\n## Part 1\n\nMore one.\n\n## Part 2\n\nText two.\n"

	got := MergeResults([]string{first, second})

	want := "# Book\n\n## Part 1\n\nText one.\n\nMore one.\n## Part 2\nText two."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMergeResults_SkipsEmptyContributions(t *testing.T) {
	got := MergeResults([]string{"# A\nbody\n", "# A\n\n   \n"})
	if got != "# A\nbody\n" {
		t.Errorf("expected nothing appended, got %q", got)
	}
}

func TestValidateRewrite(t *testing.T) {
	if err := ValidateRewrite("  \n "); err != ErrEmptyRewrite {
		t.Errorf("expected ErrEmptyRewrite, got %v", err)
	}
	if err := ValidateRewrite("# ok"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestHasHeadings(t *testing.T) {
	if !HasHeadings("intro\n## Part\nbody") {
		t.Error("expected headings to be found")
	}
	if HasHeadings("#hashtag only\nbody") {
		t.Error("expected malformed heading to be ignored")
	}
}
