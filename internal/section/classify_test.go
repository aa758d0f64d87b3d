package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasContent(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"# A\n## B\n", false},
		{"# A\n\n   \n## B", false},
		{"", false},
		{"# A\n\ntext", true},
		{"#NoSpace", true},
		{"plain", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasContent(tt.text), "text %q", tt.text)
	}
}

func TestIsTOC(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"chinese keyword", "# 目录\n\n正文内容", true},
		{"keyword with list body", "# 目录\n\n1. A\n2. B\n3. C\n4. D\n", true},
		{"table of contents", "## Table of Contents\nIntro text", true},
		{"toc upper case", "# Book TOC\nx", true},
		{"keyword only counts on last heading", "# 目录\n## Chapter\ntext", false},
		{"keyword must be last word", "# Contents of the box\ntext", false},
		{"mixed list over threshold", "## Overview\n1. foo\n- bar\n2. baz\n- qux", true},
		{"mixed list at threshold", "## Overview\n1. foo\n- bar\n2. baz", false},
		{"mixed list two lines", "## Overview\n1. foo\n- bar", false},
		{"numbering only", "## Steps\n1. a\n2. b\n3. c\n4. d\n5. e", false},
		{"bullets only", "## Notes\n- a\n- b\n* c\n* d", false},
		{"cjk numerals with bullets", "## 概览\n一、概述\n* 条目\n二、细节\n* 条目二", true},
		{"parenthesised numbers are bullets", "## Steps\n1. a\n1) b\n2. c\n2) d", true},
		{"prose", "## Story\nOnce upon a time.\nThe end.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTOC(tt.text))
		})
	}
}

func TestAccept(t *testing.T) {
	assert.True(t, Accept("# A\n\nbody"))
	assert.False(t, Accept("# A\n## B\n"), "heading-only")
	assert.False(t, Accept("# 目录\n\nanything"), "toc keyword")
	assert.False(t, Accept(""))
}

func TestAccept_Deterministic(t *testing.T) {
	inputs := []string{
		"# A\n\nbody",
		"## Overview\n1. foo\n- bar\n2. baz\n- qux",
		"# A\n## B\n",
	}
	for _, in := range inputs {
		assert.Equal(t, Accept(in), Accept(in), "input %q", in)
	}
}
