package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docsplit/internal/section"
)

func newTestRunner(opts splitOptions) *runner {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &runner{
		splitter: section.NewSplitter(section.WithLogger(log)),
		log:      log,
		opts:     opts,
	}
}

func TestReadUntilEnd(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"stops at marker", "a\nb\nEND\nignored\n", "a\nb"},
		{"eof", "a\nb\n", "a\nb"},
		{"crlf", "a\r\nEND\r\n", "a"},
		{"marker must be whole line", "the END\nx", "the END\nx"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readUntilEnd(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunStdin(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(splitOptions{})

	err := r.runStdin(context.Background(), strings.NewReader("# A\n\nbody\nEND\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "\n# A\n\n\nbody"+section.Separator+"\n", out.String())
}

func TestRunStdin_Empty(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(splitOptions{})

	require.NoError(t, r.runStdin(context.Background(), strings.NewReader("  \nEND\n"), &out))
	assert.Empty(t, out.String())
}

func TestRunFiles(t *testing.T) {
	in := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	files := []string{
		filepath.Join(in, "one.md"),
		filepath.Join(in, "two.txt"),
	}
	require.NoError(t, os.WriteFile(files[0], []byte("# One\n\nfirst\n\n## Sub\n\nsecond\n"), 0o644))
	require.NoError(t, os.WriteFile(files[1], []byte("plain text\n"), 0o644))

	var out bytes.Buffer
	r := newTestRunner(splitOptions{outDir: outDir, perSection: true, jobs: 2})
	require.NoError(t, r.runFiles(context.Background(), files, &out))

	assert.Equal(t,
		filepath.Join(outDir, "one_processed.txt")+"\n"+filepath.Join(outDir, "two_processed.txt")+"\n",
		out.String())
	assert.FileExists(t, filepath.Join(outDir, "one_002.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "one_003.txt"))

	data, err := os.ReadFile(filepath.Join(outDir, "two_processed.txt"))
	require.NoError(t, err)
	assert.Equal(t, "plain text\n"+section.Separator, string(data))
}

func TestRunFiles_DefaultsNextToInput(t *testing.T) {
	in := t.TempDir()
	path := filepath.Join(in, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("# N\n\nbody\n"), 0o644))

	var out bytes.Buffer
	r := newTestRunner(splitOptions{jobs: 1})
	require.NoError(t, r.runFiles(context.Background(), []string{path}, &out))
	assert.FileExists(t, filepath.Join(in, "notes_processed.txt"))
}

func TestRunFiles_Unsupported(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(splitOptions{jobs: 1})
	err := r.runFiles(context.Background(), []string{"image.png"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image.png")
}
