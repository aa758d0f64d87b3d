package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/dgallion1/docsplit/internal/section"
	"github.com/dgallion1/docsplit/internal/sink"
	"github.com/dgallion1/docsplit/internal/structurize"
)

// endMarker terminates interactive input.
const endMarker = "END"

type splitOptions struct {
	structure  bool
	outDir     string
	perSection bool
	jobs       int
}

func newSplitCmd(logger func() *slog.Logger) *cobra.Command {
	var opts splitOptions

	cmd := &cobra.Command{
		Use:   "split [files...]",
		Short: "Split files, or text read from stdin, into sections",
		Long: `Split each file into sections and write <name>_processed.txt next to
it, or into --out when given. Without files, text is read from stdin
until EOF or a line containing only END, and the sections are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var st *structurize.Structurizer
			if opts.structure {
				if !cfg.StructuringEnabled() {
					return fmt.Errorf("--structure requires ANTHROPIC_API_KEY")
				}
				claude := structurize.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
				defer claude.Close()
				st = structurize.New(claude, chunker.Config{ChunkSize: cfg.StructureChunkSize}, log)
			}

			r := &runner{
				st:       st,
				splitter: section.NewSplitter(section.WithLogger(log)),
				log:      log,
				opts:     opts,
				parser:   parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
			}
			if len(args) == 0 {
				return r.runStdin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return r.runFiles(cmd.Context(), args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&opts.structure, "structure", "s", false, "restructure text into headed markdown before splitting")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to each input file)")
	cmd.Flags().BoolVar(&opts.perSection, "per-section", false, "also write one file per section")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of files processed concurrently")
	return cmd
}

type runner struct {
	st       *structurize.Structurizer // nil unless --structure
	splitter *section.Splitter
	log      *slog.Logger
	opts     splitOptions
	parser   parser.Options
}

func (r *runner) sections(ctx context.Context, text string) ([]string, error) {
	if r.st != nil {
		out, err := r.st.Process(ctx, text, func(done, total int) {
			r.log.Info("structured chunk", "done", done, "total", total)
		})
		if err != nil {
			return nil, fmt.Errorf("structure: %w", err)
		}
		text = out
	}
	return r.splitter.Split(text), nil
}

func (r *runner) runStdin(ctx context.Context, in io.Reader, out io.Writer) error {
	text, err := readUntilEnd(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		r.log.Warn("input text is empty")
		return nil
	}

	sections, err := r.sections(ctx, text)
	if err != nil {
		return err
	}
	for _, sec := range sections {
		fmt.Fprintln(out)
		fmt.Fprintln(out, sec)
	}

	if r.opts.outDir == "" {
		return nil
	}
	paths, err := sink.FileSink{Dir: r.opts.outDir, PerSection: r.opts.perSection}.Write(ctx, "stdin", sections)
	if err != nil {
		return err
	}
	r.log.Info("wrote sections", "path", paths[0], "files", len(paths))
	return nil
}

func (r *runner) runFiles(ctx context.Context, files []string, out io.Writer) error {
	outputs := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.opts.jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			written, err := r.processFile(gctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs[i] = written
			return nil
		})
	}
	err := g.Wait()

	for _, p := range outputs {
		if p != "" {
			fmt.Fprintln(out, p)
		}
	}
	return err
}

// processFile splits one file and returns the combined output path.
func (r *runner) processFile(ctx context.Context, path string) (string, error) {
	log := r.log.With("file", path)

	p, err := parser.ForFile(path, r.parser)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	sections, err := r.sections(ctx, doc.Text)
	if err != nil {
		return "", err
	}

	dir := r.opts.outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	paths, err := sink.FileSink{Dir: dir, PerSection: r.opts.perSection}.Write(ctx, parser.Stem(path), sections)
	if err != nil {
		return "", err
	}
	log.Info("file split", "sections", len(sections), "output", paths[0])
	return paths[0], nil
}

// readUntilEnd reads lines until EOF or a line equal to endMarker and
// joins them with '\n'.
func readUntilEnd(in io.Reader) (string, error) {
	var lines []string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == endMarker {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
