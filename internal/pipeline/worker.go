package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/docsplit/internal/doctree"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/dgallion1/docsplit/internal/section"
	"github.com/dgallion1/docsplit/internal/sink"
	"github.com/dgallion1/docsplit/internal/structurize"
)

// ErrStructuringDisabled is returned when structuring is requested but no
// rewrite service is configured.
var ErrStructuringDisabled = errors.New("structuring is not configured")

// Worker processes a single document job.
type Worker struct {
	structurizer *structurize.Structurizer // nil when structuring is disabled
	splitter     *section.Splitter
	jobs         *JobStore
	log          *slog.Logger

	outputDir  string
	perSection bool
	parserOpts parser.Options
}

// WorkerConfig carries the settings a Worker needs.
type WorkerConfig struct {
	OutputDir  string
	PerSection bool
	Parser     parser.Options
}

func NewWorker(st *structurize.Structurizer, jobs *JobStore, log *slog.Logger, cfg WorkerConfig) *Worker {
	return &Worker{
		structurizer: st,
		splitter:     section.NewSplitter(section.WithLogger(log)),
		jobs:         jobs,
		log:          log,
		outputDir:    cfg.OutputDir,
		perSection:   cfg.PerSection,
		parserOpts:   cfg.Parser,
	}
}

// Process runs parse, optional structuring, split and write for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.releaseFileData()

	// Phase 1.5: Dedup check
	hash := DedupKey(doc.Text, job.Structure)
	job.SetContentHash(hash)
	if !job.Force {
		if prior := w.jobs.FindCompleted(hash, job.ID); prior != nil {
			log.Info("duplicate document, reusing sections", "existing_job_id", prior.ID)
			job.markDuplicate(prior.ID)
			job.SetSections(prior.Sections())
			job.SetOutputs(prior.Snapshot().Progress.Outputs)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2 and 3: Structure and split
	sections, err := w.SplitText(ctx, doc.Text, job.Structure, func(status JobStatus) {
		job.SetStatus(status, string(status))
	}, job.SetChunkProgress)
	if err != nil {
		log.Error("split failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, job.Snapshot().Phase)
		return
	}
	job.SetSections(sections)
	log.Info("document split", "sections", len(sections))

	// Phase 4: Write
	job.SetStatus(StatusWriting, "writing")
	out := sink.FileSink{
		Dir:        filepath.Join(w.outputDir, job.ID),
		PerSection: w.perSection,
	}
	paths, err := out.Write(ctx, parser.Stem(job.Filename), sections)
	job.SetOutputs(paths)
	if err != nil {
		log.Error("write failed", "error", err)
		job.AddError(fmt.Sprintf("write: %s", err))
		job.SetStatus(StatusFailed, "writing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}

// SplitText optionally restructures text and splits it into sections.
// onPhase and progress may be nil.
func (w *Worker) SplitText(ctx context.Context, text string, structure bool, onPhase func(JobStatus), progress structurize.ProgressFunc) ([]string, error) {
	if onPhase == nil {
		onPhase = func(JobStatus) {}
	}
	if structure {
		if w.structurizer == nil {
			return nil, ErrStructuringDisabled
		}
		onPhase(StatusStructuring)
		out, err := w.structurizer.Process(ctx, text, progress)
		if err != nil {
			return nil, fmt.Errorf("structure: %w", err)
		}
		text = out
	}

	onPhase(StatusSplitting)
	return w.splitter.Split(text), nil
}

// DescribeSections pairs each section with the heading titles it carries.
func DescribeSections(sections []string) []doctree.Section {
	out := make([]doctree.Section, len(sections))
	for i, sec := range sections {
		out[i] = doctree.Section{
			Index:  i,
			Text:   sec,
			Titles: section.SectionInfo(sec).Map(),
		}
	}
	return out
}
