package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docsplit/internal/chunker"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/parser"
	"github.com/dgallion1/docsplit/internal/structurize"
)

// Orchestrator manages the document split pipeline.
type Orchestrator struct {
	jobs  *JobStore
	queue chan *Job
	st    *structurize.Structurizer
	log   *slog.Logger
	cfg   config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. rw may be nil, in which case jobs
// that request structuring fail.
func NewOrchestrator(cfg config.Config, rw structurize.Rewriter, log *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		jobs:  NewJobStore(cfg.JobTTL),
		queue: make(chan *Job, cfg.MaxQueueSize),
		log:   log,
		cfg:   cfg,
	}
	if rw != nil {
		o.st = structurize.New(rw, chunker.Config{ChunkSize: cfg.StructureChunkSize}, log)
	}
	return o
}

func (o *Orchestrator) newWorker() *Worker {
	return NewWorker(o.st, o.jobs, o.log, WorkerConfig{
		OutputDir:  o.cfg.OutputDir,
		PerSection: o.cfg.PerSectionFiles,
		Parser:     parser.Options{PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext},
	})
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := o.newWorker()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// SplitText splits text synchronously, outside the job queue.
func (o *Orchestrator) SplitText(ctx context.Context, text string, structure bool) ([]string, error) {
	return o.newWorker().SplitText(ctx, text, structure, nil, nil)
}

// StructuringEnabled reports whether a rewrite service is configured.
func (o *Orchestrator) StructuringEnabled() bool {
	return o.st != nil
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// JobCount returns the number of tracked jobs.
func (o *Orchestrator) JobCount() int {
	return o.jobs.Len()
}
