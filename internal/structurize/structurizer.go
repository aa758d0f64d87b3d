// Package structurize rewrites plain text into heading-structured markdown
// through a language-model service, chunk by chunk.
package structurize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/docsplit/internal/chunker"
)

// Request is one chunk sent to the rewrite service.
type Request struct {
	Chunk             string
	IsFirst           bool
	PreviousStructure string // Heading lines of the previous rewritten chunk
}

// Rewriter restructures a single chunk.
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (string, error)
}

// ProgressFunc is called after each chunk is rewritten.
type ProgressFunc func(done, total int)

// Structurizer drives a Rewriter over a whole document.
type Structurizer struct {
	rw       Rewriter
	chunkCfg chunker.Config
	log      *slog.Logger
	backoff  func(attempt int) time.Duration
}

func New(rw Rewriter, chunkCfg chunker.Config, log *slog.Logger) *Structurizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Structurizer{
		rw:       rw,
		chunkCfg: chunkCfg,
		log:      log,
		backoff:  Backoff,
	}
}

// Process chunks text, rewrites the chunks in order and merges the results.
// Each chunk after the first is told the heading structure of the previous
// result so the hierarchy stays consistent across chunks.
func (s *Structurizer) Process(ctx context.Context, text string, progress ProgressFunc) (string, error) {
	chunks := chunker.Split(text, s.chunkCfg)
	s.log.Info("structuring text", "chunks", len(chunks))

	results := make([]string, 0, len(chunks))
	var previous string
	for i, chunk := range chunks {
		out, err := s.rewrite(ctx, Request{
			Chunk:             chunk,
			IsFirst:           i == 0,
			PreviousStructure: previous,
		})
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if !HasHeadings(out) {
			s.log.Warn("rewritten chunk has no headings", "chunk", i)
		}
		results = append(results, out)
		previous = ExtractStructure(out)
		if progress != nil {
			progress(i+1, len(chunks))
		}
	}

	if len(results) == 1 {
		return results[0], nil
	}
	s.log.Info("merging structured chunks", "chunks", len(results))
	return MergeResults(results), nil
}

// rewrite calls the Rewriter, retrying transient failures.
func (s *Structurizer) rewrite(ctx context.Context, req Request) (string, error) {
	var out string
	var lastErr error
	for attempt := range MaxRetries {
		out, lastErr = s.rw.Rewrite(ctx, req)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		s.log.Warn("retryable rewrite error", "attempt", attempt, "error", lastErr)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(s.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, lastErr
}
