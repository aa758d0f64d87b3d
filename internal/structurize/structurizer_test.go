package structurize

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/docsplit/internal/chunker"
)

// fakeRewriter records requests and answers from a script.
type fakeRewriter struct {
	mu       sync.Mutex
	requests []Request
	respond  func(call int, req Request) (string, error)
}

func (f *fakeRewriter) Rewrite(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	call := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(call, req)
}

func noBackoff(int) time.Duration { return 0 }

func TestProcess_SingleChunk(t *testing.T) {
	rw := &fakeRewriter{respond: func(_ int, req Request) (string, error) {
		return "# Title\n\n" + req.Chunk, nil
	}}
	s := New(rw, chunker.Config{ChunkSize: 1000}, nil)

	var progress []int
	got, err := s.Process(context.Background(), "some text", func(done, total int) {
		progress = append(progress, done, total)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "# Title\n\nsome text" {
		t.Errorf("unexpected result %q", got)
	}
	if len(rw.requests) != 1 || !rw.requests[0].IsFirst {
		t.Fatalf("expected one first request, got %+v", rw.requests)
	}
	if len(progress) != 2 || progress[0] != 1 || progress[1] != 1 {
		t.Errorf("expected progress [1 1], got %v", progress)
	}
}

func TestProcess_CarriesStructureAndMerges(t *testing.T) {
	para := strings.Repeat("x", 40)
	text := para + "\n\n" + para

	rw := &fakeRewriter{respond: func(call int, req Request) (string, error) {
		if call == 0 {
			return "# Doc\n\n## One\n\n" + req.Chunk, nil
		}
		return "# Doc\n\n## Two\n\n" + req.Chunk, nil
	}}
	s := New(rw, chunker.Config{ChunkSize: 50}, nil)

	got, err := s.Process(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rw.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(rw.requests))
	}
	second := rw.requests[1]
	if second.IsFirst {
		t.Error("expected second request not to be first")
	}
	if second.PreviousStructure != "# Doc\n## One" {
		t.Errorf("expected previous structure %q, got %q", "# Doc\n## One", second.PreviousStructure)
	}

	want := "# Doc\n\n## One\n\n" + para + "\n\n## Two\n" + para
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestProcess_RetriesTransientErrors(t *testing.T) {
	rw := &fakeRewriter{respond: func(call int, req Request) (string, error) {
		if call < 2 {
			return "", &RetryableError{StatusCode: 529, Message: "overloaded"}
		}
		return "# ok\n\n" + req.Chunk, nil
	}}
	s := New(rw, chunker.DefaultConfig(), nil)
	s.backoff = noBackoff

	got, err := s.Process(context.Background(), "body", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "# ok\n\nbody" {
		t.Errorf("unexpected result %q", got)
	}
	if len(rw.requests) != 3 {
		t.Errorf("expected 3 attempts, got %d", len(rw.requests))
	}
}

func TestProcess_GivesUpAfterMaxRetries(t *testing.T) {
	rw := &fakeRewriter{respond: func(int, Request) (string, error) {
		return "", &RetryableError{StatusCode: 500}
	}}
	s := New(rw, chunker.DefaultConfig(), nil)
	s.backoff = noBackoff

	_, err := s.Process(context.Background(), "body", nil)
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error to surface, got %v", err)
	}
	if len(rw.requests) != MaxRetries {
		t.Errorf("expected %d attempts, got %d", MaxRetries, len(rw.requests))
	}
}

func TestProcess_PermanentErrorStops(t *testing.T) {
	boom := errors.New("bad request")
	rw := &fakeRewriter{respond: func(int, Request) (string, error) {
		return "", boom
	}}
	s := New(rw, chunker.DefaultConfig(), nil)

	_, err := s.Process(context.Background(), "body", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if len(rw.requests) != 1 {
		t.Errorf("expected no retries, got %d attempts", len(rw.requests))
	}
}

func TestProcess_ContextCancelledDuringBackoff(t *testing.T) {
	rw := &fakeRewriter{respond: func(int, Request) (string, error) {
		return "", &RetryableError{StatusCode: 429}
	}}
	s := New(rw, chunker.DefaultConfig(), nil)
	s.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Process(ctx, "body", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff(t *testing.T) {
	for attempt := range 8 {
		d := Backoff(attempt)
		if d < time.Second || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}
