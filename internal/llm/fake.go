package llm

import (
	"context"
	"fmt"
	"sync/atomic"
)

// FakeSummarizer returns deterministic summaries for offline runs and tests.
type FakeSummarizer struct {
	calls atomic.Int64

	// Fail, when set, is returned (wrapped) for every request.
	Fail error
	// Block, when non-nil, is received from before each request completes,
	// letting tests hold concurrency slots open.
	Block chan struct{}
}

func NewFakeSummarizer() *FakeSummarizer { return &FakeSummarizer{} }

func (f *FakeSummarizer) Name() string { return "fake" }
func (f *FakeSummarizer) Close() error { return nil }

// Calls reports how many Summarize invocations reached the fake.
func (f *FakeSummarizer) Calls() int { return int(f.calls.Load()) }

func (f *FakeSummarizer) Summarize(ctx context.Context, req Request) (Summary, error) {
	f.calls.Add(1)
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return Summary{}, &ServiceError{Provider: f.Name(), Err: ctx.Err()}
		}
	}
	if f.Fail != nil {
		return Summary{}, &ServiceError{Provider: f.Name(), Err: f.Fail}
	}
	return Summary{
		Text:         fmt.Sprintf("Summary of %s (%s, %d bytes).", req.Path, req.Category, len(req.Content)),
		InputTokens:  len(req.Content) / 4,
		OutputTokens: 16,
	}, nil
}
