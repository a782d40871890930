// Package llm defines the summarization service boundary. The analyzer only
// sees the Summarizer interface; the Gemini client and the offline fake both
// satisfy it.
package llm

import (
	"context"
	"fmt"
)

// Request carries one file's content to the service.
type Request struct {
	Path     string
	Category string
	Content  string
}

// Summary is the service's answer plus its token cost.
type Summary struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Summarizer produces a prose summary for a single file.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, req Request) (Summary, error)
	Close() error
}

// ServiceError wraps a provider failure (network, quota, content policy).
// The core performs no retry or backoff; the error surfaces directly.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("llm: %s request failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
