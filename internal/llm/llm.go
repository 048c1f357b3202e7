package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts LLM providers for resume analysis. Implementations return
// the model's raw text payload; callers own parsing and recovery.
type Client interface {
	AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error)
}

// AnalyzeInput captures the inputs needed for resume analysis.
type AnalyzeInput struct {
	ResumeText     string
	BenchmarksJSON string
	KeywordsJSON   string
}

// ErrEmptyResponse means the provider replied but the text payload was
// missing or empty.
var ErrEmptyResponse = errors.New("empty model response")

// UpstreamError means the provider was unreachable or replied with an error.
// Body carries the provider's error body for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm upstream: %v", e.Err)
	}
	return fmt.Sprintf("llm upstream: status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
