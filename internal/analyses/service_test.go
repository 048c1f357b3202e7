package analyses

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"proresume-backend/internal/jobsearch"
	"proresume-backend/internal/llm"
	"proresume-backend/internal/refdata"
)

type stubLLM struct {
	output string
	err    error
	input  llm.AnalyzeInput
}

func (s *stubLLM) AnalyzeResume(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	s.input = input
	return s.output, s.err
}

type stubSearcher struct {
	postings []jobsearch.Posting
	err      error
	called   bool
	query    jobsearch.Query
}

func (s *stubSearcher) Search(ctx context.Context, q jobsearch.Query) ([]jobsearch.Posting, error) {
	s.called = true
	s.query = q
	return s.postings, s.err
}

func loadRef(t *testing.T) *refdata.Data {
	t.Helper()
	ref, err := refdata.Load()
	if err != nil {
		t.Fatalf("load refdata: %v", err)
	}
	return ref
}

func resumePDF(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "extract", "testdata", "resume.pdf"))
	if err != nil {
		t.Fatalf("read test pdf: %v", err)
	}
	return data
}

func blankPDF(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "extract", "testdata", "blank.pdf"))
	if err != nil {
		t.Fatalf("read test pdf: %v", err)
	}
	return data
}

const fullModelOutput = `{
  "score": {"total": 0, "breakdown": {"skills": 80, "experience": 60, "achievements": 40, "education": 100, "ats_compatibility": 72, "industry_benchmark": 65}},
  "roles": [{"title": "Backend Engineer", "match_percentage": 90, "key_qualifications": ["Go", "APIs"]}],
  "skills_analysis": {"strong_skills": ["Go", "Kubernetes", "AWS", "Terraform"], "missing_skills": ["Rust"], "improvement_areas": ["metrics"]},
  "detailed_feedback": {"strengths": ["clear impact"], "weaknesses": ["long summary"], "improvement_tips": ["quantify results"]},
  "location": "Seattle, WA",
  "experience_level": "senior"
}`

func TestAnalyzePipelineHappyPath(t *testing.T) {
	model := &stubLLM{output: fullModelOutput}
	jobs := &stubSearcher{postings: []jobsearch.Posting{{Position: "Backend Engineer", Company: "Acme", JobURL: "https://example.com/1"}}}
	svc := &Service{LLM: model, Jobs: jobs, Ref: loadRef(t), JobSearchLimit: 5}

	result, stage, err := svc.Analyze(context.Background(), resumePDF(t), "test-analysis")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stage != StageAssembled {
		t.Fatalf("stage = %q, want %q", stage, StageAssembled)
	}

	if result.Score.Total != 70 {
		t.Fatalf("total = %v, want 70", result.Score.Total)
	}
	wantBreakdown := map[string]float64{
		"skills": 20, "experience": 15, "achievements": 10, "education": 25,
		"ats_compatibility": 72, "industry_benchmark": 65,
	}
	for category, want := range wantBreakdown {
		if got := result.Score.Breakdown[category]; got != want {
			t.Fatalf("breakdown[%s] = %v, want %v", category, got, want)
		}
	}

	if !jobs.called {
		t.Fatal("expected job search to run with a usable location")
	}
	if jobs.query.Keyword != "Backend Engineer Go" {
		t.Fatalf("keyword = %q", jobs.query.Keyword)
	}
	if len(result.JobSearchResults) != 1 {
		t.Fatalf("job results = %v", result.JobSearchResults)
	}

	if model.input.BenchmarksJSON == "" || model.input.KeywordsJSON == "" {
		t.Fatal("reference data must reach the prompt input")
	}
}

func TestAnalyzeFailsBeforeNetworkOnEmptyText(t *testing.T) {
	model := &stubLLM{output: fullModelOutput}
	svc := &Service{LLM: model, Ref: loadRef(t)}

	_, _, err := svc.Analyze(context.Background(), blankPDF(t), "test-analysis")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if model.input.ResumeText != "" {
		t.Fatal("LLM must not be called when extraction yields no text")
	}
}

func TestAnalyzeJobSearchFailureIsNonFatal(t *testing.T) {
	jobs := &stubSearcher{err: errors.New("connection refused")}
	svc := &Service{LLM: &stubLLM{output: fullModelOutput}, Jobs: jobs, Ref: loadRef(t)}

	result, _, err := svc.Analyze(context.Background(), resumePDF(t), "test-analysis")
	if err != nil {
		t.Fatalf("job search failure must not fail the request: %v", err)
	}
	if result.JobSearchResults == nil || len(result.JobSearchResults) != 0 {
		t.Fatalf("expected empty job results, got %v", result.JobSearchResults)
	}
}

func TestAnalyzeSkipsJobSearchWithoutLocationOrSkills(t *testing.T) {
	jobs := &stubSearcher{}
	svc := &Service{
		LLM:  &stubLLM{output: `{"score":{"breakdown":{"skills":50}}}`},
		Jobs: jobs,
		Ref:  loadRef(t),
	}

	result, _, err := svc.Analyze(context.Background(), resumePDF(t), "test-analysis")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if jobs.called {
		t.Fatal("job search must be skipped without a location or skills")
	}
	if result.JobSearchResults == nil || len(result.JobSearchResults) != 0 {
		t.Fatalf("expected empty job results, got %v", result.JobSearchResults)
	}
}

func TestAnalyzePropagatesModelFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *stubLLM
		check  func(t *testing.T, err error)
	}{
		{
			name:   "upstream",
			client: &stubLLM{err: &llm.UpstreamError{Status: 502, Body: "bad gateway"}},
			check: func(t *testing.T, err error) {
				var upstream *llm.UpstreamError
				if !errors.As(err, &upstream) {
					t.Fatalf("expected UpstreamError, got %v", err)
				}
			},
		},
		{
			name:   "empty response",
			client: &stubLLM{err: llm.ErrEmptyResponse},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, llm.ErrEmptyResponse) {
					t.Fatalf("expected ErrEmptyResponse, got %v", err)
				}
			},
		},
		{
			name:   "malformed output",
			client: &stubLLM{output: "not json at all"},
			check: func(t *testing.T, err error) {
				var malformed *MalformedResponseError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedResponseError, got %v", err)
				}
			},
		},
		{
			name:   "schema violation",
			client: &stubLLM{output: `{"roles":[]}`},
			check: func(t *testing.T, err error) {
				var schema *SchemaViolationError
				if !errors.As(err, &schema) {
					t.Fatalf("expected SchemaViolationError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{LLM: tt.client, Ref: loadRef(t)}
			_, _, err := svc.Analyze(context.Background(), resumePDF(t), "test-analysis")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestCapRunes(t *testing.T) {
	if got := capRunes("hello", 0); got != "hello" {
		t.Fatalf("no cap should return input, got %q", got)
	}
	if got := capRunes("hello", 3); got != "hel" {
		t.Fatalf("got %q", got)
	}
	if got := capRunes("héllo", 2); got != "hé" {
		t.Fatalf("cap must count runes, got %q", got)
	}
}
