package analyses

import (
	"context"
	"errors"
	"fmt"

	"proresume-backend/internal/extract"
	"proresume-backend/internal/jobsearch"
	"proresume-backend/internal/llm"
	"proresume-backend/internal/refdata"
	"proresume-backend/internal/shared/metrics"
	"proresume-backend/internal/shared/telemetry"
)

// Pipeline stages, logged per analysis as the request advances.
const (
	StageReceived      = "received"
	StageTextExtracted = "text_extracted"
	StagePromptBuilt   = "prompt_built"
	StageModelFailed   = "model_failed"
	StageModelParsed   = "model_parsed"
	StageSchemaInvalid = "schema_invalid"
	StageScored        = "scored"
	StageJobsSkipped   = "job_search_skipped"
	StageJobsAttempted = "job_search_attempted"
	StageAssembled     = "assembled"
)

// Service runs the analysis pipeline: extract text, prompt the model,
// recover and normalize its output, optionally enrich with job postings,
// assemble the response. Strictly sequential per request; the only shared
// state is the read-only reference data and the configured clients.
type Service struct {
	LLM llm.Client
	// Jobs may be nil when no job search endpoint is configured.
	Jobs jobsearch.Searcher
	Ref  *refdata.Data

	// ResumeTextMaxRunes caps the text handed to the prompt. Zero means no cap.
	ResumeTextMaxRunes int
	JobSearchLimit     int
}

// Analyze processes one uploaded PDF. Every failure up through scoring is
// terminal; job search failures degrade to an empty list.
func (s *Service) Analyze(ctx context.Context, pdfBytes []byte, analysisID string) (*AnalysisResult, string, error) {
	stage := StageReceived
	logStage := func(next string) {
		stage = next
		telemetry.Info("analysis.stage", map[string]any{
			"analysis_id": analysisID,
			"stage":       next,
		})
	}

	text, err := extract.Text(pdfBytes)
	if err != nil {
		return nil, stage, fmt.Errorf("extract: %w", err)
	}
	if text == "" {
		return nil, stage, ErrNoText
	}
	logStage(StageTextExtracted)

	text = capRunes(text, s.ResumeTextMaxRunes)
	input := llm.AnalyzeInput{
		ResumeText:     text,
		BenchmarksJSON: s.Ref.BenchmarksJSON(),
		KeywordsJSON:   s.Ref.KeywordsJSON(),
	}
	logStage(StagePromptBuilt)

	rawOutput, err := s.LLM.AnalyzeResume(ctx, input)
	if err != nil {
		logStage(StageModelFailed)
		return nil, stage, err
	}

	result, err := DecodeModelOutput(rawOutput)
	if err != nil {
		var schema *SchemaViolationError
		if errors.As(err, &schema) {
			logStage(StageSchemaInvalid)
		} else {
			logStage(StageModelFailed)
		}
		return nil, stage, err
	}
	logStage(StageModelParsed)

	scaled, total := ScaleScores(result.Score.Breakdown)
	result.Score.Breakdown = scaled
	result.Score.Total = total
	logStage(StageScored)

	result.JobSearchResults = s.searchJobs(ctx, result, analysisID, logStage)

	result.normalizeLists()
	logStage(StageAssembled)
	return result, stage, nil
}

// searchJobs runs the best-effort enrichment. Any failure is logged and
// degraded to an empty list; it never fails the request.
func (s *Service) searchJobs(ctx context.Context, result *AnalysisResult, analysisID string, logStage func(string)) []jobsearch.Posting {
	if s.Jobs == nil || !jobsearch.Usable(result.Location, result.SkillsAnalysis.StrongSkills) {
		logStage(StageJobsSkipped)
		return []jobsearch.Posting{}
	}

	logStage(StageJobsAttempted)
	query := jobsearch.BuildQuery(
		roleTitles(result.Roles),
		result.SkillsAnalysis.StrongSkills,
		result.Location,
		result.ExperienceLevel,
		s.JobSearchLimit,
	)
	postings, err := s.Jobs.Search(ctx, query)
	if err != nil {
		metrics.IncJobSearchFailed()
		telemetry.Warn("analysis.job_search_failed", map[string]any{
			"analysis_id": analysisID,
			"keyword":     query.Keyword,
			"err":         err.Error(),
		})
		return []jobsearch.Posting{}
	}
	if postings == nil {
		postings = []jobsearch.Posting{}
	}
	return postings
}

func capRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
