package bootstrap

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"proresume-backend/internal/analyses"
	"proresume-backend/internal/jobsearch"
	"proresume-backend/internal/llm"
	"proresume-backend/internal/llm/chat"
	"proresume-backend/internal/refdata"
	"proresume-backend/internal/shared/config"
	"proresume-backend/internal/shared/server"
)

// App holds shared dependencies, built once at startup and treated as
// immutable during request handling.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	Ref     *refdata.Data
	LLM     llm.Client
	Jobs    jobsearch.Searcher
	Service *analyses.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ref, err := refdata.Load()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	llmClient, err := chat.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	var jobs jobsearch.Searcher
	if cfg.JobSearchBaseURL != "" {
		jobsClient, err := jobsearch.NewClient(cfg.JobSearchBaseURL, 30*time.Second)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		jobs = jobsClient
	} else {
		log.Printf("bootstrap: JOB_SEARCH_BASE_URL empty; job enrichment disabled")
	}

	svc := &analyses.Service{
		LLM:                llmClient,
		Jobs:               jobs,
		Ref:                ref,
		ResumeTextMaxRunes: cfg.ResumeTextMaxRunes,
		JobSearchLimit:     cfg.JobSearchLimit,
	}

	app := &App{
		Config:  cfg,
		Ref:     ref,
		LLM:     llmClient,
		Jobs:    jobs,
		Service: svc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: analyses.NewHandler(svc),
	})

	return app, nil
}
