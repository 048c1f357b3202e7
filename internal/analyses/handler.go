package analyses

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proresume-backend/internal/extract"
	"proresume-backend/internal/llm"
	"proresume-backend/internal/shared/metrics"
	"proresume-backend/internal/shared/server/respond"
	"proresume-backend/internal/shared/util"
)

const maxUploadBytes = 5 << 20 // 5MB

// Handler wires the analyze endpoint to the pipeline service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respond.Error(c, http.StatusBadRequest, "File exceeds the 5MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read file", nil)
		return
	}

	// Content type restricted to PDF: trust the magic bytes over the
	// client-supplied header.
	declared := strings.ToLower(strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0]))
	if declared != extract.MimePDF && !extract.IsPDF(data) {
		respond.Error(c, http.StatusBadRequest, "Only PDF resumes are supported", nil)
		return
	}

	analysisID := uuid.NewString()
	c.Set("analysisId", analysisID)
	c.Set("uploadName", util.SafeFileName(fileHeader.Filename))

	metrics.IncAnalysis()
	started := metrics.NowMillis()
	result, stage, err := h.Svc.Analyze(c.Request.Context(), data, analysisID)
	metrics.ObservePipelineDurationMs(metrics.NowMillis() - started)
	c.Set("pipelineStage", stage)
	if err != nil {
		h.respondError(c, err)
		return
	}

	metrics.IncAnalysisSucceeded()
	respond.OK(c, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		upstream  *llm.UpstreamError
		malformed *MalformedResponseError
		schema    *SchemaViolationError
	)
	switch {
	case errors.Is(err, ErrNoText), errors.Is(err, extract.ErrNotPDF):
		metrics.IncExtractionFailed()
		respond.Error(c, http.StatusBadRequest, "Unable to extract text from PDF", nil)
	case errors.As(err, &malformed):
		metrics.IncParseFailed()
		respond.Error(c, http.StatusInternalServerError, "Failed to parse AI response", malformed.Err.Error())
	case errors.As(err, &schema):
		metrics.IncParseFailed()
		respond.Error(c, http.StatusInternalServerError, "Analysis failed", schema.Error())
	case errors.As(err, &upstream), errors.Is(err, llm.ErrEmptyResponse):
		metrics.IncModelFailed()
		respond.Error(c, http.StatusInternalServerError, "Analysis failed", err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "Analysis failed", err.Error())
	}
}
