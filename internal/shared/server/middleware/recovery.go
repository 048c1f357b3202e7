package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"proresume-backend/internal/shared/server/respond"
	"proresume-backend/internal/shared/telemetry"
)

// Recovery recovers from panics and returns a standardized error response.
// The log entry carries whatever pipeline context the handler had set, so
// a panic mid-analysis can be traced to its stage.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				}
				if analysisID := c.GetString("analysisId"); analysisID != "" {
					fields["analysis_id"] = analysisID
				}
				if stage := c.GetString("pipelineStage"); stage != "" {
					fields["pipeline_stage"] = stage
				}
				telemetry.Error("panic", fields)
				respond.Error(c, http.StatusInternalServerError, "Unexpected server error", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
