package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysesTotal          atomic.Uint64
	analysesSucceededTotal atomic.Uint64
	extractionFailedTotal  atomic.Uint64
	modelFailedTotal       atomic.Uint64
	parseFailedTotal       atomic.Uint64
	jobSearchFailedTotal   atomic.Uint64

	pipelineDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncAnalysis counts an accepted upload entering the pipeline.
func IncAnalysis() { analysesTotal.Add(1) }

// IncAnalysisSucceeded counts a pipeline run that produced a response.
func IncAnalysisSucceeded() { analysesSucceededTotal.Add(1) }

// IncExtractionFailed counts uploads rejected at text extraction.
func IncExtractionFailed() { extractionFailedTotal.Add(1) }

// IncModelFailed counts upstream model call failures.
func IncModelFailed() { modelFailedTotal.Add(1) }

// IncParseFailed counts model outputs that could not be recovered into
// the expected shape.
func IncParseFailed() { parseFailedTotal.Add(1) }

// IncJobSearchFailed counts degraded job enrichment attempts.
func IncJobSearchFailed() { jobSearchFailedTotal.Add(1) }

// ObservePipelineDurationMs records one end-to-end pipeline duration.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders all counters and histograms in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_analyses_total", "Uploads accepted into the analysis pipeline", analysesTotal.Load())
	writeCounter(&buf, "resume_analyses_succeeded_total", "Analyses that produced a full response", analysesSucceededTotal.Load())
	writeCounter(&buf, "resume_extraction_failed_total", "Uploads rejected at PDF text extraction", extractionFailedTotal.Load())
	writeCounter(&buf, "resume_model_failed_total", "Upstream model call failures", modelFailedTotal.Load())
	writeCounter(&buf, "resume_parse_failed_total", "Model outputs that failed JSON recovery or shape checks", parseFailedTotal.Load())
	writeCounter(&buf, "resume_job_search_failed_total", "Job enrichment attempts degraded to an empty list", jobSearchFailedTotal.Load())
	writeHistogram(&buf, "resume_pipeline_duration_ms", "End-to-end analysis duration in milliseconds", pipelineDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns the current time in milliseconds for duration math.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
