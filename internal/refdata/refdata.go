// Package refdata bundles the static reference datasets the analysis prompt
// embeds: per-industry benchmark figures and ATS keyword lists. Both are
// compiled into the binary, parsed once at startup, and never mutated, so
// they are safe for concurrent reads across requests.
package refdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/benchmarks.json
var benchmarksRaw []byte

//go:embed data/ats_keywords.json
var keywordsRaw []byte

// Benchmark holds the reference figures for one industry and level.
type Benchmark struct {
	AverageScore       float64  `json:"average_score"`
	TopPercentileScore float64  `json:"top_percentile_score"`
	KeyDifferentiators []string `json:"key_differentiators"`
}

// Data is the immutable pair of reference datasets.
type Data struct {
	Benchmarks map[string]map[string]Benchmark
	Keywords   map[string][]string

	benchmarksJSON string
	keywordsJSON   string
}

// Load parses the embedded datasets. Call once at startup.
func Load() (*Data, error) {
	d := &Data{}
	if err := json.Unmarshal(benchmarksRaw, &d.Benchmarks); err != nil {
		return nil, fmt.Errorf("refdata: parse benchmarks: %w", err)
	}
	if err := json.Unmarshal(keywordsRaw, &d.Keywords); err != nil {
		return nil, fmt.Errorf("refdata: parse ats keywords: %w", err)
	}
	d.benchmarksJSON = indent(benchmarksRaw)
	d.keywordsJSON = indent(keywordsRaw)
	return d, nil
}

// BenchmarksJSON returns the benchmark table serialized for prompt embedding.
func (d *Data) BenchmarksJSON() string { return d.benchmarksJSON }

// KeywordsJSON returns the ATS keyword table serialized for prompt embedding.
func (d *Data) KeywordsJSON() string { return d.keywordsJSON }

func indent(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
