package analyses

import "proresume-backend/internal/jobsearch"

// AnalysisResult is the structured outcome of one resume analysis. It is
// decoded from the model's output, then normalized in place (score scaling,
// job enrichment) before assembly. Nothing mutates it after assembly.
type AnalysisResult struct {
	Score            Score              `json:"score"`
	IndustryAnalysis *IndustryAnalysis  `json:"industry_analysis,omitempty"`
	ATSAnalysis      *ATSAnalysis       `json:"ats_analysis,omitempty"`
	Roles            []Role             `json:"roles"`
	SkillsAnalysis   SkillsAnalysis     `json:"skills_analysis"`
	DetailedFeedback DetailedFeedback   `json:"detailed_feedback"`
	Location         string             `json:"location,omitempty"`
	ExperienceLevel  string             `json:"experience_level,omitempty"`
	SalaryInsights   *SalaryInsights    `json:"salary_insights,omitempty"`
	JobSearchResults []jobsearch.Posting `json:"job_search_results"`
}

// Score carries the model's raw 0-100 breakdown after decode; ScaleScores
// replaces the weighted entries with integer-valued weighted scores and sets
// the bounded total.
type Score struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

type IndustryAnalysis struct {
	Industry            string               `json:"industry"`
	ExperienceLevel     string               `json:"experience_level"`
	BenchmarkComparison *BenchmarkComparison `json:"benchmark_comparison,omitempty"`
}

type BenchmarkComparison struct {
	AverageScore              float64  `json:"average_score"`
	PercentileRanking         float64  `json:"percentile_ranking"`
	KeyDifferentiatorsPresent []string `json:"key_differentiators_present"`
	KeyDifferentiatorsMissing []string `json:"key_differentiators_missing"`
	IndustrySkillsPresent     []string `json:"industry_skills_present"`
	IndustrySkillsMissing     []string `json:"industry_skills_missing"`
}

type ATSAnalysis struct {
	KeywordMatchScore       float64        `json:"keyword_match_score"`
	KeywordsFound           []string       `json:"keywords_found"`
	MissingCriticalKeywords []string       `json:"missing_critical_keywords"`
	KeywordFrequency        map[string]int `json:"keyword_frequency,omitempty"`
}

type Role struct {
	Title             string   `json:"title"`
	MatchPercentage   float64  `json:"match_percentage"`
	KeyQualifications []string `json:"key_qualifications"`
}

type SkillsAnalysis struct {
	StrongSkills     []string `json:"strong_skills"`
	MissingSkills    []string `json:"missing_skills"`
	ImprovementAreas []string `json:"improvement_areas"`
}

type DetailedFeedback struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementTips []string `json:"improvement_tips"`
}

type SalaryInsights struct {
	EstimatedSalaryRange *SalaryRange `json:"estimated_salary_range,omitempty"`
	SalaryFactors        []string     `json:"salary_factors"`
}

type SalaryRange struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Currency string  `json:"currency"`
}

// roleTitles lists role titles in recommendation order.
func roleTitles(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.Title != "" {
			out = append(out, r.Title)
		}
	}
	return out
}

func ensureStringSlice(value []string) []string {
	if value == nil {
		return []string{}
	}
	return value
}

// normalizeLists replaces nil slices with empty ones so the assembled JSON
// always carries arrays the dashboard can iterate.
func (r *AnalysisResult) normalizeLists() {
	if r.Roles == nil {
		r.Roles = []Role{}
	}
	for i := range r.Roles {
		r.Roles[i].KeyQualifications = ensureStringSlice(r.Roles[i].KeyQualifications)
	}
	r.SkillsAnalysis.StrongSkills = ensureStringSlice(r.SkillsAnalysis.StrongSkills)
	r.SkillsAnalysis.MissingSkills = ensureStringSlice(r.SkillsAnalysis.MissingSkills)
	r.SkillsAnalysis.ImprovementAreas = ensureStringSlice(r.SkillsAnalysis.ImprovementAreas)
	r.DetailedFeedback.Strengths = ensureStringSlice(r.DetailedFeedback.Strengths)
	r.DetailedFeedback.Weaknesses = ensureStringSlice(r.DetailedFeedback.Weaknesses)
	r.DetailedFeedback.ImprovementTips = ensureStringSlice(r.DetailedFeedback.ImprovementTips)
	if r.JobSearchResults == nil {
		r.JobSearchResults = []jobsearch.Posting{}
	}
}
