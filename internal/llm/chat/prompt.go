package chat

import "fmt"

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

const systemPrompt = "You are a senior career coach and resume analyst with extensive experience in talent acquisition and career development. Your analysis must be detailed, consistent, and actionable. Respond with JSON only."

const userPromptTemplate = `As a senior career coach and resume analyst with 20 years of experience in talent acquisition and career development, analyze the following resume. Follow these STRICT instructions without deviation. DO NOT include any text outside the JSON format.

### Scoring Rules:
- Evaluate all categories out of 100.
- Compare against industry benchmarks for the candidate's level.
- Analyze ATS keyword matches against industry standards.

### Reference Data:
## Industry Benchmarks:
(Raw text for reference, do not interpret as code)
%s

## ATS Keywords by Industry:
(Raw text for reference, do not interpret as code)
%s

### Expected JSON Output Format (STRICT):
{
  "score": {
    "total": <0-100>,
    "breakdown": {
      "skills": <0-100>,
      "experience": <0-100>,
      "achievements": <0-100>,
      "education": <0-100>,
      "ats_compatibility": <0-100>,
      "industry_benchmark": <0-100>
    }
  },
  "industry_analysis": {
    "industry": "<detected industry>",
    "experience_level": "<junior/mid/senior>",
    "benchmark_comparison": {
      "average_score": <industry average score>,
      "percentile_ranking": <percentile>,
      "key_differentiators_present": ["<differentiator1>", "<differentiator2>"],
      "key_differentiators_missing": ["<differentiator1>", "<differentiator2>"],
      "industry_skills_present": ["<skill1>", "<skill2>"],
      "industry_skills_missing": ["<skill1>", "<skill2>"]
    }
  },
  "ats_analysis": {
    "keyword_match_score": <0-100>,
    "keywords_found": ["<keyword1>", "<keyword2>"],
    "missing_critical_keywords": ["<keyword1>", "<keyword2>"],
    "keyword_frequency": {
      "<keyword1>": <count>,
      "<keyword2>": <count>
    }
  },
  "roles": [
    {
      "title": "<role title>",
      "match_percentage": <0-100>,
      "key_qualifications": ["<qual1>", "<qual2>", "<qual3>"]
    }
  ],
  "skills_analysis": {
    "strong_skills": ["<skill1>", "<skill2>", "<skill3>"],
    "missing_skills": ["<skill1>", "<skill2>", "<skill3>"],
    "improvement_areas": ["<area1>", "<area2>", "<area3>"]
  },
  "detailed_feedback": {
    "strengths": ["<strength1>", "<strength2>", "<strength3>"],
    "weaknesses": ["<weakness1>", "<weakness2>", "<weakness3>"],
    "improvement_tips": ["<tip1>", "<tip2>", "<tip3>", "<tip4>", "<tip5>"]
  },
  "location": "<location extracted from resume>",
  "experience_level": "<experience level extracted or inferred from resume>",
  "salary_insights": {
    "estimated_salary_range": {
      "low": <salary_low>,
      "high": <salary_high>,
      "currency": "<currency>"
    },
    "salary_factors": ["<factor1>", "<factor2>", "<factor3>"]
  }
}

### Resume Content for Analysis:
%s

### Final Instructions:
- Your response MUST be ONLY valid JSON without any extra text, comments, or explanations.
- Ensure ALL score breakdowns are between 0-100. Do NOT scale them down; scaling is handled separately.
- Provide unbiased and fair analysis based on industry benchmarks.
- Extract the candidate location from the resume.
- Detect missing critical skills and keywords.
- Generate personalized recommendations.`

// BuildPrompt creates the chat messages for a resume analysis request. The
// reference datasets are embedded verbatim so the model can compare the
// resume against them. Pure string construction, no validation.
func BuildPrompt(resumeText, benchmarksJSON, keywordsJSON string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptTemplate, benchmarksJSON, keywordsJSON, resumeText)},
	}
}
