package analyses

import (
	"encoding/json"
	"regexp"
	"strings"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// DecodeModelOutput recovers one AnalysisResult from the model's raw text.
// It strips known non-JSON wrapping (markdown fences, <think> side-channel
// blocks), parses the cleaned text directly, and falls back to scanning for
// the first balanced top-level JSON object when direct parsing fails.
func DecodeModelOutput(raw string) (*AnalysisResult, error) {
	cleaned := stripWrapping(raw)

	candidate := cleaned
	if !json.Valid([]byte(candidate)) {
		span, ok := extractJSONObject(cleaned)
		if !ok {
			return nil, &MalformedResponseError{Raw: raw, Err: errNoJSONObject}
		}
		candidate = span
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &top); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	// Shape checks run before the strict decode: once the text parsed as
	// an object, a score of the wrong type is a schema violation, not a
	// malformed response.
	if err := requireScoreBreakdown(top); err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	return &result, nil
}

var errNoJSONObject = jsonObjectError{}

type jsonObjectError struct{}

func (jsonObjectError) Error() string { return "no JSON object found in the response" }

// requireScoreBreakdown validates that score.breakdown exists and is an
// object of numbers; anything else is a schema violation even though
// parsing succeeded.
func requireScoreBreakdown(top map[string]json.RawMessage) error {
	rawScore, ok := top["score"]
	if !ok {
		return &SchemaViolationError{Missing: "score"}
	}
	var score map[string]json.RawMessage
	if err := json.Unmarshal(rawScore, &score); err != nil {
		return &SchemaViolationError{Missing: "score"}
	}
	rawBreakdown, ok := score["breakdown"]
	if !ok || string(rawBreakdown) == "null" {
		return &SchemaViolationError{Missing: "score.breakdown"}
	}
	var breakdown map[string]float64
	if err := json.Unmarshal(rawBreakdown, &breakdown); err != nil {
		return &SchemaViolationError{Missing: "score.breakdown"}
	}
	return nil
}

// stripWrapping removes <think> blocks and markdown code fences around the
// model's output.
func stripWrapping(raw string) string {
	cleaned := thinkBlockRe.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}

// extractJSONObject scans for the first top-level {...} span using a
// balanced-brace walk that honors JSON strings and escapes. Best-effort
// recovery for providers that do not structurally guarantee JSON-only
// output, not a guarantee.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
