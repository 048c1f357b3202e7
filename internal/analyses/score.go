package analyses

import "math"

// Per-category weight budgets for the overall total. The four weighted
// categories sum to 100.
var categoryWeights = map[string]float64{
	"skills":       25,
	"experience":   25,
	"achievements": 25,
	"education":    25,
}

// Pass-through categories are reported on their raw 0-100 scale, clamped,
// and excluded from the total.
var passThroughCategories = []string{"ats_compatibility", "industry_benchmark"}

// ScaleScores rescales the model's raw 0-100 breakdown into the per-category
// weight budgets. scaled = round(raw/100 * weight), round half up; missing
// raw values default to 0; unknown categories are dropped. The total is the
// sum of the four weighted values only. Pure function.
func ScaleScores(raw map[string]float64) (map[string]float64, float64) {
	scaled := make(map[string]float64, len(categoryWeights)+len(passThroughCategories))
	total := 0.0

	for category, weight := range categoryWeights {
		value := clampScore(raw[category])
		s := math.Round(value / 100 * weight)
		scaled[category] = s
		total += s
	}
	for _, category := range passThroughCategories {
		scaled[category] = clampScore(raw[category])
	}

	return scaled, total
}

func clampScore(value float64) float64 {
	if value < 0 || math.IsNaN(value) {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
