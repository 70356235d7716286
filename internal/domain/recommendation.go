package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Confidence is the band a suitability score falls into
type Confidence string

const (
	ConfidenceHigh    Confidence = "High"
	ConfidenceMedium  Confidence = "Medium"
	ConfidenceLow     Confidence = "Low"
	ConfidenceVeryLow Confidence = "Very Low"
)

// Score thresholds for classification
const (
	ThresholdHigh     = 0.7
	ThresholdMedium   = 0.4
	ThresholdPossible = 0.2
)

// Classify maps a score to its confidence band and status text.
func Classify(score float64) (Confidence, string) {
	switch {
	case score >= ThresholdHigh:
		return ConfidenceHigh, "Highly Suitable"
	case score >= ThresholdMedium:
		return ConfidenceMedium, "Moderately Suitable"
	case score >= ThresholdPossible:
		return ConfidenceLow, "Possibly Suitable"
	default:
		return ConfidenceVeryLow, "Not Suitable"
	}
}

// RoundScore rounds to the 3 decimals exposed to callers
func RoundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// CropScore is one crop's entry in a recommendation
type CropScore struct {
	Crop       string     `json:"plant"`
	Score      float64    `json:"suitability_score"`
	Confidence Confidence `json:"confidence"`
	Status     string     `json:"status"`
	// Degraded is set when the crop could not be evaluated and was scored 0
	Degraded bool `json:"degraded,omitempty"`
}

// NewCropScore classifies an already rounded score
func NewCropScore(crop string, score float64) CropScore {
	conf, status := Classify(score)
	return CropScore{Crop: crop, Score: score, Confidence: conf, Status: status}
}

// InputConditions echoes the reading a recommendation was computed for
type InputConditions struct {
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Recommendation is the ranked result for one reading
type Recommendation struct {
	Input   InputConditions `json:"input_conditions"`
	Top     *CropScore      `json:"top_recommendation"`
	All     []CropScore     `json:"all_plants"`
	Summary string          `json:"recommendation_summary"`
}

// NewRecommendation ranks scores and fills in the top pick and summary.
// scores must be in catalog declaration order; ties keep that order.
func NewRecommendation(sample SoilSample, scores []CropScore) *Recommendation {
	ranked := append([]CropScore(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	rec := &Recommendation{
		Input: InputConditions{
			PH:          sample.PH,
			Temperature: sample.Temperature,
			Humidity:    sample.Humidity,
		},
		All: ranked,
	}
	if len(ranked) > 0 {
		top := ranked[0]
		rec.Top = &top
	}
	rec.Summary = Summarize(ranked)
	return rec
}

// Summarize produces the human-readable summary of ranked scores.
func Summarize(ranked []CropScore) string {
	if len(ranked) == 0 || ranked[0].Score < ThresholdPossible {
		return "Current soil conditions are not optimal for any of the analyzed crops. Consider soil amendment or different crop selection."
	}
	top := ranked[0]

	var suitable []string
	for _, s := range ranked {
		if s.Score >= ThresholdMedium {
			suitable = append(suitable, s.Crop)
		}
	}

	switch {
	case len(suitable) == 1:
		return fmt.Sprintf("%s is recommended with %s confidence (score: %s).",
			top.Crop, strings.ToLower(string(top.Confidence)), strconv.FormatFloat(top.Score, 'f', -1, 64))
	case len(suitable) > 1:
		if len(suitable) > 3 {
			suitable = suitable[:3]
		}
		return fmt.Sprintf("Multiple suitable options: %s. %s has the highest suitability.",
			strings.Join(suitable, ", "), top.Crop)
	default:
		return fmt.Sprintf("%s is the best option available, though conditions are not optimal.", top.Crop)
	}
}

// GrowingConditions are the optimal ranges for a crop
type GrowingConditions struct {
	PH          Range `json:"ph_range" yaml:"ph"`
	Temperature Range `json:"temperature_range" yaml:"temperature"`
	Humidity    Range `json:"humidity_range" yaml:"humidity"`
}
