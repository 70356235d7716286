package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score      float64
		confidence Confidence
		status     string
	}{
		{score: 1.0, confidence: ConfidenceHigh, status: "Highly Suitable"},
		{score: 0.7, confidence: ConfidenceHigh, status: "Highly Suitable"},
		{score: 0.699, confidence: ConfidenceMedium, status: "Moderately Suitable"},
		{score: 0.4, confidence: ConfidenceMedium, status: "Moderately Suitable"},
		{score: 0.399, confidence: ConfidenceLow, status: "Possibly Suitable"},
		{score: 0.2, confidence: ConfidenceLow, status: "Possibly Suitable"},
		{score: 0.199, confidence: ConfidenceVeryLow, status: "Not Suitable"},
		{score: 0, confidence: ConfidenceVeryLow, status: "Not Suitable"},
	}

	for _, tt := range tests {
		conf, status := Classify(tt.score)
		assert.Equal(t, tt.confidence, conf, "score %v", tt.score)
		assert.Equal(t, tt.status, status, "score %v", tt.score)
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 0.894, RoundScore(0.8943902439024392))
	assert.Equal(t, 0.097, RoundScore(0.09666666666666669))
	assert.Equal(t, 0.5, RoundScore(0.4999999999999999))
	assert.Equal(t, 0.0, RoundScore(0))
}

func TestNewRecommendation_StableRanking(t *testing.T) {
	scores := []CropScore{
		NewCropScore("Alpha", 0.3),
		NewCropScore("Bravo", 0.8),
		NewCropScore("Charlie", 0.3),
		NewCropScore("Delta", 0.8),
	}

	rec := NewRecommendation(SoilSample{PH: 6, Temperature: 25, Humidity: 60}, scores)

	var order []string
	for _, s := range rec.All {
		order = append(order, s.Crop)
	}
	assert.Equal(t, []string{"Bravo", "Delta", "Alpha", "Charlie"}, order)
	require.NotNil(t, rec.Top)
	assert.Equal(t, "Bravo", rec.Top.Crop)

	// input slice is left untouched
	assert.Equal(t, "Alpha", scores[0].Crop)
}

func TestNewRecommendation_Empty(t *testing.T) {
	rec := NewRecommendation(SoilSample{}, nil)
	assert.Nil(t, rec.Top)
	assert.Empty(t, rec.All)
	assert.Contains(t, rec.Summary, "not optimal for any")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		ranked []CropScore
		want   string
	}{
		{
			name:   "nothing reaches possible",
			ranked: []CropScore{NewCropScore("Padi", 0.199), NewCropScore("Jagung", 0)},
			want:   "Current soil conditions are not optimal for any of the analyzed crops. Consider soil amendment or different crop selection.",
		},
		{
			name:   "single suitable crop",
			ranked: []CropScore{NewCropScore("Kacang_Hijau", 0.5), NewCropScore("Padi", 0.097)},
			want:   "Kacang_Hijau is recommended with medium confidence (score: 0.5).",
		},
		{
			name:   "single high crop",
			ranked: []CropScore{NewCropScore("Padi", 0.894), NewCropScore("Jagung", 0.3)},
			want:   "Padi is recommended with high confidence (score: 0.894).",
		},
		{
			name: "multiple suitable crops capped at three",
			ranked: []CropScore{
				NewCropScore("Padi", 0.9), NewCropScore("Jagung", 0.8),
				NewCropScore("Kedelai", 0.6), NewCropScore("Ubi_Kayu", 0.5),
			},
			want: "Multiple suitable options: Padi, Jagung, Kedelai. Padi has the highest suitability.",
		},
		{
			name:   "two suitable crops",
			ranked: []CropScore{NewCropScore("Padi", 0.9), NewCropScore("Jagung", 0.4)},
			want:   "Multiple suitable options: Padi, Jagung. Padi has the highest suitability.",
		},
		{
			name:   "best available",
			ranked: []CropScore{NewCropScore("Ubi_Jalar", 0.35), NewCropScore("Padi", 0.2)},
			want:   "Ubi_Jalar is the best option available, though conditions are not optimal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.ranked))
		})
	}
}
