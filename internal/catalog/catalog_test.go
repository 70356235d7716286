package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/fuzzy"
)

const minimalCatalog = `
inputs:
  ph:
    universe: {min: 0, max: 14, step: 0.1}
    terms:
      - {name: acidic, shape: trapezoid, points: [0, 0, 4.5, 6.0]}
      - {name: neutral, shape: triangle, points: [5.0, 6.5, 8.0]}
  temperature:
    universe: {min: 0, max: 50, step: 0.1}
    terms:
      - {name: normal, shape: triangle, points: [20, 27, 32]}
  humidity:
    universe: {min: 0, max: 100, step: 0.1}
    terms:
      - {name: medium, shape: triangle, points: [50, 70, 85]}
suitability:
  universe: {min: 0, max: 1, step: 0.01}
  terms:
    - {name: unsuitable, shape: triangle, points: [0, 0, 0.3]}
    - {name: suitable, shape: triangle, points: [0.7, 1.0, 1.0]}
crops:
  - name: Test
    rules:
      - when: {all: [ph.neutral, {not: ph.acidic}, {any: [temperature.normal, humidity.medium]}]}
        then: suitable
`

func TestDefault_Compiles(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Len(t, c.Crops, 7)

	ev, err := c.Compile()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Padi", "Jagung", "Kedelai", "Kacang_Tanah", "Kacang_Hijau", "Ubi_Kayu", "Ubi_Jalar"},
		ev.Crops())

	padi, err := ev.OptimalConditions("Padi")
	require.NoError(t, err)
	assert.Equal(t, domain.GrowingConditions{
		PH:          domain.Range{Min: 6.0, Max: 7.0},
		Temperature: domain.Range{Min: 24, Max: 29},
		Humidity:    domain.Range{Min: 60, Max: 90},
	}, padi)
}

func TestParse_NestedExpression(t *testing.T) {
	c, err := Parse([]byte(minimalCatalog))
	require.NoError(t, err)

	when := c.Crops[0].Rules[0].When
	require.Len(t, when.All, 3)
	assert.Equal(t, "ph.neutral", when.All[0].Term)
	require.NotNil(t, when.All[1].Not)
	assert.Equal(t, "ph.acidic", when.All[1].Not.Term)
	assert.Len(t, when.All[2].Any, 2)

	ev, err := c.Compile()
	require.NoError(t, err)

	rec, err := ev.Recommend(6.5, 27, 0)
	require.NoError(t, err)
	require.NotNil(t, rec.Top)
	assert.Equal(t, "Test", rec.Top.Crop)
	assert.Equal(t, 0.903, rec.Top.Score)
	assert.Equal(t, domain.ConfidenceHigh, rec.Top.Confidence)
}

func TestParse_InvalidExpression(t *testing.T) {
	doc := `
crops:
  - name: Broken
    rules:
      - when: {all: [ph.neutral], any: [ph.acidic]}
        then: suitable
`
	_, err := Parse([]byte(doc))
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("crops: []\nweather: sunny\n"))
	assert.Error(t, err)
}

func TestCompile_UnknownTermReportsRuleLine(t *testing.T) {
	c, err := Parse([]byte(strings.Replace(minimalCatalog, "humidity.medium", "humidity.soggy", 1)))
	require.NoError(t, err)

	_, err = c.Compile()
	require.Error(t, err)
	assert.ErrorIs(t, err, fuzzy.ErrUnknownTerm)
	assert.ErrorIs(t, err, fuzzy.ErrConfig)
	assert.ErrorContains(t, err, `crop "Test" rule 0`)
	assert.ErrorContains(t, err, "line 24")
	assert.ErrorContains(t, err, "humidity.soggy")
}

func TestCompile_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Catalog)
		wantErr error
	}{
		{
			name: "unordered breakpoints",
			mutate: func(c *Catalog) {
				c.Inputs.PH.Terms[0].Points = []float64{0, 5, 4.5, 6.0}
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "duplicate term",
			mutate: func(c *Catalog) {
				c.Inputs.PH.Terms[1].Name = "acidic"
			},
			wantErr: fuzzy.ErrDuplicateTerm,
		},
		{
			name: "unknown shape",
			mutate: func(c *Catalog) {
				c.Suitability.Terms[0].Shape = "gaussian"
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "wrong point count",
			mutate: func(c *Catalog) {
				c.Suitability.Terms[0].Points = []float64{0, 0.3}
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "unknown antecedent term",
			mutate: func(c *Catalog) {
				c.Crops[0].Rules[0].When = ExprSpec{Term: "ph.salty"}
			},
			wantErr: fuzzy.ErrUnknownTerm,
		},
		{
			name: "unknown term nested under not",
			mutate: func(c *Catalog) {
				c.Crops[0].Rules[0].When = ExprSpec{Any: []ExprSpec{
					{Term: "ph.neutral"},
					{Not: &ExprSpec{Term: "humidity.soggy"}},
				}}
			},
			wantErr: fuzzy.ErrUnknownTerm,
		},
		{
			name: "unknown input variable",
			mutate: func(c *Catalog) {
				c.Crops[0].Rules[0].When = ExprSpec{All: []ExprSpec{{Term: "wind.calm"}}}
			},
			wantErr: fuzzy.ErrUnknownTerm,
		},
		{
			name: "malformed term reference",
			mutate: func(c *Catalog) {
				c.Crops[0].Rules[0].When = ExprSpec{Term: "neutral"}
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "unknown consequent",
			mutate: func(c *Catalog) {
				c.Crops[0].Rules[0].Then = "excellent"
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "duplicate crop",
			mutate: func(c *Catalog) {
				c.Crops = append(c.Crops, c.Crops[0])
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "no crops",
			mutate: func(c *Catalog) {
				c.Crops = nil
			},
			wantErr: fuzzy.ErrConfig,
		},
		{
			name: "bad universe",
			mutate: func(c *Catalog) {
				c.Suitability.Universe.Step = 0
			},
			wantErr: fuzzy.ErrConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(minimalCatalog))
			require.NoError(t, err)
			tt.mutate(c)

			ev, err := c.Compile()
			assert.Nil(t, ev)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o644))

	c, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Len(t, c.Crops, 1)

	c, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Len(t, c.Crops, 7)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
