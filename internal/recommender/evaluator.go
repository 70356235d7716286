// Package recommender ranks candidate crops for a soil reading using one
// fuzzy inference engine per crop.
package recommender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/fuzzy"
)

// CropModel is the compiled configuration of one candidate crop.
type CropModel struct {
	Name    string
	Engine  *fuzzy.Engine
	Optimal domain.GrowingConditions
}

// Inputs binds the three sensor fields to their linguistic variables.
type Inputs struct {
	PH          *fuzzy.Variable
	Temperature *fuzzy.Variable
	Humidity    *fuzzy.Variable
}

// FaultHandler is notified when a crop cannot be evaluated.
type FaultHandler func(crop string, err error)

// Option configures an Evaluator
type Option func(*Evaluator)

// WithFaultHandler registers a callback for per-crop evaluation faults.
func WithFaultHandler(fn FaultHandler) Option {
	return func(e *Evaluator) { e.onFault = fn }
}

// Evaluator scores every configured crop for a reading.
// It holds only configuration built by New and is safe for concurrent use.
type Evaluator struct {
	inputs  Inputs
	crops   []CropModel
	index   map[string]int
	onFault FaultHandler
}

// New validates and freezes the crop table.
func New(inputs Inputs, crops []CropModel, opts ...Option) (*Evaluator, error) {
	if inputs.PH == nil || inputs.Temperature == nil || inputs.Humidity == nil {
		return nil, fmt.Errorf("%w: all three input variables are required", fuzzy.ErrConfig)
	}
	if len(crops) == 0 {
		return nil, fmt.Errorf("%w: no crops configured", fuzzy.ErrConfig)
	}

	e := &Evaluator{
		inputs: inputs,
		crops:  append([]CropModel(nil), crops...),
		index:  make(map[string]int, len(crops)),
	}
	for i, c := range e.crops {
		if c.Name == "" || c.Engine == nil {
			return nil, fmt.Errorf("%w: crop %d is incomplete", fuzzy.ErrConfig, i)
		}
		if _, dup := e.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %q", fuzzy.ErrConfig, c.Name)
		}
		e.index[c.Name] = i
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Crops returns crop names in declaration order
func (e *Evaluator) Crops() []string {
	names := make([]string, len(e.crops))
	for i, c := range e.crops {
		names[i] = c.Name
	}
	return names
}

// Recommend validates the reading and ranks all crops.
func (e *Evaluator) Recommend(ph, temperature, humidity float64) (*domain.Recommendation, error) {
	return e.RecommendSample(domain.SoilSample{PH: ph, Temperature: temperature, Humidity: humidity})
}

// RecommendSample is Recommend for an already assembled sample.
func (e *Evaluator) RecommendSample(sample domain.SoilSample) (*domain.Recommendation, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}

	in := make(fuzzy.Inputs, 3)
	in.Set(e.inputs.PH, sample.PH)
	in.Set(e.inputs.Temperature, sample.Temperature)
	in.Set(e.inputs.Humidity, sample.Humidity)

	scores := make([]domain.CropScore, len(e.crops))
	for i, c := range e.crops {
		raw, err := c.Engine.Infer(in)
		if err != nil {
			scores[i] = e.fault(c.Name, err)
			continue
		}
		scores[i] = domain.NewCropScore(c.Name, domain.RoundScore(raw))
	}

	return domain.NewRecommendation(sample, scores), nil
}

// fault degrades a single crop to a zero score instead of failing the
// whole recommendation.
func (e *Evaluator) fault(crop string, err error) domain.CropScore {
	log.Error().Err(err).Str("crop", crop).Msg("crop evaluation failed, scoring as zero")
	if e.onFault != nil {
		e.onFault(crop, err)
	}
	s := domain.NewCropScore(crop, 0)
	s.Degraded = true
	return s
}

// OptimalConditions returns the growing ranges configured for a crop.
func (e *Evaluator) OptimalConditions(crop string) (domain.GrowingConditions, error) {
	i, ok := e.index[crop]
	if !ok {
		available := e.Crops()
		sort.Strings(available)
		return domain.GrowingConditions{}, fmt.Errorf("%w: %q (available: %s)",
			domain.ErrUnknownCrop, crop, strings.Join(available, ", "))
	}
	return e.crops[i].Optimal, nil
}
