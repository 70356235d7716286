package mock

import (
	"context"
	"math"
	"math/rand"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

// FakeSensor simulates the soil probe for development
// This implements the ports.SoilSensor interface
type FakeSensor struct {
	base      domain.SoilSample
	variation domain.SoilSample
}

// NewFakeSensor creates a sensor that returns base ± variation per field,
// clamped to the physical bounds.
func NewFakeSensor(base, variation domain.SoilSample) *FakeSensor {
	return &FakeSensor{
		base:      base,
		variation: variation,
	}
}

// Read returns a simulated soil sample
func (s *FakeSensor) Read(ctx context.Context) (domain.SoilSample, error) {
	if err := ctx.Err(); err != nil {
		return domain.SoilSample{}, err
	}

	return domain.SoilSample{
		PH:          jitter(s.base.PH, s.variation.PH, domain.PHBounds),
		Temperature: jitter(s.base.Temperature, s.variation.Temperature, domain.TemperatureBounds),
		Humidity:    jitter(s.base.Humidity, s.variation.Humidity, domain.HumidityBounds),
	}, nil
}

func jitter(base, variation float64, bounds domain.Range) float64 {
	v := base
	if variation > 0 {
		v += (rand.Float64() - 0.5) * 2 * variation
	}
	return math.Min(bounds.Max, math.Max(bounds.Min, v))
}

// Close is a no-op for fake sensor
func (s *FakeSensor) Close() error {
	return nil
}
