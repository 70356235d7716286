package domain

import (
	"time"
)

// Physical bounds of the soil sensor values
var (
	PHBounds          = Range{Min: 0, Max: 14}
	TemperatureBounds = Range{Min: 0, Max: 50}
	HumidityBounds    = Range{Min: 0, Max: 100}
)

// Range is a closed interval [Min, Max]
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in the interval. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SoilSample is a raw triple read from the sensors
type SoilSample struct {
	PH          float64
	Temperature float64 // °C
	Humidity    float64 // %
}

// Validate checks every field against its physical bounds, in the order
// ph, temperature, humidity.
func (s SoilSample) Validate() error {
	checks := []struct {
		field  string
		value  float64
		bounds Range
	}{
		{"ph", s.PH, PHBounds},
		{"temperature", s.Temperature, TemperatureBounds},
		{"humidity", s.Humidity, HumidityBounds},
	}
	for _, c := range checks {
		if !c.bounds.Contains(c.value) {
			return &RangeError{Field: c.field, Value: c.value, Min: c.bounds.Min, Max: c.bounds.Max}
		}
	}
	return nil
}

// SoilReading represents a single stored soil measurement
type SoilReading struct {
	ID int64
	SoilSample
	Timestamp time.Time
}

// NewSoilReading creates a new reading with validation
func NewSoilReading(sample SoilSample) (*SoilReading, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}

	return &SoilReading{
		SoilSample: sample,
		Timestamp:  time.Now().UTC(),
	}, nil
}
