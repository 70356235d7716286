package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

func TestFakeSensor_StaysInBounds(t *testing.T) {
	s := NewFakeSensor(
		domain.SoilSample{PH: 13.5, Temperature: 1, Humidity: 99},
		domain.SoilSample{PH: 2, Temperature: 5, Humidity: 10},
	)

	for i := 0; i < 500; i++ {
		sample, err := s.Read(context.Background())
		require.NoError(t, err)
		require.NoError(t, sample.Validate())
	}
}

func TestFakeSensor_Deterministic(t *testing.T) {
	base := domain.SoilSample{PH: 6.5, Temperature: 27, Humidity: 75}
	s := NewFakeSensor(base, domain.SoilSample{})

	sample, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base, sample)
}

func TestFakeSensor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFakeSensor(domain.SoilSample{}, domain.SoilSample{}).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
