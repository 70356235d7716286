package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/crop-service/pkg/cropv1"
)

// CropServiceHandler implements the gRPC CropService
type CropServiceHandler struct {
	cropv1.UnimplementedCropServiceServer
	recommender ports.Recommender
	repo        domain.ReadingRepository
	sensor      ports.SoilSensor
	metrics     *metrics.Metrics
}

// NewCropServiceHandler creates a new gRPC handler. m may be nil.
func NewCropServiceHandler(rec ports.Recommender, repo domain.ReadingRepository, sensor ports.SoilSensor, m *metrics.Metrics) *CropServiceHandler {
	return &CropServiceHandler{
		recommender: rec,
		repo:        repo,
		sensor:      sensor,
		metrics:     m,
	}
}

// Recommend ranks crops for the reading in the request
func (h *CropServiceHandler) Recommend(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sample, err := sampleFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	log.Info().
		Float64("ph", sample.PH).
		Float64("temperature", sample.Temperature).
		Float64("humidity", sample.Humidity).
		Msg("Recommend called")

	rec, err := h.recommend(sample)
	if err != nil {
		return nil, err
	}
	return toStruct(rec)
}

// OptimalConditions returns the growing ranges of a crop
func (h *CropServiceHandler) OptimalConditions(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	log.Info().Str("crop", req.GetValue()).Msg("OptimalConditions called")

	cond, err := h.recommender.OptimalConditions(req.GetValue())
	if errors.Is(err, domain.ErrUnknownCrop) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get optimal conditions")
		return nil, status.Error(codes.Internal, "failed to get optimal conditions")
	}

	return toStruct(cond)
}

// RecordReading validates and stores a reading
func (h *CropServiceHandler) RecordReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sample, err := sampleFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	log.Info().
		Float64("ph", sample.PH).
		Float64("temperature", sample.Temperature).
		Float64("humidity", sample.Humidity).
		Msg("RecordReading called")

	reading, err := domain.NewSoilReading(sample)
	if err != nil {
		log.Warn().Err(err).Msg("invalid reading")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.repo.SaveReading(ctx, reading); err != nil {
		log.Error().Err(err).Msg("failed to save reading")
		return nil, status.Error(codes.Internal, "failed to save reading")
	}

	return toStruct(readingView(reading))
}

// RecommendCurrent ranks crops for the most recent reading
func (h *CropServiceHandler) RecommendCurrent(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	log.Info().Msg("RecommendCurrent called")

	reading, err := h.repo.GetLatestReading(ctx)
	if errors.Is(err, domain.ErrReadingNotFound) {
		// No readings yet - read sensor now
		log.Info().Msg("no readings in database, reading sensor")

		if h.sensor == nil {
			return nil, status.Error(codes.NotFound, "no readings recorded")
		}

		sample, err := h.sensor.Read(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to read sensor")
			return nil, status.Error(codes.Unavailable, "failed to read sensor")
		}

		reading, err = domain.NewSoilReading(sample)
		if err != nil {
			log.Error().Err(err).Msg("sensor returned invalid reading")
			return nil, status.Error(codes.Internal, "sensor returned invalid reading")
		}

		// Save for next time
		if err := h.repo.SaveReading(ctx, reading); err != nil {
			log.Error().Err(err).Msg("failed to save reading")
			// Don't fail - we still have the reading
		}
	} else if err != nil {
		log.Error().Err(err).Msg("failed to get latest reading")
		return nil, status.Error(codes.Internal, "failed to get reading")
	}

	rec, err := h.recommend(reading.SoilSample)
	if err != nil {
		return nil, err
	}
	return toStruct(rec)
}

// ListCrops returns the catalog crop names
func (h *CropServiceHandler) ListCrops(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toStruct(map[string]any{"crops": h.recommender.Crops()})
}

func (h *CropServiceHandler) recommend(sample domain.SoilSample) (*domain.Recommendation, error) {
	start := time.Now()
	rec, err := h.recommender.RecommendSample(sample)
	if h.metrics != nil {
		h.metrics.ObserveRecommendation(rec, err, time.Since(start))
	}

	if errors.Is(err, domain.ErrOutOfRange) {
		log.Warn().Err(err).Msg("reading out of range")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to compute recommendation")
		return nil, status.Error(codes.Internal, "failed to compute recommendation")
	}
	return rec, nil
}

// sampleFromStruct reads the three numeric fields of a request
func sampleFromStruct(s *structpb.Struct) (domain.SoilSample, error) {
	var sample domain.SoilSample
	fields := []struct {
		name string
		dst  *float64
	}{
		{"ph", &sample.PH},
		{"temperature", &sample.Temperature},
		{"humidity", &sample.Humidity},
	}

	for _, f := range fields {
		v, ok := s.GetFields()[f.name]
		if !ok {
			return sample, fmt.Errorf("missing field %q", f.name)
		}
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return sample, fmt.Errorf("field %q must be a number", f.name)
		}
		*f.dst = n.NumberValue
	}
	return sample, nil
}

// SampleToStruct builds a request payload for Recommend or RecordReading
func SampleToStruct(sample domain.SoilSample) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"ph":          structpb.NewNumberValue(sample.PH),
		"temperature": structpb.NewNumberValue(sample.Temperature),
		"humidity":    structpb.NewNumberValue(sample.Humidity),
	}}
}

// readingResponse is the JSON shape of a stored reading
type readingResponse struct {
	ID          int64   `json:"id"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   int64   `json:"timestamp"`
}

func readingView(r *domain.SoilReading) readingResponse {
	return readingResponse{
		ID:          r.ID,
		PH:          r.PH,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Timestamp:   r.Timestamp.Unix(),
	}
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		return nil, status.Error(codes.Internal, "failed to encode response")
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		return nil, status.Error(codes.Internal, "failed to encode response")
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return s, nil
}

// FromStruct decodes a response Struct into a JSON-tagged value
func FromStruct(s *structpb.Struct, v any) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
