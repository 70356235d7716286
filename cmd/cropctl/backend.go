package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/recommender"
	"github.com/quentinrf/plant-monitor/services/crop-service/pkg/cropv1"
)

// backend answers crop queries either in-process or over gRPC
type backend interface {
	Recommend(ctx context.Context, sample domain.SoilSample) (*domain.Recommendation, error)
	OptimalConditions(ctx context.Context, crop string) (domain.GrowingConditions, error)
	Crops(ctx context.Context) ([]string, error)
	Close() error
}

func openBackend(opts *globalOptions) (backend, error) {
	if opts.addr != "" {
		return dialRemote(opts)
	}
	ev, err := compileCatalog(opts.catalogPath)
	if err != nil {
		return nil, err
	}
	return &localBackend{evaluator: ev}, nil
}

func compileCatalog(path string) (*recommender.Evaluator, error) {
	cat, err := catalog.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	ev, err := cat.Compile()
	if err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}
	log.Debug().Strs("crops", ev.Crops()).Msg("compiled crop catalog")
	return ev, nil
}

type localBackend struct {
	evaluator *recommender.Evaluator
}

func (b *localBackend) Recommend(_ context.Context, sample domain.SoilSample) (*domain.Recommendation, error) {
	return b.evaluator.RecommendSample(sample)
}

func (b *localBackend) OptimalConditions(_ context.Context, crop string) (domain.GrowingConditions, error) {
	return b.evaluator.OptimalConditions(crop)
}

func (b *localBackend) Crops(context.Context) ([]string, error) {
	return b.evaluator.Crops(), nil
}

func (b *localBackend) Close() error { return nil }

type remoteBackend struct {
	conn   *grpc.ClientConn
	client cropv1.CropServiceClient
}

func dialRemote(opts *globalOptions) (*remoteBackend, error) {
	creds := insecure.NewCredentials()
	if opts.tls.Enabled() {
		cfg, err := opts.tls.Client()
		if err != nil {
			return nil, fmt.Errorf("loading TLS config: %w", err)
		}
		creds = credentials.NewTLS(cfg)
	}

	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.addr, err)
	}
	log.Debug().Str("addr", opts.addr).Bool("tls", opts.tls.Enabled()).Msg("using remote crop service")
	return &remoteBackend{conn: conn, client: cropv1.NewCropServiceClient(conn)}, nil
}

func (b *remoteBackend) Recommend(ctx context.Context, sample domain.SoilSample) (*domain.Recommendation, error) {
	resp, err := b.client.Recommend(ctx, grpcAdapter.SampleToStruct(sample))
	if err != nil {
		return nil, fromStatus(err)
	}
	var rec domain.Recommendation
	if err := grpcAdapter.FromStruct(resp, &rec); err != nil {
		return nil, fmt.Errorf("decoding recommendation: %w", err)
	}
	return &rec, nil
}

func (b *remoteBackend) OptimalConditions(ctx context.Context, crop string) (domain.GrowingConditions, error) {
	var cond domain.GrowingConditions
	resp, err := b.client.OptimalConditions(ctx, wrapperspb.String(crop))
	if err != nil {
		return cond, fromStatus(err)
	}
	if err := grpcAdapter.FromStruct(resp, &cond); err != nil {
		return cond, fmt.Errorf("decoding conditions: %w", err)
	}
	return cond, nil
}

func (b *remoteBackend) Crops(ctx context.Context) ([]string, error) {
	resp, err := b.client.ListCrops(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	var out struct {
		Crops []string `json:"crops"`
	}
	if err := grpcAdapter.FromStruct(resp, &out); err != nil {
		return nil, fmt.Errorf("decoding crops: %w", err)
	}
	return out.Crops, nil
}

func (b *remoteBackend) Close() error {
	return b.conn.Close()
}

// statusError keeps the server's message while matching a domain sentinel
type statusError struct {
	msg    string
	target error
}

func (e *statusError) Error() string { return e.msg }
func (e *statusError) Unwrap() error { return e.target }

// fromStatus maps server status codes back onto domain sentinels
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return &statusError{msg: st.Message(), target: domain.ErrOutOfRange}
	case codes.NotFound:
		return &statusError{msg: st.Message(), target: domain.ErrUnknownCrop}
	default:
		return errors.New(st.Message())
	}
}
