package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/catalog"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/crop-service/pkg/cropv1"
)

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Read configuration from environment
	config := loadConfig()
	zerolog.SetGlobalLevel(config.LogLevel)

	log.Info().Msg("starting crop service")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Compile the crop catalog once; it is read-only from here on
	cat, err := catalog.LoadOrDefault(config.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("catalog", config.CatalogPath).Msg("failed to load crop catalog")
	}
	evaluator, err := cat.Compile(recommenderFaults(m))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid crop catalog")
	}
	log.Info().Strs("crops", evaluator.Crops()).Msg("compiled crop catalog")

	// Initialize repository
	var repo domain.ReadingRepository
	switch config.RepoType {
	case "sqlite":
		r, err := sqlite.NewReadingRepository(config.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", config.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", config.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewReadingRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize sensor
	var sensor ports.SoilSensor
	switch config.SensorType {
	case "gpio":
		log.Fatal().Msg("gpio sensor not yet implemented; set SENSOR_TYPE=mock")
	default:
		// loamy field at pH 6.5, 27°C, 70% humidity with realistic drift
		sensor = mock.NewFakeSensor(
			domain.SoilSample{PH: 6.5, Temperature: 27, Humidity: 70},
			domain.SoilSample{PH: 0.5, Temperature: 3, Humidity: 10},
		)
		log.Info().Msg("initialized mock sensor")
	}
	defer sensor.Close()

	// Initialize gRPC handler
	handler := grpcAdapter.NewCropServiceHandler(evaluator, repo, sensor, m)

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if config.TLS.Enabled() {
		tlsCfg, err := config.TLS.Server()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	// Create gRPC server
	grpcServer := grpc.NewServer(serverOpts...)
	cropv1.RegisterCropServiceServer(grpcServer, handler)

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", config.Port))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", config.Port).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("port", config.MetricsPort).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to serve metrics")
		}
	}()

	// Start background recorder
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := ports.NewRecorder(sensor, repo, evaluator, config.RecordInterval, config.Retention)
	go recorder.Start(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	cancel() // Stop recorder
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop metrics server")
	}

	log.Info().Msg("server stopped")
}
