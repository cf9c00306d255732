package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/flytipwatch/impact-planner/internal/api_server"
	"github.com/flytipwatch/impact-planner/internal/config"
	"github.com/flytipwatch/impact-planner/internal/events"
	handlers "github.com/flytipwatch/impact-planner/internal/handlers/v1alpha1"
	"github.com/flytipwatch/impact-planner/internal/imagestore"
	"github.com/flytipwatch/impact-planner/internal/inference"
	"github.com/flytipwatch/impact-planner/internal/pipeline"
	"github.com/flytipwatch/impact-planner/internal/places"
	"github.com/flytipwatch/impact-planner/internal/region"
	"github.com/flytipwatch/impact-planner/internal/service"
	"github.com/flytipwatch/impact-planner/internal/store"
	"github.com/flytipwatch/impact-planner/internal/tasks"
	"github.com/flytipwatch/impact-planner/pkg/log"
	"github.com/flytipwatch/impact-planner/pkg/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the impact api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
		defer func() { _ = logger.Sync() }()
		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		dataStore := store.NewStore(db)
		defer dataStore.Close()

		if err := dataStore.InitialMigration(); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}
		if err := seedCoefficients(cfg, dataStore); err != nil {
			zap.S().Fatalw("seeding coefficients", "error", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		coefficients := service.NewCoefficientCache(dataStore, cfg.Service.CoefficientRefreshInterval)
		if err := coefficients.Load(ctx); err != nil {
			zap.S().Fatalw("loading coefficients", "error", err)
		}
		go coefficients.Run(ctx)

		resolver := region.NewDefaultResolver()
		inferenceClient := inference.NewClient(
			cfg.Inference.BaseUrl,
			cfg.Inference.ApiKey,
			inference.WithVisionModel(cfg.Inference.VisionModel),
			inference.WithNarrativeModel(cfg.Inference.NarrativeModel),
		)

		var enricher pipeline.AreaEnricher
		if cfg.Places.ApiKey != "" {
			enricher = places.NewClient(cfg.Places.BaseUrl, cfg.Places.ApiKey)
		} else {
			zap.S().Info("places api key not set, summaries will omit nearby places")
		}

		var imageStore pipeline.ImageStore
		if cfg.ImageStore.AccessKey != "" {
			minioStore, err := imagestore.NewMinioStore(
				imagestore.WithEndpoint(cfg.ImageStore.Endpoint),
				imagestore.WithBucket(cfg.ImageStore.Bucket),
				imagestore.WithAccessKey(cfg.ImageStore.AccessKey),
				imagestore.WithSecretKey(cfg.ImageStore.SecretKey),
				imagestore.WithSSL(cfg.ImageStore.UseSSL),
				imagestore.WithPublicBaseURL(cfg.ImageStore.PublicBaseUrl),
			)
			if err != nil {
				zap.S().Fatalw("initializing image store", "error", err)
			}
			imageStore = minioStore
		} else {
			zap.S().Warn("image store credentials not set, results will have no image urls")
		}

		taskStore := tasks.NewStore()
		prometheus.MustRegister(metrics.NewTaskStatsCollector(taskStore))

		eventProducer := events.NewEventProducer(events.NewStdoutWriter())
		defer func() { _ = eventProducer.Close() }()

		reportPipeline := pipeline.New(
			resolver,
			coefficients,
			inferenceClient,
			inferenceClient,
			inferenceClient,
			inferenceClient,
			enricher,
			imageStore,
			cfg.Service.StageTimeout,
		)
		reports := service.NewReportService(taskStore, reportPipeline, eventProducer)

		listener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}

		server := apiserver.New(cfg, handlers.NewServiceHandler(reports, coefficients), listener)
		if err := server.Run(ctx); err != nil {
			zap.S().Fatalw("running server", "error", err)
		}

		return nil
	},
}

// seedCoefficients populates the coefficient table, preferring an operator
// supplied workbook over the built-in dataset.
func seedCoefficients(cfg *config.Config, dataStore store.Store) error {
	if cfg.Service.CoefficientWorkbook == "" {
		return dataStore.Seed()
	}

	content, err := os.ReadFile(cfg.Service.CoefficientWorkbook)
	if err != nil {
		return err
	}
	rows, err := store.ParseCoefficientWorkbook(content)
	if err != nil {
		return err
	}

	zap.S().Infof("importing %d coefficient rows from %s", len(rows), cfg.Service.CoefficientWorkbook)
	return dataStore.Coefficient().Replace(rows)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
