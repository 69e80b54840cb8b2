package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/handlers"
	"github.com/vistara-ai/vistara/internal/services/analytics"
	"github.com/vistara-ai/vistara/internal/services/forecast"
	"github.com/vistara-ai/vistara/internal/services/ingest"
	"github.com/vistara-ai/vistara/internal/services/report"
	"github.com/vistara-ai/vistara/internal/services/scheduler"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Pipeline services
	Aggregator       *ingest.Aggregator
	Classifier       *analytics.Classifier
	SnapshotService  *snapshot.Service
	ForecastService  *forecast.Service
	PDFService       *report.PDFService
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	SnapshotHandler *handlers.SnapshotHandler
	RegionHandler   *handlers.RegionHandler
	ExportHandler   *handlers.ExportHandler
	ForecastHandler *handlers.ForecastHandler
	BriefHandler    *handlers.BriefHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Pipeline services
	app.Aggregator = ingest.NewAggregator(&cfg.Datasets, logger)
	app.Classifier = analytics.NewClassifier(&cfg.Analytics, logger)
	app.SnapshotService = snapshot.NewService(app.Aggregator, app.Classifier, logger)
	app.ForecastService = forecast.NewService(&cfg.Forecast, logger)
	app.PDFService = report.NewPDFService(logger)
	app.SchedulerService = scheduler.NewService(&cfg.Refresh, app.SnapshotService, logger)

	// Warm the snapshot so the first request does not pay the build
	// cost. A failed or empty build is not fatal: the server starts and
	// reports the degraded state through the status endpoint.
	if snap, err := app.SnapshotService.Load(); err != nil {
		logger.Warn().Err(err).Msg("Initial snapshot build failed - serving degraded until reload")
	} else if snap.Empty() {
		logger.Warn().Msg("Initial snapshot is empty - check the dataset directories")
	}

	// HTTP handlers
	app.APIHandler = handlers.NewAPIHandler(cfg, logger)
	app.SnapshotHandler = handlers.NewSnapshotHandler(app.SnapshotService, app.SchedulerService, logger)
	app.RegionHandler = handlers.NewRegionHandler(app.SnapshotService, logger)
	app.ExportHandler = handlers.NewExportHandler(app.SnapshotService, logger)
	app.ForecastHandler = handlers.NewForecastHandler(app.SnapshotService, app.ForecastService, logger)
	app.BriefHandler = handlers.NewBriefHandler(app.SnapshotService, app.PDFService, logger)

	// Optional scheduled refresh
	if err := app.SchedulerService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().Msg("Application initialized")

	return app, nil
}

// Close releases application resources
func (a *App) Close() {
	a.SchedulerService.Stop()
	a.Logger.Info().Msg("Application closed")
}
