package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"smartwaste/internal/config"
	"smartwaste/internal/logger"
	"smartwaste/internal/repository"
	"smartwaste/internal/repository/sqlite"
	"smartwaste/internal/route"
	"smartwaste/internal/service"
	"smartwaste/internal/service/events"
	"smartwaste/internal/service/feed"
	"smartwaste/internal/service/geolocate"
	"smartwaste/internal/service/inference"
	"smartwaste/internal/service/snapshot"
)

type App struct {
	config    *config.Config
	logger    *logger.Logger
	db        *sqlite.DB
	tasks     repository.TaskRepository
	tracker   *service.SiteTracker
	hub       *feed.Hub
	producer  *events.Producer
	inference *inference.Client
	pipeline  *service.Pipeline
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	tasks := sqlite.NewTaskRepository(db)

	inferenceClient := inference.NewClient(cfg.InferenceURL, cfg.InferenceAPIKey,
		cfg.InferenceConfidence, cfg.InferenceOverlap, cfg.InferenceTimeout)
	if err := inferenceClient.CheckHealth(); err != nil {
		log.Warning("Model service not available: %v", err)
	}

	geo := geolocate.NewClient(cfg.GeoLookupURL, cfg.GeoTimeout, log)
	snapshots := snapshot.NewStore(cfg.ImageDirectory, log)
	tracker := service.NewSiteTracker(cfg.DedupCellSize)
	hub := feed.NewHub(log)

	notifiers := []service.TaskNotifier{hub}

	var producer *events.Producer
	if cfg.Kafka.BootstrapServers != "" {
		producer, err = events.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warning("Task event producer disabled: %v", err)
		} else {
			notifiers = append(notifiers, producer)
		}
	}

	builder := service.NewTaskBuilder(tracker, tasks, geo, snapshots, notifiers, cfg.CameraID, log)
	pipeline := service.NewPipeline(inferenceClient, builder, log,
		cfg.DefaultFrameWidth, cfg.DefaultFrameHeight)

	return &App{
		config:    cfg,
		logger:    log,
		db:        db,
		tasks:     tasks,
		tracker:   tracker,
		hub:       hub,
		producer:  producer,
		inference: inferenceClient,
		pipeline:  pipeline,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	router := route.SetupRoutes(a.pipeline, a.tracker, a.hub, a.inference, a.tasks, a.config, a.logger)

	a.logger.Info("SmartWaste Detection API starting on port %d", a.config.Port)
	a.logger.Info("Detect:  POST http://localhost:%d/api/detect", a.config.Port)
	a.logger.Info("Health:  GET  http://localhost:%d/api/health", a.config.Port)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the database and event producer resources.
func (a *App) Close() {
	if a.producer != nil {
		a.producer.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
