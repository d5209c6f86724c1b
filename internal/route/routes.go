package route

import (
	"net/http"

	"smartwaste/internal/config"
	"smartwaste/internal/handler"
	"smartwaste/internal/logger"
	"smartwaste/internal/middleware"
	"smartwaste/internal/repository"
	"smartwaste/internal/service"
	"smartwaste/internal/service/feed"
	"smartwaste/internal/service/inference"
)

// SetupRoutes registers the API endpoints, log endpoints, and wraps the mux
// with the CORS middleware.
func SetupRoutes(pipeline *service.Pipeline, tracker *service.SiteTracker, hub *feed.Hub,
	inferenceClient *inference.Client, tasks repository.TaskRepository,
	cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/detect", handler.DetectHandler(pipeline, logger))
	mux.HandleFunc("/api/dedup/reset", handler.ResetDedupHandler(tracker, logger))
	mux.HandleFunc("/api/health", handler.HealthHandler(inferenceClient))
	mux.HandleFunc("/api/tasks", handler.ListTasksHandler(tasks, logger))
	mux.HandleFunc("/api/feed", handler.FeedWebsocketHandler(hub, logger))

	// Saved snapshots for the dashboard
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDirectory))))

	// Log endpoints
	mux.HandleFunc("/logs/info", handler.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handler.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handler.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handler.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handler.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handler.ClearErrorLogsHandler(logger))

	// Apply middleware
	return middleware.CORSMiddleware(mux)
}
