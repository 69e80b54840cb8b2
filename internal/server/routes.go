package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - System
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// API routes - Snapshot lifecycle
	mux.HandleFunc("/api/status", s.app.SnapshotHandler.StatusHandler)
	mux.HandleFunc("/api/snapshot/reload", s.app.SnapshotHandler.ReloadHandler)

	// API routes - Annotated table
	mux.HandleFunc("/api/regions", s.app.RegionHandler.ListHandler)
	mux.HandleFunc("/api/export", s.app.ExportHandler.CSVHandler)

	// API routes - Forecasting and reporting
	mux.HandleFunc("/api/forecast", s.app.ForecastHandler.GetHandler)
	mux.HandleFunc("/api/brief", s.app.BriefHandler.GetHandler)
	mux.HandleFunc("/api/brief/pdf", s.app.BriefHandler.PDFHandler)

	return mux
}
