package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	_ "p9e.in/agentreport/docs"
	"p9e.in/agentreport/handlers"
	"p9e.in/agentreport/middleware"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(s *handlers.Server, origins string) http.Handler {
	r := mux.NewRouter()
	if s.Log != nil {
		r.Use(middleware.RequestLogger(s.Log, s.Metrics))
	}

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/healthz", s.Health).Methods("GET")
	r.HandleFunc("/swagger/doc.json", serveDoc).Methods("GET")
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}
	if s.DB != nil && s.JWT != nil {
		r.HandleFunc("/register", s.Register).Methods("POST")
		r.HandleFunc("/login", s.Login).Methods("POST")
	}

	// =====================================================
	// API Routes (JWT when a secret is configured)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	if s.JWT != nil {
		api.Use(s.JWT.Middleware)
	}
	registerSessionRoutes(api, s)
	registerReportRoutes(api, s)

	return middleware.CORS(origins)(r)
}

func registerSessionRoutes(api *mux.Router, s *handlers.Server) {
	api.HandleFunc("/sessions", s.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/report", s.GetSessionReport).Methods("GET")
	api.HandleFunc("/sessions/{id}/report", s.SetSessionReport).Methods("PUT")
	api.HandleFunc("/sessions/{id}/report", s.DropSessionReport).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/report/summary.csv", s.ExportSessionSummary).Methods("GET")
	api.HandleFunc("/sessions/{id}/defaults/{template}", s.GetDefault).Methods("GET")
}

func registerReportRoutes(api *mux.Router, s *handlers.Server) {
	if s.Reports == nil {
		return
	}
	api.HandleFunc("/report", s.CreateReport).Methods("PUT")
	api.HandleFunc("/report", s.ListReports).Methods("GET")
	api.HandleFunc("/report", s.AddPhotos).Methods("PATCH")
	api.HandleFunc("/report/{name}", s.GetReport).Methods("GET")
	api.HandleFunc("/report/{name}", s.UpdateReport).Methods("POST")
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
