package handlers

import "net/http"

// Health reports liveness and, when configured, database reachability.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok", "sessions": s.Sessions.Len()}
	if s.DB != nil {
		db, err := s.DB.DB()
		if err == nil {
			err = db.PingContext(r.Context())
		}
		if err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}
