package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"p9e.in/agentreport/middleware"
	"p9e.in/agentreport/pkg/document"
	"p9e.in/agentreport/pkg/metrics"
	"p9e.in/agentreport/pkg/reporting"
	"p9e.in/agentreport/pkg/session"
	"p9e.in/agentreport/pkg/storage"
	"p9e.in/agentreport/pkg/validation"
)

const unexpectedDetail = "Непредвиденная ошибка сервера. Обратитесь к разработчику. / Unexpected server error."

var errBadRequest = errors.New("bad request")

// Server holds what the HTTP handlers work with.
type Server struct {
	Sessions *session.Registry
	Reports  *reporting.Repository
	// DB is nil when no database is configured.
	DB      *gorm.DB
	JWT     *middleware.JWT
	Metrics *metrics.Metrics
	Log     *zap.Logger
	// StrictValidation validates every incoming report, not only those
	// sent with ?validate=true.
	StrictValidation bool
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// fail maps application errors onto 4xx responses; anything else is a
// logged 500 with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, reporting.ErrDraftDocumentNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errBadRequest),
		errors.Is(err, storage.ErrInvalidName),
		errors.Is(err, reporting.ErrTemplateCorrupted),
		errors.Is(err, document.ErrTemplateNotFound),
		errors.Is(err, document.ErrWrongDocumentType):
		s.logger().Warn("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		s.logger().Error("unexpected error", zap.String("path", r.URL.Path), zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, unexpectedDetail)
	}
}

func (s *Server) sessionOp(op string) {
	if s.Metrics != nil {
		s.Metrics.SessionOp(op)
	}
}
