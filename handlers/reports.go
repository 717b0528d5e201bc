package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"p9e.in/agentreport/middleware"
	"p9e.in/agentreport/pkg/reporting"
)

const maxUploadSize = 64 << 20

func (s *Server) sendFile(w http.ResponseWriter, f *reporting.File) {
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		sanitizeFilename(f.Name), url.PathEscape(f.Name)))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}

// CreateReport godoc
// @Summary Build a draft report document
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param validate query bool false "validate the payload first"
// @Success 200 {file} file
// @Failure 400 {object} map[string]any
// @Router /api/v1/report [put]
func (s *Server) CreateReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.decodeReport(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f, err := s.Reports.CreateReport(r.Context(), rep, middleware.Author(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.Metrics != nil {
		s.Metrics.DocumentGenerated(string(rep.Kind.Normalize()))
	}
	s.sendFile(w, f)
}

// ListReports godoc
// @Summary Reports in progress
// @Tags reports
// @Produce json
// @Success 200 {array} storage.Info
// @Router /api/v1/report [get]
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	list, err := s.Reports.ListReports(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	f, err := s.Reports.OpenReport(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.sendFile(w, f)
}

// UpdateReport replaces a stored document with the uploaded "file".
func (s *Server) UpdateReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.fail(w, r, badRequest("invalid multipart form: %v", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, badRequest("missing file: %v", err))
		return
	}
	defer file.Close()

	name, err := s.Reports.UpdateReport(r.Context(), mux.Vars(r)["name"], file)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// AddPhotos appends the unit photos to a previously created document.
func (s *Server) AddPhotos(w http.ResponseWriter, r *http.Request) {
	rep, err := s.decodeReport(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f, err := s.Reports.AddPictures(r.Context(), rep)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.sendFile(w, f)
}
