package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/session"
	"p9e.in/agentreport/pkg/validation"
)

type sessionResp struct {
	ID     uuid.UUID     `json:"id"`
	Schema int           `json:"schema"`
	Report models.Report `json:"report"`
}

func (s *Server) session(r *http.Request) (uuid.UUID, *session.ReportSession, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, nil, session.ErrSessionNotFound
	}
	sess, err := s.Sessions.Get(id)
	return id, sess, err
}

// decodeReport reads a report body and validates it when asked to.
func (s *Server) decodeReport(r *http.Request) (models.Report, error) {
	var rep models.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		return rep, badRequest("invalid JSON: %v", err)
	}
	if s.StrictValidation || r.URL.Query().Get("validate") == "true" {
		if err := validation.ValidateReport(rep); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// CreateSession godoc
// @Summary Open a report session holding the empty report
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResp
// @Router /api/v1/sessions [post]
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, sess := s.Sessions.Create()
	s.sessionOp("create")
	writeJSON(w, http.StatusCreated, sessionResp{ID: id, Schema: int(sess.Schema()), Report: sess.Report()})
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, _, err := s.session(r)
	if err == nil {
		err = s.Sessions.Delete(id)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.sessionOp("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetSessionReport(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Report())
}

// SetSessionReport replaces the session report wholesale.
func (s *Server) SetSessionReport(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.decodeReport(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess.SetReport(rep)
	s.sessionOp("set")
	writeJSON(w, http.StatusOK, sess.Report())
}

func (s *Server) DropSessionReport(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess.DropReport()
	s.sessionOp("drop")
	writeJSON(w, http.StatusOK, sess.Report())
}

// GetDefault returns a fresh template value: transport_unit, temperature,
// pulp, thermograph or photo.
func (s *Server) GetDefault(w http.ResponseWriter, r *http.Request) {
	_, sess, err := s.session(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := mux.Vars(r)["template"]
	v, ok := sess.Default(name)
	if !ok {
		writeDetail(w, http.StatusNotFound, "unknown template "+name)
		return
	}
	s.sessionOp("default")
	writeJSON(w, http.StatusOK, v)
}
