// Package session holds the report being edited by one client.
package session

import (
	"sync"

	"p9e.in/agentreport/models"
)

// ReportSession owns exactly one Report at a time.
//
// SetReport stores the value it is given without validation or copying,
// so the caller must not keep mutating slices it handed over.
type ReportSession struct {
	mu     sync.RWMutex
	schema models.SchemaVersion
	report models.Report
}

// NewReportSession returns a session holding the empty report.
func NewReportSession(schema models.SchemaVersion) *ReportSession {
	return &ReportSession{
		schema: schema,
		report: models.EmptyReport(),
	}
}

// Schema is the schema version the default templates follow.
func (s *ReportSession) Schema() models.SchemaVersion {
	return s.schema
}

// Report returns the current report.
func (s *ReportSession) Report() models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// SetReport replaces the stored report wholesale.
func (s *ReportSession) SetReport(r models.Report) {
	s.mu.Lock()
	s.report = r
	s.mu.Unlock()
}

// DropReport resets the stored report to the empty template.
func (s *ReportSession) DropReport() {
	s.mu.Lock()
	s.report = models.EmptyReport()
	s.mu.Unlock()
}

// DefaultTransportUnit returns a fresh copy of the transport unit template.
func (s *ReportSession) DefaultTransportUnit() models.TransportUnit {
	return s.schema.DefaultTransportUnit()
}

// DefaultTemperature returns a fresh copy of the temperature block template.
func (s *ReportSession) DefaultTemperature() models.Temperature {
	return s.schema.DefaultTemperature()
}

// DefaultPulp returns a fresh copy of the pulp range template.
func (s *ReportSession) DefaultPulp() models.Pulp {
	return s.schema.DefaultPulp()
}

// DefaultThermograph returns a fresh copy of the thermograph entry template.
func (s *ReportSession) DefaultThermograph() models.Thermograph {
	return s.schema.DefaultThermograph()
}

// DefaultPhoto returns a fresh copy of the photo entry template.
func (s *ReportSession) DefaultPhoto() models.Photo {
	return s.schema.DefaultPhoto()
}

// Default returns the named template, or false for an unknown name.
func (s *ReportSession) Default(name string) (any, bool) {
	switch name {
	case "transport_unit":
		return s.DefaultTransportUnit(), true
	case "temperature":
		return s.DefaultTemperature(), true
	case "pulp":
		return s.DefaultPulp(), true
	case "thermograph":
		return s.DefaultThermograph(), true
	case "photo":
		return s.DefaultPhoto(), true
	}
	return nil, false
}
