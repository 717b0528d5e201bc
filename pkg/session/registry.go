package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"p9e.in/agentreport/models"
)

var ErrSessionNotFound = errors.New("report session not found")

// Registry hosts independent sessions, one per client.
type Registry struct {
	mu       sync.RWMutex
	schema   models.SchemaVersion
	sessions map[uuid.UUID]*ReportSession
}

func NewRegistry(schema models.SchemaVersion) *Registry {
	return &Registry{
		schema:   schema,
		sessions: make(map[uuid.UUID]*ReportSession),
	}
}

// Create opens a new session holding the empty report.
func (r *Registry) Create() (uuid.UUID, *ReportSession) {
	id := uuid.New()
	s := NewReportSession(r.schema)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id, s
}

func (r *Registry) Get(id uuid.UUID) (*ReportSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
