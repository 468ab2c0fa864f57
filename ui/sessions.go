package ui

import (
	"sort"
	"sync"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
)

// sessionStore holds the processors for every uploaded dataset, keyed by
// dataset id. Uploads are kept in memory for the lifetime of the server;
// there is no persistence across restarts.
type sessionStore struct {
	mu       sync.RWMutex
	datasets map[survey.DatasetID]*processor.Processor
}

func newSessionStore() *sessionStore {
	return &sessionStore{datasets: make(map[survey.DatasetID]*processor.Processor)}
}

func (s *sessionStore) put(id survey.DatasetID, p *processor.Processor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[id] = p
}

func (s *sessionStore) get(id survey.DatasetID) (*processor.Processor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.datasets[id]
	return p, ok
}

func (s *sessionStore) remove(id survey.DatasetID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return false
	}
	delete(s.datasets, id)
	return true
}

func (s *sessionStore) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.datasets))
	for id := range s.datasets {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return ids
}
