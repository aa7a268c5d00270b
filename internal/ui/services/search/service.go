package search

import (
	"go.uber.org/zap"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/ui/logic"
	"mathtimeline/internal/ui/services/events"
)

// Filter derives the visible subset of entities for a query. See
// logic.FilterEntities for the matching rule.
func Filter(entities []domain.Entity, query string) []domain.Entity {
	return logic.FilterEntities(entities, query)
}

// Service handles search functionality
type Service struct {
	state    *State
	bus      events.EventBus
	sourceFn func() []domain.Entity // Function to get the full entity list
	log      *zap.SugaredLogger
}

// NewService creates a new search service
func NewService(bus events.EventBus, log *zap.SugaredLogger) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		state: &State{
			Results: []domain.Entity{},
		},
		bus: bus,
		log: log,
	}
}

// SetSourceFunction sets the function returning the entities to search
func (s *Service) SetSourceFunction(fn func() []domain.Entity) {
	s.sourceFn = fn
}

// Run recomputes the visible subset for query. It always recomputes so a
// reloaded dataset is picked up with an unchanged query.
func (s *Service) Run(query string) []domain.Entity {
	s.state.Query = query

	var all []domain.Entity
	if s.sourceFn != nil {
		all = s.sourceFn()
	}
	s.state.Results = Filter(all, query)

	s.log.Debugw("Search completed", "query", query, "matches", len(s.state.Results))

	s.bus.Publish(SearchCompletedEvent{
		Query:      query,
		MatchCount: len(s.state.Results),
	})
	return s.state.Results
}

// ClearSearch resets the query and shows every entity again
func (s *Service) ClearSearch() {
	s.Run("")
}

// GetQuery returns the current search query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetResults returns the current visible subset
func (s *Service) GetResults() []domain.Entity {
	return s.state.Results
}
