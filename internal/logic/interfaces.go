package logic

import "mathtimeline/internal/domain"

// EntityStore provides access to the loaded entities
type EntityStore interface {
	// All returns every entity in load order
	All() []domain.Entity
	Get(id domain.ID) (domain.Entity, bool)
	Has(id domain.ID) bool
	Len() int
	// Replace swaps the whole contents, keeping the given order
	Replace(entities []domain.Entity)
}
