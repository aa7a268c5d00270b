package logic

import (
	"strings"

	"mathtimeline/internal/domain"
)

// Matches reports whether an entity matches the filter query: a
// case-insensitive substring of its display name or of any tag. The empty
// query matches everything.
func Matches(e domain.Entity, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(filterQuery)

	if strings.Contains(strings.ToLower(e.DisplayName()), query) {
		return true
	}
	for _, tag := range e.EntityTags() {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// FilterEntities returns the entities matching the query in their original
// order. The result is never nil.
func FilterEntities(entities []domain.Entity, filterQuery string) []domain.Entity {
	results := make([]domain.Entity, 0, len(entities))
	for _, e := range entities {
		if Matches(e, filterQuery) {
			results = append(results, e)
		}
	}
	return results
}

// MatchSpan locates the first case-insensitive occurrence of query in text
// for highlighting. It returns -1, -1 when there is none.
func MatchSpan(text, query string) (int, int) {
	if query == "" {
		return -1, -1
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	// lowering can change byte lengths outside ASCII
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return -1, -1
	}
	i := strings.Index(lowerText, lowerQuery)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(query)
}
