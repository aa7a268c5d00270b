package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/ui/services/events"
)

func euclid() domain.Person {
	return domain.Person{
		ID:    "1",
		Name:  "Euclid",
		Start: domain.MustParseDate("-300-01-01"),
		End:   domain.MustParseDate("-265-01-01"),
		Tags:  []string{"geometry"},
	}
}

func TestRunScenario(t *testing.T) {
	bus := events.NewBus()
	var completed []SearchCompletedEvent
	bus.Subscribe(events.TypeOf(SearchCompletedEvent{}), func(e interface{}) {
		completed = append(completed, e.(SearchCompletedEvent))
	})

	svc := NewService(bus, nil)
	svc.SetSourceFunction(func() []domain.Entity { return []domain.Entity{euclid()} })

	got := svc.Run("eucl")
	require.Len(t, got, 1)
	assert.Equal(t, domain.ID("1"), got[0].EntityID())

	got = svc.Run("algebra")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, svc.GetResults())
	assert.Equal(t, "algebra", svc.GetQuery())

	assert.Equal(t, []SearchCompletedEvent{
		{Query: "eucl", MatchCount: 1},
		{Query: "algebra", MatchCount: 0},
	}, completed)
}

func TestRunWithoutSourceIsEmpty(t *testing.T) {
	svc := NewService(nil, nil)
	got := svc.Run("eucl")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRunPicksUpNewSource(t *testing.T) {
	entities := []domain.Entity{euclid()}
	svc := NewService(nil, nil)
	svc.SetSourceFunction(func() []domain.Entity { return entities })

	assert.Len(t, svc.Run(""), 1)

	entities = append(entities, domain.Event{ID: "2", Name: "Elements", Start: domain.MustParseDate("-300")})
	assert.Len(t, svc.Run(""), 2)
}

func TestClearSearch(t *testing.T) {
	svc := NewService(nil, nil)
	svc.SetSourceFunction(func() []domain.Entity { return []domain.Entity{euclid()} })
	svc.Run("zzz")

	svc.ClearSearch()
	assert.Equal(t, "", svc.GetQuery())
	assert.Len(t, svc.GetResults(), 1)
}
