// Package rendersync projects the Selection Set onto the timeline.
package rendersync

import (
	"fmt"

	"mathtimeline/internal/domain"
)

// DefaultBufferYears pads the window on both sides of the selection
const DefaultBufferYears = 5

// Label decorates a person's name with birth and death years
func Label(p domain.Person) string {
	return fmt.Sprintf("%s (%d–%d)", p.Name, p.Start.Year(), p.End.Year())
}

// Project builds the Display Collection: the selected entities in store
// order, persons relabeled, events passed through.
func Project(entities []domain.Entity, isSelected func(domain.ID) bool) []domain.DisplayItem {
	items := make([]domain.DisplayItem, 0)
	for _, e := range entities {
		if !isSelected(e.EntityID()) {
			continue
		}
		switch v := e.(type) {
		case domain.Person:
			end := v.End
			items = append(items, domain.DisplayItem{
				ID:      v.ID,
				Content: Label(v),
				Start:   v.Start,
				End:     &end,
				Kind:    domain.KindPerson,
			})
		case domain.Event:
			items = append(items, domain.DisplayItem{
				ID:      v.ID,
				Content: v.Name,
				Start:   v.Start,
				Kind:    domain.KindEvent,
			})
		}
	}
	return items
}

// Window returns the earliest and latest of all item starts and ends,
// widened by bufferYears on each side. ok is false for no items.
func Window(items []domain.DisplayItem, bufferYears int) (min, max domain.Date, ok bool) {
	if len(items) == 0 {
		return domain.Date{}, domain.Date{}, false
	}

	min, max = items[0].Start, items[0].Last()
	for _, item := range items {
		min = domain.EarliestOf(min, item.Start, item.Last())
		max = domain.LatestOf(max, item.Start, item.Last())
	}
	return min.AddYears(-bufferYears), max.AddYears(bufferYears), true
}
