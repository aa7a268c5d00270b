package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/locale"
)

// PlaceholderText is shown in the detail panel before anything is selected
// and after the timeline selection is cleared
const PlaceholderText = "Select an item on the timeline to see details."

// Detail holds the plain fields shown for one entity
type Detail struct {
	ID      domain.ID
	Image   string
	Heading string
	When    string // "Lived: a to b" or "Date: d"
	Tags    string // comma-joined, empty when there are no tags
}

// NewDetail collects the display fields of an entity
func NewDetail(e domain.Entity, dates locale.DateFormatter) Detail {
	d := Detail{ID: e.EntityID(), Heading: e.DisplayName()}

	switch v := e.(type) {
	case domain.Person:
		d.Image = v.Image
		d.When = fmt.Sprintf("Lived: %s to %s", dates.Format(v.Start), dates.Format(v.End))
	default:
		d.When = fmt.Sprintf("Date: %s", dates.Format(e.StartDate()))
	}

	var tags []string
	for _, t := range e.EntityTags() {
		if t != "" {
			tags = append(tags, t)
		}
	}
	d.Tags = strings.Join(tags, ", ")
	return d
}

// Text is the unstyled form used for the pager and the clipboard
func (d Detail) Text() string {
	var lines []string
	if d.Image != "" {
		lines = append(lines, "Image: "+d.Image)
	}
	lines = append(lines, d.Heading, d.When)
	if d.Tags != "" {
		lines = append(lines, "Tags: "+d.Tags)
	}
	return strings.Join(lines, "\n")
}

// DetailRenderer draws the detail panel
type DetailRenderer struct {
	styles *Styles
}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

// Render draws the detail wrapped to width
func (r *DetailRenderer) Render(d Detail, width int) string {
	wrap := func(s string) string {
		if width <= 0 {
			return s
		}
		return wordwrap.String(s, width)
	}

	var blocks []string
	if d.Image != "" {
		blocks = append(blocks, r.styles.Image.Render(wrap("[image] "+d.Image)), "")
	}
	blocks = append(blocks, r.styles.Heading.Render(wrap(d.Heading)))

	label, value, _ := strings.Cut(d.When, ": ")
	blocks = append(blocks, r.styles.FieldLabel.Render(label+":")+" "+value)

	if d.Tags != "" {
		blocks = append(blocks, r.styles.FieldLabel.Render("Tags:")+" "+r.styles.Tag.Render(wrap(d.Tags)))
	}
	return strings.Join(blocks, "\n")
}

// RenderPlaceholder draws the prompt shown when nothing is selected
func (r *DetailRenderer) RenderPlaceholder(width int) string {
	text := PlaceholderText
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	return r.styles.Dim.Render(text)
}
