package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathtimeline/internal/domain"
	"mathtimeline/internal/locale"
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

func TestBuildRowsSnapshotsSelection(t *testing.T) {
	entities := []domain.Entity{
		euclid(),
		domain.Event{ID: "2", Name: "Elements published", Start: domain.MustParseDate("-300-06-01")},
	}
	selected := map[domain.ID]bool{"2": true}

	rows := BuildRows(entities, func(id domain.ID) bool { return selected[id] })
	require.Len(t, rows, 2)
	assert.Equal(t, ResultRow{ID: "1", Label: "Euclid", Kind: domain.KindPerson}, rows[0])
	assert.True(t, rows[1].Checked)

	// later changes are not reflected in rows already built
	selected["1"] = true
	assert.False(t, rows[0].Checked)
}

func TestResultsRenderEmpty(t *testing.T) {
	r := NewResultsRenderer(NewStyles("dark"))
	out := ansi.Strip(r.Render(ResultsState{Height: 5, Width: 30}))
	assert.Equal(t, NoResultsText, out)
}

func TestResultsRenderCheckboxes(t *testing.T) {
	r := NewResultsRenderer(NewStyles("dark"))
	out := ansi.Strip(r.Render(ResultsState{
		Rows: []ResultRow{
			{ID: "1", Label: "Euclid", Checked: true},
			{ID: "2", Label: "Archimedes", Kind: domain.KindPerson},
		},
		Height: 5,
		Width:  30,
		Query:  "eucl",
	}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[x] "))
	assert.Contains(t, lines[0], "Euclid")
	assert.True(t, strings.HasPrefix(lines[1], "[ ] "))
}

func TestResultsRenderScrollIndicators(t *testing.T) {
	rows := make([]ResultRow, 20)
	for i := range rows {
		rows[i] = ResultRow{ID: domain.ID(rune('a' + i)), Label: "row"}
	}
	r := NewResultsRenderer(NewStyles("dark"))
	out := ansi.Strip(r.Render(ResultsState{Rows: rows, Offset: 5, Height: 6, Width: 30}))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "↑ 5 more above ↑", lines[0])
	assert.Equal(t, "↓ 11 more below ↓", lines[5])
}

func TestDetailPerson(t *testing.T) {
	d := NewDetail(euclid(), locale.New(""))
	assert.Equal(t, "Euclid", d.Heading)
	assert.Equal(t, "Lived: -300-01-01 to -265-01-01", d.When)
	assert.Equal(t, "geometry", d.Tags)
	assert.Empty(t, d.Image)
}

func TestDetailEventAndText(t *testing.T) {
	ev := domain.Event{
		ID:    "e1",
		Name:  "Principia",
		Start: domain.MustParseDate("1687-07-05"),
		Tags:  []string{"physics", "", "calculus"},
	}
	d := NewDetail(ev, locale.New("en-US"))
	assert.Equal(t, "Date: Jul 5, 1687", d.When)
	assert.Equal(t, "physics, calculus", d.Tags)
	assert.Equal(t, "Principia\nDate: Jul 5, 1687\nTags: physics, calculus", d.Text())
}

func TestDetailImageAndNoTags(t *testing.T) {
	p := euclid()
	p.Tags = nil
	p.Image = "https://example.com/euclid.png"
	d := NewDetail(p, locale.New(""))

	text := d.Text()
	assert.True(t, strings.HasPrefix(text, "Image: https://example.com/euclid.png\n"))
	assert.NotContains(t, text, "geometry")

	out := ansi.Strip(NewDetailRenderer(NewStyles("dark")).Render(d, 60))
	assert.Contains(t, out, "euclid.png")
	assert.Contains(t, out, "Lived:")
}

func TestDetailPlaceholderWraps(t *testing.T) {
	out := ansi.Strip(NewDetailRenderer(NewStyles("light")).RenderPlaceholder(20))
	assert.Greater(t, strings.Count(out, "\n"), 0)
	assert.Equal(t, PlaceholderText, strings.Join(strings.Fields(out), " "))
}

func TestPopupOverlayKeepsSize(t *testing.T) {
	base := strings.Repeat(strings.Repeat("x", 40)+"\n", 9) + strings.Repeat("x", 40)
	pr := NewPopupRenderer(NewStyles("dark"))

	out := ansi.Strip(pr.RenderPopupOverlay(base, "hi", 10, 40, NewStyles("dark").InfoBox))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, line := range lines {
		assert.Equal(t, 40, ansi.StringWidth(line))
	}
	assert.Contains(t, out, "hi")
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 40, 8, true)
	assert.GreaterOrEqual(t, l.TimelineHeight, 8)
	assert.Equal(t, 94, l.TimelineWidth)
	assert.Equal(t, 98, l.ResultsWidth+l.DetailWidth+2*panelFrameW)
	assert.Greater(t, l.ResultsRows, 0)

	noTimeline := ComputeLayout(100, 40, 8, false)
	assert.Zero(t, noTimeline.TimelineHeight)
	assert.Greater(t, noTimeline.ResultsRows, l.ResultsRows)
}

func TestRenderLoadFailed(t *testing.T) {
	r := NewRenderer("dark", 8)
	out := ansi.Strip(r.Render(ViewState{
		Width:        80,
		Height:       24,
		LoadState:    LoadFailed,
		LoadError:    "server returned 500",
		TimelineView: "SHOULD NOT APPEAR",
	}))
	assert.Contains(t, out, LoadErrorText)
	assert.Contains(t, out, "server returned 500")
	assert.NotContains(t, out, "SHOULD NOT APPEAR")
	assert.NotContains(t, out, "selected")
}

func TestRenderLoaded(t *testing.T) {
	r := NewRenderer("dark", 8)
	d := NewDetail(euclid(), locale.New(""))
	out := ansi.Strip(r.Render(ViewState{
		Width:         100,
		Height:        30,
		LoadState:     LoadDone,
		Source:        "data.json",
		SearchView:    "> eucl",
		Rows:          []ResultRow{{ID: "1", Label: "Euclid", Checked: true}},
		TimelineView:  "TIMELINE",
		DetailView:    r.RenderDetail(&d, 50),
		SelectedCount: 1,
		TotalCount:    3,
	}))
	assert.Contains(t, out, "mathtimeline")
	assert.Contains(t, out, "1/3 selected")
	assert.Contains(t, out, "> eucl")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "TIMELINE")
	assert.Contains(t, out, "Lived: -300-01-01 to -265-01-01")
	assert.Contains(t, out, "Tags: geometry")
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), 30)
}

func TestRenderDetailPlaceholder(t *testing.T) {
	r := NewRenderer("dark", 8)
	assert.Contains(t, ansi.Strip(r.RenderDetail(nil, 60)), PlaceholderText)
}

func TestRenderHelpOverlay(t *testing.T) {
	r := NewRenderer("dark", 8)
	out := ansi.Strip(r.Render(ViewState{Width: 100, Height: 60, LoadState: LoadDone, ShowHelp: true}))
	assert.Contains(t, out, "Mathtimeline Help")
	assert.Contains(t, out, "Toggle the checkbox")
	assert.Greater(t, r.HelpLineCount(), 20)
}

func TestTitleShowsMatchesWhileSearching(t *testing.T) {
	r := NewRenderer("dark", 8)
	state := ViewState{Width: 100, Height: 30, LoadState: LoadDone, SelectedCount: 0, TotalCount: 3}

	out := ansi.Strip(r.Render(state))
	assert.NotContains(t, out, "match")

	state.Query = "e"
	state.MatchCount = 2
	assert.Contains(t, ansi.Strip(r.Render(state)), "2 matches")

	state.MatchCount = 1
	assert.Contains(t, ansi.Strip(r.Render(state)), "1 match |")
}
