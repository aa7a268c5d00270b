package navigation

// State is the cursor over the result rows and the window of rows on screen
type State struct {
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	MaxIndex       int // last valid row, 0 when there are none
}

// Direction names a cursor movement. The values match the key actions the
// input layer produces.
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// CursorMovedEvent is published when the highlighted row changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

// ViewportChangedEvent is published when the visible window scrolls
type ViewportChangedEvent struct {
	Offset int
	Height int
}
