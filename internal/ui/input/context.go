package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Loaded   bool
	Timeline bool // timeline pane has focus
	Rows     int
	Selected int
	Detail   bool
	Query    string
}

func (c *ModelContext) Ready() bool           { return c.Loaded }
func (c *ModelContext) TimelineFocused() bool { return c.Timeline }
func (c *ModelContext) RowCount() int         { return c.Rows }
func (c *ModelContext) SelectedCount() int    { return c.Selected }
func (c *ModelContext) HasDetail() bool       { return c.Detail }
func (c *ModelContext) SearchQuery() string   { return c.Query }
