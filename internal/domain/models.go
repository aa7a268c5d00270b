package domain

// ID identifies an entity across the whole dataset
type ID string

// Kind discriminates the two entity variants
type Kind int

const (
	KindPerson Kind = iota
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Entity is either a Person or an Event
type Entity interface {
	EntityID() ID
	DisplayName() string
	StartDate() Date
	// EndDate is the end of a lifespan; events end where they start
	EndDate() Date
	EntityTags() []string
	Kind() Kind

	isEntity()
}

// Person is an entity with a lifespan
type Person struct {
	ID    ID
	Name  string
	Start Date
	End   Date
	Tags  []string
	Image string // optional portrait URL
}

func (p Person) EntityID() ID         { return p.ID }
func (p Person) DisplayName() string  { return p.Name }
func (p Person) StartDate() Date      { return p.Start }
func (p Person) EndDate() Date        { return p.End }
func (p Person) EntityTags() []string { return p.Tags }
func (p Person) Kind() Kind           { return KindPerson }
func (Person) isEntity()              {}

// Event is an entity at a single point in time
type Event struct {
	ID    ID
	Name  string
	Start Date
	Tags  []string
}

func (e Event) EntityID() ID         { return e.ID }
func (e Event) DisplayName() string  { return e.Name }
func (e Event) StartDate() Date      { return e.Start }
func (e Event) EndDate() Date        { return e.Start }
func (e Event) EntityTags() []string { return e.Tags }
func (e Event) Kind() Kind           { return KindEvent }
func (Event) isEntity()              {}

// Dataset is the loaded document: two named collections
type Dataset struct {
	Persons []Person
	Events  []Event
}

// Entities flattens the dataset, persons first, preserving the order within
// each collection.
func (d *Dataset) Entities() []Entity {
	if d == nil {
		return nil
	}
	out := make([]Entity, 0, len(d.Persons)+len(d.Events))
	for _, p := range d.Persons {
		out = append(out, p)
	}
	for _, e := range d.Events {
		out = append(out, e)
	}
	return out
}

// DisplayItem is one render-ready entry handed to the timeline
type DisplayItem struct {
	ID      ID     `json:"id"`
	Content string `json:"content"`
	Start   Date   `json:"start"`
	End     *Date  `json:"end,omitempty"`
	Kind    Kind   `json:"-"`
}

// Last returns the end of the item's extent
func (i DisplayItem) Last() Date {
	if i.End != nil {
		return *i.End
	}
	return i.Start
}

// IsRange reports whether the item spans a period
func (i DisplayItem) IsRange() bool {
	return i.End != nil
}
