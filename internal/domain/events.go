package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDatasetLoaded     EventType = "DatasetLoaded"
	EventDatasetLoadFailed EventType = "DatasetLoadFailed"
	EventDatasetChanged    EventType = "DatasetChanged"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DatasetLoadedEvent is emitted once a dataset has been decoded and stored
type DatasetLoadedEvent struct {
	Source  string
	Persons int
	Events  int
	Reload  bool
}

func (e DatasetLoadedEvent) Type() EventType { return EventDatasetLoaded }

// DatasetLoadFailedEvent is emitted when fetching or decoding the dataset fails
type DatasetLoadFailedEvent struct {
	Source string
	Err    error
	Reload bool
}

func (e DatasetLoadFailedEvent) Type() EventType { return EventDatasetLoadFailed }

// DatasetChangedEvent is emitted when the dataset file changes on disk
type DatasetChangedEvent struct {
	Path string
}

func (e DatasetChangedEvent) Type() EventType { return EventDatasetChanged }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
