package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSlideChanged  EventType = "SlideChanged"
	EventLikeToggled   EventType = "LikeToggled"
	EventStoreSaved    EventType = "StoreSaved"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventAdvisorReply  EventType = "AdvisorReply"
	EventPortfolioSeed EventType = "PortfolioSeeded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SlideChangedEvent is emitted when a carousel moves to a new index
type SlideChangedEvent struct {
	Carousel string
	Index    int
}

func (e SlideChangedEvent) Type() EventType { return EventSlideChanged }

// LikeToggledEvent is emitted when a marketplace item is liked or unliked
type LikeToggledEvent struct {
	Title string
	Liked bool
}

func (e LikeToggledEvent) Type() EventType { return EventLikeToggled }

// StoreSavedEvent is emitted after a key is written to the state store
type StoreSavedEvent struct {
	Key string
}

func (e StoreSavedEvent) Type() EventType { return EventStoreSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// AdvisorReplyEvent carries a delayed advisor answer
type AdvisorReplyEvent struct {
	Question string
	Reply    string
}

func (e AdvisorReplyEvent) Type() EventType { return EventAdvisorReply }

// PortfolioSeededEvent is emitted when the mock portfolio is written for the first time
type PortfolioSeededEvent struct {
	Assets int
}

func (e PortfolioSeededEvent) Type() EventType { return EventPortfolioSeed }
