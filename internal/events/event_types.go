package events

// EventType identifies a lead lifecycle event.
type EventType string

const (
	EventLeadReceived    EventType = "lead.received"
	EventLeadSynced      EventType = "lead.synced"
	EventLeadAlerted     EventType = "lead.alerted"
	EventContactReceived EventType = "contact.received"
)

// Event is the payload published on the dispatcher.
type Event struct {
	Type    EventType
	LeadID  string
	Payload map[string]any
}
