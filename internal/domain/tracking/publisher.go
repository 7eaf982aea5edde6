package tracking

import "time"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes a record change for live subscribers of a child.
type Event struct {
	ChildID  string    `json:"childId"`
	Category Category  `json:"category"`
	Action   Action    `json:"action"`
	RecordID string    `json:"recordId"`
	ActorID  string    `json:"actorId"`
	At       time.Time `json:"at"`
	Record   any       `json:"record,omitempty"`
}

type Publisher interface {
	Publish(event Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
