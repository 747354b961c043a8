package events

import "time"

const ExitStatusChangedTopic = "hr.exit.status.v1"

// ExitStatusChangedEvent is emitted through the outbox on every successful
// status transition of an exit form, including terminal ones.
type ExitStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	ExitFormID string    `json:"exit_form_id"`
	EmployeeID string    `json:"employee_id"`
	FromStatus int       `json:"from_status"`
	ToStatus   int       `json:"to_status"`
	Stage      string    `json:"stage"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
