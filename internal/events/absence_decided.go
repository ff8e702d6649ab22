package events

import "time"

const AbsenceDecidedTopic = "hr.absence.decided.v1"

type AbsenceDecidedEvent struct {
	EventType  string    `json:"event_type"`
	AbsenceID  string    `json:"absence_id"`
	PersonID   string    `json:"person_id"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
