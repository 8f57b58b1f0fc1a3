package mq

import "encoding/json"

// Change-feed payloads. Consumers re-fetch and recompute their derived views
// on receipt; the payload identifies what moved, not the full record.

// Envelope wraps every published change event. EventID is the outbox row id,
// the handle consumers dedupe on.
type Envelope struct {
	EventID int64           `json:"event_id"`
	Payload json.RawMessage `json:"payload"`
}

type ProjectChangedPayload struct {
	ProjectID int    `json:"project_id"`
	UserID    int    `json:"user_id"`
	Action    string `json:"action"` // created / updated / status_changed / progress_changed / deleted
}

type TaskChangedPayload struct {
	TaskID    int    `json:"task_id"`
	ProjectID int    `json:"project_id"`
	UserID    int    `json:"user_id"`
	Action    string `json:"action"` // created / updated / deleted
}

type ActivityChangedPayload struct {
	ActivityID int    `json:"activity_id"`
	ProjectID  int    `json:"project_id"`
	UserID     int    `json:"user_id"`
	Action     string `json:"action"` // created
}
