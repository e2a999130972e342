package models

import "time"

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

type AuditEvent struct {
	ID         string                 `json:"id" bson:"_id"`
	ActorID    string                 `json:"actor_id" bson:"actor_id"`
	SessionID  string                 `json:"session_id" bson:"session_id"`
	RequestID  string                 `json:"request_id" bson:"request_id"`
	Action     string                 `json:"action" bson:"action"`
	Entity     string                 `json:"entity" bson:"entity"`
	EntityID   string                 `json:"entity_id" bson:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at" bson:"occurred_at"`
}
