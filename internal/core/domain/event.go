package domain

import "time"

// UserEventAction identifies the kind of mutation recorded in the audit trail.
type UserEventAction string

const (
	UserCreated UserEventAction = "created"
	UserUpdated UserEventAction = "updated"
	UserDeleted UserEventAction = "deleted"
)

// UserEvent records a single mutation of a user record for the audit trail.
type UserEvent struct {
	UserID    int64
	Login     string
	Action    UserEventAction
	ActorID   int64
	Timestamp time.Time
}
