// Package events defines event types and structures for course lifecycle notifications.
package events

import (
	"time"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic is the event stream carrying all lifecycle events.
const Topic = "courseloom.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	CourseStatusChangedEvent   EventType = "course.status.changed"
	CourseVersionCapturedEvent EventType = "course.version.captured"
	CourseVersionRestoredEvent EventType = "course.version.restored"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	CourseID  string         `json:"course_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent builds the shared envelope for a lifecycle event.
func NewBaseEvent(eventType EventType, courseID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		CourseID:  courseID,
	}
}

// CourseStatusChanged is emitted exactly once per committed status transition.
// It carries everything a notification consumer needs without reaching back
// into the engine.
type CourseStatusChanged struct {
	BaseEvent

	CourseTitle     string              `json:"course_title"`
	FromStatus      models.CourseStatus `json:"from_status"`
	ToStatus        models.CourseStatus `json:"to_status"`
	ActorID         string              `json:"actor_id"`
	ActorName       string              `json:"actor_name,omitempty"`
	Reason          string              `json:"reason,omitempty"`
	InstructorID    string              `json:"instructor_id"`
	InstructorEmail string              `json:"instructor_email,omitempty"`
}

func (e CourseStatusChanged) GetType() EventType {
	return CourseStatusChangedEvent
}

// CourseVersionCaptured is emitted when a content snapshot is persisted.
type CourseVersionCaptured struct {
	BaseEvent

	VersionID     string `json:"version_id"`
	VersionNumber int    `json:"version_number"`
	ActorID       string `json:"actor_id"`
	Notes         string `json:"notes,omitempty"`
}

func (e CourseVersionCaptured) GetType() EventType {
	return CourseVersionCapturedEvent
}

// CourseVersionRestored is emitted when a snapshot's content is written back
// onto the live course.
type CourseVersionRestored struct {
	BaseEvent

	VersionID        string `json:"version_id"`
	VersionNumber    int    `json:"version_number"`
	NewVersionNumber int    `json:"new_version_number"`
	ActorID          string `json:"actor_id"`
}

func (e CourseVersionRestored) GetType() EventType {
	return CourseVersionRestoredEvent
}
