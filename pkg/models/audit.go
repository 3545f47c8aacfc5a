package models

import "time"

// AuditEntry is the immutable record of one committed status transition.
// Entries are append-only: never mutated, never deleted.
type AuditEntry struct {
	ID         string         `json:"id"`
	CourseID   string         `json:"course_id"   validate:"required"`
	ActorID    string         `json:"actor_id"    validate:"required"`
	FromStatus CourseStatus   `json:"from_status"`
	ToStatus   CourseStatus   `json:"to_status"`
	Reason     string         `json:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"` // Client provenance for security forensics
	UserAgent  string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
