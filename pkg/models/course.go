// Package models defines the core domain models for the course lifecycle engine.
package models

import "time"

// Course is the subject of the lifecycle workflow. The lifecycle engine owns the
// status, lock and per-state timestamp fields; content fields are written by the
// authoring flow and only read here for validation and version snapshotting.
type Course struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"             validate:"required,min=5"`
	ShortDescription string       `json:"short_description" validate:"required,min=20"`
	Requirements     string       `json:"requirements"      validate:"required"`
	LearningOutcomes string       `json:"learning_outcomes" validate:"required"`
	TargetAudience   string       `json:"target_audience"   validate:"required"`
	Price            float64      `json:"price"`
	ThumbnailURL     string       `json:"thumbnail_url"     validate:"required"`
	VideoURL         string       `json:"video_url,omitempty"`
	DurationHours    float64      `json:"duration_hours"`
	Status           CourseStatus `json:"status"`
	InstructorID     string       `json:"instructor_id"`
	Chapters         []*Chapter   `json:"chapters"`
	VersionNumber    int          `json:"version_number"` // Starts at 1, only ever increases
	IsLocked         bool         `json:"is_locked"`      // True while the status is not editable
	RejectionReason  string       `json:"rejection_reason,omitempty"`
	LastModifiedBy   string       `json:"last_modified_by,omitempty"`
	SubmittedAt      *time.Time   `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time   `json:"reviewed_at,omitempty"`
	PublishedAt      *time.Time   `json:"published_at,omitempty"`
	ArchivedAt       *time.Time   `json:"archived_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// TotalLessonCount returns the number of lessons across all chapters.
func (c *Course) TotalLessonCount() int {
	count := 0
	for _, chapter := range c.Chapters {
		count += len(chapter.Lessons)
	}

	return count
}

// Touch records who last modified the course and when.
func (c *Course) Touch(actorID string, at time.Time) {
	c.LastModifiedBy = actorID
	c.UpdatedAt = at
}
