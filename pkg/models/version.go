package models

import (
	"encoding/json"
	"time"
)

// CourseVersion is an immutable point-in-time snapshot of a course's editable
// content, independent of its lifecycle status. Restoring a version creates a new
// forward-moving state on the live course; it never rewrites history.
type CourseVersion struct {
	ID                 string          `json:"id"`
	CourseID           string          `json:"course_id"      validate:"required"`
	VersionNumber      int             `json:"version_number" validate:"min=1"`
	Title              string          `json:"title"`
	ShortDescription   string          `json:"short_description"`
	Requirements       string          `json:"requirements"`
	LearningOutcomes   string          `json:"learning_outcomes"`
	TargetAudience     string          `json:"target_audience"`
	Price              float64         `json:"price"`
	ThumbnailURL       string          `json:"thumbnail_url"`
	VideoURL           string          `json:"video_url,omitempty"`
	CurriculumSnapshot json.RawMessage `json:"curriculum_snapshot"`
	PublishStatus      string          `json:"publish_status,omitempty"` // Status label at capture time
	VersionNotes       string          `json:"version_notes,omitempty"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}
