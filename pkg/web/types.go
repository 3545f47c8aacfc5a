// Package web provides HTTP request and response types for the course API.
package web

import "github.com/courseloom/courseloom/pkg/models"

// CreateCourseRequest represents the request body for creating a new course.
// Content completeness is not enforced at creation; a draft may be sparse.
type CreateCourseRequest struct {
	Title            string  `json:"title"             validate:"required,min=5"`
	ShortDescription string  `json:"short_description"`
	Requirements     string  `json:"requirements"`
	LearningOutcomes string  `json:"learning_outcomes"`
	TargetAudience   string  `json:"target_audience"`
	Price            float64 `json:"price"             validate:"min=0"`
	ThumbnailURL     string  `json:"thumbnail_url"`
	VideoURL         string  `json:"video_url"`
	DurationHours    float64 `json:"duration_hours"    validate:"min=0"`
}

// UpdateCourseRequest represents the request body for replacing a course's
// content fields.
type UpdateCourseRequest struct {
	Title            string            `json:"title"             validate:"required,min=5"`
	ShortDescription string            `json:"short_description"`
	Requirements     string            `json:"requirements"`
	LearningOutcomes string            `json:"learning_outcomes"`
	TargetAudience   string            `json:"target_audience"`
	Price            float64           `json:"price"             validate:"min=0"`
	ThumbnailURL     string            `json:"thumbnail_url"`
	VideoURL         string            `json:"video_url"`
	DurationHours    float64           `json:"duration_hours"    validate:"min=0"`
	Chapters         []*models.Chapter `json:"chapters"`
}

// RejectCourseRequest represents the request body for rejecting a course in review.
type RejectCourseRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CaptureVersionRequest represents the request body for an on-demand snapshot.
type CaptureVersionRequest struct {
	Notes string `json:"notes"`
}

// RestoreVersionRequest represents the request body for restoring course
// content from a snapshot.
type RestoreVersionRequest struct {
	VersionID string `json:"version_id" validate:"required"`
}

// ValidationReport is the response for the submission pre-flight check.
type ValidationReport struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}
