// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrCourseNotFound indicates a course was not found by the given identifier.
	ErrCourseNotFound = errors.New("course not found")

	// ErrVersionNotFound indicates a course version was not found by the given identifier.
	ErrVersionNotFound = errors.New("course version not found")

	// ErrConcurrentModification indicates a transition's compare-and-swap
	// precondition failed: the course status changed between read and write.
	ErrConcurrentModification = errors.New("course was modified concurrently")

	// ErrCourseAlreadyExists indicates a course with the same identifier already exists.
	ErrCourseAlreadyExists = errors.New("course already exists")

	// ErrInvalidCourseStatus indicates a status value outside the lifecycle enumeration.
	ErrInvalidCourseStatus = errors.New("invalid course status")

	// ErrInvalidSortField indicates a sort field outside the listing allowlist.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// CourseError wraps course-related persistence errors with additional context.
type CourseError struct {
	Op       string // Operation being performed (e.g., "GetByID", "ApplyTransition")
	CourseID string // Course ID if applicable
	Err      error  // Underlying error
	Message  string // Additional context message
}

func (e *CourseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s operation failed for course %s: %s (%v)", e.Op, e.CourseID, e.Message, e.Err)
	}

	return fmt.Sprintf("%s operation failed for course %s: %v", e.Op, e.CourseID, e.Err)
}

func (e *CourseError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for course errors.
func (e *CourseError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewCourseError creates a new course error with context.
func NewCourseError(op, courseID string, err error) *CourseError {
	return &CourseError{
		Op:       op,
		CourseID: courseID,
		Err:      err,
	}
}

// VersionError wraps version-related persistence errors with additional context.
type VersionError struct {
	Op        string // Operation being performed
	CourseID  string // Course ID
	VersionID string // Version ID
	Err       error  // Underlying error
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s operation failed for version %s of course %s: %v", e.Op, e.VersionID, e.CourseID, e.Err)
}

func (e *VersionError) Unwrap() error {
	return e.Err
}

func (e *VersionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsCourseNotFound checks if an error indicates a course was not found.
func IsCourseNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound)
}

// IsVersionNotFound checks if an error indicates a course version was not found.
func IsVersionNotFound(err error) bool {
	return errors.Is(err, ErrVersionNotFound)
}

// IsConcurrentModification checks if an error indicates a failed CAS precondition.
func IsConcurrentModification(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsInvalidSortField checks if an error indicates a rejected sort field.
func IsInvalidSortField(err error) bool {
	return errors.Is(err, ErrInvalidSortField)
}
