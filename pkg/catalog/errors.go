package catalog

import (
	"errors"

	"github.com/courseloom/courseloom/pkg/persistence"
)

var (
	// ErrCourseNotFound is returned when a course does not exist.
	ErrCourseNotFound = persistence.ErrCourseNotFound

	// ErrCourseLocked indicates edits were attempted while the lifecycle has
	// the course locked.
	ErrCourseLocked = errors.New("course content is locked for editing")

	// ErrNotInstructor indicates the actor lacks the instructor role.
	ErrNotInstructor = errors.New("only instructors can create courses")

	// ErrNotCourseOwner indicates the actor neither owns the course nor is an admin.
	ErrNotCourseOwner = errors.New("actor does not own this course")
)
